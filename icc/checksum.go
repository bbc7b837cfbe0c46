package icc

import (
	"bytes"
	"crypto/md5"
)

// ChecksumStatus is the result of checking the header profile ID.
type ChecksumStatus int

const (
	// ChecksumUnset means the profile ID field is all zeros.
	ChecksumUnset ChecksumStatus = iota
	// ChecksumValid means the profile ID matches the profile contents.
	ChecksumValid
	// ChecksumMismatch means the profile ID does not match the contents.
	ChecksumMismatch
)

func (s ChecksumStatus) String() string {
	switch s {
	case ChecksumUnset:
		return "unset"
	case ChecksumValid:
		return "valid"
	case ChecksumMismatch:
		return "mismatch"
	}
	return "unknown"
}

// VerifyProfileID checks the MD5 profile ID in the header against the profile
// contents. Per the ICC specification the hash covers the whole profile with
// the flags, rendering intent and profile ID fields zeroed.
func VerifyProfileID(data []byte) ChecksumStatus {
	if len(data) < HeaderSize {
		return ChecksumUnset
	}
	stored := data[84:100]
	if isZero(stored) {
		return ChecksumUnset
	}
	scratch := make([]byte, len(data))
	copy(scratch, data)
	zero(scratch[44:48])  // flags
	zero(scratch[64:68])  // rendering intent
	zero(scratch[84:100]) // profile ID
	sum := md5.Sum(scratch)
	if bytes.Equal(sum[:], stored) {
		return ChecksumValid
	}
	return ChecksumMismatch
}

func isZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
