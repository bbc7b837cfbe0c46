// Package icc models an ICC profile as a fixed 128-byte header followed by an
// ordered table of tagged data blocks. It supports decoding a profile from raw
// bytes, validating the header of WCS-authored monitor profiles, and rebuilding
// the profile bytes after the tag table has been modified.
package icc

import "fmt"

// Fixed layout of the profile container.
const (
	HeaderSize     = 128
	tagCountOffset = 128
	tagTableOffset = 132
	tagEntrySize   = 12
)

// Well-known header signatures.
const (
	ProfileMagic      = "acsp"
	ClassDisplay      = "mntr"
	SpaceRGB          = "RGB "
	PlatformMicrosoft = "MSFT"
)

// MaxVersion is the highest profile version this package accepts (4.4).
const MaxVersion = 0x04400000

// Header holds the decoded fields of the profile header that the converter
// inspects. Fields not listed here are carried through Build untouched.
type Header struct {
	Size       uint32
	Version    uint32
	Class      string
	ColorSpace string
	Magic      string
	Platform   string
	Creator    string
	ProfileID  [16]byte
}

// Profile is a decoded ICC profile: the original header bytes, the decoded
// header fields, and the ordered tag table.
type Profile struct {
	Header    Header
	RawHeader []byte
	Tags      *TagTable

	fileSize int
}

// FileSize returns the actual byte length of the data the profile was decoded
// from, as opposed to the size the header declares.
func (p *Profile) FileSize() int { return p.fileSize }

// VersionString renders the encoded profile version as "major.minor", e.g.
// 0x04300000 -> "4.3".
func (p *Profile) VersionString() string {
	return fmt.Sprintf("%d.%d", p.Header.Version>>24, (p.Header.Version>>20)&0xf)
}
