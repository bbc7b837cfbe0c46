package icc

import (
	"bytes"
	"fmt"

	bst "github.com/mixcode/binarystruct"
)

// headerRecord is the full 128-byte profile header layout.
type headerRecord struct {
	Size         uint32
	CMMType      string `binary:"[4]byte"`
	Version      uint32
	Class        string `binary:"[4]byte"`
	ColorSpace   string `binary:"[4]byte"`
	PCS          string `binary:"[4]byte"`
	DateTime     [12]byte
	Magic        string `binary:"[4]byte"`
	Platform     string `binary:"[4]byte"`
	Flags        uint32
	Manufacturer string `binary:"[4]byte"`
	Model        string `binary:"[4]byte"`
	Attributes   uint64
	Intent       uint32
	Illuminant   [3]uint32
	Creator      string `binary:"[4]byte"`
	ProfileID    [16]byte
	Reserved     [28]byte
}

// Decode parses raw profile bytes into a header and an ordered tag table.
// Each tag entry's (offset, size) range is bounds-checked against the data;
// the tag bytes alias the input.
func Decode(data []byte) (*Profile, error) {
	if len(data) < tagTableOffset {
		return nil, fmt.Errorf("profile too short: %d bytes", len(data))
	}
	r := bytes.NewReader(data)

	var hdr headerRecord
	if _, err := bst.Read(r, bst.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var tagCount uint32
	if _, err := bst.Read(r, bst.BigEndian, &tagCount); err != nil {
		return nil, fmt.Errorf("read tag count: %w", err)
	}
	if maxTags := uint32((len(data) - tagTableOffset) / tagEntrySize); tagCount > maxTags {
		return nil, fmt.Errorf("tag count %d exceeds file capacity %d", tagCount, maxTags)
	}

	tags := NewTagTable()
	for i := uint32(0); i < tagCount; i++ {
		var rec tagEntryRecord
		if _, err := bst.Read(r, bst.BigEndian, &rec); err != nil {
			return nil, fmt.Errorf("read tag entry %d: %w", i, err)
		}
		end := uint64(rec.Offset) + uint64(rec.Size)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("tag %q out of bounds: offset %d size %d", rec.Signature, rec.Offset, rec.Size)
		}
		tags.Set(rec.Signature, data[rec.Offset:end])
	}

	return &Profile{
		Header: Header{
			Size:       hdr.Size,
			Version:    hdr.Version,
			Class:      hdr.Class,
			ColorSpace: hdr.ColorSpace,
			Magic:      hdr.Magic,
			Platform:   hdr.Platform,
			Creator:    hdr.Creator,
			ProfileID:  hdr.ProfileID,
		},
		RawHeader: data[:HeaderSize],
		Tags:      tags,
		fileSize:  len(data),
	}, nil
}
