package wcs

import (
	"bytes"
	"fmt"

	bst "github.com/mixcode/binarystruct"
)

// blockSignature opens the body of a well-formed WCS container tag.
const blockSignature = "MS10"

// blockHeader is the binary directory at the start of the tag body: an
// internal signature, a reserved word, and three (offset, size) pairs
// relative to the tag body start.
type blockHeader struct {
	Signature string `binary:"[4]byte"`
	Reserved  uint32
	CDMOffset uint32
	CDMSize   uint32
	CAMOffset uint32
	CAMSize   uint32
	GMMOffset uint32
	GMMSize   uint32
}

// TagBlock is the parsed WCS container tag. Only the ColorDeviceModel payload
// carries the calibration curve; the other two are located and bounds-checked
// but not interpreted.
type TagBlock struct {
	ColorDeviceModel []byte
	CameraModel      []byte
	GamutMapModel    []byte
}

// ParseTagBlock parses the body of the WCS container tag. A wrong internal
// signature or an out-of-range payload descriptor is a StructureError.
func ParseTagBlock(data []byte) (*TagBlock, error) {
	var hdr blockHeader
	if _, err := bst.Read(bytes.NewReader(data), bst.BigEndian, &hdr); err != nil {
		return nil, &StructureError{Reason: fmt.Sprintf("tag too short for block directory: %v", err)}
	}
	if hdr.Signature != blockSignature {
		return nil, &StructureError{Reason: fmt.Sprintf("block signature %q is not %q", hdr.Signature, blockSignature)}
	}
	cdm, err := slicePayload(data, "ColorDeviceModel", hdr.CDMOffset, hdr.CDMSize)
	if err != nil {
		return nil, err
	}
	cam, err := slicePayload(data, "CameraModel", hdr.CAMOffset, hdr.CAMSize)
	if err != nil {
		return nil, err
	}
	gmm, err := slicePayload(data, "GamutMapModel", hdr.GMMOffset, hdr.GMMSize)
	if err != nil {
		return nil, err
	}
	return &TagBlock{
		ColorDeviceModel: cdm,
		CameraModel:      cam,
		GamutMapModel:    gmm,
	}, nil
}

func slicePayload(data []byte, name string, offset, size uint32) ([]byte, error) {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(data)) {
		return nil, &StructureError{Reason: fmt.Sprintf("%s payload out of bounds: offset %d size %d", name, offset, size)}
	}
	return data[offset:end], nil
}
