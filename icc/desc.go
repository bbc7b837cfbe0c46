package icc

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// TagDesc is the profile description tag.
const TagDesc = "desc"

// Type signatures of the two description tag layouts in the wild: the v2
// textDescriptionType and the v4 multiLocalizedUnicodeType.
const (
	typeTextDescription = "desc"
	typeMultiLocalized  = "mluc"
)

// Description returns the profile description text, or "" when the tag is
// absent or not in a recognized layout. Used for diagnostics only, so
// malformed description data is not an error.
func (p *Profile) Description() string {
	data, ok := p.Tags.Get(TagDesc)
	if !ok || len(data) < 8 {
		return ""
	}
	switch string(data[0:4]) {
	case typeTextDescription:
		return parseTextDescription(data)
	case typeMultiLocalized:
		return parseMultiLocalized(data)
	}
	return ""
}

func parseTextDescription(data []byte) string {
	if len(data) < 12 {
		return ""
	}
	n := binary.BigEndian.Uint32(data[8:12])
	if n == 0 || uint64(12)+uint64(n) > uint64(len(data)) {
		return ""
	}
	return strings.TrimRight(string(data[12:12+n]), "\x00")
}

func parseMultiLocalized(data []byte) string {
	if len(data) < 28 {
		return ""
	}
	count := binary.BigEndian.Uint32(data[8:12])
	if count == 0 {
		return ""
	}
	// First record: skip the 4-byte language/country code, take length and
	// offset of the UTF-16BE string, relative to the tag start.
	length := binary.BigEndian.Uint32(data[20:24])
	offset := binary.BigEndian.Uint32(data[24:28])
	if uint64(offset)+uint64(length) > uint64(len(data)) {
		return ""
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := dec.Bytes(data[offset : offset+length])
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(s), "\x00")
}
