package icc

import "encoding/binary"

// Build assembles the final profile bytes from the original header and a tag
// table. The size field is recomputed from the serialized body; header bytes
// 4..128 are carried through verbatim.
func Build(rawHeader []byte, tags *TagTable) []byte {
	body := tags.Serialize()
	out := make([]byte, 0, HeaderSize+len(body))
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(HeaderSize+len(body)))
	out = append(out, size[:]...)
	out = append(out, rawHeader[4:HeaderSize]...)
	out = append(out, body...)
	return out
}
