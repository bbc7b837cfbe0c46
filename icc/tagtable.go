package icc

import (
	"bytes"

	bst "github.com/mixcode/binarystruct"
)

// TagEntry is one tagged data block: a 4-character signature and its raw
// bytes, type prefix included.
type TagEntry struct {
	Signature string
	Data      []byte
}

// TagTable is an insertion-ordered collection of tag entries with lookup by
// signature. Order is load-bearing: Serialize assigns offsets by walking the
// entries in order, so re-serializing a decoded profile keeps every
// pre-existing tag at a deterministic position and appends new tags after
// them.
type TagTable struct {
	entries []TagEntry
	index   map[string]int
}

// NewTagTable returns an empty tag table.
func NewTagTable() *TagTable {
	return &TagTable{index: make(map[string]int)}
}

// Len returns the number of entries.
func (t *TagTable) Len() int { return len(t.entries) }

// Entries returns the entries in table order. The returned slice aliases the
// table and must not be modified.
func (t *TagTable) Entries() []TagEntry { return t.entries }

// Get returns the raw bytes of the tag with the given signature.
func (t *TagTable) Get(sig string) ([]byte, bool) {
	i, ok := t.index[sig]
	if !ok {
		return nil, false
	}
	return t.entries[i].Data, true
}

// Has reports whether a tag with the given signature is present.
func (t *TagTable) Has(sig string) bool {
	_, ok := t.index[sig]
	return ok
}

// Set replaces the data of an existing tag in place, or appends a new entry
// after all existing ones.
func (t *TagTable) Set(sig string, data []byte) {
	if i, ok := t.index[sig]; ok {
		t.entries[i].Data = data
		return
	}
	t.index[sig] = len(t.entries)
	t.entries = append(t.entries, TagEntry{Signature: sig, Data: data})
}

// tagEntryRecord is the 12-byte on-disk tag table entry.
type tagEntryRecord struct {
	Signature string `binary:"[4]byte"`
	Offset    uint32
	Size      uint32
}

// Serialize encodes the profile body: a uint32 tag count, the tag entry
// records, and each tag's raw bytes. Tag data is placed on 4-byte boundaries;
// the entry records keep the unpadded size while offsets advance by the
// padded one.
func (t *TagTable) Serialize() []byte {
	var buf bytes.Buffer
	_, _ = bst.Write(&buf, bst.BigEndian, uint32(len(t.entries)))
	offset := uint32(tagTableOffset + tagEntrySize*len(t.entries))
	for _, e := range t.entries {
		_, _ = bst.Write(&buf, bst.BigEndian, tagEntryRecord{
			Signature: e.Signature,
			Offset:    offset,
			Size:      uint32(len(e.Data)),
		})
		offset += alignUp4(uint32(len(e.Data)))
	}
	for _, e := range t.entries {
		buf.Write(e.Data)
		if pad := alignUp4(uint32(len(e.Data))) - uint32(len(e.Data)); pad > 0 {
			buf.Write(make([]byte, pad))
		}
	}
	return buf.Bytes()
}

func alignUp4(n uint32) uint32 {
	return (n + 3) &^ 3
}
