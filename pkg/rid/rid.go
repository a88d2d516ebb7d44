// Package rid defines the opaque tuple locator ("record id") that a B+Tree
// index maps keys onto. A RecordId never points into an index's own pages;
// it addresses a tuple stored in a separate heap relation.
package rid

import "encoding/binary"

// Size is the number of bytes a marshalled RecordId occupies: an 8-byte
// page number plus a 4-byte slot number.
const Size int64 = 8 + 4

// RecordId locates a tuple within a heap relation: the page it lives on,
// and its slot within that page.
type RecordId struct {
	PageNo int64
	SlotNo int32
}

// New constructs a RecordId from a page number and slot number.
func New(pageNo int64, slotNo int32) RecordId {
	return RecordId{PageNo: pageNo, SlotNo: slotNo}
}

// Marshal serializes a RecordId into a fixed Size-byte array.
func (r RecordId) Marshal() []byte {
	data := make([]byte, Size)
	binary.LittleEndian.PutUint64(data[0:8], uint64(r.PageNo))
	binary.LittleEndian.PutUint32(data[8:12], uint32(r.SlotNo))
	return data
}

// Unmarshal deserializes a RecordId from a Size-byte array.
func Unmarshal(data []byte) RecordId {
	pageNo := int64(binary.LittleEndian.Uint64(data[0:8]))
	slotNo := int32(binary.LittleEndian.Uint32(data[8:12]))
	return RecordId{PageNo: pageNo, SlotNo: slotNo}
}
