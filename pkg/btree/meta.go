package btree

import (
	"encoding/binary"
	"strings"

	"dinodb/pkg/pager"
)

// relationNameSize bounds the relation name stored in the header page.
const relationNameSize = 120

const (
	metaRelationNameOffset int64 = 0
	metaAttrByteOffOffset  int64 = metaRelationNameOffset + relationNameSize
	metaAttrTypeOffset     int64 = metaAttrByteOffOffset + 4
	metaRootPageNoOffset   int64 = metaAttrTypeOffset + 4
	metaHeightOffset       int64 = metaRootPageNoOffset + 8
)

// IndexMeta is the fixed-layout record stored on the index's header page
// (PageId = HeaderPN). height is persisted so a reopened index never has
// to guess its own depth (see DESIGN.md's Open Question resolution).
type IndexMeta struct {
	RelationName   string
	AttrByteOffset int32
	AttrType       Datatype
	RootPageNo     PageId
	Height         int32
}

// readMeta decodes an IndexMeta from the header page.
func readMeta(page *pager.Page) IndexMeta {
	data := page.GetData()
	nameBytes := data[metaRelationNameOffset : metaRelationNameOffset+relationNameSize]
	name := strings.TrimRight(string(nameBytes), "\x00")
	return IndexMeta{
		RelationName:   name,
		AttrByteOffset: int32(binary.LittleEndian.Uint32(data[metaAttrByteOffOffset : metaAttrByteOffOffset+4])),
		AttrType:       Datatype(binary.LittleEndian.Uint32(data[metaAttrTypeOffset : metaAttrTypeOffset+4])),
		RootPageNo:     int64(binary.LittleEndian.Uint64(data[metaRootPageNoOffset : metaRootPageNoOffset+8])),
		Height:         int32(binary.LittleEndian.Uint32(data[metaHeightOffset : metaHeightOffset+4])),
	}
}

// writeMeta encodes an IndexMeta onto the header page, marking it dirty.
func writeMeta(page *pager.Page, meta IndexMeta) {
	nameBytes := make([]byte, relationNameSize)
	copy(nameBytes, meta.RelationName)
	page.Update(nameBytes, metaRelationNameOffset, relationNameSize)

	buf4 := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf4, uint32(meta.AttrByteOffset))
	page.Update(buf4, metaAttrByteOffOffset, 4)

	binary.LittleEndian.PutUint32(buf4, uint32(meta.AttrType))
	page.Update(buf4, metaAttrTypeOffset, 4)

	buf8 := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf8, uint64(meta.RootPageNo))
	page.Update(buf8, metaRootPageNoOffset, 8)

	binary.LittleEndian.PutUint32(buf4, uint32(meta.Height))
	page.Update(buf4, metaHeightOffset, 4)
}
