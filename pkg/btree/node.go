package btree

import (
	"encoding/binary"

	"dinodb/pkg/pager"
)

// NodeType identifies whether a page holds a leaf or an internal node. It
// is self-identifying on disk via a one-byte discriminator at the start of
// every page — a documented deviation from the depth-context-only
// reference design (see DESIGN.md), grounded on the teacher's own
// pageToNode/pageToNodeHeader convention.
type NodeType int8

const (
	InternalNodeType NodeType = 0
	LeafNodeType     NodeType = 1
)

// initPage zeroes a page and writes the node-type discriminator.
func initPage(page *pager.Page, nodeType NodeType) {
	blank := make([]byte, pager.Pagesize)
	page.Update(blank, 0, pager.Pagesize)
	typeByte := []byte{byte(nodeType)}
	page.Update(typeByte, nodeTypeOffset, nodeTypeSize)
}

// pageNodeType reads the node-type discriminator off a page without fully
// decoding it into a LeafNode or InternalNode.
func pageNodeType(page *pager.Page) NodeType {
	if page.GetData()[nodeTypeOffset] == byte(LeafNodeType) {
		return LeafNodeType
	}
	return InternalNodeType
}

func readNumKeys(page *pager.Page) int32 {
	return int32(binary.LittleEndian.Uint32(page.GetData()[numKeysOffset : numKeysOffset+numKeysSize]))
}

func writeNumKeys(page *pager.Page, n int32) {
	data := make([]byte, numKeysSize)
	binary.LittleEndian.PutUint32(data, uint32(n))
	page.Update(data, numKeysOffset, numKeysSize)
}

func readInt64At(page *pager.Page, offset int64) int64 {
	return int64(binary.LittleEndian.Uint64(page.GetData()[offset : offset+8]))
}

func writeInt64At(page *pager.Page, offset int64, v int64) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(v))
	page.Update(data, offset, 8)
}

// initLeaf resets a page to an empty leaf node.
func initLeaf(page *pager.Page) {
	initPage(page, LeafNodeType)
	writeInt64At(page, rightSibOffset, INVALID)
}

// initInternal resets a page to an empty internal node at the given level.
func initInternal(page *pager.Page, level int32) {
	initPage(page, InternalNodeType)
	data := make([]byte, levelSize)
	binary.LittleEndian.PutUint32(data, uint32(level))
	page.Update(data, levelOffset, levelSize)
}
