package btree

import (
	"encoding/binary"
	"sort"

	"dinodb/pkg/pager"
)

// InternalNode is a view over a page holding sorted keys and sz+1 child
// page pointers: pageNoArray[i] is the left child of keyArray[i] for
// i < sz, and pageNoArray[sz] is the rightmost child (keys >= keyArray[sz-1]).
type InternalNode struct {
	page *pager.Page
}

func newInternalNode(page *pager.Page) *InternalNode {
	return &InternalNode{page: page}
}

// PageNum returns the page number backing this node.
func (n *InternalNode) PageNum() PageId {
	return n.page.GetPageNum()
}

// NumKeys returns the number of keys currently stored.
func (n *InternalNode) NumKeys() int32 {
	return readNumKeys(n.page)
}

func (n *InternalNode) setNumKeys(sz int32) {
	writeNumKeys(n.page, sz)
}

// Level is a diagnostic depth hint, opaque to the tree's algorithms.
func (n *InternalNode) Level() int32 {
	return int32(binary.LittleEndian.Uint32(n.page.GetData()[levelOffset : levelOffset+levelSize]))
}

func (n *InternalNode) keyOffset(i int32) int64 {
	return keysOffset + int64(i)*KeySize
}

func (n *InternalNode) pnOffset(i int32) int64 {
	return pnsOffset + int64(i)*PageIdSize
}

// KeyAt returns the key stored at index i.
func (n *InternalNode) KeyAt(i int32) int64 {
	return readInt64At(n.page, n.keyOffset(i))
}

func (n *InternalNode) setKeyAt(i int32, key int64) {
	writeInt64At(n.page, n.keyOffset(i), key)
}

// PnAt returns the child page pointer stored at index i.
func (n *InternalNode) PnAt(i int32) PageId {
	return readInt64At(n.page, n.pnOffset(i))
}

// SetPnAt overwrites the child page pointer stored at index i.
func (n *InternalNode) SetPnAt(i int32, pn PageId) {
	writeInt64At(n.page, n.pnOffset(i), pn)
}

func (n *InternalNode) swapKeyAt(i, j int32) {
	ki, kj := n.KeyAt(i), n.KeyAt(j)
	n.setKeyAt(i, kj)
	n.setKeyAt(j, ki)
}

func (n *InternalNode) swapPnAt(i, j int32) {
	pi, pj := n.PnAt(i), n.PnAt(j)
	n.SetPnAt(i, pj)
	n.SetPnAt(j, pi)
}

// LowerBound returns the index of the child pointer to follow when
// descending toward key: the smallest i such that key <= KeyAt(i), or
// NumKeys() if key is > every key in the node.
func (n *InternalNode) LowerBound(key int64) int32 {
	sz := int(n.NumKeys())
	return int32(sort.Search(sz, func(i int) bool {
		return n.KeyAt(int32(i)) >= key
	}))
}

// InsertSorted inserts a new key together with the page pointer to its
// right (newPN becomes PnAt(i+1) for the key's final sorted index i).
// The caller must ensure NumKeys() < nodeOccupancy before calling.
func (n *InternalNode) InsertSorted(key int64, newPN PageId) {
	sz := n.NumKeys()
	i := sz
	n.setKeyAt(i, key)
	n.SetPnAt(i+1, newPN)
	for i > 0 && n.KeyAt(i-1) > n.KeyAt(i) {
		n.swapKeyAt(i, i-1)
		n.swapPnAt(i+1, i)
		i--
	}
	n.setNumKeys(sz + 1)
}
