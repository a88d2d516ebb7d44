package btree

import (
	"sort"

	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// LeafNode is a view over a page holding sorted (key, RecordId) entries
// plus a pointer to its right sibling leaf.
type LeafNode struct {
	page *pager.Page
}

func newLeafNode(page *pager.Page) *LeafNode {
	return &LeafNode{page: page}
}

// PageNum returns the page number backing this node.
func (n *LeafNode) PageNum() PageId {
	return n.page.GetPageNum()
}

// NumKeys returns the number of entries currently stored.
func (n *LeafNode) NumKeys() int32 {
	return readNumKeys(n.page)
}

func (n *LeafNode) setNumKeys(sz int32) {
	writeNumKeys(n.page, sz)
}

// RightSib returns the page number of this leaf's right sibling, or
// INVALID if it is the rightmost leaf.
func (n *LeafNode) RightSib() PageId {
	return readInt64At(n.page, rightSibOffset)
}

// SetRightSib updates this leaf's right sibling pointer.
func (n *LeafNode) SetRightSib(pn PageId) {
	writeInt64At(n.page, rightSibOffset, pn)
}

func (n *LeafNode) entryOffset(i int32) int64 {
	return leafEntriesOffset + int64(i)*entrySize
}

// KeyAt returns the key stored at index i.
func (n *LeafNode) KeyAt(i int32) int64 {
	return readInt64At(n.page, n.entryOffset(i))
}

func (n *LeafNode) setKeyAt(i int32, key int64) {
	writeInt64At(n.page, n.entryOffset(i), key)
}

// RidAt returns the RecordId stored at index i.
func (n *LeafNode) RidAt(i int32) rid.RecordId {
	off := n.entryOffset(i) + KeySize
	return rid.Unmarshal(n.page.GetData()[off : off+rid.Size])
}

func (n *LeafNode) setRidAt(i int32, r rid.RecordId) {
	off := n.entryOffset(i) + KeySize
	n.page.Update(r.Marshal(), off, rid.Size)
}

func (n *LeafNode) setEntryAt(i int32, key int64, r rid.RecordId) {
	n.setKeyAt(i, key)
	n.setRidAt(i, r)
}

func (n *LeafNode) swapEntryAt(i, j int32) {
	ki, ri := n.KeyAt(i), n.RidAt(i)
	kj, rj := n.KeyAt(j), n.RidAt(j)
	n.setEntryAt(i, kj, rj)
	n.setEntryAt(j, ki, ri)
}

// LowerBound returns the smallest index i in [0, NumKeys()] such that
// KeyAt(i) >= key (or NumKeys() if no such index exists).
func (n *LeafNode) LowerBound(key int64) int32 {
	sz := int(n.NumKeys())
	return int32(sort.Search(sz, func(i int) bool {
		return n.KeyAt(int32(i)) >= key
	}))
}

// InsertSorted inserts a new (key, rid) entry, maintaining sorted order.
// The caller must ensure NumKeys() < leafOccupancy before calling.
func (n *LeafNode) InsertSorted(key int64, r rid.RecordId) {
	sz := n.NumKeys()
	i := sz
	n.setEntryAt(i, key, r)
	for i > 0 && n.KeyAt(i-1) > n.KeyAt(i) {
		n.swapEntryAt(i, i-1)
		i--
	}
	n.setNumKeys(sz + 1)
}
