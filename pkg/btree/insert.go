package btree

import (
	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// splitResult is the pass-up token a recursive insert returns to its
// caller: either "no split happened" (the zero value) or a new key and
// the page number of the freshly allocated right sibling.
type splitResult struct {
	split   bool
	key     int64
	rightPN PageId
}

var noSplit = splitResult{}

// insertRec recursively descends from pn toward key, inserting (key, r)
// at the leaf. If update is true, a missing key is an error instead of
// an insertion (UpdateEntry's overwrite-only semantics). Every pinned
// page is unpinned before returning along every path; pages that are
// never mutated stay non-dirty.
func insertRec(p *pager.Pager, pn PageId, key int64, r rid.RecordId, update bool) (splitResult, error) {
	page, err := p.GetPage(pn)
	if err != nil {
		return noSplit, err
	}
	defer p.PutPage(page)

	if pageNodeType(page) == LeafNodeType {
		leaf := newLeafNode(page)
		i := leaf.LowerBound(key)
		if i < leaf.NumKeys() && leaf.KeyAt(i) == key {
			leaf.setRidAt(i, r)
			return noSplit, nil
		}
		if update {
			return noSplit, ErrKeyNotFound
		}
		if leaf.NumKeys() < int32(leafOccupancy) {
			leaf.InsertSorted(key, r)
			return noSplit, nil
		}
		return splitLeaf(p, leaf, key, r)
	}

	internal := newInternalNode(page)
	i := internal.LowerBound(key)
	childPN := internal.PnAt(i)
	childSplit, err := insertRec(p, childPN, key, r, update)
	if err != nil {
		return noSplit, err
	}
	if !childSplit.split {
		return noSplit, nil
	}
	if internal.NumKeys() < int32(nodeOccupancy) {
		internal.InsertSorted(childSplit.key, childSplit.rightPN)
		return noSplit, nil
	}
	return splitInternal(p, internal, childSplit.key, childSplit.rightPN)
}

// splitLeaf allocates a new right-sibling leaf for a full leaf, moves the
// tail of its entries over (biased by where the new entry lands so
// neither resulting leaf is empty), links the siblings, and returns the
// copy-up split key: the largest key remaining in the left leaf.
func splitLeaf(p *pager.Pager, leaf *LeafNode, key int64, r rid.RecordId) (splitResult, error) {
	newPage, err := p.GetNewPage()
	if err != nil {
		return noSplit, err
	}
	defer p.PutPage(newPage)
	initLeaf(newPage)
	newLeaf := newLeafNode(newPage)

	sz := leaf.NumKeys()
	mid := (sz + 1) / 2
	if key < leaf.KeyAt(mid-1) {
		mid--
	}
	for i := mid; i < sz; i++ {
		newLeaf.InsertSorted(leaf.KeyAt(i), leaf.RidAt(i))
	}
	leaf.setNumKeys(mid)

	if leaf.NumKeys() == 0 || key <= leaf.KeyAt(leaf.NumKeys()-1) {
		leaf.InsertSorted(key, r)
	} else {
		newLeaf.InsertSorted(key, r)
	}

	newLeaf.SetRightSib(leaf.RightSib())
	leaf.SetRightSib(newLeaf.PageNum())

	splitKey := leaf.KeyAt(leaf.NumKeys() - 1)
	return splitResult{split: true, key: splitKey, rightPN: newLeaf.PageNum()}, nil
}

// splitInternal allocates a new right-sibling internal node for a full
// node, moves its tail of (key, rightChild) pairs over, inserts the new
// (key, childPN) pair into whichever side it belongs on, then pushes the
// boundary key up to the caller (it is removed from both resulting
// nodes, not copied).
func splitInternal(p *pager.Pager, node *InternalNode, key int64, childPN PageId) (splitResult, error) {
	newPage, err := p.GetNewPage()
	if err != nil {
		return noSplit, err
	}
	defer p.PutPage(newPage)
	initInternal(newPage, node.Level())
	newNode := newInternalNode(newPage)

	sz := node.NumKeys()
	mid := (sz + 1) / 2
	if key < node.KeyAt(mid-1) {
		mid--
	}
	for i := mid; i < sz; i++ {
		newNode.InsertSorted(node.KeyAt(i), node.PnAt(i+1))
	}
	node.setNumKeys(mid)

	if node.NumKeys() == 0 || key <= node.KeyAt(node.NumKeys()-1) {
		node.InsertSorted(key, childPN)
	} else {
		newNode.InsertSorted(key, childPN)
	}

	newNode.SetPnAt(0, node.PnAt(node.NumKeys()))
	node.setNumKeys(node.NumKeys() - 1)
	splitKey := node.KeyAt(node.NumKeys())

	return splitResult{split: true, key: splitKey, rightPN: newNode.PageNum()}, nil
}
