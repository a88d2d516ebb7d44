package btree

import (
	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// scanState holds the range-scan cursor. Exactly one leaf page is pinned
// at any time while a scan is executing, released on completion, failure,
// or EndScan.
type scanState struct {
	executing bool
	lowVal    int64
	highVal   int64
	curPageNo PageId
	curPage   *pager.Page
	nextEntry int32
}

// StartScan positions a new range scan at the smallest key satisfying
// lowOp (GT or GTE) in the leaf that the normalized lower bound descends
// to, failing with ErrNoSuchKey if that leaf holds no such key. The upper
// bound is not checked here: if the first such key is above it, the
// first ScanNext reports ErrScanCompleted. Only one scan may execute on
// an index at a time.
func (idx *BTreeIndex) StartScan(lowVal int64, lowOp Operator, highVal int64, highOp Operator) error {
	if !isLowOp(lowOp) || !isHighOp(highOp) {
		return ErrBadOpcodes
	}
	if lowVal > highVal {
		return ErrBadScanRange
	}

	lowValInt := lowVal
	if lowOp == GT {
		lowValInt++
	}
	highValInt := highVal
	if highOp == LT {
		highValInt--
	}

	leafPN, err := descendToLeaf(idx.pager, idx.rootPageNo, lowValInt)
	if err != nil {
		return err
	}
	leafPage, err := idx.pager.GetPage(leafPN)
	if err != nil {
		return err
	}
	leaf := newLeafNode(leafPage)
	nextEntry := leaf.LowerBound(lowValInt)
	if nextEntry == leaf.NumKeys() {
		idx.pager.PutPage(leafPage)
		return ErrNoSuchKey
	}

	idx.scan = scanState{
		executing: true,
		lowVal:    lowValInt,
		highVal:   highValInt,
		curPageNo: leafPN,
		curPage:   leafPage,
		nextEntry: nextEntry,
	}
	return nil
}

// ScanNext returns the next RecordId in the active scan's range, in key
// order, advancing across the leaf sibling chain as needed.
func (idx *BTreeIndex) ScanNext() (rid.RecordId, error) {
	s := &idx.scan
	if !s.executing {
		return rid.RecordId{}, ErrScanNotInitialized
	}
	if s.curPageNo == INVALID {
		return rid.RecordId{}, ErrScanCompleted
	}

	leaf := newLeafNode(s.curPage)
	key := leaf.KeyAt(s.nextEntry)
	if key > s.highVal {
		idx.pager.PutPage(s.curPage)
		s.curPage = nil
		s.curPageNo = INVALID
		return rid.RecordId{}, ErrScanCompleted
	}

	out := leaf.RidAt(s.nextEntry)
	s.nextEntry++

	if s.nextEntry >= leaf.NumKeys() {
		nextPN := leaf.RightSib()
		idx.pager.PutPage(s.curPage)
		s.curPage = nil
		s.curPageNo = nextPN
		if nextPN != INVALID {
			page, err := idx.pager.GetPage(nextPN)
			if err != nil {
				return rid.RecordId{}, err
			}
			s.curPage = page
			s.nextEntry = 0
		}
	}

	return out, nil
}

// EndScan releases any page still pinned by the active scan.
func (idx *BTreeIndex) EndScan() error {
	s := &idx.scan
	if !s.executing {
		return ErrScanNotInitialized
	}
	if s.curPageNo != INVALID && s.curPage != nil {
		idx.pager.PutPage(s.curPage)
		s.curPage = nil
		s.curPageNo = INVALID
	}
	s.executing = false
	return nil
}

// Select runs a bounded scan to completion and returns every matching
// RecordId in key order. It is a supplemented convenience atop
// StartScan/ScanNext/EndScan for callers that don't need incremental
// iteration (e.g. the REPL's select command).
func (idx *BTreeIndex) Select(lowVal int64, lowOp Operator, highVal int64, highOp Operator) ([]rid.RecordId, error) {
	if err := idx.StartScan(lowVal, lowOp, highVal, highOp); err != nil {
		return nil, err
	}
	defer idx.EndScan()

	var out []rid.RecordId
	for {
		r, err := idx.ScanNext()
		if err == ErrScanCompleted {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
}

// All returns every RecordId in the index in key order: an unbounded
// traversal of the leaf sibling chain, supplementing the range-bounded
// scan engine for callers (verification, full dumps) that need the
// whole tree rather than a window into it.
func (idx *BTreeIndex) All() ([]rid.RecordId, error) {
	leafPN, err := leftmostLeaf(idx.pager, idx.rootPageNo)
	if err != nil {
		return nil, err
	}

	var out []rid.RecordId
	for leafPN != INVALID {
		page, err := idx.pager.GetPage(leafPN)
		if err != nil {
			return nil, err
		}
		leaf := newLeafNode(page)
		for i := int32(0); i < leaf.NumKeys(); i++ {
			out = append(out, leaf.RidAt(i))
		}
		next := leaf.RightSib()
		idx.pager.PutPage(page)
		leafPN = next
	}
	return out, nil
}

// leftmostLeaf descends pageNoArray[0] at every level to find the
// smallest-keyed leaf in the tree.
func leftmostLeaf(p *pager.Pager, rootPN PageId) (PageId, error) {
	curPN := rootPN
	for {
		page, err := p.GetPage(curPN)
		if err != nil {
			return INVALID, err
		}
		if pageNodeType(page) == LeafNodeType {
			p.PutPage(page)
			return curPN, nil
		}
		internal := newInternalNode(page)
		childPN := internal.PnAt(0)
		p.PutPage(page)
		curPN = childPN
	}
}
