package btree

import (
	"errors"

	"dinodb/pkg/pager"
)

// Verify walks the whole tree checking that keys are sorted within every
// node and that each internal child's key range, taken from the key
// bounds returned by recursion, lies within its separator keys. It does
// not follow the leaves' right-sibling links, and it does not check leaf
// depth or node occupancy. It pins and unpins every page it visits,
// leaving no net pins behind.
func (idx *BTreeIndex) Verify() error {
	_, _, ok, err := verifyNode(idx.pager, idx.rootPageNo)
	if err != nil {
		return err
	}
	if !ok {
		return errInvariantViolated
	}
	return nil
}

var errInvariantViolated = errors.New("btree: tree invariant violated")

// verifyNode returns the smallest and largest key in the subtree rooted
// at pn, along with whether the subtree satisfies every invariant.
func verifyNode(p *pager.Pager, pn PageId) (low, high int64, ok bool, err error) {
	page, err := p.GetPage(pn)
	if err != nil {
		return 0, 0, false, err
	}
	defer p.PutPage(page)

	if pageNodeType(page) == LeafNodeType {
		return verifyLeaf(newLeafNode(page))
	}
	return verifyInternal(p, newInternalNode(page))
}

func verifyLeaf(n *LeafNode) (low, high int64, ok bool, err error) {
	sz := n.NumKeys()
	if sz == 0 {
		return 0, 0, true, nil
	}
	for i := int32(0); i < sz-1; i++ {
		if n.KeyAt(i) > n.KeyAt(i+1) {
			return 0, 0, false, nil
		}
	}
	return n.KeyAt(0), n.KeyAt(sz - 1), true, nil
}

func verifyInternal(p *pager.Pager, n *InternalNode) (low, high int64, ok bool, err error) {
	sz := n.NumKeys()
	for i := int32(0); i < sz-1; i++ {
		if n.KeyAt(i) > n.KeyAt(i+1) {
			return 0, 0, false, nil
		}
	}

	for i := int32(0); i <= sz; i++ {
		childLow, childHigh, childOK, err := verifyNode(p, n.PnAt(i))
		if err != nil {
			return 0, 0, false, err
		}
		if !childOK {
			return 0, 0, false, nil
		}
		if i > 0 && n.KeyAt(i-1) > childLow {
			return 0, 0, false, nil
		}
		if i < sz && n.KeyAt(i) < childHigh {
			return 0, 0, false, nil
		}
		if i == 0 {
			low = childLow
		}
		if i == sz {
			high = childHigh
		}
	}
	return low, high, true, nil
}
