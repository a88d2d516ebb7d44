package btree

import "dinodb/pkg/pager"

// descendToLeaf walks from rootPN down to the leaf that would hold key,
// pinning and unpinning internal pages as it goes. Every unpin along the
// path is non-dirty: pure navigation never mutates a node. The terminal
// leaf's PageId is returned already unpinned, by convention — callers
// that need the leaf pinned (e.g. StartScan) re-pin it themselves.
func descendToLeaf(p *pager.Pager, rootPN PageId, key int64) (PageId, error) {
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
		i := internal.LowerBound(key)
		childPN := internal.PnAt(i)
		p.PutPage(page)
		curPN = childPN
	}
}
