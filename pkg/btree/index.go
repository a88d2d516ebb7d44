// Package btree implements a disk-backed B+Tree index over fixed-width
// integer keys, coordinated through an external buffer pool (dinodb/pkg/pager)
// and built in front of a separate heap relation (dinodb/pkg/heap).
package btree

import (
	"dinodb/pkg/config"
	"dinodb/pkg/heap"
	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// BTreeIndex is a single B+Tree index file: a header page holding its
// IndexMeta, followed by leaf and internal node pages.
type BTreeIndex struct {
	pager          *pager.Pager
	relationName   string
	attrByteOffset int
	attrType       Datatype
	rootPageNo     PageId
	height         int32
	scan           scanState
}

// Open opens (or bulk-builds) the index over relationName's attribute at
// attrByteOffset. outIndexName is the on-disk file name, relationName + "."
// + attrByteOffset, so callers and tooling can locate the file directly.
//
// If the file already exists, its persisted IndexMeta must exactly match
// relationName, attrByteOffset and attrType, or ErrMetadataMismatch is
// returned. Otherwise the file is created fresh and bulk-built by scanning
// every tuple in sourceHeap and inserting (key, rid) pairs one at a time.
func Open(relationName string, attrByteOffset int, attrType Datatype, sourceHeap *heap.HeapFile) (idx *BTreeIndex, outIndexName string, err error) {
	outIndexName = relationName + config.IndexFileSuffix(attrByteOffset)

	p, err := pager.New(outIndexName)
	if err != nil {
		return nil, outIndexName, err
	}

	if p.GetNumPages() > 0 {
		idx, err = openExisting(p, relationName, attrByteOffset, attrType)
		if err != nil {
			p.Close()
			return nil, outIndexName, err
		}
		return idx, outIndexName, nil
	}

	idx, err = bulkBuild(p, relationName, attrByteOffset, attrType, sourceHeap)
	if err != nil {
		p.Close()
		return nil, outIndexName, err
	}
	return idx, outIndexName, nil
}

func openExisting(p *pager.Pager, relationName string, attrByteOffset int, attrType Datatype) (*BTreeIndex, error) {
	headerPage, err := p.GetPage(HeaderPN)
	if err != nil {
		return nil, err
	}
	defer p.PutPage(headerPage)

	meta := readMeta(headerPage)
	if meta.RelationName != relationName || meta.AttrByteOffset != int32(attrByteOffset) || meta.AttrType != attrType {
		return nil, ErrMetadataMismatch
	}

	return &BTreeIndex{
		pager:          p,
		relationName:   relationName,
		attrByteOffset: attrByteOffset,
		attrType:       attrType,
		rootPageNo:     meta.RootPageNo,
		height:         meta.Height,
	}, nil
}

func bulkBuild(p *pager.Pager, relationName string, attrByteOffset int, attrType Datatype, sourceHeap *heap.HeapFile) (*BTreeIndex, error) {
	// Page 0 is reserved-but-unused; consume it so data pages start at 2.
	reservedPage, err := p.GetNewPage()
	if err != nil {
		return nil, err
	}
	p.PutPage(reservedPage)

	headerPage, err := p.GetNewPage()
	if err != nil {
		return nil, err
	}
	if headerPage.GetPageNum() != HeaderPN {
		p.PutPage(headerPage)
		return nil, ErrMetadataMismatch
	}

	rootPage, err := p.GetNewPage()
	if err != nil {
		p.PutPage(headerPage)
		return nil, err
	}
	initLeaf(rootPage)
	rootPN := rootPage.GetPageNum()
	p.PutPage(rootPage)

	meta := IndexMeta{
		RelationName:   relationName,
		AttrByteOffset: int32(attrByteOffset),
		AttrType:       attrType,
		RootPageNo:     rootPN,
		Height:         0,
	}
	writeMeta(headerPage, meta)
	p.PutPage(headerPage)

	idx := &BTreeIndex{
		pager:          p,
		relationName:   relationName,
		attrByteOffset: attrByteOffset,
		attrType:       attrType,
		rootPageNo:     rootPN,
		height:         0,
	}

	if sourceHeap != nil {
		scanner := heap.NewScanner(sourceHeap)
		defer scanner.Close()
		for {
			r, ok := scanner.Next()
			if !ok {
				break
			}
			key := heap.ExtractKey(scanner.Record(), attrByteOffset)
			if err := idx.InsertEntry(key, r); err != nil {
				return nil, err
			}
		}
	}

	return idx, nil
}

// Close flushes every dirty page and releases the index's backing file.
func (idx *BTreeIndex) Close() error {
	if idx.scan.executing {
		idx.EndScan()
	}
	return idx.pager.Close()
}

// RootPageNo returns the current root page number.
func (idx *BTreeIndex) RootPageNo() PageId {
	return idx.rootPageNo
}

// Height returns the current tree height (0 means the root is a leaf).
func (idx *BTreeIndex) Height() int32 {
	return idx.height
}

func (idx *BTreeIndex) persistRoot() error {
	headerPage, err := idx.pager.GetPage(HeaderPN)
	if err != nil {
		return err
	}
	defer idx.pager.PutPage(headerPage)
	writeMeta(headerPage, IndexMeta{
		RelationName:   idx.relationName,
		AttrByteOffset: int32(idx.attrByteOffset),
		AttrType:       idx.attrType,
		RootPageNo:     idx.rootPageNo,
		Height:         idx.height,
	})
	return nil
}

// InsertEntry maps key onto r, overwriting any existing mapping for key.
func (idx *BTreeIndex) InsertEntry(key int64, r rid.RecordId) error {
	top, err := insertRec(idx.pager, idx.rootPageNo, key, r, false)
	if err != nil {
		return err
	}
	if !top.split {
		return nil
	}
	return idx.growRoot(top)
}

// UpdateEntry overwrites the RecordId mapped to an existing key. Unlike
// InsertEntry, a missing key is an error rather than a new insertion.
func (idx *BTreeIndex) UpdateEntry(key int64, r rid.RecordId) error {
	_, err := insertRec(idx.pager, idx.rootPageNo, key, r, true)
	return err
}

// growRoot allocates a new internal root above the current one after a
// top-level split, wiring in the old root and its new sibling as the
// first two children.
func (idx *BTreeIndex) growRoot(top splitResult) error {
	newRootPage, err := idx.pager.GetNewPage()
	if err != nil {
		return err
	}
	defer idx.pager.PutPage(newRootPage)

	newHeight := idx.height + 1
	initInternal(newRootPage, newHeight)
	newRoot := newInternalNode(newRootPage)
	newRoot.SetPnAt(0, idx.rootPageNo)
	newRoot.InsertSorted(top.key, top.rightPN)

	idx.rootPageNo = newRootPage.GetPageNum()
	idx.height = newHeight
	return idx.persistRoot()
}
