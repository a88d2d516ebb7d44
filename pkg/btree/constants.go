package btree

import (
	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// PageId identifies a page within the index file. INVALID denotes "no page".
type PageId = int64

// INVALID is the reserved PageId meaning "no page".
const INVALID PageId = -1

// HeaderPN is the reserved page number of the IndexMeta page.
const HeaderPN PageId = 1

// FirstDataPN is the first page number available for allocation by the
// tree itself (page 0 is reserved-but-unused, page 1 is the header page).
const FirstDataPN PageId = 2

// KeySize is the width, in bytes, of a stored integer key.
const KeySize int64 = 8

// PageIdSize is the on-disk width of a PageId.
const PageIdSize int64 = 8

// Node header constants, common to leaf and internal nodes.
const (
	nodeTypeOffset int64 = 0
	nodeTypeSize   int64 = 1
	numKeysOffset  int64 = nodeTypeOffset + nodeTypeSize
	numKeysSize    int64 = 4
	nodeHeaderSize int64 = nodeTypeSize + numKeysSize
)

// Leaf node header and occupancy.
const (
	rightSibOffset int64 = nodeHeaderSize
	rightSibSize   int64 = PageIdSize
	leafHeaderSize int64 = nodeHeaderSize + rightSibSize
	entrySize      int64 = KeySize + rid.Size

	// leafOccupancy is the maximum number of (key, rid) entries a leaf can
	// hold: (PAGE_SIZE - sizeof(PageId)) / (sizeof(int) + sizeof(RecordId)),
	// derived against the leaf's actual header size for exactness.
	leafOccupancy int64 = (pager.Pagesize - leafHeaderSize) / entrySize

	leafEntriesOffset int64 = leafHeaderSize
)

// Internal node header and occupancy.
const (
	levelOffset        int64 = nodeHeaderSize
	levelSize          int64 = 4
	internalHeaderSize int64 = nodeHeaderSize + levelSize

	// nodeOccupancy is the maximum number of keys an internal node can
	// hold: (PAGE_SIZE - sizeof(int) - sizeof(PageId)) / (sizeof(int) +
	// sizeof(PageId)), with one key+pointer pair reserved up front so the
	// (occupancy+1)-pointer array always fits within the page.
	ptrSpace      int64 = pager.Pagesize - internalHeaderSize - KeySize
	nodeOccupancy int64 = (ptrSpace / (KeySize + PageIdSize)) - 1

	keysOffset int64 = internalHeaderSize
	keysSize   int64 = KeySize * (nodeOccupancy + 1)
	pnsOffset  int64 = keysOffset + keysSize
	pnsSize    int64 = PageIdSize * (nodeOccupancy + 1)
)
