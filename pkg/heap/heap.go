// Package heap implements the external relation collaborator the B+Tree
// index's bulk-build step scans: a minimal append-only heap file of
// fixed-size tuples, addressed by rid.RecordId, plus a forward scanner.
//
// This plays the role of badgerdb's FileScan: the core index treats it as
// an opaque producer of (RecordId, raw tuple) pairs and never inspects its
// on-disk layout directly.
package heap

import (
	"encoding/binary"
	"errors"

	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// pageHeaderSize is the space reserved at the start of every heap page for
// the count of live tuples currently packed into it.
const pageHeaderSize int64 = 2

// ErrTupleTooLarge is returned when a tuple wouldn't fit on an empty page.
var ErrTupleTooLarge = errors.New("heap: tuple size exceeds page capacity")

// HeapFile is an append-only collection of fixed-size tuples, stored as
// tightly packed slots across fixed-size pages via a Pager.
type HeapFile struct {
	pager     *pager.Pager
	tupleSize int64 // Size in bytes of every tuple stored in this file.
	perPage   int64 // Number of tuple slots that fit on one page.
}

// Open returns a HeapFile backed by a file at the given path, creating it
// if it doesn't already exist. tupleSize is the fixed width of every tuple
// that will be stored in the file.
func Open(filename string, tupleSize int64) (*HeapFile, error) {
	if tupleSize <= 0 || tupleSize > pager.Pagesize-pageHeaderSize {
		return nil, ErrTupleTooLarge
	}
	p, err := pager.New(filename)
	if err != nil {
		return nil, err
	}
	perPage := (pager.Pagesize - pageHeaderSize) / tupleSize
	return &HeapFile{pager: p, tupleSize: tupleSize, perPage: perPage}, nil
}

// Close flushes and releases the heap file's pager.
func (h *HeapFile) Close() error {
	return h.pager.Close()
}

// TupleSize returns the fixed tuple width this heap file was opened with.
func (h *HeapFile) TupleSize() int64 {
	return h.tupleSize
}

// numTuples reads the live-tuple count out of a page's header.
func numTuples(page *pager.Page) int32 {
	n, _ := binary.Varint(page.GetData()[:pageHeaderSize])
	return int32(n)
}

// setNumTuples writes the live-tuple count into a page's header.
func setNumTuples(page *pager.Page, n int32) {
	data := make([]byte, pageHeaderSize)
	binary.PutVarint(data, int64(n))
	page.Update(data, 0, pageHeaderSize)
}

func (h *HeapFile) slotPos(slot int32) int64 {
	return pageHeaderSize + int64(slot)*h.tupleSize
}

// InsertTuple appends a tuple to the heap file, allocating a new page if the
// last page is full or none exist yet. Returns the RecordId the tuple can be
// retrieved with.
func (h *HeapFile) InsertTuple(data []byte) (rid.RecordId, error) {
	if int64(len(data)) != h.tupleSize {
		return rid.RecordId{}, errors.New("heap: tuple does not match configured tuple size")
	}
	var page *pager.Page
	var err error
	if n := h.pager.GetNumPages(); n > 0 {
		page, err = h.pager.GetPage(n - 1)
		if err != nil {
			return rid.RecordId{}, err
		}
	}
	if page == nil || numTuples(page) >= int32(h.perPage) {
		if page != nil {
			h.pager.PutPage(page)
		}
		page, err = h.pager.GetNewPage()
		if err != nil {
			return rid.RecordId{}, err
		}
		setNumTuples(page, 0)
	}
	defer h.pager.PutPage(page)
	slot := numTuples(page)
	page.Update(data, h.slotPos(slot), h.tupleSize)
	setNumTuples(page, slot+1)
	return rid.New(page.GetPageNum(), slot), nil
}

// GetTuple returns the raw bytes of the tuple located at the given RecordId.
func (h *HeapFile) GetTuple(r rid.RecordId) ([]byte, error) {
	page, err := h.pager.GetPage(r.PageNo)
	if err != nil {
		return nil, err
	}
	defer h.pager.PutPage(page)
	if r.SlotNo < 0 || r.SlotNo >= numTuples(page) {
		return nil, errors.New("heap: slot out of range")
	}
	start := h.slotPos(r.SlotNo)
	out := make([]byte, h.tupleSize)
	copy(out, page.GetData()[start:start+h.tupleSize])
	return out, nil
}
