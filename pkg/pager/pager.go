// Package pager implements a fixed-size-page buffer pool over a single
// backing file: callers pin pages by number, mutate them in place, and
// unpin them; the pool evicts unpinned frames and flushes dirty ones as
// needed, entirely hidden behind GetPage/GetNewPage/PutPage.
package pager

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"dinodb/pkg/config"
	"dinodb/pkg/list"

	"github.com/ncw/directio"
)

// Pagesize is the size of an individual page (ie the maximum number of bytes that the page can hold) - defaults to 4kb.
const Pagesize int64 = directio.BlockSize

// ErrRanOutOfPages is returned when every frame in the buffer is pinned
// and a page must be evicted to satisfy a request.
var ErrRanOutOfPages = errors.New("no available pages")

// Pager manages a fixed-capacity set of in-memory page frames backed by
// a single on-disk file, numbering pages sequentially from 0.
type Pager struct {
	file         *os.File // backing file
	numPages     int64    // pages allocated so far, on disk or in memory
	freeList     *list.List[*Page]
	unpinnedList *list.List[*Page] // in memory, zero pin count, eviction candidates
	pinnedList   *list.List[*Page] // in memory, held by at least one caller
	pageTable    map[int64]*list.Link[*Page]
	ptMtx        sync.Mutex // guards pageTable and the three lists above
}

// New constructs a new Pager, backing it with a database file at the specified filePath.
// See [*Pager.Open] for more details on backing the Pager with database files.
func New(filePath string) (pager *Pager, err error) {
	pager = &Pager{
		pageTable:    make(map[int64]*list.Link[*Page]),
		freeList:     list.New[*Page](),
		unpinnedList: list.New[*Page](),
		pinnedList:   list.New[*Page](),
	}
	frames := directio.AlignedBlock(int(Pagesize * config.MaxPagesInBuffer))
	for i := 0; i < config.MaxPagesInBuffer; i++ {
		frame := frames[i*int(Pagesize) : (i+1)*int(Pagesize)]
		page := &Page{
			pager:   pager,
			pagenum: InvalidPageNum,
			data:    frame,
		}
		pager.freeList.PushTail(page)
	}

	if err = pager.Open(filePath); err != nil {
		return nil, err
	}
	return pager, nil
}

// GetFileName returns the file name/path used to open the pager's backing file.
func (pager *Pager) GetFileName() string {
	return pager.file.Name()
}

// GetNumPages returns the number of pages.
func (pager *Pager) GetNumPages() int64 {
	return pager.numPages
}

// GetFreePN returns the next available page number.
func (pager *Pager) GetFreePN() int64 {
	return pager.numPages
}

// Open (re-)initializes our pager with a database file at the specified filePath.
//
// If the database file didn't exist previously, it is created.
// If the database file does exist but it can't be opened or
// it's contents are not properly aligned to PAGESIZE, returns an error.
// The Pager should not be used if an error is returned.
func (pager *Pager) Open(filePath string) (err error) {
	if idx := strings.LastIndex(filePath, "/"); idx != -1 {
		if err = os.MkdirAll(filePath[:idx], 0775); err != nil {
			return err
		}
	}
	pager.file, err = directio.OpenFile(filePath, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return err
	}
	info, err := pager.file.Stat()
	if err != nil {
		return err
	}
	if info.Size()%Pagesize != 0 {
		return errors.New("db file has been corrupted: size is not a multiple of the page size")
	}
	pager.numPages = info.Size() / Pagesize
	return nil
}

// Close flushes all dirty pages to disk and closes the backing file.
// Returns an error, leaving the pager untouched, if any page is still pinned.
func (pager *Pager) Close() error {
	pager.ptMtx.Lock()
	defer pager.ptMtx.Unlock()
	if pager.pinnedList.PeekHead() != nil {
		return errors.New("pages are still pinned on close")
	}
	pager.FlushAllPages()
	return pager.file.Close()
}

// fillPageFromDisk populates a page's data field from what's currently on disk.
func (pager *Pager) fillPageFromDisk(page *Page) error {
	if _, err := pager.file.Seek(page.pagenum*Pagesize, 0); err != nil {
		return err
	}
	if _, err := pager.file.Read(page.data); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// newPage claims a frame from the free list, or failing that evicts one
// from the unpinned list, and reassigns it to pagenum with a pin count
// of one. The caller must hold ptMtx.
func (pager *Pager) newPage(pagenum int64) (*Page, error) {
	var page *Page
	if freeLink := pager.freeList.PeekHead(); freeLink != nil {
		freeLink.PopSelf()
		page = freeLink.GetValue()
	} else if evictLink := pager.unpinnedList.PeekHead(); evictLink != nil {
		evictLink.PopSelf()
		page = evictLink.GetValue()
		pager.FlushPage(page)
		delete(pager.pageTable, page.pagenum)
	} else {
		return nil, ErrRanOutOfPages
	}
	page.pagenum = pagenum
	page.dirty = false
	page.pinCount.Store(1)
	return page, nil
}

// GetNewPage allocates and pins a fresh page with the next available pagenum.
func (pager *Pager) GetNewPage() (*Page, error) {
	pager.ptMtx.Lock()
	defer pager.ptMtx.Unlock()

	page, err := pager.newPage(pager.numPages)
	if err != nil {
		return nil, err
	}
	page.dirty = true // always flush a brand-new page at least once
	pager.pageTable[pager.numPages] = pager.pinnedList.PushTail(page)
	pager.numPages++
	return page, nil
}

// GetPage pins and returns the page numbered pagenum, reading it from
// disk first if it isn't already cached.
func (pager *Pager) GetPage(pagenum int64) (*Page, error) {
	pager.ptMtx.Lock()
	defer pager.ptMtx.Unlock()

	if pagenum < 0 || pagenum > pager.numPages-1 {
		return nil, errors.New("invalid pagenum")
	}

	if link, ok := pager.pageTable[pagenum]; ok {
		page := link.GetValue()
		if link.GetList() == pager.unpinnedList {
			link.PopSelf()
			pager.pageTable[pagenum] = pager.pinnedList.PushTail(page)
		}
		page.Get()
		return page, nil
	}

	page, err := pager.newPage(pagenum)
	if err != nil {
		return nil, err
	}
	page.dirty = false
	if err := pager.fillPageFromDisk(page); err != nil {
		pager.freeList.PushTail(page)
		return nil, err
	}
	pager.pageTable[pagenum] = pager.pinnedList.PushTail(page)
	return page, nil
}

// PutPage releases one reference to page, moving it to the unpinned
// list once its pin count reaches zero.
func (pager *Pager) PutPage(page *Page) error {
	pager.ptMtx.Lock()
	defer pager.ptMtx.Unlock()

	remaining := page.Put()
	if remaining < 0 {
		return errors.New("pinCount for page is < 0")
	}
	if remaining == 0 {
		link := pager.pageTable[page.pagenum]
		link.PopSelf()
		pager.pageTable[page.pagenum] = pager.unpinnedList.PushTail(page)
	}
	return nil
}

// FlushPage writes page's data to disk if it is dirty.
func (pager *Pager) FlushPage(page *Page) {
	if page.IsDirty() {
		pager.file.WriteAt(page.data, page.pagenum*Pagesize)
		page.SetDirty(false)
	}
}

// FlushAllPages flushes every dirty page, pinned or not, to disk.
func (pager *Pager) FlushAllPages() {
	flush := func(link *list.Link[*Page]) {
		pager.FlushPage(link.GetValue())
	}
	pager.pinnedList.Map(flush)
	pager.unpinnedList.Map(flush)
}
