package pager

import "sync/atomic"

// InvalidPageNum is the pagenum carried by a frame that isn't backing
// any page on disk yet (sitting in the free list).
const InvalidPageNum int64 = -1

// Page is an in-memory frame caching one page's worth of on-disk data,
// plus the bookkeeping the buffer pool needs to know whether it's safe
// to evict or must be flushed first.
type Page struct {
	pager    *Pager       // the pager this page was checked out from
	pagenum  int64        // page's position in the backing file; InvalidPageNum if unassigned
	pinCount atomic.Int64 // number of callers currently holding this page
	dirty    bool         // true if data has been written since the last flush
	data     []byte       // the page's 4096-byte contents
}

// GetPager returns the pager this page belongs to.
func (page *Page) GetPager() *Pager {
	return page.pager
}

// GetPageNum returns the page's pagenum (unique identifier).
func (page *Page) GetPageNum() int64 {
	return page.pagenum
}

// IsDirty reports whether the page's data has changed and needs to be written to disk.
func (page *Page) IsDirty() bool {
	return page.dirty
}

// SetDirty changes the dirty status of a page.
func (page *Page) SetDirty(dirty bool) {
	page.dirty = dirty
}

// GetData returns the byte data held by the page.
func (page *Page) GetData() []byte {
	return page.data
}

// Get increments the pin count, indicating that another process is using this page.
func (page *Page) Get() {
	page.pinCount.Add(1)
}

// Put decrements the pincount, indicating that a process is done using this page.
func (page *Page) Put() int64 {
	return page.pinCount.Add(-1)
}

// Update overwrites size bytes of the page's data starting at offset,
// and marks the page dirty.
func (page *Page) Update(data []byte, offset int64, size int64) {
	page.dirty = true
	copy(page.data[offset:offset+size], data)
}
