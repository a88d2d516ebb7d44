package pager_test

import (
	"bytes"
	"testing"

	"dinodb/pkg/config"
	"dinodb/pkg/pager"
	"dinodb/test/utils"
)

// newTestPager opens a pager backed by a fresh temp file, registering
// cleanup to close it.
func newTestPager(t *testing.T) *pager.Pager {
	t.Parallel()
	p, err := pager.New(utils.GetTempDbFile(t))
	if err != nil {
		t.Fatal("failed to create a new pager:", err)
	}
	utils.EnsureCleanup(t, func() {
		_ = p.Close()
	})
	return p
}

// pinNewPage wraps GetNewPage, optionally scheduling a matching PutPage
// at test cleanup.
func pinNewPage(t *testing.T, p *pager.Pager, unpinAtCleanup bool) *pager.Page {
	page, err := p.GetNewPage()
	if err != nil {
		t.Fatal("failed to get a new page:", err)
	}
	if unpinAtCleanup {
		utils.EnsureCleanup(t, func() {
			_ = p.PutPage(page)
		})
	}
	return page
}

// pinPage wraps GetPage, optionally scheduling a matching PutPage at
// test cleanup.
func pinPage(t *testing.T, p *pager.Pager, pagenum int64, unpinAtCleanup bool) *pager.Page {
	page, err := p.GetPage(pagenum)
	if err != nil {
		t.Fatalf("failed to get existing page %d: %s", pagenum, err)
	}
	if unpinAtCleanup {
		utils.EnsureCleanup(t, func() {
			if err := p.PutPage(page); err != nil {
				t.Errorf("failed to put page %d: %s", page.GetPageNum(), err)
			}
		})
	}
	return page
}

func reopenPager(t *testing.T, p *pager.Pager) {
	if err := p.Close(); err != nil {
		t.Fatal("failed to close pager:", err)
	}
	if err := p.Open(p.GetFileName()); err != nil {
		t.Fatal("failed to reopen pager:", err)
	}
}

func TestPager(t *testing.T) {
	t.Run("NewPagerStartsEmpty", testNewPagerStartsEmpty)
	t.Run("GetNewPageIsDirtyAndNumbered", testGetNewPageIsDirtyAndNumbered)
	t.Run("PageNumbersAreSequential", testPageNumbersAreSequential)
	t.Run("GetPageRejectsNegativePagenum", testGetPageRejectsNegativePagenum)
	t.Run("GetNewPageFailsOnceBufferIsFull", testGetNewPageFailsOnceBufferIsFull)
	t.Run("FlushSurvivesReopen", testFlushSurvivesReopen)
	t.Run("PutPageBelowZeroErrors", testPutPageBelowZeroErrors)
	t.Run("CloseFailsWithPinnedPages", testCloseFailsWithPinnedPages)
	t.Run("UnflushedWritesStayVisibleInBuffer", testUnflushedWritesStayVisibleInBuffer)
	t.Run("GetNewPageManyTimes", testGetNewPageManyTimes)
}

func testNewPagerStartsEmpty(t *testing.T) {
	p := newTestPager(t)
	if n := p.GetNumPages(); n != 0 {
		t.Errorf("expected a fresh pager to have 0 pages, got %d", n)
	}
}

func testGetNewPageIsDirtyAndNumbered(t *testing.T) {
	p := newTestPager(t)
	page := pinNewPage(t, p, true)
	if page.GetPager() != p {
		t.Error("new page's pager field doesn't point back to its owning pager")
	}
	if page.GetPageNum() != 0 {
		t.Errorf("expected the first new page to have pagenum 0, got %d", page.GetPageNum())
	}
	if !page.IsDirty() {
		t.Error("expected a brand-new page to start dirty")
	}
}

func testPageNumbersAreSequential(t *testing.T) {
	p := newTestPager(t)
	p0 := pinNewPage(t, p, true)
	p1 := pinNewPage(t, p, true)
	reGotP1 := pinPage(t, p, 1, true)
	if p0.GetPageNum() != 0 {
		t.Errorf("expected pagenum 0, got %d", p0.GetPageNum())
	}
	if p1.GetPageNum() != 1 {
		t.Errorf("expected pagenum 1, got %d", p1.GetPageNum())
	}
	if reGotP1.GetPageNum() != 1 {
		t.Errorf("expected re-fetched page to keep pagenum 1, got %d", reGotP1.GetPageNum())
	}
}

func testGetPageRejectsNegativePagenum(t *testing.T) {
	p := newTestPager(t)
	if _, err := p.GetPage(-1); err == nil {
		t.Fatal("expected GetPage(-1) to error")
	}
}

func testGetNewPageFailsOnceBufferIsFull(t *testing.T) {
	p := newTestPager(t)
	for i := 0; i < config.MaxPagesInBuffer; i++ {
		_ = pinNewPage(t, p, true)
	}
	page, err := p.GetNewPage()
	if err == nil {
		_ = p.PutPage(page)
		t.Fatal("expected GetNewPage to fail once every buffer frame is pinned")
	}
}

func testFlushSurvivesReopen(t *testing.T) {
	p := newTestPager(t)
	page := pinNewPage(t, p, false)
	data := []byte("hello")
	page.Update(data, 0, int64(len(data)))
	_ = p.PutPage(page)
	p.FlushPage(page)

	reopenPager(t, p)

	page = pinPage(t, p, 0, true)
	if !bytes.Equal(page.GetData()[:len(data)], data) {
		t.Fatal("flushed data did not survive closing and reopening the pager")
	}
}

func testPutPageBelowZeroErrors(t *testing.T) {
	p := newTestPager(t)
	page := pinNewPage(t, p, false)
	if err := p.PutPage(page); err != nil {
		t.Fatal("first put shouldn't fail:", err)
	}
	if err := p.PutPage(page); err == nil {
		t.Fatal("expected a second PutPage to error once pinCount goes negative")
	}
}

func testCloseFailsWithPinnedPages(t *testing.T) {
	p := newTestPager(t)
	_ = pinNewPage(t, p, false)
	if err := p.Close(); err == nil {
		t.Fatal("expected Close to error while a page is still pinned")
	}
}

func testUnflushedWritesStayVisibleInBuffer(t *testing.T) {
	p := newTestPager(t)
	p1 := pinNewPage(t, p, true)
	data := []byte("test data")
	p1.Update(data, 0, int64(len(data)))

	p2 := pinPage(t, p, 0, true)
	if p1 != p2 {
		t.Error("expected re-fetching an in-memory page to return the same frame")
	}
	if !bytes.Equal(p2.GetData()[:len(data)], data) {
		t.Error("unflushed write did not survive a second GetPage from the buffer")
	}
}

func testGetNewPageManyTimes(t *testing.T) {
	p := newTestPager(t)
	const n = 10000
	for i := 0; i < n; i++ {
		page := pinNewPage(t, p, false)
		if page.GetPageNum() != int64(i) {
			t.Fatalf("expected pagenum %d, got %d", i, page.GetPageNum())
		}
		_ = p.PutPage(page)
	}
}