package heap

import (
	"dinodb/pkg/pager"
	"dinodb/pkg/rid"
)

// Scanner walks every tuple in a HeapFile in page/slot order. It is the
// iterator-shaped rendition of badgerdb's FileScan::scanNext: rather than
// raising an end-of-file exception, Next reports false once exhausted.
type Scanner struct {
	heap     *HeapFile
	pageNo   int64
	slot     int32
	curPage  *pager.Page
	curCount int32
	done     bool
}

// NewScanner returns a Scanner positioned before the first tuple of h.
func NewScanner(h *HeapFile) *Scanner {
	return &Scanner{heap: h, pageNo: 0, slot: -1}
}

// Next advances the scanner to the next tuple, returning its RecordId and
// true, or a zero RecordId and false once every tuple has been visited.
func (s *Scanner) Next() (rid.RecordId, bool) {
	if s.done {
		return rid.RecordId{}, false
	}
	for {
		if s.curPage == nil {
			if s.pageNo >= s.heap.pager.GetNumPages() {
				s.done = true
				return rid.RecordId{}, false
			}
			page, err := s.heap.pager.GetPage(s.pageNo)
			if err != nil {
				s.done = true
				return rid.RecordId{}, false
			}
			s.curPage = page
			s.curCount = numTuples(page)
			s.slot = -1
		}
		s.slot++
		if s.slot < s.curCount {
			return rid.New(s.pageNo, s.slot), true
		}
		// Exhausted this page; move to the next one.
		s.heap.pager.PutPage(s.curPage)
		s.curPage = nil
		s.pageNo++
	}
}

// Record returns the raw bytes of the tuple the scanner is currently
// positioned at. Must only be called after a Next call returned true.
func (s *Scanner) Record() []byte {
	start := s.heap.slotPos(s.slot)
	out := make([]byte, s.heap.tupleSize)
	copy(out, s.curPage.GetData()[start:start+s.heap.tupleSize])
	return out
}

// Close releases any page the scanner is still holding a pin on.
func (s *Scanner) Close() {
	if s.curPage != nil {
		s.heap.pager.PutPage(s.curPage)
		s.curPage = nil
	}
}
