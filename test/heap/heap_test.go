package heap_test

import (
	"bytes"
	"testing"

	"dinodb/pkg/heap"
	"dinodb/pkg/rid"
	"dinodb/test/utils"
)

const tupleSize = 16

func setupHeap(t *testing.T) *heap.HeapFile {
	t.Parallel()
	filename := utils.GetTempDbFile(t)
	h, err := heap.Open(filename, tupleSize)
	if err != nil {
		t.Fatal("failed to open heap file:", err)
	}
	utils.EnsureCleanup(t, func() {
		_ = h.Close()
	})
	return h
}

func tupleWithKey(key int64) []byte {
	data := make([]byte, tupleSize)
	heap.PutKey(data, 0, key)
	return data
}

func TestHeap(t *testing.T) {
	t.Run("InsertAndGet", testInsertAndGet)
	t.Run("MultiplePages", testMultiplePages)
	t.Run("Scanner", testScanner)
	t.Run("ScannerEmpty", testScannerEmpty)
	t.Run("GetTupleOutOfRange", testGetTupleOutOfRange)
}

func testInsertAndGet(t *testing.T) {
	h := setupHeap(t)
	data := tupleWithKey(42)
	r, err := h.InsertTuple(data)
	if err != nil {
		t.Fatal("failed to insert tuple:", err)
	}

	got, err := h.GetTuple(r)
	if err != nil {
		t.Fatal("failed to get tuple:", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected tuple %v, got %v", data, got)
	}
}

func testMultiplePages(t *testing.T) {
	h := setupHeap(t)
	perPage := (int64(4096) - 2) / tupleSize
	n := perPage*2 + 5
	rids := make([]struct {
		r   []byte
		key int64
	}, n)

	for i := int64(0); i < n; i++ {
		data := tupleWithKey(i + utils.Salt)
		_, err := h.InsertTuple(data)
		if err != nil {
			t.Fatalf("failed to insert tuple %d: %s", i, err)
		}
		rids[i].r = data
		rids[i].key = i + utils.Salt
	}

	scanner := heap.NewScanner(h)
	defer scanner.Close()
	count := int64(0)
	for {
		r, ok := scanner.Next()
		if !ok {
			break
		}
		got, err := h.GetTuple(r)
		if err != nil {
			t.Fatalf("failed to get tuple %d via scanner rid: %s", count, err)
		}
		key := heap.ExtractKey(got, 0)
		if key != rids[count].key {
			t.Errorf("tuple %d: expected key %d, got %d", count, rids[count].key, key)
		}
		count++
	}
	if count != n {
		t.Errorf("expected to scan %d tuples, scanned %d", n, count)
	}
}

func testScanner(t *testing.T) {
	h := setupHeap(t)
	const n = 10
	for i := int64(0); i < n; i++ {
		if _, err := h.InsertTuple(tupleWithKey(i)); err != nil {
			t.Fatal("failed to insert tuple:", err)
		}
	}

	scanner := heap.NewScanner(h)
	defer scanner.Close()
	var keys []int64
	for {
		r, ok := scanner.Next()
		if !ok {
			break
		}
		rec := scanner.Record()
		got, err := h.GetTuple(r)
		if err != nil {
			t.Fatal("failed to get tuple via rid:", err)
		}
		if !bytes.Equal(rec, got) {
			t.Error("scanner.Record() disagrees with GetTuple(rid)")
		}
		keys = append(keys, heap.ExtractKey(rec, 0))
	}
	if len(keys) != n {
		t.Fatalf("expected %d tuples, got %d", n, len(keys))
	}
	for i, k := range keys {
		if k != int64(i) {
			t.Errorf("expected key %d at position %d, got %d", i, i, k)
		}
	}
}

func testScannerEmpty(t *testing.T) {
	h := setupHeap(t)
	scanner := heap.NewScanner(h)
	defer scanner.Close()
	if _, ok := scanner.Next(); ok {
		t.Error("expected Next() on an empty heap file to return false")
	}
}

func testGetTupleOutOfRange(t *testing.T) {
	h := setupHeap(t)
	if _, err := h.InsertTuple(tupleWithKey(1)); err != nil {
		t.Fatal("failed to insert tuple:", err)
	}
	if _, err := h.GetTuple(rid.New(0, 5)); err == nil {
		t.Error("expected out-of-range GetTuple to error")
	}
}
