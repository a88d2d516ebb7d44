// Package utils provides shared test helpers: temp file management and
// btree/heap fixture assertions, used across test/pager, test/heap, and
// test/btree.
package utils

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	copy "github.com/otiai10/copy"

	"dinodb/pkg/btree"
	"dinodb/pkg/rid"
)

// Salt randomizes generated test values so tests don't depend on
// hardcoded magic numbers lining up with implementation details.
var Salt int64 = rand.Int63n(1000) + 1

// EnsureCleanup registers f to run during t's cleanup, regardless of
// whether t passes, fails, or is skipped.
func EnsureCleanup(t *testing.T, f func()) {
	t.Cleanup(f)
}

// GetTempDbFile creates a randomly-named file in the OS's temp directory
// for a test to use as backing storage, returning its name. The file is
// removed when the test completes.
func GetTempDbFile(t *testing.T) string {
	tmpfile, err := os.CreateTemp("", "*.db")
	if err != nil {
		t.Fatal(err)
	}
	_ = tmpfile.Close()

	EnsureCleanup(t, func() {
		_ = os.Remove(tmpfile.Name())
	})
	return tmpfile.Name()
}

// InsertEntry inserts (key, r) into idx, failing the test if it errors.
func InsertEntry(t *testing.T, idx *btree.BTreeIndex, key int64, r rid.RecordId) {
	if err := idx.InsertEntry(key, r); err != nil {
		t.Errorf("failed to insert (%d, %v) into the index: %s", key, r, err)
	}
}

// CheckFindEntry verifies that key maps to expected via a single-key
// bounded scan [key, key], failing the test if it doesn't.
func CheckFindEntry(t *testing.T, idx *btree.BTreeIndex, key int64, expected rid.RecordId) {
	results, err := idx.Select(key, btree.GTE, key, btree.LTE)
	if err != nil {
		t.Errorf("failed to find inserted key %d: %s", key, err)
		return
	}
	if len(results) != 1 {
		t.Errorf("expected exactly one result for key %d, got %d", key, len(results))
		return
	}
	CheckEntry(t, results[0], expected)
}

// CheckEntry verifies that got matches expected.
func CheckEntry(t *testing.T, got, expected rid.RecordId) {
	if got != expected {
		t.Errorf("expected %v, but found %v", expected, got)
	}
}

// CopyFixtureDir duplicates srcDir into a fresh t.TempDir(), returning the
// copy's path. Tests use this to duplicate an on-disk fixture directory
// (an index file, plus its relation file if it has one) and mutate the
// copy without disturbing the original.
func CopyFixtureDir(t *testing.T, srcDir string) string {
	dst := filepath.Join(t.TempDir(), "fixture")
	if err := copy.Copy(srcDir, dst); err != nil {
		t.Fatal("failed to copy fixture directory:", err)
	}
	return dst
}
