package btree

import "errors"

// Error kinds surfaced by the public index interface. Names match the
// error kinds enumerated in the design: metadata-mismatch, bad-opcodes,
// bad-scanrange, no-such-key, scan-not-initialized, scan-completed.
var (
	// ErrMetadataMismatch is returned by Open when an existing index file's
	// persisted IndexMeta disagrees with the arguments Open was called with.
	ErrMetadataMismatch = errors.New("btree: index metadata does not match open() arguments")

	// ErrBadOpcodes is returned by StartScan when the low/high operators
	// aren't one of the accepted {GT,GTE}/{LT,LTE} pairs.
	ErrBadOpcodes = errors.New("btree: bad scan operators")

	// ErrBadScanRange is returned by StartScan when lowVal > highVal.
	ErrBadScanRange = errors.New("btree: low value exceeds high value")

	// ErrNoSuchKey is returned by StartScan when the target leaf holds no
	// key greater than or equal to the normalized lower bound.
	ErrNoSuchKey = errors.New("btree: no key found in scan range")

	// ErrScanNotInitialized is returned by ScanNext/EndScan when called
	// without a prior successful StartScan.
	ErrScanNotInitialized = errors.New("btree: scan not initialized")

	// ErrScanCompleted is returned by ScanNext once the scan has exhausted
	// every key in the requested range.
	ErrScanCompleted = errors.New("btree: scan has completed")

	// ErrKeyNotFound is returned by UpdateEntry when the key to update is
	// not present in the index.
	ErrKeyNotFound = errors.New("btree: key not found")
)
