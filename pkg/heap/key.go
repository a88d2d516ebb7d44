package heap

import "encoding/binary"

// KeySize is the width, in bytes, of the fixed-width signed integer key
// extracted from a tuple (the only Datatype this index supports).
const KeySize = 8

// ExtractKey reads the fixed-width signed integer key at attrByteOffset
// within a raw tuple, the same extraction badgerdb's bulk-build step
// performs as `*((int*)(record + attrByteOffset))`.
func ExtractKey(record []byte, attrByteOffset int) int64 {
	return int64(binary.LittleEndian.Uint64(record[attrByteOffset : attrByteOffset+KeySize]))
}

// PutKey writes key at attrByteOffset within a raw tuple buffer, the
// inverse of ExtractKey. Used by tests and tooling that build relation
// fixtures.
func PutKey(record []byte, attrByteOffset int, key int64) {
	binary.LittleEndian.PutUint64(record[attrByteOffset:attrByteOffset+KeySize], uint64(key))
}
