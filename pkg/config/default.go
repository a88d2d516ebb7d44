// Global database config.
package config

import "strconv"

// Name of the index REPL.
const DBName = "bptidx"

// Prompt printed by REPL.
const Prompt = DBName + "> "

// The maximum number of pages that can be in a pager's buffer at once.
const MaxPagesInBuffer = 32

// IndexFileSuffix composes the on-disk index file name the way a BTreeIndex's
// outIndexName is built: relationName + "." + attrByteOffset.
func IndexFileSuffix(attrByteOffset int) string {
	return "." + strconv.Itoa(attrByteOffset)
}

// Return prompt if requested, else "".
func GetPrompt(flag bool) string {
	if flag {
		return Prompt
	}
	return ""
}
