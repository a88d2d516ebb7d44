package btree

import (
	"fmt"
	"strconv"
	"strings"

	"dinodb/pkg/repl"
	"dinodb/pkg/rid"
)

// IndexRepl builds a REPL exposing idx's public operations: point/range
// lookups, insertion, update, and an invariant check. Grounded on the
// teacher's database.DatabaseRepl command shapes (insert/find/update/
// select/pretty), narrowed to a single already-open index instead of a
// multi-table database.
func IndexRepl(idx *BTreeIndex) *repl.REPL {
	r := repl.NewRepl()

	r.AddCommand("insert", func(payload string, _ *repl.REPLConfig) (string, error) {
		return "", handleInsert(idx, payload)
	}, "Insert a key. usage: insert <key> <pageno> <slotno>")

	r.AddCommand("update", func(payload string, _ *repl.REPLConfig) (string, error) {
		return "", handleUpdate(idx, payload)
	}, "Update an existing key. usage: update <key> <pageno> <slotno>")

	r.AddCommand("find", func(payload string, _ *repl.REPLConfig) (string, error) {
		return handleFind(idx, payload)
	}, "Find a single key. usage: find <key>")

	r.AddCommand("select", func(payload string, _ *repl.REPLConfig) (string, error) {
		return handleSelect(idx, payload)
	}, "Range scan. usage: select <gt|gte> <low> <lt|lte> <high>")

	r.AddCommand("verify", func(_ string, _ *repl.REPLConfig) (string, error) {
		if err := idx.Verify(); err != nil {
			return "", err
		}
		return "tree invariants hold\n", nil
	}, "Check key order and separator bounds. usage: verify")

	r.AddCommand("pretty", func(_ string, _ *repl.REPLConfig) (string, error) {
		return fmt.Sprintf("height=%d rootPageNo=%d\n", idx.Height(), idx.RootPageNo()), nil
	}, "Print index stats. usage: pretty")

	return r
}

func parseRid(pnStr, slotStr string) (rid.RecordId, error) {
	pn, err := strconv.ParseInt(pnStr, 10, 64)
	if err != nil {
		return rid.RecordId{}, fmt.Errorf("bad page number: %v", err)
	}
	slot, err := strconv.ParseInt(slotStr, 10, 32)
	if err != nil {
		return rid.RecordId{}, fmt.Errorf("bad slot number: %v", err)
	}
	return rid.New(pn, int32(slot)), nil
}

func handleInsert(idx *BTreeIndex, payload string) error {
	fields := strings.Fields(payload)
	if len(fields) != 4 {
		return fmt.Errorf("usage: insert <key> <pageno> <slotno>")
	}
	key, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad key: %v", err)
	}
	r, err := parseRid(fields[2], fields[3])
	if err != nil {
		return err
	}
	return idx.InsertEntry(key, r)
}

func handleUpdate(idx *BTreeIndex, payload string) error {
	fields := strings.Fields(payload)
	if len(fields) != 4 {
		return fmt.Errorf("usage: update <key> <pageno> <slotno>")
	}
	key, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return fmt.Errorf("bad key: %v", err)
	}
	r, err := parseRid(fields[2], fields[3])
	if err != nil {
		return err
	}
	return idx.UpdateEntry(key, r)
}

func handleFind(idx *BTreeIndex, payload string) (string, error) {
	fields := strings.Fields(payload)
	if len(fields) != 2 {
		return "", fmt.Errorf("usage: find <key>")
	}
	key, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return "", fmt.Errorf("bad key: %v", err)
	}
	results, err := idx.Select(key, GTE, key, LTE)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("find error: no such key")
	}
	return fmt.Sprintf("found entry: (%d, %v)\n", key, results[0]), nil
}

func parseOperator(s string) (Operator, error) {
	switch strings.ToLower(s) {
	case "gt":
		return GT, nil
	case "gte":
		return GTE, nil
	case "lt":
		return LT, nil
	case "lte":
		return LTE, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

func handleSelect(idx *BTreeIndex, payload string) (string, error) {
	fields := strings.Fields(payload)
	if len(fields) != 5 {
		return "", fmt.Errorf("usage: select <gt|gte> <low> <lt|lte> <high>")
	}
	lowOp, err := parseOperator(fields[1])
	if err != nil {
		return "", err
	}
	lowVal, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", fmt.Errorf("bad low value: %v", err)
	}
	highOp, err := parseOperator(fields[3])
	if err != nil {
		return "", err
	}
	highVal, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return "", fmt.Errorf("bad high value: %v", err)
	}

	results, err := idx.Select(lowVal, lowOp, highVal, highOp)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%v\n", r)
	}
	return sb.String(), nil
}
