package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dinodb/pkg/btree"
	"dinodb/pkg/config"
	"dinodb/pkg/heap"

	"github.com/google/uuid"
)

// setupCloseHandler closes idx on SIGINT/SIGTERM so the header page and
// any dirty nodes are flushed before the process exits.
func setupCloseHandler(idx *btree.BTreeIndex) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("closehandler invoked")
		idx.Close()
		os.Exit(0)
	}()
}

func main() {
	relationFlag := flag.String("relation", "data/relation", "path to the heap relation file")
	attrOffsetFlag := flag.Int("attr-offset", 0, "byte offset of the indexed integer attribute within each tuple")
	tupleSizeFlag := flag.Int64("tuple-size", heap.KeySize, "fixed width, in bytes, of tuples in the relation")
	promptFlag := flag.Bool("c", true, "use prompt?")
	flag.Parse()

	sourceHeap, err := heap.Open(*relationFlag, *tupleSizeFlag)
	if err != nil {
		panic(err)
	}
	defer sourceHeap.Close()

	relationName := *relationFlag
	idx, outIndexName, err := btree.Open(relationName, *attrOffsetFlag, btree.INTEGER, sourceHeap)
	if err != nil {
		panic(err)
	}
	fmt.Printf("index file: %s\n", outIndexName)

	defer idx.Close()
	setupCloseHandler(idx)

	r := btree.IndexRepl(idx)
	prompt := config.GetPrompt(*promptFlag)
	r.Run(uuid.New(), prompt, nil, nil)
}
