//go:build ignore

// Bench-writes measures the cost of the write-on-every-set design.
//
// Every SetValue rewrites the whole backing document, so write cost grows
// with document size, not with the size of the change. This probe loads a
// generated document and hammers SetValue against it, reporting per-write
// latency and throughput at that document size. Run it with different key
// counts to see where synchronous persistence stops being cheap.
//
// Usage: go run tools/bench-writes.go [write-count] [document-keys]
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wrrulos/dotjson"
)

func main() {
	writes := 1000
	keys := 200

	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			usage()
		}
		writes = n
	}
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			usage()
		}
		keys = n
	}

	dir, err := os.MkdirTemp("", "dotjson-bench-")
	if err != nil {
		fatal("creating temp dir", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "bench.json")
	if err := writeSeedDocument(path, keys); err != nil {
		fatal("writing seed document", err)
	}

	registry := dotjson.NewConfigRegistry()
	if err := registry.Load("bench", path); err != nil {
		fatal("loading seed document", err)
	}

	fmt.Printf("=== dotjson write throughput ===\n")
	fmt.Printf("Document:     %s\n", path)
	fmt.Printf("Leaf keys:    %d\n", keys)
	fmt.Printf("Writes:       %d\n\n", writes)

	// Reads first, for contrast with the persist cost
	readStart := time.Now()
	for i := 0; i < writes; i++ {
		if _, err := registry.Value("section0.key0", "bench"); err != nil {
			fatal("reading value", err)
		}
	}
	readElapsed := time.Since(readStart)

	writeStart := time.Now()
	for i := 0; i < writes; i++ {
		if err := registry.SetValue("section0.key0", i, "bench"); err != nil {
			fatal("writing value", err)
		}
	}
	writeElapsed := time.Since(writeStart)

	info, err := os.Stat(path)
	if err != nil {
		fatal("stating document", err)
	}

	fmt.Printf("Value:        %12s total   %10s/op   %10.0f ops/s\n",
		readElapsed.Round(time.Millisecond),
		(readElapsed / time.Duration(writes)).Round(time.Microsecond),
		float64(writes)/readElapsed.Seconds())
	fmt.Printf("SetValue:     %12s total   %10s/op   %10.0f ops/s\n",
		writeElapsed.Round(time.Millisecond),
		(writeElapsed / time.Duration(writes)).Round(time.Microsecond),
		float64(writes)/writeElapsed.Seconds())
	fmt.Printf("\nPersisted document size: %d bytes\n", info.Size())
	fmt.Printf("Bytes rewritten per SetValue: %d\n", info.Size())
}

// writeSeedDocument generates a document with roughly the requested number
// of leaf keys, spread over nested sections the way real configs are.
func writeSeedDocument(path string, keys int) error {
	perSection := 20
	sections := keys / perSection
	if sections == 0 {
		sections = 1
		perSection = keys
	}

	doc := make(map[string]any, sections)
	for s := 0; s < sections; s++ {
		section := make(map[string]any, perSection)
		for k := 0; k < perSection; k++ {
			switch k % 3 {
			case 0:
				section[fmt.Sprintf("key%d", k)] = k
			case 1:
				section[fmt.Sprintf("key%d", k)] = fmt.Sprintf("value-%d-%d", s, k)
			default:
				section[fmt.Sprintf("key%d", k)] = k%2 == 0
			}
		}
		doc[fmt.Sprintf("section%d", s)] = section
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func usage() {
	fmt.Println("Usage: bench-writes [write-count] [document-keys]")
	fmt.Println("Example: go run tools/bench-writes.go 5000 1000")
	os.Exit(1)
}

func fatal(context string, err error) {
	fmt.Printf("Error %s: %v\n", context, err)
	os.Exit(1)
}
