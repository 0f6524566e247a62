// Command mirrormap-demo maps one shared-memory object into two adjacent
// address ranges and shows that a write through either range is visible
// through both.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/hupe1980/mirrormap"
)

func main() {
	var (
		length   = flag.Int("length", 32768, "logical length in bytes (positive multiple of the page size)")
		name     = flag.String("name", "", "shared memory object name (default: generated)")
		backing  = flag.String("backing", "named", "object backing: named or memfd")
		prefault = flag.Bool("prefault", false, "populate page tables at map time")
		logLevel = flag.String("log-level", "warn", "log verbosity: debug, info, warn or error")
	)

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		log.Fatalf("invalid log level %q: %v", *logLevel, err)
	}

	opts := []mirrormap.Option{
		mirrormap.WithLogLevel(level),
		mirrormap.WithPrefault(*prefault),
	}

	if *name != "" {
		opts = append(opts, mirrormap.WithName(*name))
	}

	switch *backing {
	case "named":
		opts = append(opts, mirrormap.WithBacking(mirrormap.BackingNamed))
	case "memfd":
		opts = append(opts, mirrormap.WithBacking(mirrormap.BackingMemfd))
	default:
		log.Fatalf("invalid backing %q: want named or memfd", *backing)
	}

	m, err := mirrormap.New(*length, opts...)
	if err != nil {
		log.Fatalf("map mirror: %v", err)
	}

	view, alias := m.View(), m.Alias()

	fmt.Printf("mapped object %q twice, %d (%#x) bytes per window\n", m.Name(), m.Len(), m.Len())
	fmt.Printf("  view:  %p\n", &view[0])
	fmt.Printf("  alias: %p (view + %#x)\n", &alias[0], m.Len())
	fmt.Println()

	const offset = 2

	fmt.Printf("initial:           view[%d] = %#02x  alias[%d] = %#02x\n", offset, view[offset], offset, alias[offset])

	view[offset] = 'A'
	fmt.Printf("after view write:  view[%d] = %#02x  alias[%d] = %#02x\n", offset, view[offset], offset, alias[offset])

	alias[offset] = 'M'
	fmt.Printf("after alias write: view[%d] = %#02x  alias[%d] = %#02x\n", offset, view[offset], offset, alias[offset])

	if err := m.Close(); err != nil {
		log.Fatalf("release mirror: %v", err)
	}

	fmt.Println("\nreleased both windows with a single unmap")
}
