// Package resolver reconstructs absolute paths for MFT entries by
// walking each entry's FILE_NAME parent reference up to the volume root,
// grounded on the teacher's parser/hardlinks.go and parser/utils.go
// GetFullPath. Unlike those, it never holds the volume open: it walks a
// plain in-memory Summary index built ahead of time (or incrementally,
// in SinglePass mode) by the ingest pipeline.
package resolver

import (
	"fmt"
	"strings"
	"sync"
)

// RootRecordNumber is the well-known MFT record for the volume root
// directory, as used throughout the teacher's tests (ntfs_ctx.GetMFT(5)).
const RootRecordNumber uint64 = 5

// maxPathDepth bounds the parent-chain walk so a record that
// (incorrectly) points at itself through a longer cycle than the visited
// set alone would catch still terminates quickly.
const maxPathDepth = 255

// Summary is the slice of a decoded mft.Entry the resolver needs: enough
// to walk the parent chain without holding the full entry in memory.
type Summary struct {
	RecordNumber   uint64
	SequenceNumber uint16
	ParentRef      uint64
	ParentSeq      uint16
	Name           string
	IsDir          bool
}

// Mode selects how Resolve treats a parent that is not yet in the index.
type Mode int

const (
	// TwoPass assumes the whole volume has already been indexed: a
	// missing parent is a genuine orphan.
	TwoPass Mode = iota
	// SinglePass is for resolving while ingestion still streams in:
	// a missing parent may simply not have arrived yet.
	SinglePass
)

// Index is a concurrency-safe record_number -> Summary table plus a path
// memoization cache. Memoization keys on record_number alone; the
// sequence number recorded against the *child's* parent reference is
// checked at traversal time, not at cache lookup, and Add drops the
// memoized paths when a slot is reused, so a child of a reused slot is
// walked again and caught by that check.
type Index struct {
	mode Mode

	mu      sync.RWMutex
	entries map[uint64]Summary
	memo    map[uint64]string
}

// NewIndex creates an empty Index in the given mode.
func NewIndex(mode Mode) *Index {
	return &Index{
		mode:    mode,
		entries: make(map[uint64]Summary),
		memo:    make(map[uint64]string),
	}
}

// Add records or replaces the Summary for one MFT slot. Replacing an
// existing record_number (the slot was reused) invalidates every memoized
// path, since any of them may run through the old occupant, so a later
// Resolve call re-derives them and re-checks the sequence numbers of
// anything that pointed at the old occupant.
func (idx *Index) Add(s Summary) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, reused := idx.entries[s.RecordNumber]; reused {
		idx.memo = make(map[uint64]string)
	}
	idx.entries[s.RecordNumber] = s
	delete(idx.memo, s.RecordNumber)
}

// Resolve returns the absolute path for recordNumber, walking the parent
// chain according to idx's Mode. The result is never an error: unresolvable
// segments are represented inline as bracketed markers so a caller can
// still place the entry on a timeline.
func (idx *Index) Resolve(recordNumber uint64) string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	return idx.resolve(recordNumber, map[uint64]bool{}, 0, idx.mode == SinglePass)
}

// ResolveAll walks every indexed record_number as if ingestion were
// complete, regardless of idx's configured Mode - this is the "rerun on
// completion" step a SinglePass caller invokes once its pipeline drains.
func (idx *Index) ResolveAll() map[uint64]string {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.memo = make(map[uint64]string, len(idx.entries))

	result := make(map[uint64]string, len(idx.entries))
	for recordNumber := range idx.entries {
		result[recordNumber] = idx.resolve(recordNumber, map[uint64]bool{}, 0, false)
	}
	return result
}

// resolve must be called with idx.mu held.
func (idx *Index) resolve(recordNumber uint64, visiting map[uint64]bool, depth int, pending bool) string {
	if cached, ok := idx.memo[recordNumber]; ok {
		return cached
	}
	if depth > maxPathDepth {
		return fmt.Sprintf("[too-deep:%d]", recordNumber)
	}
	if visiting[recordNumber] {
		return "[cycle]"
	}

	if recordNumber == RootRecordNumber {
		idx.memo[recordNumber] = "/"
		return "/"
	}

	summary, ok := idx.entries[recordNumber]
	if !ok {
		return missingMarker(recordNumber, pending)
	}

	visiting[recordNumber] = true
	defer delete(visiting, recordNumber)

	parentPath := idx.resolveParent(summary, visiting, depth, pending)

	full := joinPath(parentPath, summary.Name)
	if !pending || !strings.Contains(parentPath, "[pending") {
		idx.memo[recordNumber] = full
	}
	return full
}

func (idx *Index) resolveParent(summary Summary, visiting map[uint64]bool, depth int, pending bool) string {
	parent, ok := idx.entries[summary.ParentRef]
	if !ok {
		return missingMarker(summary.ParentRef, pending)
	}
	if parent.SequenceNumber != summary.ParentSeq {
		return fmt.Sprintf("[stale:%d]", summary.ParentRef)
	}
	return idx.resolve(summary.ParentRef, visiting, depth+1, pending)
}

func missingMarker(recordNumber uint64, pending bool) string {
	if pending {
		return fmt.Sprintf("[pending:%d]", recordNumber)
	}
	return fmt.Sprintf("[orphan:%d]", recordNumber)
}

func joinPath(parent, name string) string {
	if parent == "/" {
		return "/" + name
	}
	if !strings.HasPrefix(parent, "/") {
		parent = "/" + parent
	}
	return parent + "/" + name
}
