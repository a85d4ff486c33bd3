package ingest

import (
	"errors"

	"github.com/Velocidex/ordereddict"

	"github.com/Velocidex/go-mft-timeline/mft"
)

// Summary accumulates final ingest counts in a stable field order, so
// printing it (CLI table, JSON, whatever) is deterministic across runs.
// Grounded on the teacher's parser/caching.go MFTEntryCache.Stats, which
// returns the same *ordereddict.Dict shape for the same reason.
type Summary struct {
	total           int
	decoded         int
	slotEmpty       int
	damagedSlots    int
	headerMalformed int
	corrupted       int
	directories     int
	files           int
}

// Observe folds one ingest Result into the running counts.
func (s *Summary) Observe(r Result) {
	s.total++

	switch {
	case r.Err == nil:
		s.decoded++
		if r.Entry.Corruption != 0 {
			s.corrupted++
		}
		if r.Entry.IsDirectory() {
			s.directories++
		} else {
			s.files++
		}

	default:
		var slotErr *mft.SlotEmptyError
		if errors.As(r.Err, &slotErr) {
			s.slotEmpty++
			if slotErr.Damaged {
				s.damagedSlots++
			}
		} else {
			s.headerMalformed++
		}
	}
}

// Dict renders the summary as an ordereddict.Dict, preserving field
// order for display.
func (s *Summary) Dict() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("TotalSlots", s.total).
		Set("Decoded", s.decoded).
		Set("SlotEmpty", s.slotEmpty).
		Set("DamagedSlots", s.damagedSlots).
		Set("HeaderMalformed", s.headerMalformed).
		Set("Corrupted", s.corrupted).
		Set("Directories", s.directories).
		Set("Files", s.files)
}
