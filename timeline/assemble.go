package timeline

import (
	"sort"
	"time"

	"github.com/Velocidex/go-mft-timeline/config"
	"github.com/Velocidex/go-mft-timeline/mft"
)

// Assemble produces up to eight Events for entry - one per non-unset
// timestamp across its $STANDARD_INFORMATION (if present) and its
// primary $FILE_NAME (the one DisplayName would choose), suppressing
// anything cfg's filter or time bounds exclude. path is the already
// resolver-resolved absolute path for entry.RecordNumber.
func Assemble(entry *mft.Entry, path string, cfg config.Config) []Event {
	name, _ := entry.DisplayName()
	if !cfg.Matches(name) {
		return nil
	}

	var events []Event

	if entry.HasSI {
		events = append(events, timestampEvents(entry, path, name, OriginStandardInformation, entry.SITimestamps, cfg)...)
	}

	if primary, ok := entry.PrimaryName(); ok {
		events = append(events, timestampEvents(entry, path, name, OriginFileName, primary.Times, cfg)...)
	}

	return events
}

func timestampEvents(entry *mft.Entry, path, name string, origin Origin, times mft.StandardInformationTimes, cfg config.Config) []Event {
	candidates := []struct {
		kind Kind
		t    time.Time
	}{
		{KindCreated, times.Created},
		{KindModified, times.Modified},
		{KindMFTChanged, times.MFTChanged},
		{KindAccessed, times.Accessed},
	}

	events := make([]Event, 0, len(candidates))
	for _, c := range candidates {
		if c.t.IsZero() {
			continue
		}
		if !cfg.InRange(c.t) {
			continue
		}
		events = append(events, Event{
			Timestamp:    c.t,
			RecordNumber: entry.RecordNumber,
			Origin:       origin,
			Kind:         c.kind,
			Path:         path,
			Name:         name,
			IsDirectory:  entry.IsDirectory(),
			Size:         entry.SizeLogical,
			IsDeleted:    !entry.InUse(),
			ADS:          entry.ADS,
		})
	}
	return events
}

// SortBuffered sorts events in place by (timestamp, record_number,
// origin, kind), the deterministic ordering the buffered-mode output
// uses. Streaming mode skips this and emits events as they're produced.
func SortBuffered(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		if a.RecordNumber != b.RecordNumber {
			return a.RecordNumber < b.RecordNumber
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		return a.Kind < b.Kind
	})
}
