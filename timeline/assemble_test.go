package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Velocidex/go-mft-timeline/config"
	"github.com/Velocidex/go-mft-timeline/mft"
)

func sampleEntry() *mft.Entry {
	// Built from field literals: every field Assemble reads is exported.
	// No Names are set, so only $STANDARD_INFORMATION events result; see
	// record_test.go's buildRecord for a record decoded from bytes.
	return &mft.Entry{
		RecordNumber: 7,
		Flags:        mft.FlagInUse,
		HasSI:        true,
		SITimestamps: mft.StandardInformationTimes{
			Created:  time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			Modified: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestAssembleEmitsSIEventsOnly(t *testing.T) {
	entry := sampleEntry()
	events := Assemble(entry, "/docs/report.txt", config.Default())

	assert.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, OriginStandardInformation, e.Origin)
		assert.Equal(t, "/docs/report.txt", e.Path)
	}
}

func TestAssembleAppliesTimeBounds(t *testing.T) {
	entry := sampleEntry()
	cfg := config.Default()
	cfg.After = time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	events := Assemble(entry, "/docs/report.txt", cfg)
	assert.Len(t, events, 1)
	assert.Equal(t, KindModified, events[0].Kind)
}

func TestAssembleAppliesNameFilter(t *testing.T) {
	entry := sampleEntry()
	cfg := config.Default()
	cfg.Filter = "nomatch"

	events := Assemble(entry, "/docs/report.txt", cfg)
	assert.Empty(t, events)
}

func TestSortBufferedOrdersByTimestampThenRecordThenOriginThenKind(t *testing.T) {
	events := []Event{
		{Timestamp: time.Unix(200, 0), RecordNumber: 1},
		{Timestamp: time.Unix(100, 0), RecordNumber: 2},
		{Timestamp: time.Unix(100, 0), RecordNumber: 1, Origin: OriginFileName},
		{Timestamp: time.Unix(100, 0), RecordNumber: 1, Origin: OriginStandardInformation},
	}

	SortBuffered(events)

	assert.Equal(t, uint64(1), events[0].RecordNumber)
	assert.Equal(t, OriginStandardInformation, events[0].Origin)
	assert.Equal(t, uint64(1), events[1].RecordNumber)
	assert.Equal(t, OriginFileName, events[1].Origin)
	assert.Equal(t, uint64(2), events[2].RecordNumber)
	assert.Equal(t, uint64(1), events[3].RecordNumber)
}
