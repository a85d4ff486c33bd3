package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderTableContainsExpectedColumns(t *testing.T) {
	events := []Event{
		{
			Timestamp:    time.Date(2024, 1, 15, 10, 30, 45, 0, time.UTC),
			RecordNumber: 11,
			Origin:       OriginStandardInformation,
			Kind:         KindCreated,
			Path:         "/Folder A/file.txt",
		},
		{
			Timestamp:    time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
			RecordNumber: 11,
			Origin:       OriginFileName,
			Kind:         KindModified,
			Path:         "/Folder A/file.txt",
		},
	}

	out := Render(events)

	assert.Contains(t, out, "2024-01-15T10:30:45.0000000Z")
	assert.Contains(t, out, "/Folder A/file.txt")
	assert.Contains(t, out, "SI")
	assert.Contains(t, out, "FN")
}
