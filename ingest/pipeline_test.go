package ingest

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeSource replays a fixed slice of record slots, each either valid
// FILE-signature bytes or deliberately malformed, so the pipeline can be
// exercised without a real $MFT file.
type fakeSource struct {
	slots []recordSlot
	pos   int
}

func (s *fakeSource) isSource() {}

func (s *fakeSource) Next() (uint64, []byte, error) {
	if s.pos >= len(s.slots) {
		return 0, nil, io.EOF
	}
	slot := s.slots[s.pos]
	s.pos++
	return slot.number, slot.data, nil
}

func (s *fakeSource) Close() error { return nil }

func validRecordBytes() []byte {
	buf := make([]byte, 64)
	copy(buf[0:4], "FILE")
	return buf
}

func TestPipelineDecodesAllSlots(t *testing.T) {
	src := &fakeSource{slots: []recordSlot{
		{0, validRecordBytes()},
		{1, make([]byte, 8)}, // too short, ErrHeaderMalformed
		{2, validRecordBytes()},
	}}

	p := NewPipeline(src, 2)
	run := p.Start(context.Background())

	summary := &Summary{}
	seen := map[uint64]bool{}
	for result := range run.Results {
		summary.Observe(result)
		seen[result.RecordNumber] = true
	}

	assert.NoError(t, run.Wait())
	assert.Equal(t, 3, summary.total)
	assert.Equal(t, 2, summary.decoded)
	assert.Equal(t, 1, summary.headerMalformed)
	assert.True(t, seen[0])
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestPipelineStopsOnCancellation(t *testing.T) {
	slots := make([]recordSlot, 0, 1000)
	for i := 0; i < 1000; i++ {
		slots = append(slots, recordSlot{uint64(i), validRecordBytes()})
	}
	src := &fakeSource{slots: slots}

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPipeline(src, 4)
	run := p.Start(ctx)
	cancel()

	for range run.Results {
	}

	assert.Error(t, run.Wait())
}
