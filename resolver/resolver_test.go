package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSimpleChain(t *testing.T) {
	idx := NewIndex(TwoPass)
	idx.Add(Summary{RecordNumber: RootRecordNumber, SequenceNumber: 1})
	idx.Add(Summary{RecordNumber: 10, SequenceNumber: 1, ParentRef: RootRecordNumber, ParentSeq: 1, Name: "Folder A", IsDir: true})
	idx.Add(Summary{RecordNumber: 11, SequenceNumber: 1, ParentRef: 10, ParentSeq: 1, Name: "file.txt"})

	assert.Equal(t, "/Folder A/file.txt", idx.Resolve(11))
}

func TestResolveOrphanParent(t *testing.T) {
	idx := NewIndex(TwoPass)
	idx.Add(Summary{RecordNumber: 11, SequenceNumber: 1, ParentRef: 999, ParentSeq: 1, Name: "file.txt"})

	assert.Equal(t, "/[orphan:999]/file.txt", idx.Resolve(11))
}

func TestResolveStaleParentSequence(t *testing.T) {
	idx := NewIndex(TwoPass)
	idx.Add(Summary{RecordNumber: 10, SequenceNumber: 2, ParentRef: RootRecordNumber, ParentSeq: 1, Name: "New Occupant", IsDir: true})
	idx.Add(Summary{RecordNumber: 11, SequenceNumber: 1, ParentRef: 10, ParentSeq: 1, Name: "file.txt"})

	assert.Equal(t, "/[stale:10]/file.txt", idx.Resolve(11))
}

func TestResolveCycleIsBroken(t *testing.T) {
	idx := NewIndex(TwoPass)
	idx.Add(Summary{RecordNumber: 10, SequenceNumber: 1, ParentRef: 11, ParentSeq: 1, Name: "a", IsDir: true})
	idx.Add(Summary{RecordNumber: 11, SequenceNumber: 1, ParentRef: 10, ParentSeq: 1, Name: "b", IsDir: true})

	result := idx.Resolve(10)
	assert.Contains(t, result, "[cycle]")
}

func TestSinglePassMarksPendingThenResolvesOnFinalize(t *testing.T) {
	idx := NewIndex(SinglePass)
	idx.Add(Summary{RecordNumber: 11, SequenceNumber: 1, ParentRef: 10, ParentSeq: 1, Name: "file.txt"})

	assert.Equal(t, "/[pending:10]/file.txt", idx.Resolve(11))

	idx.Add(Summary{RecordNumber: 10, SequenceNumber: 1, ParentRef: RootRecordNumber, ParentSeq: 1, Name: "Folder A", IsDir: true})
	idx.Add(Summary{RecordNumber: RootRecordNumber, SequenceNumber: 1})

	result := idx.ResolveAll()
	assert.Equal(t, "/Folder A/file.txt", result[11])
}

func TestReusedSlotInvalidatesMemoizedPath(t *testing.T) {
	idx := NewIndex(TwoPass)
	idx.Add(Summary{RecordNumber: RootRecordNumber, SequenceNumber: 1})
	idx.Add(Summary{RecordNumber: 10, SequenceNumber: 1, ParentRef: RootRecordNumber, ParentSeq: 1, Name: "old", IsDir: true})
	idx.Add(Summary{RecordNumber: 11, SequenceNumber: 1, ParentRef: 10, ParentSeq: 1, Name: "file.txt"})
	assert.Equal(t, "/old/file.txt", idx.Resolve(11))

	idx.Add(Summary{RecordNumber: 10, SequenceNumber: 2, ParentRef: RootRecordNumber, ParentSeq: 1, Name: "new", IsDir: true})
	assert.Equal(t, "/[stale:10]/file.txt", idx.Resolve(11))
}
