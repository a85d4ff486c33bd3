package ingest

import (
	"context"
	"io"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Velocidex/go-mft-timeline/internal/diag"
	"github.com/Velocidex/go-mft-timeline/mft"
)

// defaultChunkSize is how many record slots the dispatcher batches into
// one job, so workers aren't synchronizing on the job channel once per
// record.
const defaultChunkSize = 64

// Result is one decoded (or rejected) record slot, handed back in
// whatever order its worker goroutine finishes in - callers that need
// record order back reassemble it themselves keyed on RecordNumber,
// which is exactly what the timeline assembler does.
type Result struct {
	RecordNumber uint64
	Entry        *mft.Entry
	Err          error
}

type recordSlot struct {
	number uint64
	data   []byte
}

// Pipeline drives Source through a fixed worker pool into mft.Decode.
type Pipeline struct {
	source  Source
	workers int
}

// NewPipeline builds a Pipeline over source. workers <= 0 means
// runtime.NumCPU().
func NewPipeline(source Source, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{source: source, workers: workers}
}

// Run is a single ingest pass: RunID identifies it for logging/summary
// purposes, Results streams decoded slots as they complete, and Wait
// blocks until every worker and the dispatcher have finished, returning
// the first fatal source error (attribute/record-level problems are
// reported per-slot in Result.Err, not here).
type Run struct {
	RunID   uuid.UUID
	Results <-chan Result

	done chan struct{}
	err  error
}

// Wait blocks until the run completes and returns its terminal error, if
// any. Safe to call once; the run has already finished draining Results
// by the time it returns.
func (r *Run) Wait() error {
	<-r.done
	return r.err
}

// Start launches the dispatcher and worker pool and returns immediately.
// Cancel ctx to stop early; the pipeline drains what's already in flight
// and Wait returns ctx.Err().
func (p *Pipeline) Start(ctx context.Context) *Run {
	runID := uuid.New()
	diag.Printf("ingest: starting run %s with %d workers\n", runID, p.workers)

	jobs := make(chan []recordSlot, p.workers*2)
	results := make(chan Result, p.workers*2)

	// A RandomAccess source can fetch an arbitrary record's bytes, which
	// is all ResolveExtensions needs to follow an $ATTRIBUTE_LIST
	// reference into its extension record. Sequential-only sources (a
	// gzip stream) leave lookup nil and entries with attribute lists
	// decode without the cross-record merge.
	var lookup mft.RecordLookup
	if ra, ok := p.source.(RandomAccess); ok {
		lookup = ra.ReadRecord
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		return p.dispatch(gctx, jobs)
	})

	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			return decodeJobs(gctx, jobs, results, lookup)
		})
	}

	run := &Run{RunID: runID, Results: results, done: make(chan struct{})}
	go func() {
		run.err = g.Wait()
		close(results)
		close(run.done)
		diag.Printf("ingest: run %s finished: %v\n", runID, run.err)
	}()

	return run
}

func (p *Pipeline) dispatch(ctx context.Context, jobs chan<- []recordSlot) error {
	buf := make([]recordSlot, 0, defaultChunkSize)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		select {
		case jobs <- buf:
		case <-ctx.Done():
			return ctx.Err()
		}
		buf = make([]recordSlot, 0, defaultChunkSize)
		return nil
	}

	for {
		recordNumber, data, err := p.source.Next()
		switch {
		case err == io.EOF:
			return flush()
		case err == ErrShortRecord:
			buf = append(buf, recordSlot{recordNumber, data})
			return flush()
		case err != nil:
			return err
		}

		buf = append(buf, recordSlot{recordNumber, data})
		if len(buf) == defaultChunkSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
}

func decodeJobs(ctx context.Context, jobs <-chan []recordSlot, results chan<- Result, lookup mft.RecordLookup) error {
	for chunk := range jobs {
		for _, slot := range chunk {
			entry, err := mft.Decode(slot.data, slot.number)
			if err == nil && lookup != nil && entry.HasAttributeList() {
				mft.ResolveExtensions(entry, lookup)
			}
			select {
			case results <- Result{RecordNumber: slot.number, Entry: entry, Err: err}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
