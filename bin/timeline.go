package main

import (
	"context"
	"fmt"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/Velocidex/go-mft-timeline/config"
	"github.com/Velocidex/go-mft-timeline/ingest"
	"github.com/Velocidex/go-mft-timeline/mft"
	"github.com/Velocidex/go-mft-timeline/resolver"
	"github.com/Velocidex/go-mft-timeline/timeline"
)

const recordSize = 1024

var (
	timelineCommand = app.Command("timeline", "Decode an $MFT file and print its timeline.")

	timelineMFTPath = timelineCommand.Arg(
		"mft", "Path to a flat $MFT file.",
	).Required().String()

	timelineFilter = timelineCommand.Flag(
		"filter", "Only include entries whose name contains this substring.",
	).Default("").String()

	timelineGzip = timelineCommand.Flag(
		"gzip", "The $MFT file is gzip-compressed.",
	).Bool()

	timelineSinglePass = timelineCommand.Flag(
		"single-pass", "Build the path index in single-pass mode (paths are still resolved once ingest completes).",
	).Bool()
)

func runTimeline() {
	cfg := config.Default()
	cfg.Filter = *timelineFilter
	cfg.SinglePass = *timelineSinglePass

	var source ingest.Source
	var err error
	if *timelineGzip {
		source, err = ingest.OpenDecompressed(*timelineMFTPath, recordSize)
	} else {
		source, err = ingest.OpenMmap(*timelineMFTPath, recordSize, 0)
	}
	kingpin.FatalIfError(err, "opening %v", *timelineMFTPath)
	defer source.Close()

	mode := resolver.TwoPass
	if cfg.SinglePass {
		mode = resolver.SinglePass
	}
	index := resolver.NewIndex(mode)

	pipeline := ingest.NewPipeline(source, cfg.Workers)
	run := pipeline.Start(context.Background())

	summary := &ingest.Summary{}
	entries := map[uint64]*mft.Entry{}

	for result := range run.Results {
		summary.Observe(result)
		if result.Err != nil {
			continue
		}
		entries[result.RecordNumber] = result.Entry

		name, _ := result.Entry.DisplayName()
		primary, hasName := result.Entry.PrimaryName()
		s := resolver.Summary{
			RecordNumber:   result.Entry.RecordNumber,
			SequenceNumber: result.Entry.SequenceNumber,
			Name:           name,
			IsDir:          result.Entry.IsDirectory(),
		}
		if hasName {
			s.ParentRef = primary.ParentRef
			s.ParentSeq = primary.ParentSeq
		}
		index.Add(s)
	}

	kingpin.FatalIfError(run.Wait(), "ingest failed")

	paths := index.ResolveAll()

	var events []timeline.Event
	for recordNumber, entry := range entries {
		events = append(events, timeline.Assemble(entry, paths[recordNumber], cfg)...)
	}
	timeline.SortBuffered(events)

	fmt.Fprint(os.Stdout, timeline.Render(events))
	fmt.Fprintf(os.Stderr, "%v\n", summary.Dict())
}
