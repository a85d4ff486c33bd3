// Command mft-timeline is a thin demonstration CLI over the mft/ingest/
// resolver/timeline packages - not the forensic examiner's front end
// (that's out of scope), just enough to exercise the pipeline end to
// end. Command wiring is grounded on the teacher's bin/main.go.
package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

var app = kingpin.New("mft-timeline", "Build a timeline from an NTFS $MFT file.")

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)

	switch kingpin.MustParse(app.Parse(os.Args[1:])) {
	case timelineCommand.FullCommand():
		runTimeline()
	}
}
