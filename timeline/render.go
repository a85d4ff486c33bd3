package timeline

import (
	"bytes"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/Velocidex/go-mft-timeline/mft"
)

// Render renders events as a plain-text table, grounded on the teacher's
// bin/ls.go tablewriter usage. This is a debug/demo aid, not one of the
// external JSON/CSV emitters - those live outside this module.
func Render(events []Event) string {
	buf := &bytes.Buffer{}
	table := tablewriter.NewWriter(buf)
	table.SetHeader([]string{"Timestamp", "Record", "Origin", "Kind", "Path"})

	for _, e := range events {
		table.Append([]string{
			mft.WireTimestamp(e.Timestamp),
			strconv.FormatUint(e.RecordNumber, 10),
			e.Origin.String(),
			e.Kind.String(),
			e.Path,
		})
	}

	table.Render()
	return buf.String()
}
