// Package diag is the shared debug-tracing facility for mft, resolver,
// ingest and timeline: a single NTFS_DEBUG env var gate plus go-spew
// dumping, grounded on the teacher's parser/debug.go.
package diag

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

var (
	once    sync.Once
	enabled bool
)

func enabledFlag() bool {
	once.Do(func() {
		for _, kv := range os.Environ() {
			if strings.HasPrefix(kv, "NTFS_DEBUG=") {
				enabled = true
				return
			}
		}
	})
	return enabled
}

// Printf writes to stderr only when NTFS_DEBUG is set in the environment.
func Printf(format string, args ...interface{}) {
	if enabledFlag() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Dump pretty-prints arg with go-spew, gated the same way as Printf.
func Dump(arg interface{}) {
	if enabledFlag() {
		spew.Fdump(os.Stderr, arg)
	}
}
