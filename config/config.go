// Package config holds the ingest/timeline run configuration described in
// SPEC_FULL.md 6, grounded on the teacher's parser/options.go Options
// struct (GetDefaultOptions).
package config

import (
	"strings"
	"time"
)

// Config controls one timeline run: which filters apply, whether events
// are streamed or buffered and sorted, and where output goes. It never
// affects how an individual MFT record decodes - that stays a pure
// function of its bytes.
type Config struct {
	// SinglePass selects resolver.SinglePass for the path index: a Resolve
	// call made while records still stream in marks a parent not yet
	// indexed as "[pending:N]" rather than "[orphan:N]". It does not by
	// itself lower memory use; ResolveAll still resolves every path once
	// ingest completes.
	SinglePass bool

	// Filter, case-insensitive, restricts emitted events to entries whose
	// display name contains it. Empty means no filter.
	Filter string

	// After and Before bound emitted event timestamps. The zero Time means
	// no bound on that side.
	After  time.Time
	Before time.Time

	// Format names an external emitter ("json", "csv", "interactive");
	// selecting and running it is outside this module's scope.
	Format string

	// Output is a destination path, or "-" for stdout.
	Output string

	// Timezone is display-only. The core timeline is always computed and
	// stored in UTC; a presentation layer may use this to localize it.
	Timezone string

	// Workers overrides the ingest worker pool size. Zero means
	// runtime.NumCPU().
	Workers int
}

// Default returns the zero-value Config augmented with the few fields
// whose zero value is not the sensible default.
func Default() Config {
	return Config{
		Format: "interactive",
		Output: "-",
	}
}

// Matches reports whether name passes Filter (always true for an empty
// filter).
func (c Config) Matches(name string) bool {
	if c.Filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(c.Filter))
}

// InRange reports whether t falls within [After, Before], treating a zero
// bound as unconstrained on that side.
func (c Config) InRange(t time.Time) bool {
	if !c.After.IsZero() && t.Before(c.After) {
		return false
	}
	if !c.Before.IsZero() && t.After(c.Before) {
		return false
	}
	return true
}
