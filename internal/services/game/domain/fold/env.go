// Package fold holds the ambient dependencies slice folders may consult.
//
// Folds stay pure with respect to their inputs: the clock, id source and
// logger are injected here so tests can pin them and replays stay
// deterministic.
package fold

import (
	"log"
	"time"

	"github.com/louisbranch/boothill/internal/platform/id"
)

// Env supplies time, identifiers and warning output to slice folders.
// The zero value is usable and falls back to the process clock, random ids
// and the standard logger.
type Env struct {
	// Now returns the current time.
	Now func() time.Time
	// NewID returns a fresh opaque identifier.
	NewID func() (string, error)
	// Logf receives warning-level diagnostics.
	Logf func(format string, args ...any)
}

// Clock returns the current time from the configured clock.
func (e Env) Clock() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// NowMillis returns the current time as unix milliseconds.
func (e Env) NowMillis() int64 {
	return e.Clock().UnixMilli()
}

// ID returns a fresh identifier, falling back to a time-derived value when
// the id source fails.
func (e Env) ID(prefix string) string {
	source := e.NewID
	if source == nil {
		source = id.NewID
	}
	value, err := source()
	if err != nil || value == "" {
		return prefix + "_" + time.UnixMilli(e.NowMillis()).UTC().Format("20060102150405.000")
	}
	if prefix == "" {
		return value
	}
	return prefix + "_" + value
}

// Warnf reports a warning through the configured logger.
func (e Env) Warnf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf("warning: "+format, args...)
		return
	}
	log.Printf("warning: "+format, args...)
}
