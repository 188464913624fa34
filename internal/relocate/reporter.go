package relocate

import "io"

// Reporter receives progress events from a run. Implementations own all
// operator-facing output.
type Reporter interface {
	Plan(kind ContentType, destination string, entries []Entry)
	// Moving is called before an entry is copied. The returned writer, if
	// non-nil, receives every copied byte.
	Moving(entry Entry, destination string) io.Writer
	Moved(rec MoveRecord)
	Skipped(rec MoveRecord)
	OwnershipFixed(path string, changed int)
	Refreshed(notifier string, err error)
	Finished(summary Summary)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Plan(ContentType, string, []Entry) {}
func (NopReporter) Moving(Entry, string) io.Writer    { return nil }
func (NopReporter) Moved(MoveRecord)                  {}
func (NopReporter) Skipped(MoveRecord)                {}
func (NopReporter) OwnershipFixed(string, int)        {}
func (NopReporter) Refreshed(string, error)           {}
func (NopReporter) Finished(Summary)                  {}
