package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"mvvid/internal/relocate"
)

// consoleReporter renders run events for the operator. Progress bars are only
// drawn when out is a terminal.
type consoleReporter struct {
	out      io.Writer
	colorize bool
	progress bool
	bar      *progressbar.ProgressBar
}

func newConsoleReporter(out io.Writer, terminal bool) *consoleReporter {
	return &consoleReporter{out: out, colorize: terminal, progress: terminal}
}

func (r *consoleReporter) Plan(kind relocate.ContentType, destination string, entries []relocate.Entry) {
	for _, line := range renderSectionHeader(kind.Label()+" library", r.colorize) {
		fmt.Fprintln(r.out, line)
	}
	fmt.Fprintln(r.out, renderStatusLine("Destination", statusInfo, destination, r.colorize))
	if len(entries) == 0 {
		fmt.Fprintln(r.out, renderStatusLine("Entries", statusWarn, "nothing matched", r.colorize))
		return
	}
	fmt.Fprintln(r.out, renderStatusLine("Entries", statusInfo, strconv.Itoa(len(entries))+" selected", r.colorize))
	fmt.Fprintln(r.out, renderPlanTable(entries))
}

func (r *consoleReporter) Moving(entry relocate.Entry, _ string) io.Writer {
	if !r.progress {
		return nil
	}
	r.bar = progressbar.NewOptions64(
		entry.Size,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(entry.Name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return r.bar
}

func (r *consoleReporter) Moved(rec relocate.MoveRecord) {
	r.endBar(true)
	fmt.Fprintln(r.out, renderStatusLine(rec.Entry.Name, statusOK, "moved ("+humanize.Bytes(uint64(rec.Bytes))+")", r.colorize))
}

func (r *consoleReporter) Skipped(rec relocate.MoveRecord) {
	r.endBar(false)
	fmt.Fprintln(r.out, renderStatusLine(rec.Entry.Name, statusWarn, "already in library, left in place", r.colorize))
}

func (r *consoleReporter) OwnershipFixed(_ string, changed int) {
	fmt.Fprintln(r.out, renderStatusLine("Ownership", statusOK, fmt.Sprintf("%d paths updated", changed), r.colorize))
}

func (r *consoleReporter) Refreshed(notifier string, err error) {
	switch {
	case notifier == "none":
		fmt.Fprintln(r.out, renderStatusLine("Library refresh", statusInfo, "disabled", r.colorize))
	case err != nil:
		fmt.Fprintln(r.out, renderStatusLine("Library refresh", statusWarn, err.Error(), r.colorize))
	default:
		fmt.Fprintln(r.out, renderStatusLine("Library refresh", statusOK, "requested via "+notifier, r.colorize))
	}
}

func (r *consoleReporter) Finished(summary relocate.Summary) {
	r.endBar(false)
	if len(summary.Records) == 0 {
		return
	}
	fmt.Fprintln(r.out, renderSummaryTable(summary))
	kind := statusOK
	if summary.Failed > 0 {
		kind = statusError
	} else if summary.Skipped > 0 {
		kind = statusWarn
	}
	message := fmt.Sprintf("%d moved, %d skipped, %d failed (%s)",
		summary.Moved, summary.Skipped, summary.Failed, humanize.Bytes(uint64(summary.Bytes)))
	fmt.Fprintln(r.out, renderStatusLine("Summary", kind, message, r.colorize))
}

func (r *consoleReporter) endBar(finish bool) {
	if r.bar == nil {
		return
	}
	if finish {
		_ = r.bar.Finish()
	} else {
		_ = r.bar.Clear()
	}
	r.bar = nil
}
