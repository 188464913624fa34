package relocate_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"mvvid/internal/config"
	"mvvid/internal/relocate"
	"mvvid/internal/testsupport"
)

type chownCall struct {
	path     string
	uid, gid int
}

type recordingChown struct {
	mu    sync.Mutex
	calls []chownCall
	err   error
}

func (c *recordingChown) chown(path string, uid, gid int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.calls = append(c.calls, chownCall{path: path, uid: uid, gid: gid})
	return nil
}

func (c *recordingChown) paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.calls))
	for _, call := range c.calls {
		out = append(out, call.path)
	}
	return out
}

type stubNotifier struct {
	calls []relocate.ContentType
	err   error
}

func (n *stubNotifier) Name() string { return "stub" }

func (n *stubNotifier) NotifyLibraryChanged(_ context.Context, kind relocate.ContentType) error {
	n.calls = append(n.calls, kind)
	return n.err
}

type eventReporter struct {
	relocate.NopReporter
	planned   []relocate.Entry
	moved     []string
	skipped   []string
	refreshed []error
	finished  *relocate.Summary
}

func (r *eventReporter) Plan(_ relocate.ContentType, _ string, entries []relocate.Entry) {
	r.planned = entries
}

func (r *eventReporter) Moving(relocate.Entry, string) io.Writer { return nil }

func (r *eventReporter) Moved(rec relocate.MoveRecord) { r.moved = append(r.moved, rec.Entry.Name) }

func (r *eventReporter) Skipped(rec relocate.MoveRecord) { r.skipped = append(r.skipped, rec.Entry.Name) }

func (r *eventReporter) Refreshed(_ string, err error) { r.refreshed = append(r.refreshed, err) }

func (r *eventReporter) Finished(s relocate.Summary) { r.finished = &s }

// testEnv is a Videos working directory plus a library with both roots.
type testEnv struct {
	cfg      *config.Config
	videos   string
	chown    *recordingChown
	notifier *stubNotifier
	reporter *eventReporter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return &testEnv{
		cfg:      cfg,
		videos:   testsupport.VideosDir(cfg),
		chown:    &recordingChown{},
		notifier: &stubNotifier{},
		reporter: &eventReporter{},
	}
}

func (e *testEnv) relocator(t *testing.T, mutate func(*relocate.Dependencies)) *relocate.Relocator {
	t.Helper()
	deps := relocate.Dependencies{
		Chown:        e.chown.chown,
		Notifier:     e.notifier,
		Reporter:     e.reporter,
		Validate:     func(context.Context, relocate.Request) error { return nil },
		ResolveOwner: func() (relocate.Owner, error) { return relocate.Owner{UID: 1001, GID: 1002}, nil },
		Prompt:       &errorReader{t: t},
		PromptOut:    io.Discard,
	}
	if mutate != nil {
		mutate(&deps)
	}
	return relocate.NewWithDependencies(e.cfg, nil, deps)
}

// errorReader fails the test if a prompt is read when none was expected.
type errorReader struct{ t *testing.T }

func (r *errorReader) Read([]byte) (int, error) {
	r.t.Errorf("unexpected read from prompt input")
	return 0, errors.New("unexpected read")
}
