package relocate

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Notifier asks a media server to rescan the library for kind.
type Notifier interface {
	Name() string
	NotifyLibraryChanged(ctx context.Context, kind ContentType) error
}

// MultiNotifier fans a refresh out to every configured notifier. All
// notifiers are attempted even when earlier ones fail.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier drops nil entries.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Len reports how many notifiers are configured.
func (m *MultiNotifier) Len() int {
	if m == nil {
		return 0
	}
	return len(m.notifiers)
}

func (m *MultiNotifier) Name() string {
	if m.Len() == 0 {
		return "none"
	}
	names := make([]string, 0, len(m.notifiers))
	for _, n := range m.notifiers {
		names = append(names, n.Name())
	}
	return strings.Join(names, "+")
}

func (m *MultiNotifier) NotifyLibraryChanged(ctx context.Context, kind ContentType) error {
	if m == nil {
		return nil
	}
	var errs []error
	for _, n := range m.notifiers {
		if err := n.NotifyLibraryChanged(ctx, kind); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
	}
	return errors.Join(errs...)
}
