package plex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"mvvid/internal/config"
	"mvvid/internal/logging"
	"mvvid/internal/relocate"
	"mvvid/internal/services"
)

// Option configures a ScannerNotifier.
type Option func(*ScannerNotifier)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(n *ScannerNotifier) {
		if exec != nil {
			n.exec = exec
		}
	}
}

// WithOutput sets where scanner output lines are echoed.
func WithOutput(w io.Writer) Option {
	return func(n *ScannerNotifier) {
		n.output = w
	}
}

// ScannerNotifier rescans a section with the Plex Media Scanner binary.
type ScannerNotifier struct {
	cfg    config.Plex
	exec   Executor
	output io.Writer
	logger *slog.Logger
}

// NewScannerNotifier constructs a notifier from the [plex] config section.
func NewScannerNotifier(cfg config.Plex, logger *slog.Logger, opts ...Option) (*ScannerNotifier, error) {
	if strings.TrimSpace(cfg.ScannerPath) == "" {
		return nil, errors.New("plex scanner path required")
	}
	n := &ScannerNotifier{
		cfg:    cfg,
		exec:   commandExecutor{},
		logger: logging.NewComponentLogger(logger, "plex-scanner"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *ScannerNotifier) Name() string { return "plex-scanner" }

// Command returns the binary and arguments used to rescan kind's section.
//
// With a service user the scanner runs through "su - <user> -c '<cmd>'",
// prefixed by the elevation command when one is configured. Without a
// service user the scanner binary is executed directly.
func (n *ScannerNotifier) Command(kind relocate.ContentType) (string, []string) {
	scannerArgs := append([]string{}, n.cfg.ScannerArgs...)
	scannerArgs = append(scannerArgs, "--section", strconv.Itoa(kind.Section(n.cfg)))

	user := strings.TrimSpace(n.cfg.ServiceUser)
	if user == "" {
		return n.cfg.ScannerPath, scannerArgs
	}

	shell := shellJoin(append([]string{n.cfg.ScannerPath}, scannerArgs...))
	wrapped := []string{"su", "-", user, "-c", shell}
	if elevate := strings.Fields(n.cfg.ElevateCommand); len(elevate) > 0 {
		wrapped = append(elevate, wrapped...)
	}
	return wrapped[0], wrapped[1:]
}

// NotifyLibraryChanged runs the scanner and waits for it to exit.
func (n *ScannerNotifier) NotifyLibraryChanged(ctx context.Context, kind relocate.ContentType) error {
	binary, args := n.Command(kind)
	logger := logging.WithContext(ctx, n.logger)
	logger.Info(
		"running plex media scanner",
		logging.String("binary", binary),
		logging.String("args", strings.Join(args, " ")),
		logging.Int("section", kind.Section(n.cfg)),
	)

	onLine := func(line string) {
		logger.Debug("scanner output", logging.String("line", line))
		if n.output != nil {
			fmt.Fprintln(n.output, line)
		}
	}
	started := time.Now()
	if err := n.exec.Run(ctx, binary, args, onLine); err != nil {
		return services.Wrap(services.ErrExternalTool, "refresh", "plex media scanner", fmt.Sprintf("section %d", kind.Section(n.cfg)), err)
	}
	logger.Info("plex media scanner finished", logging.Duration("elapsed", time.Since(started)))
	return nil
}

// shellJoin quotes each word for a POSIX shell.
func shellJoin(words []string) string {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, shellQuote(w))
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:@%+,", r)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
