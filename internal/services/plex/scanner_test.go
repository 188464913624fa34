package plex

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"mvvid/internal/config"
	"mvvid/internal/logging"
	"mvvid/internal/relocate"
	"mvvid/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	lines  []string
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, binary string, args []string, onLine func(string)) error {
	f.binary = binary
	f.args = append([]string{}, args...)
	for _, line := range f.lines {
		onLine(line)
	}
	return f.err
}

func TestScannerCommandDefaultWrapsWithSudoSu(t *testing.T) {
	cfg := config.Default()
	n, err := NewScannerNotifier(cfg.Plex, nil)
	if err != nil {
		t.Fatalf("NewScannerNotifier: %v", err)
	}

	binary, args := n.Command(relocate.TV)
	if binary != "sudo" {
		t.Fatalf("expected sudo, got %q", binary)
	}
	want := []string{"su", "-", "plex", "-c", "'/usr/lib/plexmediaserver/Plex Media Scanner' --scan --refresh --section 4"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("unexpected args:\n got %q\nwant %q", args, want)
	}

	_, args = n.Command(relocate.Movie)
	if !strings.HasSuffix(args[len(args)-1], "--section 3") {
		t.Fatalf("expected movie section 3, got %q", args[len(args)-1])
	}
}

func TestScannerCommandVariants(t *testing.T) {
	cfg := config.Default().Plex
	cfg.ElevateCommand = ""
	n, _ := NewScannerNotifier(cfg, nil)
	binary, args := n.Command(relocate.TV)
	if binary != "su" || args[0] != "-" || args[1] != "plex" {
		t.Fatalf("expected su without sudo, got %q %q", binary, args)
	}

	cfg.ElevateCommand = "doas -n"
	n, _ = NewScannerNotifier(cfg, nil)
	binary, args = n.Command(relocate.TV)
	if binary != "doas" || args[0] != "-n" || args[1] != "su" {
		t.Fatalf("expected multi-word elevation, got %q %q", binary, args)
	}

	cfg.ServiceUser = ""
	cfg.ScannerPath = "/opt/scanner"
	cfg.ScannerArgs = []string{"-srp"}
	n, _ = NewScannerNotifier(cfg, nil)
	binary, args = n.Command(relocate.Movie)
	if binary != "/opt/scanner" || !reflect.DeepEqual(args, []string{"-srp", "--section", "3"}) {
		t.Fatalf("expected direct execution, got %q %q", binary, args)
	}
}

func TestNewScannerNotifierRequiresPath(t *testing.T) {
	cfg := config.Default().Plex
	cfg.ScannerPath = " "
	if _, err := NewScannerNotifier(cfg, nil); err == nil {
		t.Fatal("expected error for empty scanner path")
	}
}

func TestScannerNotifierStreamsOutput(t *testing.T) {
	exec := &fakeExecutor{lines: []string{"Scanning section 4", "done"}}
	var out bytes.Buffer
	n, err := NewScannerNotifier(config.Default().Plex, nil, WithExecutor(exec), WithOutput(&out))
	if err != nil {
		t.Fatalf("NewScannerNotifier: %v", err)
	}
	if err := n.NotifyLibraryChanged(context.Background(), relocate.TV); err != nil {
		t.Fatalf("NotifyLibraryChanged: %v", err)
	}
	if exec.binary != "sudo" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
	if out.String() != "Scanning section 4\ndone\n" {
		t.Fatalf("unexpected streamed output %q", out.String())
	}
}

func TestScannerNotifierLogsElapsed(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "mvvid.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	n, err := NewScannerNotifier(config.Default().Plex, logger, WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("NewScannerNotifier: %v", err)
	}
	if err := n.NotifyLibraryChanged(context.Background(), relocate.TV); err != nil {
		t.Fatalf("NotifyLibraryChanged: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !regexp.MustCompile(`plex media scanner finished elapsed=[0-9.]+[µnm]?s`).Match(data) {
		t.Fatalf("expected elapsed duration in log, got:\n%s", data)
	}
}

func TestScannerNotifierWrapsFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}
	n, _ := NewScannerNotifier(config.Default().Plex, nil, WithExecutor(exec))
	err := n.NotifyLibraryChanged(context.Background(), relocate.Movie)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if !strings.Contains(err.Error(), "section 3") {
		t.Fatalf("expected section in error, got %v", err)
	}
}

func TestCommandExecutorForwardsLines(t *testing.T) {
	var lines []string
	err := commandExecutor{}.Run(context.Background(), "/bin/sh", []string{"-c", "echo out; echo err >&2"}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	joined := strings.Join(lines, ",")
	if !strings.Contains(joined, "out") || !strings.Contains(joined, "err") {
		t.Fatalf("expected both streams, got %v", lines)
	}

	if err := (commandExecutor{}).Run(context.Background(), "/bin/sh", []string{"-c", "exit 3"}, nil); err == nil {
		t.Fatal("expected non-zero exit to fail")
	}
}

func TestShellQuote(t *testing.T) {
	cases := map[string]string{
		"--section":          "--section",
		"/usr/bin/scanner":   "/usr/bin/scanner",
		"Plex Media Scanner": "'Plex Media Scanner'",
		"it's":               `'it'\''s'`,
		"":                   "''",
	}
	for in, want := range cases {
		if got := shellQuote(in); got != want {
			t.Errorf("shellQuote(%q) = %q, want %q", in, got, want)
		}
	}
}
