package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"mvvid/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a fresh temp directory: a Videos
// source directory, a library with both content roots created, and a log
// directory. Refresh is disabled unless an option enables it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LockFile = filepath.Join(base, "logs", "mvvid.lock")
	cfgVal.Library.Root = filepath.Join(base, "library")
	cfgVal.Plex.RefreshMethod = config.RefreshNone

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	dirs := append([]string{filepath.Join(base, "Videos")}, builder.cfg.LibraryPaths()...)
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	return builder.cfg
}

// WithOwnership overrides the library owner and group.
func WithOwnership(user, group string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ownership.User = user
		b.cfg.Ownership.Group = group
	}
}

// WithStubbedScanner writes a stub Plex Media Scanner that prints its
// arguments, points plex.scanner_path at it and disables the su wrapper.
func WithStubbedScanner() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "Plex Media Scanner")
		script := []byte("#!/bin/sh\necho \"scan $*\"\n")
		if err := os.WriteFile(target, script, 0o755); err != nil {
			b.t.Fatalf("write scanner stub: %v", err)
		}
		b.cfg.Plex.RefreshMethod = config.RefreshScanner
		b.cfg.Plex.ScannerPath = target
		b.cfg.Plex.ServiceUser = ""
		b.cfg.Plex.ElevateCommand = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// VideosDir returns the source directory created by NewConfig.
func VideosDir(cfg *config.Config) string {
	return filepath.Join(BaseDir(cfg), "Videos")
}
