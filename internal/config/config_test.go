package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mvvid/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PLEX_TOKEN", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "mvvid", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Paths.LockFile != filepath.Join(wantLogDir, "mvvid.lock") {
		t.Fatalf("unexpected lock file: %q", cfg.Paths.LockFile)
	}
	if got := cfg.TVPath(); got != "/var/lib/plexmediaserver/Library/TV_Shows" {
		t.Fatalf("unexpected tv path: %q", got)
	}
	if got := cfg.MoviesPath(); got != "/var/lib/plexmediaserver/Library/Movies" {
		t.Fatalf("unexpected movies path: %q", got)
	}
	if len(cfg.Paths.AllowedSourceDirs) != 1 || cfg.Paths.AllowedSourceDirs[0] != "Videos" {
		t.Fatalf("unexpected allowed source dirs: %v", cfg.Paths.AllowedSourceDirs)
	}
	if cfg.Plex.RefreshMethod != config.RefreshScanner {
		t.Fatalf("expected scanner refresh by default, got %q", cfg.Plex.RefreshMethod)
	}
	if cfg.Plex.MoviesSection != 3 || cfg.Plex.TVSection != 4 {
		t.Fatalf("unexpected sections: movies=%d tv=%d", cfg.Plex.MoviesSection, cfg.Plex.TVSection)
	}
	if cfg.Ownership.User != "plex" || cfg.Ownership.Group != "plex" {
		t.Fatalf("unexpected ownership: %+v", cfg.Ownership)
	}
	if cfg.Workflow.FailOnEmptyMatch {
		t.Fatal("expected empty match to succeed by default")
	}
	if cfg.Jellyfin.Enabled {
		t.Fatal("expected Jellyfin disabled by default")
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil {
		t.Fatalf("expected log dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.LogDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mvvid.toml")

	type payload struct {
		Paths struct {
			AllowedSourceDirs []string `toml:"allowed_source_dirs"`
			LogDir            string   `toml:"log_dir"`
		} `toml:"paths"`
		Library struct {
			Root  string `toml:"root"`
			TVDir string `toml:"tv_dir"`
		} `toml:"library"`
		Plex struct {
			TVSection int `toml:"tv_section"`
		} `toml:"plex"`
		Workflow struct {
			FailOnEmptyMatch bool `toml:"fail_on_empty_match"`
		} `toml:"workflow"`
	}
	custom := payload{}
	custom.Paths.AllowedSourceDirs = []string{" Downloads ", "Videos", "Downloads", ""}
	custom.Paths.LogDir = filepath.Join(tempDir, "logs")
	custom.Library.Root = filepath.Join(tempDir, "library")
	custom.Library.TVDir = "Shows"
	custom.Plex.TVSection = 9
	custom.Workflow.FailOnEmptyMatch = true
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if got := strings.Join(cfg.Paths.AllowedSourceDirs, ","); got != "Downloads,Videos" {
		t.Fatalf("expected trimmed, deduplicated source dirs, got %q", got)
	}
	if cfg.TVPath() != filepath.Join(tempDir, "library", "Shows") {
		t.Fatalf("unexpected tv path: %q", cfg.TVPath())
	}
	if cfg.MoviesPath() != filepath.Join(tempDir, "library", "Movies") {
		t.Fatalf("expected default movies dir under custom root, got %q", cfg.MoviesPath())
	}
	if cfg.Plex.TVSection != 9 {
		t.Fatalf("expected tv section 9, got %d", cfg.Plex.TVSection)
	}
	if cfg.Plex.MoviesSection != 3 {
		t.Fatalf("expected default movies section, got %d", cfg.Plex.MoviesSection)
	}
	if !cfg.Workflow.FailOnEmptyMatch {
		t.Fatal("expected fail_on_empty_match from file")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mvvid.toml")
	if err := os.WriteFile(configPath, []byte("[library]\nmovie_dir = \"typo\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvVarOverridesConfigFileForTokens(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mvvid.toml")
	contents := `
[plex]
refresh_method = "http"
token = "file-plex"

[jellyfin]
enabled = true
url = "http://jellyfin.local:8096/"
api_key = "file-jellyfin"
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PLEX_TOKEN", "env-plex")
	t.Setenv("JELLYFIN_API_KEY", "env-jellyfin")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Plex.Token != "env-plex" {
		t.Errorf("expected Plex token from env, got %q", cfg.Plex.Token)
	}
	if cfg.Jellyfin.APIKey != "env-jellyfin" {
		t.Errorf("expected Jellyfin key from env, got %q", cfg.Jellyfin.APIKey)
	}
	if cfg.Jellyfin.URL != "http://jellyfin.local:8096" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.Jellyfin.URL)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	defaults := config.Default()
	if cfg.Library.Root != defaults.Library.Root {
		t.Fatalf("sample library root %q differs from default %q", cfg.Library.Root, defaults.Library.Root)
	}
	if cfg.Plex.ScannerPath != defaults.Plex.ScannerPath {
		t.Fatalf("sample scanner path %q differs from default %q", cfg.Plex.ScannerPath, defaults.Plex.ScannerPath)
	}
	if cfg.Plex.TVSection != defaults.Plex.TVSection || cfg.Plex.MoviesSection != defaults.Plex.MoviesSection {
		t.Fatalf("sample sections differ from defaults: %+v", cfg.Plex)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"no allowed dirs":      func(c *config.Config) { c.Paths.AllowedSourceDirs = nil },
		"allowed dir is path":  func(c *config.Config) { c.Paths.AllowedSourceDirs = []string{"home/Videos"} },
		"missing tv dir":       func(c *config.Config) { c.Library.TVDir = "" },
		"same roots":           func(c *config.Config) { c.Library.TVDir = c.Library.MoviesDir },
		"missing owner":        func(c *config.Config) { c.Ownership.User = "" },
		"missing group":        func(c *config.Config) { c.Ownership.Group = "" },
		"unknown refresh":      func(c *config.Config) { c.Plex.RefreshMethod = "webhook" },
		"scanner without path": func(c *config.Config) { c.Plex.ScannerPath = "" },
		"http without token": func(c *config.Config) {
			c.Plex.RefreshMethod = config.RefreshHTTP
			c.Plex.Token = ""
		},
		"zero section": func(c *config.Config) { c.Plex.TVSection = 0 },
		"jellyfin without key": func(c *config.Config) {
			c.Jellyfin.Enabled = true
			c.Jellyfin.URL = "http://localhost:8096"
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
