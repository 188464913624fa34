package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the working directory constraints and runtime file locations.
type Paths struct {
	AllowedSourceDirs []string `toml:"allowed_source_dirs"`
	LogDir            string   `toml:"log_dir"`
	LockFile          string   `toml:"lock_file"`
}

// Library contains the destination library layout.
type Library struct {
	Root      string `toml:"root"`
	MoviesDir string `toml:"movies_dir"`
	TVDir     string `toml:"tv_dir"`
}

// Ownership names the account the media server runs as. Moved entries are
// handed over to this user and group.
type Ownership struct {
	User  string `toml:"user"`
	Group string `toml:"group"`
}

// Plex contains configuration for triggering Plex library rescans.
type Plex struct {
	RefreshMethod  string   `toml:"refresh_method"`
	ScannerPath    string   `toml:"scanner_path"`
	ScannerArgs    []string `toml:"scanner_args"`
	ServiceUser    string   `toml:"service_user"`
	ElevateCommand string   `toml:"elevate_command"`
	URL            string   `toml:"url"`
	Token          string   `toml:"token"`
	MoviesSection  int      `toml:"movies_section"`
	TVSection      int      `toml:"tv_section"`
	RequestTimeout int      `toml:"request_timeout"`
}

// Jellyfin contains configuration for Jellyfin library refresh integration.
type Jellyfin struct {
	Enabled        bool   `toml:"enabled"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Workflow contains run behaviour toggles.
type Workflow struct {
	// FailOnEmptyMatch makes a run that selects nothing exit non-zero.
	FailOnEmptyMatch bool `toml:"fail_on_empty_match"`
	// ConfirmByDefault prompts before moving even without --confirm.
	ConfirmByDefault bool `toml:"confirm_by_default"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mvvid.
//
// Configuration sections by concern:
//   - Paths: allowed working directories, log and lock locations
//   - Library: destination roots for movies and TV shows
//   - Ownership: media server account that must own moved entries
//   - Plex: scanner sub-shell or HTTP refresh settings and section IDs
//   - Jellyfin: optional additional library refresh
//   - Workflow: empty-match and confirmation behaviour
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Library   Library   `toml:"library"`
	Ownership Ownership `toml:"ownership"`
	Plex      Plex      `toml:"plex"`
	Jellyfin  Jellyfin  `toml:"jellyfin"`
	Workflow  Workflow  `toml:"workflow"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/mvvid/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mvvid.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories mvvid writes its own files to.
// Library roots are never created here; a missing root is a preflight failure.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, filepath.Dir(c.Paths.LockFile)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// MoviesPath returns the absolute destination root for movies.
func (c *Config) MoviesPath() string {
	return filepath.Join(c.Library.Root, c.Library.MoviesDir)
}

// TVPath returns the absolute destination root for TV shows.
func (c *Config) TVPath() string {
	return filepath.Join(c.Library.Root, c.Library.TVDir)
}

// LibraryPaths returns both destination roots, TV first.
func (c *Config) LibraryPaths() []string {
	return []string{c.TVPath(), c.MoviesPath()}
}

// LogFilePath returns the log file written by every run.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "mvvid.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
