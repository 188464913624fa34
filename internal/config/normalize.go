package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLibrary(); err != nil {
		return err
	}
	c.normalizeOwnership()
	c.normalizePlex()
	c.normalizeJellyfin()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	dirs := make([]string, 0, len(c.Paths.AllowedSourceDirs))
	seen := make(map[string]struct{}, len(c.Paths.AllowedSourceDirs))
	for _, dir := range c.Paths.AllowedSourceDirs {
		name := strings.TrimSpace(dir)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		dirs = append(dirs, name)
	}
	c.Paths.AllowedSourceDirs = dirs

	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockFile) == "" {
		c.Paths.LockFile = filepath.Join(c.Paths.LogDir, defaultLockFileName)
	}
	if c.Paths.LockFile, err = expandPath(strings.TrimSpace(c.Paths.LockFile)); err != nil {
		return fmt.Errorf("paths.lock_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLibrary() error {
	var err error
	if c.Library.Root, err = expandPath(strings.TrimSpace(c.Library.Root)); err != nil {
		return fmt.Errorf("library.root: %w", err)
	}
	c.Library.MoviesDir = strings.TrimSpace(c.Library.MoviesDir)
	c.Library.TVDir = strings.TrimSpace(c.Library.TVDir)
	return nil
}

func (c *Config) normalizeOwnership() {
	c.Ownership.User = strings.TrimSpace(c.Ownership.User)
	c.Ownership.Group = strings.TrimSpace(c.Ownership.Group)
}

func (c *Config) normalizePlex() {
	c.Plex.RefreshMethod = strings.ToLower(strings.TrimSpace(c.Plex.RefreshMethod))
	if c.Plex.RefreshMethod == "" {
		c.Plex.RefreshMethod = RefreshScanner
	}
	c.Plex.ScannerPath = strings.TrimSpace(c.Plex.ScannerPath)
	args := make([]string, 0, len(c.Plex.ScannerArgs))
	for _, arg := range c.Plex.ScannerArgs {
		if arg = strings.TrimSpace(arg); arg != "" {
			args = append(args, arg)
		}
	}
	c.Plex.ScannerArgs = args
	c.Plex.ServiceUser = strings.TrimSpace(c.Plex.ServiceUser)
	c.Plex.ElevateCommand = strings.TrimSpace(c.Plex.ElevateCommand)
	c.Plex.URL = strings.TrimRight(strings.TrimSpace(c.Plex.URL), "/")
	if value, ok := os.LookupEnv("PLEX_TOKEN"); ok && strings.TrimSpace(value) != "" {
		c.Plex.Token = value
	}
	c.Plex.Token = strings.TrimSpace(c.Plex.Token)
	if c.Plex.RequestTimeout <= 0 {
		c.Plex.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeJellyfin() {
	if value, ok := os.LookupEnv("JELLYFIN_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.Jellyfin.APIKey = value
	}
	c.Jellyfin.URL = strings.TrimRight(strings.TrimSpace(c.Jellyfin.URL), "/")
	c.Jellyfin.APIKey = strings.TrimSpace(c.Jellyfin.APIKey)
	if c.Jellyfin.RequestTimeout <= 0 {
		c.Jellyfin.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
