package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLibrary(); err != nil {
		return err
	}
	if err := c.validateOwnership(); err != nil {
		return err
	}
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateJellyfin(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if len(c.Paths.AllowedSourceDirs) == 0 {
		return errors.New("paths.allowed_source_dirs must include at least one directory name")
	}
	for _, name := range c.Paths.AllowedSourceDirs {
		if strings.ContainsRune(name, filepath.Separator) {
			return fmt.Errorf("paths.allowed_source_dirs: %q must be a directory name, not a path", name)
		}
	}
	return nil
}

func (c *Config) validateLibrary() error {
	if c.Library.Root == "" {
		return errors.New("library.root must be set")
	}
	if c.Library.MoviesDir == "" {
		return errors.New("library.movies_dir must be set")
	}
	if c.Library.TVDir == "" {
		return errors.New("library.tv_dir must be set")
	}
	if c.MoviesPath() == c.TVPath() {
		return errors.New("library.movies_dir and library.tv_dir must differ")
	}
	return nil
}

func (c *Config) validateOwnership() error {
	if c.Ownership.User == "" {
		return errors.New("ownership.user must be set")
	}
	if c.Ownership.Group == "" {
		return errors.New("ownership.group must be set")
	}
	return nil
}

func (c *Config) validatePlex() error {
	switch c.Plex.RefreshMethod {
	case RefreshScanner:
		if c.Plex.ScannerPath == "" {
			return errors.New("plex.scanner_path must be set when plex.refresh_method is \"scanner\"")
		}
	case RefreshHTTP:
		if c.Plex.URL == "" {
			return errors.New("plex.url must be set when plex.refresh_method is \"http\"")
		}
		if c.Plex.Token == "" {
			return errors.New("plex.token must be set when plex.refresh_method is \"http\" (or set PLEX_TOKEN)")
		}
	case RefreshNone:
	default:
		return fmt.Errorf("plex.refresh_method: unsupported value %q (want scanner, http, or none)", c.Plex.RefreshMethod)
	}
	if c.Plex.MoviesSection <= 0 {
		return errors.New("plex.movies_section must be positive")
	}
	if c.Plex.TVSection <= 0 {
		return errors.New("plex.tv_section must be positive")
	}
	return nil
}

func (c *Config) validateJellyfin() error {
	if !c.Jellyfin.Enabled {
		return nil
	}
	if c.Jellyfin.URL == "" {
		return errors.New("jellyfin.url must be set when jellyfin.enabled is true")
	}
	if c.Jellyfin.APIKey == "" {
		return errors.New("jellyfin.api_key must be set when jellyfin.enabled is true (or set JELLYFIN_API_KEY)")
	}
	return nil
}
