package preflight

import (
	"context"

	"mvvid/internal/config"
	"mvvid/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every applicable check for the given config. Network
// checks are only run when the corresponding notifier is enabled.
func RunAll(ctx context.Context, cfg *config.Config, workDir string, id Identity) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckWorkingDirectory(workDir, cfg.Paths.AllowedSourceDirs),
		CheckPrivileges(id, cfg.Ownership.Group, cfg.LibraryPaths()),
		CheckDirectoryAccess("TV library", cfg.TVPath()),
		CheckDirectoryAccess("Movie library", cfg.MoviesPath()),
	}

	for _, status := range CheckSystemDeps(cfg) {
		result := Result{Name: status.Name, Passed: status.Available || status.Optional, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Command
		}
		results = append(results, result)
	}

	if cfg.Plex.RefreshMethod == config.RefreshHTTP {
		results = append(results, CheckPlex(ctx, cfg.Plex.URL, cfg.Plex.Token))
	}
	if cfg.Jellyfin.Enabled {
		results = append(results, CheckJellyfin(ctx, cfg.Jellyfin.URL, cfg.Jellyfin.APIKey))
	}

	return results
}

// Validate converts the first failed result into an error tagged with
// services.ErrValidation.
func Validate(results ...Result) error {
	for _, result := range results {
		if result.Passed {
			continue
		}
		return services.Wrap(services.ErrValidation, "preflight", result.Name, result.Detail, nil)
	}
	return nil
}
