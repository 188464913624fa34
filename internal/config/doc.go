// Package config loads, normalizes, and validates mvvid configuration data.
//
// It supplies the fixed library layout defaults (Plex library roots, scanner
// location, service account), expands user paths including tilde shortcuts,
// reads TOML files, and honours environment fallbacks such as PLEX_TOKEN and
// JELLYFIN_API_KEY. The Config type centralizes every value the relocator
// needs so nothing downstream depends on module-level constants.
//
// Always obtain settings through this package so callers receive sanitized
// paths, canonical log formats, and clear validation errors.
package config
