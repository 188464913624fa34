// Package services defines shared utilities consumed by the relocation
// workflow and the media server integrations.
//
// Key responsibilities:
//   - Context helpers that stamp the run correlation ID and targeted content
//     type for logging.
//   - Structured error markers plus the Wrap helper so callers can tell
//     per-entry collisions apart from failures that abort a run.
//
// Media server clients live in subpackages (plex, jellyfin).
package services
