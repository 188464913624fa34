// Package jellyfin triggers a Jellyfin library refresh after entries have
// been moved, for setups that serve the same library tree from both Plex and
// Jellyfin.
package jellyfin
