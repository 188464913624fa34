// Package plex asks Plex Media Server to rescan a library section after
// mvvid has moved new entries into it.
//
// ScannerNotifier runs the local "Plex Media Scanner" binary as the media
// server account (optionally through an elevation command), streaming its
// output to the operator. HTTPNotifier calls the section refresh endpoint of
// the Plex HTTP API instead. Both satisfy relocate.Notifier.
package plex
