// Package main hosts the mvvid CLI entrypoint and command graph.
//
// The root command moves entries matching --match from the current Videos
// directory into the TV or Movies library, then asks the configured media
// servers to rescan. Subcommands report preflight status and scaffold the
// configuration file. Operator output (plans, status lines, progress bars)
// is written here; structured logs go to the log file through
// internal/logging.
package main
