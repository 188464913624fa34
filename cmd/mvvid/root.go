package main

import (
	"github.com/spf13/cobra"

	"mvvid/internal/relocate"
)

type moveOptions struct {
	tv          bool
	movie       bool
	match       string
	confirm     bool
	refreshOnly bool
	dryRun      bool
	failOnEmpty bool
	logLevel    string
	verbose     bool
}

// contentType treats --tv=false the same as --movie.
func (o moveOptions) contentType() relocate.ContentType {
	if o.movie || !o.tv {
		return relocate.Movie
	}
	return relocate.TV
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts moveOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "mvvid",
		Short: "Move downloaded videos into the media library",
		Long: `mvvid moves files and directories matching --match from the current
Videos directory into the TV show (default) or movie library, hands them to
the media server account, and asks the media server to rescan.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMove(cmd, ctx, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Also write logs to stderr")

	flags := rootCmd.Flags()
	flags.BoolVar(&opts.tv, "tv", true, "Move into the TV show library")
	flags.BoolVar(&opts.movie, "movie", false, "Move into the movie library")
	flags.StringVar(&opts.match, "match", relocate.DefaultPattern, "Glob pattern selecting entries in the current directory")
	flags.BoolVarP(&opts.confirm, "confirm", "c", false, "Ask before moving anything")
	flags.BoolVar(&opts.refreshOnly, "refresh-only", false, "Skip moving and only trigger a library refresh")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "List what would be moved and exit")
	flags.BoolVar(&opts.failOnEmpty, "fail-on-empty", false, "Exit non-zero when nothing matches")
	rootCmd.MarkFlagsMutuallyExclusive("tv", "movie")
	rootCmd.MarkFlagsMutuallyExclusive("refresh-only", "dry-run")

	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
