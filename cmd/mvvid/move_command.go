package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mvvid/internal/config"
	"mvvid/internal/logging"
	"mvvid/internal/relocate"
	"mvvid/internal/services"
	"mvvid/internal/services/jellyfin"
	"mvvid/internal/services/plex"
)

func runMove(cmd *cobra.Command, ctx *commandContext, opts moveOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	lock := flock.New(cfg.Paths.LockFile)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another mvvid run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	logger, err := logging.NewFromConfig(cfg, opts.logLevel, opts.verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	out := cmd.OutOrStdout()
	runCtx := services.WithRunID(cmd.Context(), uuid.NewString())

	notifier, err := buildNotifier(cfg, logger, out)
	if err != nil {
		return err
	}

	reporter := newConsoleReporter(out, shouldColorize(out))
	relocator := relocate.NewWithDependencies(cfg, logger, relocate.Dependencies{
		Notifier:  notifier,
		Reporter:  reporter,
		Prompt:    cmd.InOrStdin(),
		PromptOut: out,
	})

	logging.WithContext(runCtx, logger).Info(
		"mvvid run starting",
		logging.String("content_type", opts.contentType().String()),
		logging.String("pattern", opts.match),
		logging.Bool("dry_run", opts.dryRun),
		logging.Bool("refresh_only", opts.refreshOnly),
		logging.String("notifier", notifier.Name()),
		logging.String("config", ctx.configPath),
	)

	_, err = relocator.Run(runCtx, relocate.Request{
		ContentType: opts.contentType(),
		Pattern:     opts.match,
		Confirm:     opts.confirm || cfg.Workflow.ConfirmByDefault,
		RefreshOnly: opts.refreshOnly,
		DryRun:      opts.dryRun,
		FailOnEmpty: opts.failOnEmpty || cfg.Workflow.FailOnEmptyMatch,
	})
	return err
}

// buildNotifier assembles the refresh notifiers enabled in cfg. Scanner output
// is streamed to out.
func buildNotifier(cfg *config.Config, logger *slog.Logger, out io.Writer) (*relocate.MultiNotifier, error) {
	var notifiers []relocate.Notifier

	switch cfg.Plex.RefreshMethod {
	case config.RefreshScanner:
		scanner, err := plex.NewScannerNotifier(cfg.Plex, logger, plex.WithOutput(out))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "refresh", "plex scanner", "", err)
		}
		notifiers = append(notifiers, scanner)
	case config.RefreshHTTP:
		httpNotifier, err := plex.NewHTTPNotifier(cfg.Plex, nil, logger)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "refresh", "plex http", "", err)
		}
		notifiers = append(notifiers, httpNotifier)
	}

	if cfg.Jellyfin.Enabled {
		jf, err := jellyfin.NewNotifier(cfg.Jellyfin, nil, logger)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "refresh", "jellyfin", "", err)
		}
		notifiers = append(notifiers, jf)
	}

	return relocate.NewMultiNotifier(notifiers...), nil
}
