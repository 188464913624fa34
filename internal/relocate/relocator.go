package relocate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mvvid/internal/config"
	"mvvid/internal/logging"
	"mvvid/internal/preflight"
	"mvvid/internal/services"
)

// ErrNoMatches is returned when nothing matched and the request asked for
// an empty selection to fail.
var ErrNoMatches = fmt.Errorf("%w: no entries matched", services.ErrValidation)

// Request describes one invocation.
type Request struct {
	ContentType ContentType
	Pattern     string
	// WorkingDir is the directory entries are selected from. Empty means the
	// process working directory.
	WorkingDir  string
	Confirm     bool
	RefreshOnly bool
	DryRun      bool
	FailOnEmpty bool
}

// ValidateFunc checks run preconditions before anything is listed.
type ValidateFunc func(ctx context.Context, req Request) error

// Dependencies are the collaborators a Relocator calls out to. Zero values
// are replaced with the production implementations.
type Dependencies struct {
	ListDir      DirLister
	Chown        ChownFunc
	Notifier     Notifier
	Reporter     Reporter
	Validate     ValidateFunc
	ResolveOwner func() (Owner, error)
	Prompt       io.Reader
	PromptOut    io.Writer
}

// Relocator runs the move workflow.
type Relocator struct {
	cfg    *config.Config
	logger *slog.Logger
	deps   Dependencies
}

// New constructs a Relocator using default dependencies and the given notifier.
func New(cfg *config.Config, logger *slog.Logger, notifier Notifier, reporter Reporter) *Relocator {
	return NewWithDependencies(cfg, logger, Dependencies{Notifier: notifier, Reporter: reporter})
}

// NewWithDependencies allows injecting collaborators (used in tests).
func NewWithDependencies(cfg *config.Config, logger *slog.Logger, deps Dependencies) *Relocator {
	if deps.ListDir == nil {
		deps.ListDir = os.ReadDir
	}
	if deps.Chown == nil {
		deps.Chown = os.Lchown
	}
	if deps.Notifier == nil {
		deps.Notifier = NewMultiNotifier()
	}
	if deps.Reporter == nil {
		deps.Reporter = NopReporter{}
	}
	if deps.Validate == nil {
		deps.Validate = PreflightValidator(cfg)
	}
	if deps.ResolveOwner == nil {
		deps.ResolveOwner = func() (Owner, error) {
			return ResolveOwner(cfg.Ownership.User, cfg.Ownership.Group, preflight.CurrentIdentity().Privileged())
		}
	}
	if deps.Prompt == nil {
		deps.Prompt = os.Stdin
	}
	if deps.PromptOut == nil {
		deps.PromptOut = os.Stdout
	}
	return &Relocator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "relocate"),
		deps:   deps,
	}
}

// PreflightValidator checks the working directory first, then the caller's
// privileges, then the destination root.
func PreflightValidator(cfg *config.Config) ValidateFunc {
	return func(_ context.Context, req Request) error {
		if err := preflight.Validate(preflight.CheckWorkingDirectory(req.WorkingDir, cfg.Paths.AllowedSourceDirs)); err != nil {
			return err
		}
		return preflight.Validate(
			preflight.CheckPrivileges(preflight.CurrentIdentity(), cfg.Ownership.Group, cfg.LibraryPaths()),
			preflight.CheckDirectoryAccess(req.ContentType.Label()+" library", req.ContentType.DestinationRoot(cfg)),
		)
	}
}

// Run executes one request. The returned Summary is populated as far as the
// run progressed, including on error.
func (r *Relocator) Run(ctx context.Context, req Request) (Summary, error) {
	if req.WorkingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Summary{}, services.Wrap(services.ErrFilesystem, "relocate", "resolve working directory", "", err)
		}
		req.WorkingDir = wd
	}
	if req.Pattern == "" {
		req.Pattern = DefaultPattern
	}

	ctx = services.WithContentType(ctx, req.ContentType.String())
	logger := logging.WithContext(ctx, r.logger)
	summary := Summary{
		ContentType: req.ContentType,
		Destination: req.ContentType.DestinationRoot(r.cfg),
		State:       StateIdle,
	}

	if err := r.deps.Validate(ctx, req); err != nil {
		logger.Error("preconditions not met", logging.String("working_dir", req.WorkingDir), logging.Error(err))
		return summary, err
	}
	r.transition(logger, &summary, StateValidated)

	if req.RefreshOnly {
		r.refresh(ctx, logger, &summary)
		return r.finish(logger, summary), nil
	}

	entries, err := selectSources(r.deps.ListDir, req.WorkingDir, req.Pattern)
	if err != nil {
		logger.Error("listing failed", logging.String("pattern", req.Pattern), logging.Error(err))
		return summary, err
	}
	r.transition(logger, &summary, StateListed)
	logger.Info(
		"entries selected",
		logging.String("pattern", req.Pattern),
		logging.Int("count", len(entries)),
		logging.String("destination", summary.Destination),
	)
	r.deps.Reporter.Plan(req.ContentType, summary.Destination, entries)

	if len(entries) == 0 {
		if req.FailOnEmpty {
			return summary, fmt.Errorf("%w (pattern %q)", ErrNoMatches, req.Pattern)
		}
		return r.finish(logger, summary), nil
	}
	if req.DryRun {
		logger.Info("dry run; nothing moved")
		return r.finish(logger, summary), nil
	}

	proceed, err := Confirm(r.deps.Prompt, r.deps.PromptOut, req.Confirm)
	if err != nil {
		return summary, services.Wrap(services.ErrValidation, "confirm", "read answer", "", err)
	}
	if !proceed {
		r.transition(logger, &summary, StateCancelled)
		logger.Info("run cancelled by operator")
		return summary, services.Wrap(services.ErrCancelled, "confirm", "", "cancelled by operator", nil)
	}
	r.transition(logger, &summary, StateConfirmed)

	owner, err := r.deps.ResolveOwner()
	if err != nil {
		logger.Error("cannot resolve library owner", logging.Error(err))
		return summary, err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", logging.Int("moved", summary.Moved), logging.Error(err))
			r.deps.Reporter.Finished(summary)
			return summary, err
		}
		entryLogger := logger.With(logging.String("entry", entry.Name))
		rec := MoveOne(entry, summary.Destination, r.deps.Reporter.Moving(entry, summary.Destination))
		summary.add(rec)

		switch {
		case services.Recoverable(rec.Err):
			logging.WarnWithContext(entryLogger, "entry already in library; skipped", "collision",
				logging.String("destination", rec.Destination),
				logging.String(logging.FieldImpact, "original left in place"),
			)
			r.deps.Reporter.Skipped(rec)
			continue
		case rec.Err != nil:
			entryLogger.Error("move failed", logging.Error(rec.Err))
			r.deps.Reporter.Finished(summary)
			return summary, rec.Err
		}

		entryLogger.Info("entry moved", logging.String("destination", rec.Destination), logging.Int64("bytes", rec.Bytes))
		r.deps.Reporter.Moved(rec)

		changed, err := FixOwnership(rec.Destination, owner, r.deps.Chown)
		if err != nil {
			entryLogger.Error("ownership change failed", logging.Error(err))
			r.deps.Reporter.Finished(summary)
			return summary, err
		}
		entryLogger.Debug("ownership updated", logging.Int("paths", len(changed)), logging.Int("uid", owner.UID), logging.Int("gid", owner.GID))
		r.deps.Reporter.OwnershipFixed(rec.Destination, len(changed))
	}
	r.transition(logger, &summary, StateMoved)
	r.transition(logger, &summary, StateOwnershipFixed)

	r.refresh(ctx, logger, &summary)
	return r.finish(logger, summary), nil
}

// refresh never fails the run; errors are logged and reported.
func (r *Relocator) refresh(ctx context.Context, logger *slog.Logger, summary *Summary) {
	name := r.deps.Notifier.Name()
	err := r.deps.Notifier.NotifyLibraryChanged(ctx, summary.ContentType)
	if err != nil {
		logging.WarnWithContext(logger, "library refresh failed", "refresh_failed",
			logging.String("notifier", name),
			logging.Error(err),
			logging.String(logging.FieldImpact, "library picks up changes on its next scheduled scan"),
		)
	} else {
		summary.Refreshed = true
		logger.Info("library refresh requested", logging.String("notifier", name))
	}
	r.deps.Reporter.Refreshed(name, err)
	r.transition(logger, summary, StateRefreshed)
}

func (r *Relocator) finish(logger *slog.Logger, summary Summary) Summary {
	r.transition(logger, &summary, StateDone)
	logger.Info(
		"run finished",
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int64("bytes", summary.Bytes),
	)
	r.deps.Reporter.Finished(summary)
	return summary
}

func (r *Relocator) transition(logger *slog.Logger, summary *Summary, next State) {
	logger.Debug("state change", logging.String("from", summary.State.String()), logging.String("to", next.String()))
	summary.State = next
}
