package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"stashsync/internal/config"
	"stashsync/internal/logging"
	"stashsync/internal/reconcile"
	"stashsync/internal/stash"
	"stashsync/internal/whisparr"
)

// Runner owns the clients and reconciler for one invocation.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	stash      *stash.Client
	reconciler *reconcile.Reconciler
	out        io.Writer
}

// Option adjusts Runner construction. Used by tests to substitute clients.
type Option func(*Runner)

// WithStashClient replaces the Stash client built from configuration.
func WithStashClient(client *stash.Client) Option {
	return func(r *Runner) { r.stash = client }
}

// WithReconciler replaces the reconciler built from configuration.
func WithReconciler(rec *reconcile.Reconciler) Option {
	return func(r *Runner) { r.reconciler = rec }
}

// WithSummaryOutput redirects where RunBulk prints its summary.
func WithSummaryOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// New builds a Runner with clients derived from cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{cfg: cfg, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	if r.stash == nil {
		client, err := stash.New(cfg.Stash.URL, cfg.Stash.APIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("stash client: %w", err)
		}
		r.stash = client
	}
	if r.reconciler == nil {
		client, err := whisparr.New(cfg.Whisparr.URL, cfg.Whisparr.APIKey, logger)
		if err != nil {
			return nil, fmt.Errorf("whisparr client: %w", err)
		}
		r.reconciler = reconcile.New(cfg, client, logger)
	}
	return r, nil
}

// RunScene reconciles a single scene. The returned outcome is always valid;
// the error carries the failure reason when the outcome is Failed.
func (r *Runner) RunScene(ctx context.Context, sceneID int64) (reconcile.Outcome, error) {
	logger := r.logger.With(
		logging.String(logging.FieldCorrelationID, uuid.NewString()),
		logging.Int64(logging.FieldSceneID, sceneID),
	)

	scene, err := r.stash.FindScene(ctx, sceneID)
	if err != nil {
		logger.Error("scene fetch failed", logging.Error(err))
		return reconcile.OutcomeFailed, fmt.Errorf("fetch scene %d: %w", sceneID, err)
	}

	outcome, err := r.reconciler.Reconcile(ctx, scene)
	if err != nil {
		logger.Error("scene reconciliation failed",
			logging.String("outcome", string(outcome)),
			logging.Error(err),
		)
		return outcome, err
	}
	return outcome, nil
}
