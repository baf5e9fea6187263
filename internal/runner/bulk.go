package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"stashsync/internal/logging"
	"stashsync/internal/reconcile"
	"stashsync/internal/stash"
)

const (
	bulkLockName   = "bulk.lock"
	bulkLedgerName = "bulk_results.csv"
)

// ErrBulkRunning indicates another bulk run already holds the ledger lock.
var ErrBulkRunning = errors.New("another bulk run is already in progress")

// RunBulk reconciles every scene in the Stash database. Scene failures are
// recorded and skipped; only setup failures (lock, database, ledger) abort
// the run.
func (r *Runner) RunBulk(ctx context.Context) error {
	if err := os.MkdirAll(r.cfg.Paths.LedgerDir, 0o755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}

	lock := flock.New(filepath.Join(r.cfg.Paths.LedgerDir, bulkLockName))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire bulk lock: %w", err)
	}
	if !ok {
		return ErrBulkRunning
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release bulk lock", logging.Error(err))
		}
	}()

	sceneIDs, err := r.enumerateScenes(ctx)
	if err != nil {
		return err
	}

	ledger, err := OpenLedger(filepath.Join(r.cfg.Paths.LedgerDir, bulkLedgerName))
	if err != nil {
		return err
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			r.logger.Warn("failed to close bulk ledger", logging.Error(err))
		}
	}()

	r.logger.Info("starting bulk run", logging.Int("scene_count", len(sceneIDs)))

	start := time.Now()
	summary := NewSummary()
	// Enumeration is ascending by ID; walk it back to front so the newest
	// scenes reconcile first.
	for i := len(sceneIDs) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		sceneID := sceneIDs[i]
		outcome, err := r.RunScene(ctx, sceneID)
		if err != nil && outcome != reconcile.OutcomeFailed {
			outcome = reconcile.OutcomeFailed
		}
		summary.Add(outcome)
		if err := ledger.Record(sceneID, outcome); err != nil {
			return err
		}
	}

	out := r.out
	if out == nil {
		out = os.Stdout
	}
	summary.Render(out)

	r.logger.Info("bulk run completed",
		logging.Int("total", summary.Total()),
		logging.Int("failed", summary.Count(reconcile.OutcomeFailed)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// enumerateScenes opens the Stash sqlite database read-only and lists every
// scene ID. The database location comes from configuration when set, else
// from the Stash configuration API.
func (r *Runner) enumerateScenes(ctx context.Context) ([]int64, error) {
	dbPath := r.cfg.Stash.DatabasePath
	if dbPath == "" {
		resolved, err := r.stash.DatabasePath(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve stash database path: %w", err)
		}
		dbPath = resolved
	}

	store, err := stash.OpenStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open stash database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.logger.Warn("failed to close stash database", logging.Error(err))
		}
	}()

	return store.SceneIDs(ctx)
}
