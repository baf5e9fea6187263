package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stashsync/internal/config"
	"stashsync/internal/logging"
	"stashsync/internal/pathmap"
	"stashsync/internal/placement"
	"stashsync/internal/stash"
	"stashsync/internal/whisparr"
)

// Reconciler reconciles one scene at a time against Whisparr. It holds no
// per-scene state; the same instance serves an entire bulk run.
type Reconciler struct {
	cfg    *config.Config
	client *whisparr.Client
	table  pathmap.Table
	logger *slog.Logger
}

// New constructs a Reconciler.
func New(cfg *config.Config, client *whisparr.Client, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{
		cfg:    cfg,
		client: client,
		table:  cfg.MappingTable(),
		logger: logger.With(logging.String(logging.FieldComponent, "reconcile")),
	}
}

// Reconcile runs the full workflow for one scene. The returned error is
// non-nil exactly when the outcome is OutcomeFailed and carries the abort
// reason for logging; skip outcomes are not errors.
func (r *Reconciler) Reconcile(ctx context.Context, scene *stash.Scene) (Outcome, error) {
	logger := r.logger.With(logging.Int64(logging.FieldSceneID, scene.ID))

	if tag, ok := scene.IgnoredTag(r.cfg.Sync.IgnoreTags); ok {
		logger.Info("scene skipped due to ignored tag",
			logging.String("title", scene.Title),
			logging.String("tag", tag),
		)
		return OutcomeSkippedTag, nil
	}

	externalID := scene.ExternalID(r.cfg.Whisparr.StashDBEndpoint)
	if externalID == "" {
		logger.Error("scene has no stashdb binding, skipping", logging.String("title", scene.Title))
		return OutcomeNoExternalID, nil
	}
	logger = logger.With(logging.String("stashdb_id", externalID))
	logger.Info("processing scene", logging.String("title", scene.Title))

	movie, err := r.findExisting(ctx, externalID)
	if err != nil {
		return OutcomeFailed, err
	}
	if movie == nil {
		if err := r.create(ctx, logger, scene, externalID); err != nil {
			return OutcomeFailed, err
		}
		// The creation response is not authoritative; re-query for the
		// canonical entry before touching files.
		movie, err = r.findExisting(ctx, externalID)
		if err != nil {
			return OutcomeFailed, err
		}
		if movie == nil {
			return OutcomeFailed, fmt.Errorf("entry for %s not visible after creation", externalID)
		}
	} else {
		logger.Info("scene already exists in whisparr",
			logging.Int64("movie_id", movie.ID),
			logging.String("path", movie.Path),
		)
	}

	moved := r.reconcileFiles(ctx, logger, scene, movie)
	if moved {
		// Whisparr caches folder contents; refresh before import scanning.
		if _, err := r.client.RefreshMovie(ctx, movie.ID); err != nil {
			logger.Warn("refresh after move failed", logging.Error(err))
		}
	}

	imported, err := r.importScene(ctx, logger, scene, movie)
	if err != nil {
		return OutcomeFailed, err
	}
	if imported {
		r.finalize(ctx, logger, movie)
	}

	logger.Info("scene reconciliation completed")
	return OutcomeSuccess, nil
}

// findExisting queries Whisparr by StashDB ID. Zero matches yields (nil,
// nil); more than one match is an integrity error that aborts the scene.
func (r *Reconciler) findExisting(ctx context.Context, externalID string) (*whisparr.Movie, error) {
	movies, err := r.client.MoviesByStashID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("query whisparr for %s: %w", externalID, err)
	}
	switch len(movies) {
	case 0:
		return nil, nil
	case 1:
		return &movies[0], nil
	default:
		return nil, fmt.Errorf("%w: %d entries bound to %s", ErrDuplicateEntry, len(movies), externalID)
	}
}

func (r *Reconciler) create(ctx context.Context, logger *slog.Logger, scene *stash.Scene, externalID string) error {
	profiles, err := r.client.QualityProfiles(ctx)
	if err != nil {
		return fmt.Errorf("list quality profiles: %w", err)
	}
	profileID, profileRule := resolveQualityProfileID(profiles, r.cfg.Whisparr.QualityProfile)

	folders, err := r.client.RootFolders(ctx)
	if err != nil {
		return fmt.Errorf("list root folders: %w", err)
	}
	rootPath, rootRule, err := resolveRootFolder(folders, r.cfg.Whisparr.RootFolder)
	if err != nil {
		return err
	}
	logger.Debug("resolved creation parameters",
		logging.Int64("quality_profile_id", profileID),
		logging.String("quality_profile_rule", profileRule),
		logging.String("root_folder", rootPath),
		logging.String("root_folder_rule", rootRule),
		logging.Bool("monitored", r.cfg.Whisparr.Monitored),
	)

	monitor := "none"
	if r.cfg.Whisparr.Monitored {
		monitor = "movieOnly"
	}
	req := whisparr.AddMovieRequest{
		Title:            scene.Title,
		ForeignID:        externalID,
		StashID:          externalID,
		Monitored:        r.cfg.Whisparr.Monitored,
		QualityProfileID: profileID,
		RootFolderPath:   rootPath,
		AddOptions: whisparr.AddOptions{
			Monitor:        monitor,
			SearchForMovie: false,
		},
	}
	if _, err := r.client.AddMovie(ctx, req); err != nil {
		return fmt.Errorf("create entry for %q: %w", scene.Title, err)
	}
	logger.Info("added scene to whisparr", logging.String("title", scene.Title))
	return nil
}

// reconcileFiles locates every scene file and, when moves are enabled,
// relocates it into the managed folder. Per-file failures are logged and
// skipped; the scene continues. Reports whether any file actually moved.
func (r *Reconciler) reconcileFiles(ctx context.Context, logger *slog.Logger, scene *stash.Scene, movie *whisparr.Movie) bool {
	moveFiles := r.cfg.Whisparr.MoveFiles
	if moveFiles {
		if err := r.checkMoveTarget(movie.Path); err != nil {
			logger.Warn("managed directory not writable, files will not be moved", logging.Error(err))
			moveFiles = false
		}
	}

	movedAny := false
	for _, filePath := range scene.Files {
		logger.Info("checking scene file", logging.String("path", logging.TruncatePath(filePath)))
		locator := placement.NewLocator(filePath, movie.Path, r.table, logger)
		source, err := locator.Locate()
		if err != nil {
			logger.Warn("skipping unlocatable file",
				logging.String("path", logging.TruncatePath(filePath)),
				logging.Error(err),
			)
			continue
		}
		if !moveFiles {
			continue
		}
		moved, err := locator.Move(ctx, source)
		if err != nil {
			logger.Error("file move failed",
				logging.String("source", logging.TruncatePath(source)),
				logging.Error(err),
			)
			continue
		}
		movedAny = movedAny || moved
	}
	return movedAny
}

// checkMoveTarget preflights write access on the mapped managed directory.
// The movie folder may not exist until the first move creates it, so the
// check falls back to the nearest existing parent.
func (r *Reconciler) checkMoveTarget(moviePath string) error {
	dir := r.table.Rewrite(moviePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		dir = filepath.Dir(dir)
	}
	return placement.CheckWritable(dir)
}

// importScene fetches the fresh import preview and submits a manual import
// for every scene file found in it. Reports whether anything was imported.
func (r *Reconciler) importScene(ctx context.Context, logger *slog.Logger, scene *stash.Scene, movie *whisparr.Movie) (bool, error) {
	countsMatch := movie.Statistics.MovieFileCount == len(scene.Files)

	previews, err := r.client.ManualImportPreview(ctx, movie.Path, movie.ID)
	if err != nil {
		if countsMatch {
			logger.Info("files already imported to whisparr")
			return false, nil
		}
		return false, fmt.Errorf("%w: preview: %w", ErrImport, err)
	}

	matched := matchPreviews(scene.Files, previews)
	if len(matched) == 0 {
		logger.Info("all files already imported to whisparr")
		return false, nil
	}

	imported := false
	for _, preview := range matched {
		files := []whisparr.ImportFile{{
			Path:       preview.Path,
			MovieID:    movie.ID,
			FolderName: preview.FolderName,
			Quality:    preview.Quality,
		}}
		if _, err := r.client.ManualImport(ctx, files); err != nil {
			if countsMatch {
				logger.Info("import rejected but file counts match, treating as imported",
					logging.String("file", logging.TruncatePath(preview.Path)),
				)
				continue
			}
			return imported, fmt.Errorf("%w: %s: %w", ErrImport, baseName(preview.Path), err)
		}
		logger.Info("manual import executed", logging.String("file", logging.TruncatePath(preview.Path)))
		imported = true
	}
	return imported, nil
}

// finalize issues the post-import command: rename when enabled, refresh
// otherwise. Best-effort; failures never fail the scene.
func (r *Reconciler) finalize(ctx context.Context, logger *slog.Logger, movie *whisparr.Movie) {
	var err error
	command := "RefreshMovie"
	if r.cfg.Whisparr.Rename {
		command = "RenameFiles"
		_, err = r.client.RenameFiles(ctx, movie.ID)
	} else {
		_, err = r.client.RefreshMovie(ctx, movie.ID)
	}
	if err != nil {
		logger.Warn("post-import command failed",
			logging.String("command", command),
			logging.Error(err),
		)
		return
	}
	logger.Info("post-import command queued",
		logging.String("command", command),
		logging.Int64("movie_id", movie.ID),
	)
}
