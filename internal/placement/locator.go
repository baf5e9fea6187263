package placement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"stashsync/internal/logging"
	"stashsync/internal/pathmap"
)

// ErrNotFound indicates neither mapped location holds the file.
var ErrNotFound = errors.New("file not found at either candidate location")

const (
	defaultMoveRetries = 5
	defaultMoveDelay   = 500 * time.Millisecond
)

// Locator resolves and relocates a single scene file between the Stash
// directory and the Whisparr-managed directory. Both directories are passed
// through the mapping table at construction.
type Locator struct {
	libraryDir string
	targetDir  string
	name       string
	logger     *slog.Logger

	// moveRetries and moveDelay bound the post-move confirmation polling.
	moveRetries int
	moveDelay   time.Duration
}

// NewLocator builds a Locator for the file named by libraryPath, destined for
// targetDir. The mapping table rewrites both sides into local paths.
func NewLocator(libraryPath, targetDir string, table pathmap.Table, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = logging.NewNop()
	}
	name := filepath.Base(libraryPath)
	return &Locator{
		libraryDir:  filepath.Clean(table.Rewrite(filepath.Dir(libraryPath))),
		targetDir:   filepath.Clean(table.Rewrite(targetDir)),
		name:        name,
		logger:      logger.With(logging.String(logging.FieldComponent, "placement")),
		moveRetries: defaultMoveRetries,
		moveDelay:   defaultMoveDelay,
	}
}

// Name returns the file name shared by both candidate locations.
func (l *Locator) Name() string { return l.name }

// TargetPath returns the mapped destination path for the file.
func (l *Locator) TargetPath() string { return filepath.Join(l.targetDir, l.name) }

// Locate returns the path that currently holds the file. The Stash-side
// candidate wins when both exist. When neither exists both candidates are
// logged at error level before ErrNotFound is returned.
func (l *Locator) Locate() (string, error) {
	source := filepath.Join(l.libraryDir, l.name)
	target := l.TargetPath()

	if source == target {
		if fileExists(source) {
			l.logger.Debug("source and destination are the same file", logging.String("path", logging.TruncatePath(source)))
			return source, nil
		}
	}

	if fileExists(source) {
		l.logger.Debug("file is in the stash directory", logging.String("path", logging.TruncatePath(source)))
		return source, nil
	}
	if fileExists(target) {
		l.logger.Debug("file is in the whisparr directory", logging.String("path", logging.TruncatePath(target)))
		return target, nil
	}

	l.logger.Error("unable to locate file",
		logging.String("source", source),
		logging.String("destination", target),
	)
	return "", fmt.Errorf("%w: source %s, destination %s", ErrNotFound, source, target)
}

// Move relocates source into the target directory and polls until the
// destination is visible. It reports false without error when the file is
// already in place or the source is gone; errors are for the caller to log,
// never to abort on.
func (l *Locator) Move(ctx context.Context, source string) (bool, error) {
	info, err := os.Stat(source)
	if err != nil || info.IsDir() {
		l.logger.Warn("source file does not exist", logging.String("source", source))
		return false, nil
	}

	target := l.TargetPath()
	if filepath.Clean(source) == target {
		l.logger.Info("file is already in the correct directory", logging.String("path", logging.TruncatePath(target)))
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create target directory: %w", err)
	}

	l.logger.Info("moving file",
		logging.String("source", logging.TruncatePath(source)),
		logging.String("destination", logging.TruncatePath(target)),
	)
	if err := rename(source, target); err != nil {
		return false, err
	}

	delay := l.moveDelay
	for attempt := 0; attempt < l.moveRetries; attempt++ {
		if fileExists(target) {
			l.logger.Info("file moved successfully", logging.String("destination", logging.TruncatePath(target)))
			return true, nil
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
		delay *= 2
	}

	l.logger.Warn("move completed but target not visible after retries", logging.String("destination", target))
	return false, nil
}

// rename moves source to target, falling back to copy-and-remove when the
// two paths live on different filesystems.
func rename(source, target string) error {
	if err := os.Rename(source, target); err != nil {
		var linkErr *os.LinkError
		if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
			if err := copyFileContents(source, target); err != nil {
				return fmt.Errorf("copy file across devices: %w", err)
			}
			if err := os.Remove(source); err != nil {
				return fmt.Errorf("remove source after copy: %w", err)
			}
			return nil
		}
		return fmt.Errorf("move file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
