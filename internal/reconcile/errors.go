package reconcile

import "errors"

var (
	// ErrDuplicateEntry indicates more than one Whisparr entry is bound to
	// one StashDB ID. Operator data inconsistency; never retried.
	ErrDuplicateEntry = errors.New("duplicate whisparr entries for stashdb id")

	// ErrImport indicates the manual-import step was rejected while the
	// expected and on-disk file counts disagree.
	ErrImport = errors.New("manual import failed")

	// ErrNoRootFolders indicates Whisparr reports no storage roots, leaving
	// nowhere to create an entry.
	ErrNoRootFolders = errors.New("whisparr reports no root folders")
)
