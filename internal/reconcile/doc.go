// Package reconcile drives the per-scene reconciliation workflow between
// Stash and Whisparr.
//
// For each scene it locates or creates the Whisparr entry bound to the
// scene's StashDB ID, reconciles the physical file location between the two
// directory trees, and finishes Whisparr's manual-import and rename workflow.
// The sequence is forward-only and idempotent: a re-run after a partial
// failure detects already-created entries, already-placed files, and
// already-imported state instead of duplicating work.
//
// Error containment follows three rings: per-file problems are logged and
// skipped, per-scene problems abort that scene with OutcomeFailed, and
// nothing escalates past the scene boundary.
package reconcile
