// Package runner drives reconciliation: one scene on demand, or every scene
// in the Stash database in bulk mode. Bulk runs hold a file lock, record one
// outcome row per scene in a CSV ledger, and never let a scene failure stop
// the batch.
package runner
