// Package placement locates a scene file across the Stash-visible and
// Whisparr-managed directory trees and optionally relocates it.
//
// Both directories pass through the path mapper before any filesystem probe,
// so the same logic serves native and container deployments. Moves confirm
// the destination with bounded exponential-backoff polling because network
// filesystems can lag behind a completed rename.
package placement
