// Command stashsync reconciles Stash scenes with a Whisparr catalog. It runs
// as a Stash plugin hook (JSON payload on stdin), as a direct CLI for one
// scene, or in bulk over every scene in the Stash database.
package main
