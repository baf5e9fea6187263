// Package pathmap rewrites library-reported paths into locally valid ones
// using an ordered prefix table.
//
// Stash and Whisparr frequently see the same storage through different mount
// points (container volumes, NFS exports). The table pairs a server-side
// prefix with the local prefix that replaces it; the first matching pair wins
// and unmatched paths pass through unchanged.
package pathmap
