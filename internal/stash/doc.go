// Package stash talks to the Stash metadata server, the authoritative
// source for scenes, their tags, files, and external bindings.
//
// Scenes are fetched over Stash's GraphQL endpoint. Bulk mode bypasses
// GraphQL pagination and enumerates scene IDs straight from the Stash sqlite
// database, opened read-only so a running Stash instance is never disturbed.
package stash
