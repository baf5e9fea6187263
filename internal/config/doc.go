// Package config loads, normalizes, and validates stashsync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and validates the Stash and Whisparr
// connection settings every command needs. Path mappings are declared as an
// array of tables so their order survives decoding; the mapper applies them
// first-match-wins.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
