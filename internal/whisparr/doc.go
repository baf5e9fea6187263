// Package whisparr provides access to the Whisparr v3 API.
//
// The client serializes JSON bodies, authenticates with the X-Api-Key header,
// and retries transient failures (HTTP 500/502/503/504 and transport errors)
// with exponential backoff. Responses decode into typed payloads; when
// decoding fails the raw body is carried alongside a logged warning so
// callers can degrade instead of aborting. Requests and size-capped,
// secret-redacted response bodies are logged at debug level.
package whisparr
