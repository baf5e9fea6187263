package reconcile

// Outcome is the terminal result of reconciling one scene.
type Outcome string

const (
	// OutcomeSuccess means the scene finished the workflow, including the
	// idempotent short-circuit when everything was already in place.
	OutcomeSuccess Outcome = "Success"
	// OutcomeSkippedTag means the scene carries a configured ignore tag.
	// Checked before any HTTP call.
	OutcomeSkippedTag Outcome = "SkippedTag"
	// OutcomeNoExternalID means the scene has no StashDB binding to
	// reconcile against. Checked before any HTTP call.
	OutcomeNoExternalID Outcome = "NoExternalID"
	// OutcomeFailed means a locate, create, or import step aborted the scene.
	OutcomeFailed Outcome = "Failed"
)
