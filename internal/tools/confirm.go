package tools

// ConfirmationRequest describes a staged state-changing action that needs an
// explicit user decision before it completes.
type ConfirmationRequest struct {
	Action  string // Human-readable description
	Package string // Artifact to deploy
	NodeID  string // Target node
}

// Confirmator blocks until the user confirms or cancels a staged action.
type Confirmator interface {
	RequestConfirmation(req ConfirmationRequest) bool
}

// ConfirmationAware is implemented by tools whose execution stages an action
// behind a confirmation.
type ConfirmationAware interface {
	SetConfirmator(confirmator Confirmator)
}
