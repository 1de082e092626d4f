package models

// ConfirmationRequest is the UI-side view of a staged action awaiting the
// user's decision (kept here to avoid an import cycle with the event bus).
type ConfirmationRequest struct {
	ID      string // Unique identifier for this confirmation request
	Action  string // Human-readable description of the staged action
	Package string // Artifact to be deployed
	NodeID  string // Target node
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages            []Message            // Current messages to display
	Input               string               // User input field
	Status              string               // Status bar text
	Loading             bool                 // Loading state from core
	LoadingDots         int                  // Animation counter for loading dots
	Width               int                  // Terminal width
	Height              int                  // Terminal height
	ChatServiceReady    bool                 // Whether chat service is available
	PendingConfirmation *ConfirmationRequest // Current confirmation request, nil when idle
}
