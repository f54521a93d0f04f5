package workflow

import (
	"context"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// StepID is a unique identifier for a step within a workflow.
type StepID string

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// OwnerKey identifies who a session belongs to. EntityID is set for
// workflows that edit one specific record (e.g. product update), so the
// same user can hold an entity-scoped and a plain session apart.
type OwnerKey struct {
	UserID   int64
	EntityID string
}

// Owner builds a plain per-user key.
func Owner(userID int64) OwnerKey {
	return OwnerKey{UserID: userID}
}

// EntityOwner builds a key scoped to one record.
func EntityOwner(userID int64, entityID string) OwnerKey {
	return OwnerKey{UserID: userID, EntityID: entityID}
}

// StepResult represents the outcome of handling an event in a step.
//
// At most one of the terminal flags may be set. Complete removes the
// session after a successful finish; Cancel removes it on cancellation
// or a validation abort. A zero result keeps the session on the current
// step.
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]any
	Complete    bool
	Cancel      bool
	Error       error
}

// Step defines the interface for a single workflow step.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// Enter is called when the user enters this step. It should send any
	// prompt/keyboard to the user. Return a StepResult with NextStep set
	// to auto-transition without waiting for input.
	Enter(ctx context.Context, b *tgbotapi.Bot, state *SessionState) StepResult

	// HandleMessage processes a text message from the user.
	HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *SessionState) StepResult

	// HandleCallback processes a callback query from inline keyboard buttons.
	HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *SessionState, data string) StepResult

	// HandlePhoto processes a photo message from the user.
	HandlePhoto(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *SessionState) StepResult

	// HandleContact processes a shared contact (phone number).
	HandleContact(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *SessionState) StepResult
}

// Workflow defines the interface for a complete workflow.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// InitialStep returns the first step of the workflow.
	InitialStep() StepID

	// GetStep returns a step by its ID.
	GetStep(id StepID) (Step, bool)
}

// SessionStore holds at most one in-progress session per (owner, workflow).
type SessionStore interface {
	// Save persists a session, replacing any prior session for its key.
	Save(ctx context.Context, state *SessionState) error

	// Get retrieves the session for an exact (owner, workflow) key.
	Get(ctx context.Context, owner OwnerKey, workflowID WorkflowID) (*SessionState, error)

	// FindByUser retrieves the active session for a user regardless of
	// workflow, preferring entity-scoped sessions over plain ones.
	FindByUser(ctx context.Context, userID int64) (*SessionState, error)

	// Delete removes a session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, owner OwnerKey, workflowID WorkflowID) error
}
