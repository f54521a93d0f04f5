package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/internal/lib/sl"
)

// Engine owns the registered workflows and routes inbound updates to the
// current step of the matching session.
type Engine struct {
	workflows map[WorkflowID]Workflow
	store     SessionStore
	log       *slog.Logger
}

// NewEngine creates a workflow engine backed by the given session store.
func NewEngine(store SessionStore, log *slog.Logger) *Engine {
	return &Engine{
		workflows: make(map[WorkflowID]Workflow),
		store:     store,
		log:       log.With(sl.Module("workflow.engine")),
	}
}

// Register adds a workflow to the engine.
func (e *Engine) Register(w Workflow) {
	e.workflows[w.ID()] = w
	e.log.Info("registered workflow", slog.String("workflow_id", string(w.ID())))
}

// Start begins a workflow for an owner, replacing any prior session for
// the same (owner, workflow) key.
func (e *Engine) Start(ctx context.Context, b *tgbotapi.Bot, owner OwnerKey, chatID int64, workflowID WorkflowID, lang i18n.Lang) error {
	return e.StartWith(ctx, b, owner, chatID, workflowID, lang, nil)
}

// StartWith begins a workflow with seed data already present in the
// session, for workflows parameterized at launch.
func (e *Engine) StartWith(ctx context.Context, b *tgbotapi.Bot, owner OwnerKey, chatID int64, workflowID WorkflowID, lang i18n.Lang, seed map[string]any) error {
	w, ok := e.workflows[workflowID]
	if !ok {
		return fmt.Errorf("workflow not found: %s", workflowID)
	}

	state := NewSessionState(owner, chatID, workflowID, w.InitialStep(), lang)
	if seed != nil {
		state.MergeData(seed)
	}
	if err := e.store.Save(ctx, state); err != nil {
		return fmt.Errorf("saving initial state: %w", err)
	}

	e.log.Info("starting workflow",
		slog.Int64("user_id", owner.UserID),
		slog.String("workflow_id", string(workflowID)),
		slog.String("step_id", string(w.InitialStep())),
	)

	step, ok := w.GetStep(w.InitialStep())
	if !ok {
		return fmt.Errorf("initial step not found: %s", w.InitialStep())
	}
	return e.processResult(ctx, b, state, w, step.Enter(ctx, b, state))
}

// HandleMessage routes a text message to the user's active session.
// The first return value reports whether a session consumed the update.
func (e *Engine) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context) (bool, error) {
	return e.dispatch(ctx, b, c, func(step Step, state *SessionState) StepResult {
		return step.HandleMessage(ctx, b, c, state)
	})
}

// HandleCallback routes an inline-keyboard callback to the user's active session.
func (e *Engine) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, data string) (bool, error) {
	return e.dispatch(ctx, b, c, func(step Step, state *SessionState) StepResult {
		return step.HandleCallback(ctx, b, c, state, data)
	})
}

// HandlePhoto routes a photo message to the user's active session.
func (e *Engine) HandlePhoto(ctx context.Context, b *tgbotapi.Bot, c *ext.Context) (bool, error) {
	return e.dispatch(ctx, b, c, func(step Step, state *SessionState) StepResult {
		return step.HandlePhoto(ctx, b, c, state)
	})
}

// HandleContact routes a shared contact to the user's active session.
func (e *Engine) HandleContact(ctx context.Context, b *tgbotapi.Bot, c *ext.Context) (bool, error) {
	return e.dispatch(ctx, b, c, func(step Step, state *SessionState) StepResult {
		return step.HandleContact(ctx, b, c, state)
	})
}

// GetSession retrieves the session for an exact (owner, workflow) key.
func (e *Engine) GetSession(ctx context.Context, owner OwnerKey, workflowID WorkflowID) (*SessionState, error) {
	return e.store.Get(ctx, owner, workflowID)
}

// HasActiveSession checks whether the user has any open session.
func (e *Engine) HasActiveSession(ctx context.Context, userID int64) (bool, error) {
	state, err := e.store.FindByUser(ctx, userID)
	return state != nil, err
}

// Cancel removes a session without running its terminal action.
func (e *Engine) Cancel(ctx context.Context, owner OwnerKey, workflowID WorkflowID) error {
	return e.store.Delete(ctx, owner, workflowID)
}

func (e *Engine) dispatch(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, handle func(Step, *SessionState) StepResult) (bool, error) {
	state, err := e.store.FindByUser(ctx, c.EffectiveUser.Id)
	if err != nil {
		return false, fmt.Errorf("loading state: %w", err)
	}
	if state == nil {
		return false, nil
	}

	w, ok := e.workflows[state.WorkflowID]
	if !ok {
		// Stale session for a workflow that no longer exists; drop it.
		_ = e.store.Delete(ctx, state.Owner, state.WorkflowID)
		return false, fmt.Errorf("workflow not found: %s", state.WorkflowID)
	}

	step, ok := w.GetStep(state.CurrentStep)
	if !ok {
		_ = e.store.Delete(ctx, state.Owner, state.WorkflowID)
		return false, fmt.Errorf("step not found: %s", state.CurrentStep)
	}

	return true, e.processResult(ctx, b, state, w, handle(step, state))
}

// processResult applies a step outcome: merge draft updates, remove the
// session on a terminal result, or transition and enter the next step.
// Step errors never propagate past here with the session still alive.
func (e *Engine) processResult(ctx context.Context, b *tgbotapi.Bot, state *SessionState, w Workflow, result StepResult) error {
	if result.Error != nil {
		e.log.Error("step error",
			slog.Int64("user_id", state.Owner.UserID),
			slog.String("workflow_id", string(state.WorkflowID)),
			slog.String("step_id", string(state.CurrentStep)),
			sl.Err(result.Error),
		)
		if err := e.store.Delete(ctx, state.Owner, state.WorkflowID); err != nil {
			return err
		}
		return result.Error
	}

	if result.UpdateState != nil {
		state.MergeData(result.UpdateState)
	}
	state.UpdatedAt = time.Now()

	if result.Complete {
		e.log.Info("workflow completed",
			slog.Int64("user_id", state.Owner.UserID),
			slog.String("workflow_id", string(state.WorkflowID)),
		)
		return e.store.Delete(ctx, state.Owner, state.WorkflowID)
	}

	if result.Cancel {
		e.log.Info("workflow cancelled",
			slog.Int64("user_id", state.Owner.UserID),
			slog.String("workflow_id", string(state.WorkflowID)),
			slog.String("step_id", string(state.CurrentStep)),
		)
		return e.store.Delete(ctx, state.Owner, state.WorkflowID)
	}

	if result.NextStep != "" && result.NextStep != state.CurrentStep {
		state.CurrentStep = result.NextStep
		if err := e.store.Save(ctx, state); err != nil {
			return fmt.Errorf("saving state after transition: %w", err)
		}

		step, ok := w.GetStep(result.NextStep)
		if !ok {
			_ = e.store.Delete(ctx, state.Owner, state.WorkflowID)
			return fmt.Errorf("next step not found: %s", result.NextStep)
		}

		e.log.Debug("transitioning to step",
			slog.Int64("user_id", state.Owner.UserID),
			slog.String("step_id", string(result.NextStep)),
		)

		return e.processResult(ctx, b, state, w, step.Enter(ctx, b, state))
	}

	return e.store.Save(ctx, state)
}
