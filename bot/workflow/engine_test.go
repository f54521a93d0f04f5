package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/stretchr/testify/require"

	"BazaarBot/bot/i18n"
)

// scriptedStep returns canned results and records what it saw.
type scriptedStep struct {
	id        StepID
	onEnter   func(state *SessionState) StepResult
	onMessage func(state *SessionState, text string) StepResult
	entered   int
}

func (s *scriptedStep) ID() StepID { return s.id }

func (s *scriptedStep) Enter(_ context.Context, _ *tgbotapi.Bot, state *SessionState) StepResult {
	s.entered++
	if s.onEnter != nil {
		return s.onEnter(state)
	}
	return StepResult{}
}

func (s *scriptedStep) HandleMessage(_ context.Context, _ *tgbotapi.Bot, c *ext.Context, state *SessionState) StepResult {
	if s.onMessage != nil {
		return s.onMessage(state, c.EffectiveMessage.Text)
	}
	return StepResult{}
}

func (s *scriptedStep) HandleCallback(_ context.Context, _ *tgbotapi.Bot, _ *ext.Context, _ *SessionState, _ string) StepResult {
	return StepResult{}
}

func (s *scriptedStep) HandlePhoto(_ context.Context, _ *tgbotapi.Bot, _ *ext.Context, _ *SessionState) StepResult {
	return StepResult{}
}

func (s *scriptedStep) HandleContact(_ context.Context, _ *tgbotapi.Bot, _ *ext.Context, _ *SessionState) StepResult {
	return StepResult{}
}

type scriptedWorkflow struct {
	id      WorkflowID
	initial StepID
	steps   map[StepID]Step
}

func (w *scriptedWorkflow) ID() WorkflowID       { return w.id }
func (w *scriptedWorkflow) InitialStep() StepID  { return w.initial }
func (w *scriptedWorkflow) GetStep(id StepID) (Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textUpdate(userID int64, text string) *ext.Context {
	return &ext.Context{
		EffectiveUser:    &tgbotapi.User{Id: userID},
		EffectiveChat:    &tgbotapi.Chat{Id: userID},
		EffectiveMessage: &tgbotapi.Message{Text: text},
	}
}

func twoStepWorkflow(id WorkflowID) (*scriptedWorkflow, *scriptedStep, *scriptedStep) {
	ask := &scriptedStep{
		id: "ask",
		onMessage: func(_ *SessionState, text string) StepResult {
			if text == "" {
				return StepResult{Cancel: true}
			}
			return StepResult{NextStep: "done", UpdateState: map[string]any{"value": text}}
		},
	}
	done := &scriptedStep{id: "done"}
	w := &scriptedWorkflow{
		id:      id,
		initial: "ask",
		steps:   map[StepID]Step{"ask": ask, "done": done},
	}
	return w, ask, done
}

func TestStartCreatesSessionAtInitialStep(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	w, ask, _ := twoStepWorkflow("wizard")
	engine.Register(w)

	err := engine.Start(context.Background(), nil, Owner(7), 7, "wizard", i18n.Fa)
	require.NoError(t, err)
	require.Equal(t, 1, ask.entered)

	state, err := store.Get(context.Background(), Owner(7), "wizard")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Equal(t, StepID("ask"), state.CurrentStep)
	require.Equal(t, i18n.Fa, state.Lang)
}

func TestStartUnknownWorkflow(t *testing.T) {
	engine := NewEngine(NewMemoryStore(), testLogger())

	err := engine.Start(context.Background(), nil, Owner(7), 7, "missing", i18n.Fa)
	require.Error(t, err)
}

func TestMessageAdvancesToNextStep(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	w, _, done := twoStepWorkflow("wizard")
	engine.Register(w)

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "wizard", i18n.En))

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, "hello"))
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, 1, done.entered)

	state, err := store.Get(context.Background(), Owner(7), "wizard")
	require.NoError(t, err)
	require.NotNil(t, state)
	require.Equal(t, StepID("done"), state.CurrentStep)
	require.Equal(t, "hello", state.GetString("value"))
}

func TestMessageWithoutSessionFallsThrough(t *testing.T) {
	engine := NewEngine(NewMemoryStore(), testLogger())
	w, _, _ := twoStepWorkflow("wizard")
	engine.Register(w)

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, "hello"))
	require.NoError(t, err)
	require.False(t, handled)
}

func TestSessionIsolationBetweenUsers(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	w, _, _ := twoStepWorkflow("wizard")
	engine.Register(w)

	require.NoError(t, engine.Start(context.Background(), nil, Owner(1), 1, "wizard", i18n.Fa))
	require.NoError(t, engine.Start(context.Background(), nil, Owner(2), 2, "wizard", i18n.Fa))

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(1, "from one"))
	require.NoError(t, err)
	require.True(t, handled)

	one, _ := store.Get(context.Background(), Owner(1), "wizard")
	two, _ := store.Get(context.Background(), Owner(2), "wizard")
	require.Equal(t, StepID("done"), one.CurrentStep)
	require.Equal(t, StepID("ask"), two.CurrentStep)
	require.Equal(t, "", two.GetString("value"))
}

func TestStartReplacesExistingSession(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	w, ask, _ := twoStepWorkflow("wizard")
	engine.Register(w)

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "wizard", i18n.Fa))
	_, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, "draft"))
	require.NoError(t, err)

	// Second start discards the earlier draft and lands back at the
	// initial step.
	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "wizard", i18n.Fa))
	require.Equal(t, 2, ask.entered)

	state, _ := store.Get(context.Background(), Owner(7), "wizard")
	require.Equal(t, StepID("ask"), state.CurrentStep)
	require.Equal(t, "", state.GetString("value"))
	require.Equal(t, 1, store.Len())
}

func TestCancelResultRemovesSession(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	w, _, _ := twoStepWorkflow("wizard")
	engine.Register(w)

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "wizard", i18n.Fa))

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, ""))
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, 0, store.Len())
}

func TestCompleteResultRemovesSession(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	final := &scriptedStep{
		id: "final",
		onMessage: func(_ *SessionState, _ string) StepResult {
			return StepResult{Complete: true}
		},
	}
	engine.Register(&scriptedWorkflow{
		id:      "oneshot",
		initial: "final",
		steps:   map[StepID]Step{"final": final},
	})

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "oneshot", i18n.Fa))

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, "bye"))
	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, 0, store.Len())
}

func TestStepErrorClearsSession(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	boom := errors.New("commit failed")
	failing := &scriptedStep{
		id: "fail",
		onMessage: func(_ *SessionState, _ string) StepResult {
			return StepResult{Error: boom}
		},
	}
	engine.Register(&scriptedWorkflow{
		id:      "fragile",
		initial: "fail",
		steps:   map[StepID]Step{"fail": failing},
	})

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "fragile", i18n.Fa))

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, "go"))
	require.True(t, handled)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, store.Len())
}

func TestAutoTransitionOnEnter(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	second := &scriptedStep{id: "second"}
	first := &scriptedStep{
		id: "first",
		onEnter: func(_ *SessionState) StepResult {
			return StepResult{NextStep: "second"}
		},
	}
	engine.Register(&scriptedWorkflow{
		id:      "chained",
		initial: "first",
		steps:   map[StepID]Step{"first": first, "second": second},
	})

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "chained", i18n.Fa))
	require.Equal(t, 1, second.entered)

	state, _ := store.Get(context.Background(), Owner(7), "chained")
	require.Equal(t, StepID("second"), state.CurrentStep)
}

func TestSeedDataVisibleToInitialStep(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	var seen string
	step := &scriptedStep{
		id: "ask",
		onEnter: func(state *SessionState) StepResult {
			seen = state.GetString("field")
			return StepResult{}
		},
	}
	engine.Register(&scriptedWorkflow{
		id:      "seeded",
		initial: "ask",
		steps:   map[StepID]Step{"ask": step},
	})

	err := engine.StartWith(context.Background(), nil, Owner(7), 7, "seeded", i18n.Fa, map[string]any{"field": "phone"})
	require.NoError(t, err)
	require.Equal(t, "phone", seen)
}

func TestEntityScopedSessionHandledFirst(t *testing.T) {
	store := NewMemoryStore()
	engine := NewEngine(store, testLogger())
	plain, _, _ := twoStepWorkflow("plain")
	scoped, _, _ := twoStepWorkflow("scoped")
	engine.Register(plain)
	engine.Register(scoped)

	require.NoError(t, engine.Start(context.Background(), nil, Owner(7), 7, "plain", i18n.Fa))
	require.NoError(t, engine.Start(context.Background(), nil, EntityOwner(7, "prod-1"), 7, "scoped", i18n.Fa))

	handled, err := engine.HandleMessage(context.Background(), nil, textUpdate(7, "input"))
	require.NoError(t, err)
	require.True(t, handled)

	scopedState, _ := store.Get(context.Background(), EntityOwner(7, "prod-1"), "scoped")
	plainState, _ := store.Get(context.Background(), Owner(7), "plain")
	require.Equal(t, StepID("done"), scopedState.CurrentStep)
	require.Equal(t, StepID("ask"), plainState.CurrentStep)
}
