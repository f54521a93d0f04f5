package profileedit

import (
	"context"
	"log/slog"

	"BazaarBot/bot/workflow"
	"BazaarBot/internal/lib/sl"
)

const WorkflowID workflow.WorkflowID = "profile_edit"

// Step identifiers
const (
	StepAsk workflow.StepID = "ask"
)

// Session data keys
const (
	KeyField = "field"
)

// Profile fields this workflow can edit. The field name doubles as the
// seed value and as the i18n prompt suffix (profile.ask_<field>).
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldAddress = "address"
)

// Users persists single-field profile edits.
type Users interface {
	UpdateField(ctx context.Context, telegramId int64, field, value string) error
}

type ProfileEditWorkflow struct {
	users Users
	log   *slog.Logger
	steps map[workflow.StepID]workflow.Step
}

func New(users Users, log *slog.Logger) *ProfileEditWorkflow {
	w := &ProfileEditWorkflow{
		users: users,
		log:   log.With(sl.Module("workflow.profileedit")),
		steps: make(map[workflow.StepID]workflow.Step),
	}
	w.registerSteps()
	return w
}

func (w *ProfileEditWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *ProfileEditWorkflow) InitialStep() workflow.StepID {
	return StepAsk
}

func (w *ProfileEditWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	s, ok := w.steps[id]
	return s, ok
}

func (w *ProfileEditWorkflow) registerSteps() {
	w.steps[StepAsk] = NewAskStep(w.users, w.log)
}

// Seed builds the launch data for a given profile field.
func Seed(field string) map[string]any {
	return map[string]any{KeyField: field}
}
