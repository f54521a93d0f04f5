package helprequest

import (
	"log/slog"

	"BazaarBot/bot/workflow"
	"BazaarBot/internal/lib/sl"
)

const WorkflowID workflow.WorkflowID = "help_request"

const (
	StepAsk workflow.StepID = "ask"
)

// HelpRequestWorkflow relays a free-text question from a customer to the
// support admin chat.
type HelpRequestWorkflow struct {
	adminChatID int64
	log         *slog.Logger
	steps       map[workflow.StepID]workflow.Step
}

func New(adminChatID int64, log *slog.Logger) *HelpRequestWorkflow {
	w := &HelpRequestWorkflow{
		adminChatID: adminChatID,
		log:         log.With(sl.Module("workflow.helprequest")),
		steps:       make(map[workflow.StepID]workflow.Step),
	}
	w.registerSteps()
	return w
}

func (w *HelpRequestWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *HelpRequestWorkflow) InitialStep() workflow.StepID {
	return StepAsk
}

func (w *HelpRequestWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	s, ok := w.steps[id]
	return s, ok
}

func (w *HelpRequestWorkflow) registerSteps() {
	w.steps[StepAsk] = NewAskStep(w.adminChatID, w.log)
}
