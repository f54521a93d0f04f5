package feedback

import (
	"context"
	"log/slog"

	"BazaarBot/bot/workflow"
	"BazaarBot/entity"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "product_feedback"
)

// Step IDs
const (
	StepRate    workflow.StepID = "rate"
	StepComment workflow.StepID = "comment"
)

// State data keys
const (
	KeyRating = "rating"
)

// Catalog records the buyer's rating. The session owner key carries
// the product id.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	AddFeedback(ctx context.Context, productID string, telegramId int64, rating int, comment string) (*entity.Feedback, error)
}

// FeedbackWorkflow asks for a 1-5 rating and an optional comment on a
// purchased product.
type FeedbackWorkflow struct {
	steps   map[workflow.StepID]workflow.Step
	catalog Catalog
	log     *slog.Logger
}

// New creates the product feedback workflow.
func New(catalog Catalog, log *slog.Logger) *FeedbackWorkflow {
	w := &FeedbackWorkflow{
		steps:   make(map[workflow.StepID]workflow.Step),
		catalog: catalog,
		log:     log,
	}
	w.registerSteps()
	return w
}

func (w *FeedbackWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *FeedbackWorkflow) InitialStep() workflow.StepID {
	return StepRate
}

func (w *FeedbackWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *FeedbackWorkflow) registerSteps() {
	w.steps[StepRate] = NewRateStep(w.catalog)
	w.steps[StepComment] = NewCommentStep(w.catalog, w.log)
}
