package orderplace

import (
	"context"
	"log/slog"

	"BazaarBot/bot/workflow"
	"BazaarBot/entity"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "order_place"
)

// Step IDs
const (
	StepReview workflow.StepID = "review"
	StepCommit workflow.StepID = "commit"
)

// BankDetails is the manual-transfer account shown with the payment
// instructions, taken from configuration.
type BankDetails struct {
	BankName      string
	AccountHolder string
	AccountNumber string
	IBAN          string
}

// Orders places orders. The commit is a single call: the service owns
// stock checks, decrements and their compensation on failure.
type Orders interface {
	PlaceOrder(ctx context.Context, telegramId int64) (*entity.Order, error)
}

// Users resolves buyers.
type Users interface {
	ByTelegramId(ctx context.Context, telegramId int64) (*entity.User, error)
}

// Carts reads cart contents for the review screen.
type Carts interface {
	GetCart(ctx context.Context, telegramId int64) (*entity.Cart, error)
}

// OrderPlaceWorkflow drives review-and-confirm order placement. After a
// successful commit it hands off to the receipt registry: the payment
// proof arrives out of band, not as the next chat turn.
type OrderPlaceWorkflow struct {
	steps    map[workflow.StepID]workflow.Step
	orders   Orders
	users    Users
	carts    Carts
	receipts *workflow.ReceiptRegistry
	bank     BankDetails
	log      *slog.Logger
}

// New creates the order placement workflow.
func New(orders Orders, users Users, carts Carts, receipts *workflow.ReceiptRegistry, bank BankDetails, log *slog.Logger) *OrderPlaceWorkflow {
	w := &OrderPlaceWorkflow{
		steps:    make(map[workflow.StepID]workflow.Step),
		orders:   orders,
		users:    users,
		carts:    carts,
		receipts: receipts,
		bank:     bank,
		log:      log,
	}
	w.registerSteps()
	return w
}

// ID returns the workflow ID.
func (w *OrderPlaceWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

// InitialStep returns the first step.
func (w *OrderPlaceWorkflow) InitialStep() workflow.StepID {
	return StepReview
}

// GetStep returns a step by ID.
func (w *OrderPlaceWorkflow) GetStep(id workflow.StepID) (workflow.Step, bool) {
	step, ok := w.steps[id]
	return step, ok
}

func (w *OrderPlaceWorkflow) registerSteps() {
	w.steps[StepReview] = NewReviewStep(w.users, w.carts)
	w.steps[StepCommit] = NewCommitStep(w.orders, w.receipts, w.bank, w.log)
}
