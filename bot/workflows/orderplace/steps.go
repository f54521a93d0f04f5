package orderplace

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
	"BazaarBot/bot/workflow/ui"
	"BazaarBot/internal/service/order"
	"BazaarBot/internal/lib/sl"
)

// BaseStep provides common functionality for all steps.
type BaseStep struct {
	id workflow.StepID
}

func (s *BaseStep) ID() workflow.StepID {
	return s.id
}

func (s *BaseStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState, data string) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandlePhoto(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *BaseStep) HandleContact(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

// ReviewStep - show buyer details, items and total; wait for confirm
type ReviewStep struct {
	BaseStep
	users Users
	carts Carts
}

func NewReviewStep(users Users, carts Carts) *ReviewStep {
	return &ReviewStep{BaseStep: BaseStep{id: StepReview}, users: users, carts: carts}
}

func (s *ReviewStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	user, err := s.users.ByTelegramId(ctx, state.Owner.UserID)
	if err != nil || user == nil {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "error.user_not_found"), nil)
		return workflow.StepResult{Cancel: true}
	}

	cart, err := s.carts.GetCart(ctx, state.Owner.UserID)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	if cart.IsEmpty() {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "order.cart_empty"), nil)
		return workflow.StepResult{Cancel: true}
	}

	lines := make([]string, len(cart.Items))
	for i, item := range cart.Items {
		lines[i] = i18n.T(state.Lang, "order.review_item",
			item.Name, item.Quantity, item.Price*int64(item.Quantity))
	}

	review := i18n.T(state.Lang, "order.review",
		orDash(user.FullName), orDash(user.Phone), orDash(user.Address),
		strings.Join(lines, "\n"), cart.Total())

	_, err = b.SendMessage(state.ChatID, review, &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.ConfirmCancelKeyboard(
			i18n.T(state.Lang, "order.confirm_btn"),
			i18n.T(state.Lang, "order.cancel_btn"),
		),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *ReviewStep) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil {
		return workflow.StepResult{}
	}

	switch {
	case cb.IsConfirm():
		return workflow.StepResult{NextStep: StepCommit}
	case cb.IsCancel():
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "order.cancelled"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Main(state.Lang),
		})
		return workflow.StepResult{Cancel: true}
	}
	return workflow.StepResult{}
}

// CommitStep - place the order, show payment instructions, register the
// pending receipt
type CommitStep struct {
	BaseStep
	orders   Orders
	receipts *workflow.ReceiptRegistry
	bank     BankDetails
	log      *slog.Logger
}

func NewCommitStep(orders Orders, receipts *workflow.ReceiptRegistry, bank BankDetails, log *slog.Logger) *CommitStep {
	return &CommitStep{
		BaseStep: BaseStep{id: StepCommit},
		orders:   orders,
		receipts: receipts,
		bank:     bank,
		log:      log,
	}
}

func (s *CommitStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	placed, err := s.orders.PlaceOrder(ctx, state.Owner.UserID)
	if err != nil {
		s.log.Error("order commit",
			slog.Int64("user_id", state.Owner.UserID),
			sl.Err(err),
		)

		var stockErr *order.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			b.SendMessage(state.ChatID, i18n.T(state.Lang, "order.insufficient_stock", stockErr.ProductName), nil)
		case errors.Is(err, order.ErrCartEmpty):
			b.SendMessage(state.ChatID, i18n.T(state.Lang, "order.cart_empty"), nil)
		default:
			b.SendMessage(state.ChatID, i18n.T(state.Lang, "order.create_failed"), nil)
		}
		return workflow.StepResult{Error: err}
	}

	msg := i18n.T(state.Lang, "order.registered",
		placed.TrackingNumber, placed.TotalAmount,
		s.bank.BankName, s.bank.AccountHolder, s.bank.AccountNumber, s.bank.IBAN)

	_, err = b.SendMessage(state.ChatID, msg, &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Main(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}

	// The receipt photo arrives whenever the buyer gets around to paying;
	// from here on the registry owns the wait, not this session.
	s.receipts.Register(placed.ID, state.Owner.UserID, state.ChatID, state.Lang)

	s.log.Info("order placed",
		slog.String("order_id", placed.ID),
		slog.Int64("order_number", placed.Number),
		slog.String("tracking", placed.TrackingNumber),
		slog.Int64("user_id", state.Owner.UserID),
	)

	return workflow.StepResult{Complete: true}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
