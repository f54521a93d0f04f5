package feedback

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
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

// RateStep - pick a 1-5 rating from an inline row
type RateStep struct {
	BaseStep
	catalog Catalog
}

func NewRateStep(catalog Catalog) *RateStep {
	return &RateStep{BaseStep: BaseStep{id: StepRate}, catalog: catalog}
}

func (s *RateStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	product, err := s.catalog.GetProduct(ctx, state.Owner.EntityID)
	if err != nil || product == nil {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "product.not_found"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Main(state.Lang),
		})
		return workflow.StepResult{Cancel: true}
	}

	row := make([]tgbotapi.InlineKeyboardButton, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		value := strconv.Itoa(rating)
		row = append(row, tgbotapi.InlineKeyboardButton{
			Text:         value + " ⭐",
			CallbackData: workflow.BuildCallback(workflow.ActionSelect, value),
		})
	}

	_, err = b.SendMessage(state.ChatID, i18n.T(state.Lang, "feedback.ask_rating", product.Name), &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{row},
		},
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *RateStep) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState, data string) workflow.StepResult {
	cb := workflow.ParseCallback(data)
	if cb == nil {
		return workflow.StepResult{}
	}

	rating, err := strconv.Atoi(cb.SelectedID())
	if err != nil || rating < 1 || rating > 5 {
		return workflow.StepResult{}
	}

	return workflow.StepResult{
		NextStep:    StepComment,
		UpdateState: map[string]any{KeyRating: rating},
	}
}

// CommentStep - optional comment, "-" skips, then commit
type CommentStep struct {
	BaseStep
	catalog Catalog
	log     *slog.Logger
}

func NewCommentStep(catalog Catalog, log *slog.Logger) *CommentStep {
	return &CommentStep{BaseStep: BaseStep{id: StepComment}, catalog: catalog, log: log}
}

func (s *CommentStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "feedback.ask_comment"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *CommentStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	comment := strings.TrimSpace(c.EffectiveMessage.Text)
	if comment == "-" {
		comment = ""
	}

	rating := state.GetInt(KeyRating)
	_, err := s.catalog.AddFeedback(ctx, state.Owner.EntityID, state.Owner.UserID, rating, comment)
	if err != nil {
		s.log.Error("feedback commit",
			slog.String("product_id", state.Owner.EntityID),
			slog.Int64("user_id", state.Owner.UserID),
			sl.Err(err),
		)
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "error.generic"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menus.Main(state.Lang),
		})
		return workflow.StepResult{Error: err}
	}

	_, err = b.SendMessage(state.ChatID, i18n.T(state.Lang, "feedback.saved"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Main(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Complete: true}
}
