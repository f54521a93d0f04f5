package profileedit

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
)

// AskStep prompts for a single profile field and saves the reply.
type AskStep struct {
	users Users
	log   *slog.Logger
}

func NewAskStep(users Users, log *slog.Logger) *AskStep {
	return &AskStep{users: users, log: log}
}

func (s *AskStep) ID() workflow.StepID {
	return StepAsk
}

func (s *AskStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	field := state.GetString(KeyField)
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "profile.ask_"+field), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *AskStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	value := strings.TrimSpace(c.EffectiveMessage.Text)
	if value == "" {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "profile.empty"), nil)
		return workflow.StepResult{Cancel: true}
	}

	field := state.GetString(KeyField)
	if err := s.users.UpdateField(ctx, state.Owner.UserID, field, value); err != nil {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "error.generic"), nil)
		return workflow.StepResult{Error: err}
	}

	s.log.Info("profile field updated",
		slog.Int64("user_id", state.Owner.UserID),
		slog.String("field", field),
	)

	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "profile.saved"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Main(state.Lang),
	})
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{Complete: true}
}

func (s *AskStep) HandleCallback(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState, data string) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *AskStep) HandlePhoto(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

func (s *AskStep) HandleContact(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	return workflow.StepResult{}
}

var _ workflow.Step = (*AskStep)(nil)
