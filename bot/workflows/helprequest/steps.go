package helprequest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
	"BazaarBot/internal/lib/sl"
)

// AskStep collects the question and forwards it to the admin chat.
type AskStep struct {
	adminChatID int64
	log         *slog.Logger
}

func NewAskStep(adminChatID int64, log *slog.Logger) *AskStep {
	return &AskStep{adminChatID: adminChatID, log: log}
}

func (s *AskStep) ID() workflow.StepID {
	return StepAsk
}

func (s *AskStep) Enter(ctx context.Context, b *tgbotapi.Bot, state *workflow.SessionState) workflow.StepResult {
	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, "help.prompt"), nil)
	if err != nil {
		return workflow.StepResult{Error: err}
	}
	return workflow.StepResult{}
}

func (s *AskStep) HandleMessage(ctx context.Context, b *tgbotapi.Bot, c *ext.Context, state *workflow.SessionState) workflow.StepResult {
	text := strings.TrimSpace(c.EffectiveMessage.Text)
	if text == "" {
		b.SendMessage(state.ChatID, i18n.T(state.Lang, "help.empty"), nil)
		return workflow.StepResult{Cancel: true}
	}

	from := c.EffectiveUser
	relay := fmt.Sprintf("🆘 Help request\n👤 %s %s (@%s)\n🆔 %d\n\n%s",
		from.FirstName, from.LastName, from.Username, from.Id, text)

	reply := "help.sent"
	if _, err := b.SendMessage(s.adminChatID, relay, nil); err != nil {
		// 403 means the admin never opened a chat with the bot, so the
		// relay cannot be delivered at all.
		var tge *tgbotapi.TelegramError
		if errors.As(err, &tge) && tge.Code == 403 {
			reply = "help.admin_unreachable"
		}
		s.log.Error("help relay",
			slog.Int64("user_id", state.Owner.UserID),
			slog.Int64("admin_chat_id", s.adminChatID),
			sl.Err(err),
		)
	}

	_, err := b.SendMessage(state.ChatID, i18n.T(state.Lang, reply), &tgbotapi.SendMessageOpts{
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
