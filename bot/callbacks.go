package bot

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/workflow"
	"BazaarBot/bot/workflows/feedback"
	"BazaarBot/bot/workflows/productupdate"
	"BazaarBot/bot/workflows/profileedit"
	"BazaarBot/internal/lib/sl"
)

// handleCallback routes inline-keyboard presses. Wizard callbacks go to
// the engine; everything else is matched by prefix.
func (b *StoreBot) handleCallback(bot *tgbotapi.Bot, c *ext.Context) error {
	ctx := context.Background()
	cq := c.CallbackQuery
	data := cq.Data

	// Stop the client-side spinner regardless of what the press does.
	if _, err := cq.Answer(bot, nil); err != nil {
		b.log.Warn("answering callback query", sl.Err(err))
	}

	user, err := b.resolveUser(ctx, c)
	if err != nil || user == nil {
		return err
	}
	lang := i18n.Pick(user.Language)
	chatID := c.EffectiveChat.Id

	if workflow.IsWorkflowCallback(data) {
		handled, err := b.engine.HandleCallback(ctx, bot, c, data)
		if err != nil {
			b.log.Error("callback session dispatch", slog.Int64("user_id", user.TelegramId), sl.Err(err))
		}
		if !handled {
			b.log.Debug("wizard callback without a session", slog.String("data", data))
		}
		return nil
	}

	switch {
	case data == "lang_fa" || data == "lang_en":
		code := strings.TrimPrefix(data, "lang_")
		if err := b.users.SetLanguage(ctx, user.TelegramId, code); err != nil {
			b.log.Error("setting language", slog.Int64("user_id", user.TelegramId), sl.Err(err))
			return err
		}
		lang = i18n.Pick(code)
		_, err := bot.SendMessage(chatID, i18n.T(lang, "start.welcome"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: menuFor(user.IsAdmin, lang),
		})
		return err

	case data == "back_categories":
		return b.showCategories(ctx, bot, chatID, lang)

	case strings.HasPrefix(data, "cat_"):
		return b.showCategory(ctx, bot, chatID, strings.TrimPrefix(data, "cat_"), lang)

	case strings.HasPrefix(data, "add_cart_"):
		return b.addToCart(ctx, bot, chatID, user.TelegramId, strings.TrimPrefix(data, "add_cart_"), lang)

	case data == "cart_place":
		return b.startOrderPlacement(ctx, bot, user, chatID)

	case data == "cart_clear":
		return b.clearCart(ctx, bot, chatID, user.TelegramId, lang)

	case strings.HasPrefix(data, "profile_edit_"):
		field := strings.TrimPrefix(data, "profile_edit_")
		owner := workflow.Owner(user.TelegramId)
		return b.engine.StartWith(ctx, bot, owner, chatID, profileedit.WorkflowID, lang, profileedit.Seed(field))

	case strings.HasPrefix(data, "feedback_"):
		productID := strings.TrimPrefix(data, "feedback_")
		owner := workflow.EntityOwner(user.TelegramId, productID)
		return b.engine.Start(ctx, bot, owner, chatID, feedback.WorkflowID, lang)

	case strings.HasPrefix(data, "edit_product_"):
		if !user.IsAdmin {
			_, err := bot.SendMessage(chatID, i18n.T(lang, "admin.only"), nil)
			return err
		}
		productID := strings.TrimPrefix(data, "edit_product_")
		owner := workflow.EntityOwner(user.TelegramId, productID)
		return b.engine.Start(ctx, bot, owner, chatID, productupdate.WorkflowID, lang)

	case strings.HasPrefix(data, "approve_payment_"):
		return b.handlePaymentDecision(ctx, bot, c, strings.TrimPrefix(data, "approve_payment_"), true)

	case strings.HasPrefix(data, "reject_payment_"):
		return b.handlePaymentDecision(ctx, bot, c, strings.TrimPrefix(data, "reject_payment_"), false)
	}

	b.log.Debug("unrecognized callback", slog.String("data", data))
	return nil
}
