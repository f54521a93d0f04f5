package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
	"BazaarBot/bot/workflows/helprequest"
	"BazaarBot/bot/workflows/orderplace"
	"BazaarBot/bot/workflows/productcreate"
	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
)

// resolveUser registers the sender on first contact and refuses blocked
// users. A nil user with a nil error means the update should be dropped.
func (b *StoreBot) resolveUser(ctx context.Context, c *ext.Context) (*entity.User, error) {
	user, err := b.users.GetOrRegister(ctx, c.EffectiveUser.Id, c.EffectiveChat.Id, c.EffectiveUser.LanguageCode)
	if err != nil {
		return nil, err
	}
	if user.Blocked {
		return nil, nil
	}
	return user, nil
}

func (b *StoreBot) handleStart(bot *tgbotapi.Bot, c *ext.Context) error {
	ctx := context.Background()

	user, err := b.resolveUser(ctx, c)
	if err != nil {
		b.log.Error("resolving user on /start", sl.Err(err))
		return err
	}
	if user == nil {
		return nil
	}

	lang := i18n.Pick(user.Language)
	_, err = bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "start.welcome"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Main(lang),
	})
	if err != nil {
		return err
	}

	_, err = bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "start.choose_language"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
				{
					{Text: "فارسی 🇮🇷", CallbackData: "lang_fa"},
					{Text: "English 🇬🇧", CallbackData: "lang_en"},
				},
			},
		},
	})
	return err
}

func (b *StoreBot) handleAdmin(bot *tgbotapi.Bot, c *ext.Context) error {
	ctx := context.Background()

	user, err := b.resolveUser(ctx, c)
	if err != nil || user == nil {
		return err
	}

	lang := i18n.Pick(user.Language)
	if !user.IsAdmin {
		_, err := bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "admin.only"), nil)
		return err
	}

	_, err = bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "admin.welcome"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Admin(lang),
	})
	return err
}

// isMenu reports whether text is the given menu label in either locale.
// Reply-keyboard buttons arrive as plain text, so the label itself is
// the routing key.
func isMenu(text, key string) bool {
	return text == i18n.T(i18n.Fa, key) || text == i18n.T(i18n.En, key)
}

// handleText routes plain text: an active wizard session consumes it
// first, otherwise it is matched against the reply-keyboard labels.
func (b *StoreBot) handleText(bot *tgbotapi.Bot, c *ext.Context) error {
	ctx := context.Background()

	user, err := b.resolveUser(ctx, c)
	if err != nil || user == nil {
		return err
	}
	lang := i18n.Pick(user.Language)

	handled, err := b.engine.HandleMessage(ctx, bot, c)
	if err != nil {
		b.log.Error("text session dispatch", slog.Int64("user_id", user.TelegramId), sl.Err(err))
	}
	if handled {
		return nil
	}

	text := c.EffectiveMessage.Text
	chatID := c.EffectiveChat.Id
	owner := workflow.Owner(user.TelegramId)

	switch {
	case isMenu(text, "menu.categories"):
		return b.showCategories(ctx, bot, chatID, lang)

	case isMenu(text, "menu.cart"):
		return b.showCart(ctx, bot, chatID, user.TelegramId, lang)

	case isMenu(text, "menu.orders"):
		return b.showOrders(ctx, bot, chatID, user.TelegramId, lang)

	case isMenu(text, "menu.profile"):
		return b.showProfile(ctx, bot, chatID, user, lang)

	case isMenu(text, "menu.help"):
		return b.engine.Start(ctx, bot, owner, chatID, helprequest.WorkflowID, lang)

	case isMenu(text, "menu.admin_add_product"):
		if !user.IsAdmin {
			_, err := bot.SendMessage(chatID, i18n.T(lang, "admin.only"), nil)
			return err
		}
		return b.engine.Start(ctx, bot, owner, chatID, productcreate.WorkflowID, lang)

	case isMenu(text, "menu.admin_edit_product"):
		if !user.IsAdmin {
			_, err := bot.SendMessage(chatID, i18n.T(lang, "admin.only"), nil)
			return err
		}
		return b.showEditableProducts(ctx, bot, chatID, lang)

	case isMenu(text, "menu.admin_orders"):
		if !user.IsAdmin {
			_, err := bot.SendMessage(chatID, i18n.T(lang, "admin.only"), nil)
			return err
		}
		return b.showAdminOrders(ctx, bot, chatID, lang)

	case isMenu(text, "menu.admin_stats"):
		if !user.IsAdmin {
			_, err := bot.SendMessage(chatID, i18n.T(lang, "admin.only"), nil)
			return err
		}
		return b.showStats(ctx, bot, chatID, lang)
	}

	return nil
}

// handleContact stores a shared phone number. An active wizard session
// gets first claim on the contact.
func (b *StoreBot) handleContact(bot *tgbotapi.Bot, c *ext.Context) error {
	ctx := context.Background()

	user, err := b.resolveUser(ctx, c)
	if err != nil || user == nil {
		return err
	}
	lang := i18n.Pick(user.Language)

	handled, err := b.engine.HandleContact(ctx, bot, c)
	if err != nil {
		b.log.Error("contact session dispatch", slog.Int64("user_id", user.TelegramId), sl.Err(err))
	}
	if handled {
		return nil
	}

	contact := c.EffectiveMessage.Contact
	if contact == nil {
		return nil
	}
	if contact.UserId != user.TelegramId {
		_, err := bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "contact.own_only"), nil)
		return err
	}

	if err := b.users.SavePhone(ctx, user.TelegramId, contact.PhoneNumber); err != nil {
		b.log.Error("saving phone", slog.Int64("user_id", user.TelegramId), sl.Err(err))
		_, _ = bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "error.generic"), nil)
		return err
	}

	_, err = bot.SendMessage(c.EffectiveChat.Id, i18n.T(lang, "contact.saved", contact.PhoneNumber), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Main(lang),
	})
	return err
}

// startOrderPlacement opens the checkout wizard for the user's cart.
func (b *StoreBot) startOrderPlacement(ctx context.Context, bot *tgbotapi.Bot, user *entity.User, chatID int64) error {
	return b.engine.Start(ctx, bot, workflow.Owner(user.TelegramId), chatID, orderplace.WorkflowID, i18n.Pick(user.Language))
}

// RunReceiptJanitor periodically expires pending receipts that never
// got a photo. Meant to run as a goroutine.
func (b *StoreBot) RunReceiptJanitor(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := b.receipts.Sweep(ttl); removed > 0 {
				b.log.Info("expired pending receipts", slog.Int("count", removed))
			}
		}
	}
}
