package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow"
	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
)

// handlePhoto routes an incoming photo. A pending receipt for the sender
// takes precedence over any open wizard session; a photo that matches
// neither is ignored.
func (b *StoreBot) handlePhoto(bot *tgbotapi.Bot, c *ext.Context) error {
	ctx := context.Background()

	if pending := b.receipts.FindByUser(c.EffectiveUser.Id); pending != nil {
		if b.receipts.Resolve(pending.OrderID) {
			return b.processReceipt(ctx, bot, c, pending)
		}
	}

	handled, err := b.engine.HandlePhoto(ctx, bot, c)
	if err != nil {
		b.log.Error("photo session dispatch", sl.Err(err))
	}
	if handled {
		return err
	}
	return nil
}

// processReceipt downloads the payment proof, attaches it to the order
// and fans the photo out to the admins for validation. On any failure
// the pending entry is re-registered so the buyer can simply resend.
func (b *StoreBot) processReceipt(ctx context.Context, bot *tgbotapi.Bot, c *ext.Context, pending *workflow.PendingReceipt) error {
	photos := c.EffectiveMessage.Photo
	if len(photos) == 0 {
		b.receipts.Register(pending.OrderID, pending.UserID, pending.ChatID, pending.Lang)
		return nil
	}
	// Telegram orders photo sizes ascending, the last one is full resolution.
	fileID := photos[len(photos)-1].FileId

	data, mimeType, err := b.DownloadPhoto(ctx, fileID)
	if err != nil {
		b.log.Error("downloading receipt photo", slog.String("order_id", pending.OrderID), sl.Err(err))
		b.receipts.Register(pending.OrderID, pending.UserID, pending.ChatID, pending.Lang)
		_, _ = bot.SendMessage(pending.ChatID, i18n.T(pending.Lang, "receipt.failed"), nil)
		return err
	}

	ord, err := b.orders.AttachReceipt(ctx, pending.OrderID, data, mimeType)
	if err != nil {
		b.log.Error("attaching receipt", slog.String("order_id", pending.OrderID), sl.Err(err))
		b.receipts.Register(pending.OrderID, pending.UserID, pending.ChatID, pending.Lang)
		_, _ = bot.SendMessage(pending.ChatID, i18n.T(pending.Lang, "receipt.failed"), nil)
		return err
	}

	b.log.Info("receipt attached",
		slog.String("order_id", ord.ID),
		slog.Int64("order_number", ord.Number),
		slog.Int64("user_id", pending.UserID),
	)

	_, err = bot.SendMessage(pending.ChatID, i18n.T(pending.Lang, "receipt.received"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: menus.Main(pending.Lang),
	})
	if err != nil {
		return err
	}

	b.notifyAdminsReceipt(ctx, bot, ord, fileID)
	return nil
}

// notifyAdminsReceipt resends the receipt photo to every admin with
// approve/reject buttons, each in the admin's own locale.
func (b *StoreBot) notifyAdminsReceipt(ctx context.Context, bot *tgbotapi.Bot, ord *entity.Order, fileID string) {
	admins, err := b.users.Admins(ctx)
	if err != nil {
		b.log.Error("listing admins", sl.Err(err))
		return
	}

	for _, admin := range admins {
		lang := i18n.Pick(admin.Language)
		_, err := bot.SendPhoto(admin.ChatId, tgbotapi.InputFileByID(fileID), &tgbotapi.SendPhotoOpts{
			Caption: i18n.T(lang, "receipt.admin_caption", ord.Number, ord.TrackingNumber, ord.TotalAmount, ord.TelegramId),
			ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
				InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
					{
						{Text: i18n.T(lang, "receipt.approve_btn"), CallbackData: "approve_payment_" + ord.ID},
						{Text: i18n.T(lang, "receipt.reject_btn"), CallbackData: "reject_payment_" + ord.ID},
					},
				},
			},
		})
		if err != nil {
			b.log.Error("notifying admin about receipt",
				slog.Int64("admin_id", admin.TelegramId),
				slog.String("order_id", ord.ID),
				sl.Err(err),
			)
		}
	}
}

// handlePaymentDecision applies an admin's approve/reject verdict and
// tells the buyer about it in the buyer's locale.
func (b *StoreBot) handlePaymentDecision(ctx context.Context, bot *tgbotapi.Bot, c *ext.Context, orderID string, approved bool) error {
	admin, err := b.users.ByTelegramId(ctx, c.EffectiveUser.Id)
	if err != nil {
		return err
	}
	adminLang := i18n.Fa
	if admin != nil {
		adminLang = i18n.Pick(admin.Language)
	}
	if admin == nil || !admin.IsAdmin {
		_, err := bot.SendMessage(c.EffectiveChat.Id, i18n.T(adminLang, "admin.only"), nil)
		return err
	}

	ord, err := b.orders.SetPaymentValidated(ctx, orderID, approved)
	if err != nil {
		b.log.Error("setting payment verdict", slog.String("order_id", orderID), sl.Err(err))
		_, _ = bot.SendMessage(c.EffectiveChat.Id, i18n.T(adminLang, "error.generic"), nil)
		return err
	}

	b.log.Info("payment verdict applied",
		slog.String("order_id", ord.ID),
		slog.Bool("approved", approved),
		slog.Int64("admin_id", c.EffectiveUser.Id),
	)

	_, _ = bot.SendMessage(c.EffectiveChat.Id,
		i18n.T(adminLang, "order.status_updated", ord.Number, i18n.T(adminLang, "status."+ord.Status)), nil)

	buyer, err := b.users.ByTelegramId(ctx, ord.TelegramId)
	if err != nil || buyer == nil {
		b.log.Warn("buyer lookup for payment notice failed", slog.Int64("telegram_id", ord.TelegramId), sl.Err(err))
		return nil
	}

	key := "receipt.payment_approved"
	if !approved {
		key = "receipt.payment_rejected"
	}
	_, err = bot.SendMessage(buyer.ChatId, i18n.T(i18n.Pick(buyer.Language), key), nil)
	if err != nil {
		b.log.Error("notifying buyer about payment verdict", slog.Int64("chat_id", buyer.ChatId), sl.Err(err))
	}
	return nil
}
