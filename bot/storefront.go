package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/menus"
	"BazaarBot/bot/workflow/ui"
	"BazaarBot/entity"
	"BazaarBot/internal/lib/sl"
	"BazaarBot/internal/service/cart"
)

// menuFor picks the reply keyboard matching the user's role.
func menuFor(isAdmin bool, lang i18n.Lang) tgbotapi.ReplyKeyboardMarkup {
	if isAdmin {
		return menus.Admin(lang)
	}
	return menus.Main(lang)
}

func (b *StoreBot) showCategories(ctx context.Context, bot *tgbotapi.Bot, chatID int64, lang i18n.Lang) error {
	categories, err := b.catalog.ListCategories(ctx)
	if err != nil {
		b.log.Error("listing categories", sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "product.categories_failed"), nil)
		return err
	}
	if len(categories) == 0 {
		_, err := bot.SendMessage(chatID, i18n.T(lang, "catalog.empty"), nil)
		return err
	}

	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories))
	for _, cat := range categories {
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			{Text: cat.Title(string(lang)), CallbackData: "cat_" + cat.ID},
		})
	}

	_, err = bot.SendMessage(chatID, i18n.T(lang, "catalog.categories"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard},
	})
	return err
}

// showCategory sends one message per product with an add-to-cart button,
// then a back button under a footer message.
func (b *StoreBot) showCategory(ctx context.Context, bot *tgbotapi.Bot, chatID int64, categoryID string, lang i18n.Lang) error {
	products, err := b.catalog.ListActiveByCategory(ctx, categoryID)
	if err != nil {
		b.log.Error("listing category products", slog.String("category_id", categoryID), sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}
	if len(products) == 0 {
		_, err := bot.SendMessage(chatID, i18n.T(lang, "catalog.empty"), &tgbotapi.SendMessageOpts{
			ReplyMarkup: ui.SingleButtonKeyboard(i18n.T(lang, "catalog.back"), "back_categories"),
		})
		return err
	}

	for _, p := range products {
		caption := i18n.T(lang, "catalog.product_caption", p.Name, p.Price, p.Description, p.Stock)
		_, err := bot.SendMessage(chatID, caption, &tgbotapi.SendMessageOpts{
			ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
				InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
					{
						{Text: i18n.T(lang, "catalog.add_to_cart"), CallbackData: "add_cart_" + p.ID},
						{Text: i18n.T(lang, "feedback.btn"), CallbackData: "feedback_" + p.ID},
					},
				},
			},
		})
		if err != nil {
			return err
		}
	}

	_, err = bot.SendMessage(chatID, i18n.T(lang, "catalog.products"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: ui.SingleButtonKeyboard(i18n.T(lang, "catalog.back"), "back_categories"),
	})
	return err
}

func (b *StoreBot) addToCart(ctx context.Context, bot *tgbotapi.Bot, chatID, telegramId int64, productID string, lang i18n.Lang) error {
	_, err := b.carts.AddProduct(ctx, telegramId, productID)
	if err != nil {
		if errors.Is(err, cart.ErrProductUnavailable) {
			_, err := bot.SendMessage(chatID, i18n.T(lang, "catalog.unavailable"), nil)
			return err
		}
		b.log.Error("adding product to cart", slog.String("product_id", productID), sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}

	_, err = bot.SendMessage(chatID, i18n.T(lang, "catalog.added"), nil)
	return err
}

func (b *StoreBot) showCart(ctx context.Context, bot *tgbotapi.Bot, chatID, telegramId int64, lang i18n.Lang) error {
	userCart, err := b.carts.GetCart(ctx, telegramId)
	if err != nil {
		b.log.Error("loading cart", slog.Int64("user_id", telegramId), sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}
	if userCart.IsEmpty() {
		_, err := bot.SendMessage(chatID, i18n.T(lang, "order.cart_empty"), nil)
		return err
	}

	lines := make([]string, 0, len(userCart.Items))
	for _, item := range userCart.Items {
		lines = append(lines, i18n.T(lang, "order.review_item", item.Name, item.Quantity, item.Price*int64(item.Quantity)))
	}

	_, err = bot.SendMessage(chatID, i18n.T(lang, "cart.view", strings.Join(lines, "\n"), userCart.Total()), &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
				{
					{Text: i18n.T(lang, "cart.place_btn"), CallbackData: "cart_place"},
					{Text: i18n.T(lang, "cart.clear_btn"), CallbackData: "cart_clear"},
				},
			},
		},
	})
	return err
}

func (b *StoreBot) clearCart(ctx context.Context, bot *tgbotapi.Bot, chatID, telegramId int64, lang i18n.Lang) error {
	if err := b.carts.Clear(ctx, telegramId); err != nil {
		b.log.Error("clearing cart", slog.Int64("user_id", telegramId), sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}
	_, err := bot.SendMessage(chatID, i18n.T(lang, "cart.cleared"), nil)
	return err
}

func (b *StoreBot) showOrders(ctx context.Context, bot *tgbotapi.Bot, chatID, telegramId int64, lang i18n.Lang) error {
	orders, err := b.orders.UserOrders(ctx, telegramId)
	if err != nil {
		b.log.Error("listing user orders", slog.Int64("user_id", telegramId), sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}
	if len(orders) == 0 {
		_, err := bot.SendMessage(chatID, i18n.T(lang, "orders.empty"), nil)
		return err
	}

	lines := make([]string, 0, len(orders))
	for _, ord := range orders {
		lines = append(lines, orderLine(lang, ord))
	}
	_, err = bot.SendMessage(chatID, strings.Join(lines, "\n\n"), nil)
	return err
}

func orderLine(lang i18n.Lang, ord entity.Order) string {
	status := i18n.T(lang, "status."+ord.Status)
	return i18n.T(lang, "orders.line", ord.Number, ord.TotalAmount, status, ord.TrackingNumber)
}

func (b *StoreBot) showEditableProducts(ctx context.Context, bot *tgbotapi.Bot, chatID int64, lang i18n.Lang) error {
	products, err := b.catalog.ListProducts(ctx)
	if err != nil {
		b.log.Error("listing products for edit", sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}
	if len(products) == 0 {
		_, err := bot.SendMessage(chatID, i18n.T(lang, "catalog.empty"), nil)
		return err
	}

	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(products))
	for _, p := range products {
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{
			{Text: p.Name, CallbackData: "edit_product_" + p.ID},
		})
	}

	_, err = bot.SendMessage(chatID, i18n.T(lang, "product.select_edit"), &tgbotapi.SendMessageOpts{
		ReplyMarkup: tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard},
	})
	return err
}

// showAdminOrders lists orders that still need attention: unpaid ones
// and paid ones awaiting a payment verdict.
func (b *StoreBot) showAdminOrders(ctx context.Context, bot *tgbotapi.Bot, chatID int64, lang i18n.Lang) error {
	orders, err := b.orders.OrdersByStatus(ctx, entity.OrderPending, entity.OrderPaid)
	if err != nil {
		b.log.Error("listing open orders", sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}
	if len(orders) == 0 {
		_, err := bot.SendMessage(chatID, i18n.T(lang, "orders.empty"), nil)
		return err
	}

	lines := make([]string, 0, len(orders))
	for _, ord := range orders {
		lines = append(lines, orderLine(lang, ord))
	}
	_, err = bot.SendMessage(chatID, strings.Join(lines, "\n\n"), nil)
	return err
}

func (b *StoreBot) showProfile(ctx context.Context, bot *tgbotapi.Bot, chatID int64, user *entity.User, lang i18n.Lang) error {
	_, err := bot.SendMessage(chatID,
		i18n.T(lang, "profile.view", orDash(user.FullName), orDash(user.Phone), orDash(user.Email), orDash(user.Address)),
		&tgbotapi.SendMessageOpts{
			ReplyMarkup: tgbotapi.InlineKeyboardMarkup{
				InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
					{
						{Text: i18n.T(lang, "profile.field_name"), CallbackData: "profile_edit_name"},
						{Text: i18n.T(lang, "profile.field_phone"), CallbackData: "profile_edit_phone"},
					},
					{
						{Text: i18n.T(lang, "profile.field_email"), CallbackData: "profile_edit_email"},
						{Text: i18n.T(lang, "profile.field_address"), CallbackData: "profile_edit_address"},
					},
				},
			},
		})
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (b *StoreBot) showStats(ctx context.Context, bot *tgbotapi.Bot, chatID int64, lang i18n.Lang) error {
	stats, err := b.orders.Stats(ctx, time.Now())
	if err != nil {
		b.log.Error("computing store stats", sl.Err(err))
		_, _ = bot.SendMessage(chatID, i18n.T(lang, "error.generic"), nil)
		return err
	}

	_, err = bot.SendMessage(chatID, i18n.T(lang, "stats.report",
		stats.TotalUsers, stats.TotalOrders, stats.PendingOrders, stats.MonthRevenue, stats.YearRevenue), nil)
	return err
}
