package menus

import (
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"BazaarBot/bot/i18n"
	"BazaarBot/bot/workflow/ui"
)

// Main builds the storefront reply keyboard for regular users.
func Main(lang i18n.Lang) tgbotapi.ReplyKeyboardMarkup {
	return ui.ReplyMenu([][]string{
		{i18n.T(lang, "menu.categories"), i18n.T(lang, "menu.cart")},
		{i18n.T(lang, "menu.orders"), i18n.T(lang, "menu.profile")},
		{i18n.T(lang, "menu.help")},
	})
}

// Admin builds the admin-panel reply keyboard. Wizard steps re-render
// this menu when they abort on invalid input.
func Admin(lang i18n.Lang) tgbotapi.ReplyKeyboardMarkup {
	return ui.ReplyMenu([][]string{
		{i18n.T(lang, "menu.admin_add_product"), i18n.T(lang, "menu.admin_edit_product")},
		{i18n.T(lang, "menu.admin_orders"), i18n.T(lang, "menu.admin_stats")},
	})
}
