package ui

import (
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// ConfirmCancelKeyboard creates an inline keyboard with Confirm/Cancel buttons.
func ConfirmCancelKeyboard(confirmText, cancelText string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
			{
				{Text: confirmText, CallbackData: "wf:confirm"},
			},
			{
				{Text: cancelText, CallbackData: "wf:cancel"},
			},
		},
	}
}

// ContactRequestKeyboard creates a reply keyboard with a contact request button.
func ContactRequestKeyboard(buttonText string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		Keyboard: [][]tgbotapi.KeyboardButton{
			{
				{Text: buttonText, RequestContact: true},
			},
		},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// RemoveKeyboard creates a remove keyboard markup to hide custom keyboards.
func RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.ReplyKeyboardRemove{
		RemoveKeyboard: true,
	}
}

// SingleButtonKeyboard creates an inline keyboard with a single button.
func SingleButtonKeyboard(text, callbackData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
			{
				{Text: text, CallbackData: callbackData},
			},
		},
	}
}

// SelectableItem represents an item that can be selected from a list.
// Marked items render with a trailing check, used to highlight the
// currently assigned value in edit flows.
type SelectableItem struct {
	ID     string
	Text   string
	Marked bool
}

// SelectionKeyboard creates an inline keyboard for selecting items.
// Each item gets its own row with callback data in format "wf:select:ID".
func SelectionKeyboard(items []SelectableItem) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, len(items))
	for i, item := range items {
		text := item.Text
		if item.Marked {
			text += " ✓"
		}
		rows[i] = []tgbotapi.InlineKeyboardButton{
			{Text: text, CallbackData: "wf:select:" + item.ID},
		}
	}
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// ReplyMenu builds a persistent reply keyboard from rows of labels.
func ReplyMenu(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := make([][]tgbotapi.KeyboardButton, len(rows))
	for i, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, len(row))
		for j, label := range row {
			buttons[j] = tgbotapi.KeyboardButton{Text: label}
		}
		keyboard[i] = buttons
	}
	return tgbotapi.ReplyKeyboardMarkup{
		Keyboard:       keyboard,
		ResizeKeyboard: true,
	}
}
