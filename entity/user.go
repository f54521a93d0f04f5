package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LangFa = "fa"
	LangEn = "en"
)

type User struct {
	UUID       string    `json:"uuid" bson:"uuid"`
	TelegramId int64     `json:"telegram_id" bson:"telegram_id" validate:"required"`
	ChatId     int64     `json:"chat_id" bson:"chat_id"`
	FullName   string    `json:"full_name" bson:"full_name" validate:"omitempty"`
	Phone      string    `json:"phone" bson:"phone" validate:"omitempty"`
	Email      string    `json:"email" bson:"email" validate:"omitempty,email"`
	Address    string    `json:"address" bson:"address" validate:"omitempty"`
	Language   string    `json:"language" bson:"language"`
	IsAdmin    bool      `json:"is_admin" bson:"is_admin"`
	Blocked    bool      `json:"blocked" bson:"blocked"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	LastSeen   time.Time `json:"last_seen" bson:"last_seen"`
}

func NewUser(telegramId, chatId int64, language string) *User {
	if language != LangEn {
		language = LangFa
	}
	return &User{
		UUID:       uuid.NewString(),
		TelegramId: telegramId,
		ChatId:     chatId,
		Language:   language,
		CreatedAt:  time.Now(),
		LastSeen:   time.Now(),
	}
}

// Lang returns the user's locale, defaulting to Farsi.
func (u *User) Lang() string {
	if u == nil || u.Language == "" {
		return LangFa
	}
	return u.Language
}

// ProfileComplete reports whether the user has enough data to place an order.
func (u *User) ProfileComplete() bool {
	return u.FullName != "" && u.Phone != "" && u.Address != ""
}
