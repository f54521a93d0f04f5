package entity

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID         string    `json:"id" bson:"id"`
	ProductID  string    `json:"product_id" bson:"product_id" validate:"required"`
	TelegramId int64     `json:"telegram_id" bson:"telegram_id"`
	Rating     int       `json:"rating" bson:"rating" validate:"gte=1,lte=5"`
	Comment    string    `json:"comment" bson:"comment"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

func NewFeedback(productID string, telegramId int64, rating int, comment string) *Feedback {
	return &Feedback{
		ID:         uuid.NewString(),
		ProductID:  productID,
		TelegramId: telegramId,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}
}
