package promo

import (
	"time"

	"BazaarBot/entity"
)

type Core interface {
	GeneratePromoCodes(quantity, discount int, expiresAt time.Time) error
	ActivePromoCodes() ([]entity.PromoCode, error)
}
