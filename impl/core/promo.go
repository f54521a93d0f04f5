package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"BazaarBot/entity"
)

// PromoRepository is the promo-code persistence surface.
type PromoRepository interface {
	SavePromoCodes(codes []entity.PromoCode) error
	GetAllPromoCodes() ([]entity.PromoCode, error)
	GetPromoCode(code string) (*entity.PromoCode, error)
	MarkPromoUsed(code string, telegramId int64) error
}

func (c *Core) SetPromoRepository(repo PromoRepository) {
	c.promo = repo
}

const promoCodeLength = 8

func generateCode(length int) (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}

// GeneratePromoCodes mints a batch of discount codes.
func (c *Core) GeneratePromoCodes(quantity, discount int, expiresAt time.Time) error {
	if c.promo == nil {
		return fmt.Errorf("promo repository not initialized")
	}
	if quantity <= 0 || quantity > 1000 {
		return fmt.Errorf("quantity out of range: %d", quantity)
	}
	if discount <= 0 || discount > 100 {
		return fmt.Errorf("discount out of range: %d", discount)
	}

	codes := make([]entity.PromoCode, quantity)
	for i := range codes {
		code, err := generateCode(promoCodeLength)
		if err != nil {
			return fmt.Errorf("generating code: %w", err)
		}
		codes[i] = entity.PromoCode{
			Code:      code,
			Discount:  discount,
			ExpiresAt: expiresAt,
		}
	}
	return c.promo.SavePromoCodes(codes)
}

// ActivePromoCodes returns codes that have not expired yet.
func (c *Core) ActivePromoCodes() ([]entity.PromoCode, error) {
	if c.promo == nil {
		return nil, fmt.Errorf("promo repository not initialized")
	}
	all, err := c.promo.GetAllPromoCodes()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := all[:0]
	for _, p := range all {
		if !p.Expired(now) {
			active = append(active, p)
		}
	}
	return active, nil
}
