package entity

import "time"

type PromoCode struct {
	Code      string    `json:"code" bson:"code" validate:"required"`
	Discount  int       `json:"discount" bson:"discount" validate:"gt=0,lte=100"`
	UsedBy    []int64   `json:"used_by" bson:"used_by"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (p *PromoCode) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}

func (p *PromoCode) UsedByUser(telegramId int64) bool {
	for _, id := range p.UsedBy {
		if id == telegramId {
			return true
		}
	}
	return false
}
