package user

import "BazaarBot/entity"

type Core interface {
	GetUser(telegramId int64) (*entity.User, error)
	ListUsers() ([]entity.User, error)
	BlockUser(telegramId int64, block bool) error
}
