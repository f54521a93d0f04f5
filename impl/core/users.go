package core

import (
	"context"
	"fmt"

	"BazaarBot/entity"
)

func (c *Core) GetUser(telegramId int64) (*entity.User, error) {
	if c.users == nil {
		return nil, fmt.Errorf("user service not initialized")
	}
	return c.users.ByTelegramId(context.Background(), telegramId)
}

func (c *Core) ListUsers() ([]entity.User, error) {
	if c.users == nil {
		return nil, fmt.Errorf("user service not initialized")
	}
	return c.users.Users(context.Background())
}

func (c *Core) BlockUser(telegramId int64, block bool) error {
	if c.users == nil {
		return fmt.Errorf("user service not initialized")
	}
	return c.users.Block(context.Background(), telegramId, block)
}
