package core

import (
	"fmt"

	"BazaarBot/entity"
)

// AuthenticateByToken resolves an API token to a caller. The configured
// root key always wins; everything else goes through stored API keys,
// cached after the first lookup.
func (c *Core) AuthenticateByToken(token string) (*entity.APIUser, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}

	if c.authKey != "" && token == c.authKey {
		return &entity.APIUser{Username: "root", Token: token}, nil
	}

	c.mu.RLock()
	username, cached := c.keys[token]
	c.mu.RUnlock()
	if cached {
		return &entity.APIUser{Username: username, Token: token}, nil
	}

	if c.repo == nil {
		return nil, fmt.Errorf("repository not initialized")
	}

	username, err := c.repo.CheckApiKey(token)
	if err != nil {
		return nil, fmt.Errorf("token not found: %w", err)
	}

	c.mu.Lock()
	c.keys[token] = username
	c.mu.Unlock()

	return &entity.APIUser{Username: username, Token: token}, nil
}

// CheckApiKey lets the websocket upgrade path reuse the same key store.
func (c *Core) CheckApiKey(key string) (string, error) {
	user, err := c.AuthenticateByToken(key)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

func (c *Core) GenerateApiKey(username string) (string, error) {
	if c.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	return c.repo.GenerateApiKey(username)
}
