package cont

import (
	"context"

	"BazaarBot/entity"
)

type contextKey string

const userKey contextKey = "auth-user"

// PutUser stores the authenticated API user in the request context.
func PutUser(ctx context.Context, user *entity.APIUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser retrieves the authenticated API user from the request context.
func GetUser(ctx context.Context) *entity.APIUser {
	user, _ := ctx.Value(userKey).(*entity.APIUser)
	return user
}
