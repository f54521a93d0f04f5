package entity

import (
	"BazaarBot/internal/lib/validate"
	"net/http"
)

// APIUser is an authenticated caller of the back-office REST API.
type APIUser struct {
	Username string `json:"username" bson:"username" validate:"required"`
	Token    string `json:"token" bson:"token" validate:"required,min=1"`
}

func (u *APIUser) Bind(_ *http.Request) error {
	return validate.Struct(u)
}
