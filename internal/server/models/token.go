package models

import (
	"time"

	"github.com/dmitrijs2005/interestnet/internal/common"
)

type Token struct {
	ID      int64
	Token   string
	Expires time.Time
	UserID  int64
}

// Valid reports whether the token has not expired at now.
func (t *Token) Valid(now time.Time) bool {
	return t.Expires.After(now)
}

// TokenEnvelope is how a token is shown to clients.
type TokenEnvelope struct {
	Token     string    `json:"token"`
	Expires   time.Time `json:"expires"`
	TokenType string    `json:"token_type"`
}

// Envelope wraps the token for rendering.
func (t *Token) Envelope() TokenEnvelope {
	return TokenEnvelope{Token: t.Token, Expires: t.Expires, TokenType: common.TokenType}
}

// AccessToken is the password-login response.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserToken is a user joined with one of its tokens.
type UserToken struct {
	User  User
	Token Token
}

// AdminView reshapes the join into the admin listing row.
func (ut UserToken) AdminView() AdminUserView {
	return AdminUserView{
		ID:          ut.User.ID,
		Email:       ut.User.Email,
		Name:        ut.User.Name,
		IsActive:    ut.User.IsActive,
		IsSuperuser: ut.User.IsSuperuser,
		Token:       ut.Token.Envelope(),
	}
}
