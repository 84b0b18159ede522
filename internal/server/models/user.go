// Package models defines the rows persisted by the server and the view
// models the API renders from them.
package models

// User is a registered account. HashedPassword has the form "salt$digest".
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	HashedPassword string `json:"-"`
	IsActive       bool   `json:"is_active"`
	IsSuperuser    bool   `json:"is_superuser"`
}

// UserInterests is a user joined with their interests row.
type UserInterests struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Interests string `json:"interests"`
}

// UserView is the registration response: the account, its interests and the
// token issued for it.
type UserView struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Interests string        `json:"interests"`
	Token     TokenEnvelope `json:"token"`
}

// AdminUserView is one row of the admin listing: a user with the fields of
// one of its tokens nested under Token.
type AdminUserView struct {
	ID          int64         `json:"id"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	IsActive    bool          `json:"is_active"`
	IsSuperuser bool          `json:"is_superuser"`
	Token       TokenEnvelope `json:"token"`
}
