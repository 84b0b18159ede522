package models

// Interests holds a user's ", "-joined interest list.
type Interests struct {
	ID        int64  `json:"id"`
	Interests string `json:"interests"`
	UserID    int64  `json:"user_id"`
}
