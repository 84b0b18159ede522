package models

import "time"

// Post is a short text entry owned by a user. AuthorName is only filled by
// queries that join users.
type Post struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorName string    `json:"name,omitempty"`
}
