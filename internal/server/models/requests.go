package models

// SignupRequest is the registration payload.
type SignupRequest struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Password          string `json:"password"`
	RepeatingPassword string `json:"repeating_password"`
	Interests         string `json:"interests"`
}

// InterestsUpdate replaces a user's interest list. Only Interests is honored.
type InterestsUpdate struct {
	Interests string `json:"interests"`
}

// PostInput is the body of a new post or of a post content update.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
