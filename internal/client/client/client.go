package client

import (
	"context"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

// Client is the API surface the CLI depends on.
type Client interface {
	Check(ctx context.Context) error

	Register(ctx context.Context, req models.SignupRequest) (*models.UserView, error)
	Login(ctx context.Context, email, password string) error
	Logout()
	Authenticated() bool

	Me(ctx context.Context) (*models.User, error)
	DeleteMe(ctx context.Context) error

	Interests(ctx context.Context) (*models.Interests, error)
	UpdateInterests(ctx context.Context, interests string) (*models.Interests, error)
	Similar(ctx context.Context) (map[string][]string, error)
	AllUsers(ctx context.Context) ([]models.UserInterests, error)
	AdminUsers(ctx context.Context) ([]models.AdminUserView, error)

	CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error)
	MyPosts(ctx context.Context) ([]models.Post, error)
	PostsOf(ctx context.Context, name string) ([]models.Post, error)
	UpdatePost(ctx context.Context, title, content string) (int64, error)
	DeletePosts(ctx context.Context) (int64, error)
}
