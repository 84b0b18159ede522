package posts

import (
	"context"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Post, error)
	ListByOwnerName(ctx context.Context, name string) ([]models.Post, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	UpdateContentByTitle(ctx context.Context, userID int64, title, content string) (int64, error)
}
