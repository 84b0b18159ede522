package interests

import (
	"context"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, in *models.Interests) (*models.Interests, error)
	GetByUser(ctx context.Context, userID int64) (*models.Interests, error)
	UpdateByUser(ctx context.Context, userID int64, interests string) (*models.Interests, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
