package users

import (
	"context"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	ListOthersWithInterests(ctx context.Context, excludingID int64) ([]models.UserInterests, error)
	ListWithInterests(ctx context.Context) ([]models.UserInterests, error)
	ListOthersWithTokens(ctx context.Context, excludingID int64) ([]models.UserToken, error)
}
