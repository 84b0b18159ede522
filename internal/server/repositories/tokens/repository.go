package tokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.Token) (*models.Token, error)
	// ResolveByToken returns the owner of an unexpired token equal to token.
	ResolveByToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	// ResolveByEmail returns the user with that email if it holds any
	// unexpired token.
	ResolveByEmail(ctx context.Context, email string, now time.Time) (*models.User, error)
	HasValid(ctx context.Context, userID int64, now time.Time) (bool, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
}
