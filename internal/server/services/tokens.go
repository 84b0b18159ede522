// Package services contains server-side business logic: accounts and their
// bearer tokens, interests and overlap search, posts, and request
// authentication.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/config"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenService issues opaque bearer tokens.
type TokenService struct {
	repomanager  repomanager.RepositoryManager
	validity     time.Duration
	singleActive bool
	now          func() time.Time
	newToken     func() string
}

func NewTokenService(m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		repomanager:  m,
		validity:     cfg.TokenValidityDuration,
		singleActive: cfg.SingleActiveToken,
		now:          time.Now,
		newToken:     uuid.NewString,
	}
}

// Issue creates a token for userID valid for the configured duration. When
// single active tokens are enabled the user's earlier tokens are removed
// first, so callers should pass a transaction.
func (s *TokenService) Issue(ctx context.Context, db dbx.DBTX, userID int64) (*models.Token, error) {
	repo := s.repomanager.Tokens(db)

	if s.singleActive {
		if _, err := repo.DeleteByUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("error revoking tokens: %w", err)
		}
	}

	token := &models.Token{
		Token:   s.newToken(),
		Expires: s.now().Add(s.validity),
		UserID:  userID,
	}

	t, err := repo.Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error creating token: %w", err)
	}

	return t, nil
}
