package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

// Requirement is the gate a request must pass after its credential resolves.
type Requirement int

const (
	RequireActive Requirement = iota
	RequireSuperuser
)

// TokenResolver maps a bearer credential to its owner.
type TokenResolver interface {
	GetByToken(ctx context.Context, credential string) (*models.User, error)
}

// SessionService authenticates bearer credentials.
type SessionService struct {
	resolver TokenResolver
}

func NewSessionService(r TokenResolver) *SessionService {
	return &SessionService{resolver: r}
}

// Authenticate resolves credential and checks the account against req.
// Checks run in order: presence, resolution, active flag, superuser flag.
func (s *SessionService) Authenticate(ctx context.Context, credential string, req Requirement) (*models.User, error) {
	if credential == "" {
		return nil, common.ErrMissingCredential
	}

	user, err := s.resolver.GetByToken(ctx, credential)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredential
		}
		return nil, fmt.Errorf("error resolving token: %w", err)
	}

	if !user.IsActive {
		return nil, common.ErrInactiveAccount
	}

	if req == RequireSuperuser && !user.IsSuperuser {
		return nil, common.ErrInsufficientPrivilege
	}

	return user, nil
}
