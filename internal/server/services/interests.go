package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/interestnet/internal/server/matching"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/repomanager"
)

// InterestService reads and replaces interest lists and finds users with
// overlapping ones.
type InterestService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewInterestService(db *sql.DB, m repomanager.RepositoryManager) *InterestService {
	return &InterestService{db: db, repomanager: m}
}

func (s *InterestService) Get(ctx context.Context, userID int64) (*models.Interests, error) {
	return s.repomanager.Interests(s.db).GetByUser(ctx, userID)
}

// Update validates upd like a registration payload and overwrites the stored
// list.
func (s *InterestService) Update(ctx context.Context, userID int64, upd models.InterestsUpdate) (*models.Interests, error) {
	interests, err := NormalizeInterests(upd.Interests)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Interests(s.db).UpdateByUser(ctx, userID, interests)
}

// Similar maps the display names of other users sharing at least one
// interest with userID to their interest sets.
func (s *InterestService) Similar(ctx context.Context, userID int64) (map[string][]string, error) {
	own, err := s.repomanager.Interests(s.db).GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading interests: %w", err)
	}

	others, err := s.repomanager.Users(s.db).ListOthersWithInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading candidates: %w", err)
	}

	return matching.Overlap(own.Interests, others), nil
}
