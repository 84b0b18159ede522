package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/repomanager"
)

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m, now: time.Now}
}

// Create stores a post stamped with the current time.
func (s *PostService) Create(ctx context.Context, userID int64, in models.PostInput) (*models.Post, error) {
	if err := ValidatePostTitle(in.Title); err != nil {
		return nil, err
	}

	return s.repomanager.Posts(s.db).Create(ctx, &models.Post{
		UserID:    userID,
		CreatedAt: s.now(),
		Title:     in.Title,
		Content:   in.Content,
	})
}

func (s *PostService) ListMine(ctx context.Context, userID int64) ([]models.Post, error) {
	return s.repomanager.Posts(s.db).ListByUser(ctx, userID)
}

func (s *PostService) ListByOwnerName(ctx context.Context, name string) ([]models.Post, error) {
	return s.repomanager.Posts(s.db).ListByOwnerName(ctx, name)
}

func (s *PostService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	return s.repomanager.Posts(s.db).DeleteByUser(ctx, userID)
}

// UpdateByTitle overwrites the content of every post of userID with that
// title. No match is not an error.
func (s *PostService) UpdateByTitle(ctx context.Context, userID int64, title, content string) (int64, error) {
	return s.repomanager.Posts(s.db).UpdateContentByTitle(ctx, userID, title, content)
}
