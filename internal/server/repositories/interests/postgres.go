package interests

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, in *models.Interests) (*models.Interests, error) {

	query :=
		`INSERT INTO interests (interests, user_id)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	if err := r.db.QueryRowContext(ctx, query, in.Interests, in.UserID).Scan(&in.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return in, nil
}

// GetByUser returns the user's interests row. Should a user somehow own more
// than one, the oldest wins.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID int64) (*models.Interests, error) {
	query :=
		`SELECT id, interests, user_id FROM interests
		 WHERE user_id = $1
		 ORDER BY id
		 LIMIT 1
		 `

	in := &models.Interests{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&in.ID, &in.Interests, &in.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return in, nil
}

// UpdateByUser overwrites the stored list and returns the updated row.
func (r *PostgresRepository) UpdateByUser(ctx context.Context, userID int64, interests string) (*models.Interests, error) {
	query :=
		`UPDATE interests SET interests = $1
		 WHERE user_id = $2
		 RETURNING id, interests, user_id
		 `

	in := &models.Interests{}
	err := r.db.QueryRowContext(ctx, query, interests, userID).Scan(&in.ID, &in.Interests, &in.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return in, nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interests WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
