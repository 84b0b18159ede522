package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, token *models.Token) (*models.Token, error) {

	query :=
		`INSERT INTO tokens (token, expires, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, token.Token, token.Expires, token.UserID).Scan(&token.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

func (r *PostgresRepository) resolve(ctx context.Context, query string, credential string, now time.Time) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, credential, now).Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.IsActive, &user.IsSuperuser)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) ResolveByToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	query :=
		`SELECT u.id, u.email, u.name, u.hashed_password, u.is_active, u.is_superuser
		 FROM tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE t.token = $1 AND t.expires > $2
		 LIMIT 1
		 `
	return r.resolve(ctx, query, token, now)
}

func (r *PostgresRepository) ResolveByEmail(ctx context.Context, email string, now time.Time) (*models.User, error) {
	query :=
		`SELECT u.id, u.email, u.name, u.hashed_password, u.is_active, u.is_superuser
		 FROM tokens t
		 JOIN users u ON u.id = t.user_id
		 WHERE u.email = $1 AND t.expires > $2
		 LIMIT 1
		 `
	return r.resolve(ctx, query, email, now)
}

func (r *PostgresRepository) HasValid(ctx context.Context, userID int64, now time.Time) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM tokens WHERE user_id = $1 AND expires > $2)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, now).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return ok, nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
