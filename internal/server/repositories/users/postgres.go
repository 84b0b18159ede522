package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, name, hashed_password, is_active, is_superuser)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Name, user.HashedPassword, user.IsActive, user.IsSuperuser).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.HashedPassword, &user.IsActive, &user.IsSuperuser)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, name, hashed_password, is_active, is_superuser FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, email, name, hashed_password, is_active, is_superuser FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) listInterests(ctx context.Context, query string, args ...any) ([]models.UserInterests, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.UserInterests, 0)
	for rows.Next() {
		var ui models.UserInterests
		if err := rows.Scan(&ui.ID, &ui.Email, &ui.Name, &ui.Interests); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, ui)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// ListOthersWithInterests returns every user except excludingID that has an
// interests row, ordered by user id.
func (r *PostgresRepository) ListOthersWithInterests(ctx context.Context, excludingID int64) ([]models.UserInterests, error) {
	query :=
		`SELECT u.id, u.email, u.name, i.interests
		 FROM users u
		 JOIN interests i ON i.user_id = u.id
		 WHERE u.id <> $1
		 ORDER BY u.id
		 `
	return r.listInterests(ctx, query, excludingID)
}

// ListWithInterests returns every user holding both a token and an
// interests row.
func (r *PostgresRepository) ListWithInterests(ctx context.Context) ([]models.UserInterests, error) {
	query :=
		`SELECT u.id, u.email, u.name, i.interests
		 FROM users u
		 JOIN interests i ON i.user_id = u.id
		 WHERE EXISTS (SELECT 1 FROM tokens t WHERE t.user_id = u.id)
		 ORDER BY u.id
		 `
	return r.listInterests(ctx, query)
}

// ListOthersWithTokens returns one row per token of every user except
// excludingID.
func (r *PostgresRepository) ListOthersWithTokens(ctx context.Context, excludingID int64) ([]models.UserToken, error) {
	query :=
		`SELECT u.id, u.email, u.name, u.hashed_password, u.is_active, u.is_superuser,
		        t.id, t.token, t.expires, t.user_id
		 FROM users u
		 JOIN tokens t ON t.user_id = u.id
		 WHERE u.id <> $1
		 ORDER BY u.id, t.id
		 `

	rows, err := r.db.QueryContext(ctx, query, excludingID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.UserToken, 0)
	for rows.Next() {
		var ut models.UserToken
		err := rows.Scan(&ut.User.ID, &ut.User.Email, &ut.User.Name, &ut.User.HashedPassword,
			&ut.User.IsActive, &ut.User.IsSuperuser,
			&ut.Token.ID, &ut.Token.Token, &ut.Token.Expires, &ut.Token.UserID)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, ut)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
