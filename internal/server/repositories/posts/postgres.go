package posts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (user_id, created_at, title, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, post.UserID, post.CreatedAt, post.Title, post.Content).Scan(&post.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func scanPosts(rows *sql.Rows, withAuthor bool) ([]models.Post, error) {
	defer rows.Close()

	result := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		dest := []any{&p.ID, &p.UserID, &p.CreatedAt, &p.Title, &p.Content}
		if withAuthor {
			dest = append(dest, &p.AuthorName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Post, error) {
	query :=
		`SELECT id, user_id, created_at, title, content FROM posts
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanPosts(rows, false)
}

// ListByOwnerName returns the posts of every user with that display name,
// each carrying the author name.
func (r *PostgresRepository) ListByOwnerName(ctx context.Context, name string) ([]models.Post, error) {
	query :=
		`SELECT p.id, p.user_id, p.created_at, p.title, p.content, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE u.name = $1
		 ORDER BY p.id
		 `

	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return scanPosts(rows, true)
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

// UpdateContentByTitle rewrites the content of every post of userID titled
// title and reports how many rows changed.
func (r *PostgresRepository) UpdateContentByTitle(ctx context.Context, userID int64, title, content string) (int64, error) {
	query :=
		`UPDATE posts SET content = $1
		 WHERE user_id = $2 AND title = $3
		 `

	res, err := r.db.ExecContext(ctx, query, content, userID, title)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
