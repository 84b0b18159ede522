package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/interests"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/posts"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/tokens"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Interests(db dbx.DBTX) interests.Repository
	Posts(db dbx.DBTX) posts.Repository
}
