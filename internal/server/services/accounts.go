package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/cryptox"
	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/config"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/dmitrijs2005/interestnet/internal/server/repositories/repomanager"
)

// AccountService registers, authenticates, lists and deletes users.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *TokenService
	lookup      string
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, tokens *TokenService, cfg *config.Config) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		lookup:      cfg.TokenLookup,
		now:         time.Now,
	}
}

// Register validates req, then creates the user, its interests row and a
// first token in one transaction.
func (s *AccountService) Register(ctx context.Context, req models.SignupRequest) (*models.UserView, error) {
	if err := ValidateSignup(&req); err != nil {
		return nil, err
	}

	_, err := s.repomanager.Users(s.db).GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, common.ErrConflict
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	credential, err := cryptox.MakeCredential(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var view *models.UserView
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Email:          req.Email,
			Name:           req.Name,
			HashedPassword: credential,
			IsActive:       true,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		in, err := s.repomanager.Interests(tx).Create(ctx, &models.Interests{Interests: req.Interests, UserID: user.ID})
		if err != nil {
			return fmt.Errorf("error creating interests: %w", err)
		}

		token, err := s.tokens.Issue(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		view = &models.UserView{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			Interests: in.Interests,
			Token:     token.Envelope(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Login checks an email and password. In token lookup mode a fresh token is
// returned. In email lookup mode the email itself is the bearer credential,
// and a token row is issued only when the user holds no unexpired one.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.AccessToken, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidLogin
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := cryptox.VerifyPassword(password, user.HashedPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidLogin
	}

	if s.lookup == config.LookupEmail {
		valid, err := s.repomanager.Tokens(s.db).HasValid(ctx, user.ID, s.now())
		if err != nil {
			return nil, fmt.Errorf("error checking tokens: %w", err)
		}
		if !valid {
			if _, err := s.issue(ctx, user.ID); err != nil {
				return nil, err
			}
		}
		return &models.AccessToken{AccessToken: user.Email, TokenType: common.TokenType}, nil
	}

	token, err := s.issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.AccessToken{AccessToken: token.Token, TokenType: common.TokenType}, nil
}

func (s *AccountService) issue(ctx context.Context, userID int64) (*models.Token, error) {
	var token *models.Token
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		token, err = s.tokens.Issue(ctx, tx, userID)
		return err
	})
	return token, err
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByEmail(ctx, email)
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// GetByToken resolves a bearer credential to its owner. Expired tokens do
// not resolve.
func (s *AccountService) GetByToken(ctx context.Context, credential string) (*models.User, error) {
	repo := s.repomanager.Tokens(s.db)
	if s.lookup == config.LookupEmail {
		return repo.ResolveByEmail(ctx, credential, s.now())
	}
	return repo.ResolveByToken(ctx, credential, s.now())
}

// DeleteAccount removes the user's posts, interests, tokens and then the
// user row in one transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Posts(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting posts: %w", err)
		}
		if _, err := s.repomanager.Interests(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting interests: %w", err)
		}
		if _, err := s.repomanager.Tokens(tx).DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("error deleting tokens: %w", err)
		}
		if err := s.repomanager.Users(tx).Delete(ctx, userID); err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}

func (s *AccountService) ListOthers(ctx context.Context, excludingID int64) ([]models.UserInterests, error) {
	return s.repomanager.Users(s.db).ListOthersWithInterests(ctx, excludingID)
}

func (s *AccountService) ListAll(ctx context.Context) ([]models.UserInterests, error) {
	return s.repomanager.Users(s.db).ListWithInterests(ctx)
}

// ListAllForAdmin returns every other user once per token, with the token
// nested in the view.
func (s *AccountService) ListAllForAdmin(ctx context.Context, adminID int64) ([]models.AdminUserView, error) {
	rows, err := s.repomanager.Users(s.db).ListOthersWithTokens(ctx, adminID)
	if err != nil {
		return nil, err
	}

	views := make([]models.AdminUserView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.AdminView())
	}
	return views, nil
}
