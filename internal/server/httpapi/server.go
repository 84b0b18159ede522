// Package httpapi exposes the account, interest and post services over HTTP
// with a chi router.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/logging"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/dmitrijs2005/interestnet/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

type AccountService interface {
	Register(ctx context.Context, req models.SignupRequest) (*models.UserView, error)
	Login(ctx context.Context, email, password string) (*models.AccessToken, error)
	DeleteAccount(ctx context.Context, userID int64) error
	ListOthers(ctx context.Context, excludingID int64) ([]models.UserInterests, error)
	ListAll(ctx context.Context) ([]models.UserInterests, error)
	ListAllForAdmin(ctx context.Context, adminID int64) ([]models.AdminUserView, error)
}

type InterestService interface {
	Get(ctx context.Context, userID int64) (*models.Interests, error)
	Update(ctx context.Context, userID int64, upd models.InterestsUpdate) (*models.Interests, error)
	Similar(ctx context.Context, userID int64) (map[string][]string, error)
}

type PostService interface {
	Create(ctx context.Context, userID int64, in models.PostInput) (*models.Post, error)
	ListMine(ctx context.Context, userID int64) ([]models.Post, error)
	ListByOwnerName(ctx context.Context, name string) ([]models.Post, error)
	DeleteAll(ctx context.Context, userID int64) (int64, error)
	UpdateByTitle(ctx context.Context, userID int64, title, content string) (int64, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, credential string, req services.Requirement) (*models.User, error)
}

// Services groups the dependencies of the HTTP layer.
type Services struct {
	Accounts  AccountService
	Interests InterestService
	Posts     PostService
	Sessions  Authenticator
}

type HTTPServer struct {
	address  string
	logger   logging.Logger
	svc      Services
	registry *prometheus.Registry
	metrics  *Metrics
}

func NewHTTPServer(a string, l logging.Logger, svc Services) *HTTPServer {
	reg := prometheus.NewRegistry()
	return &HTTPServer{
		address:  a,
		logger:   l.With("module", "http_server"),
		svc:      svc,
		registry: reg,
		metrics:  NewMetrics(reg),
	}
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
