package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/dbx"
	"github.com/dmitrijs2005/interestnet/internal/server/config"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	interestsrepo "github.com/dmitrijs2005/interestnet/internal/server/repositories/interests"
	postsrepo "github.com/dmitrijs2005/interestnet/internal/server/repositories/posts"
	tokensrepo "github.com/dmitrijs2005/interestnet/internal/server/repositories/tokens"
	usersrepo "github.com/dmitrijs2005/interestnet/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		TokenValidityDuration: 14 * 24 * time.Hour,
		TokenLookup:           config.LookupToken,
	}
}

// memStore backs every fake repository. fail maps an operation name such as
// "users.Create" to the error it should return.
type memStore struct {
	nextID    int64
	users     map[int64]*models.User
	tokens    []*models.Token
	interests []*models.Interests
	posts     []*models.Post
	fail      map[string]error
	calls     []string
}

func newMemStore() *memStore {
	return &memStore{users: map[int64]*models.User{}, fail: map[string]error{}}
}

func (s *memStore) op(name string) error {
	s.calls = append(s.calls, name)
	return s.fail[name]
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return &memUsers{m.s} }
func (m *fakeRepoManager) Tokens(dbx.DBTX) tokensrepo.Repository       { return &memTokens{m.s} }
func (m *fakeRepoManager) Interests(dbx.DBTX) interestsrepo.Repository { return &memInterests{m.s} }
func (m *fakeRepoManager) Posts(dbx.DBTX) postsrepo.Repository         { return &memPosts{m.s} }

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if err := r.s.op("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrConflict
		}
	}
	u.ID = r.s.id()
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if err := r.s.op("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	if err := r.s.op("users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) Delete(_ context.Context, id int64) error {
	if err := r.s.op("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *memUsers) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *memUsers) interestsOf(id int64) (*models.Interests, bool) {
	for _, in := range r.s.interests {
		if in.UserID == id {
			return in, true
		}
	}
	return nil, false
}

func (r *memUsers) ListOthersWithInterests(_ context.Context, excludingID int64) ([]models.UserInterests, error) {
	if err := r.s.op("users.ListOthersWithInterests"); err != nil {
		return nil, err
	}
	out := []models.UserInterests{}
	for _, id := range r.sortedIDs() {
		if id == excludingID {
			continue
		}
		if in, ok := r.interestsOf(id); ok {
			u := r.s.users[id]
			out = append(out, models.UserInterests{ID: id, Email: u.Email, Name: u.Name, Interests: in.Interests})
		}
	}
	return out, nil
}

func (r *memUsers) ListWithInterests(_ context.Context) ([]models.UserInterests, error) {
	if err := r.s.op("users.ListWithInterests"); err != nil {
		return nil, err
	}
	out := []models.UserInterests{}
	for _, id := range r.sortedIDs() {
		hasToken := false
		for _, t := range r.s.tokens {
			hasToken = hasToken || t.UserID == id
		}
		in, ok := r.interestsOf(id)
		if ok && hasToken {
			u := r.s.users[id]
			out = append(out, models.UserInterests{ID: id, Email: u.Email, Name: u.Name, Interests: in.Interests})
		}
	}
	return out, nil
}

func (r *memUsers) ListOthersWithTokens(_ context.Context, excludingID int64) ([]models.UserToken, error) {
	if err := r.s.op("users.ListOthersWithTokens"); err != nil {
		return nil, err
	}
	out := []models.UserToken{}
	for _, id := range r.sortedIDs() {
		if id == excludingID {
			continue
		}
		for _, t := range r.s.tokens {
			if t.UserID == id {
				out = append(out, models.UserToken{User: *r.s.users[id], Token: *t})
			}
		}
	}
	return out, nil
}

type memTokens struct{ s *memStore }

func (r *memTokens) Create(_ context.Context, t *models.Token) (*models.Token, error) {
	if err := r.s.op("tokens.Create"); err != nil {
		return nil, err
	}
	t.ID = r.s.id()
	cp := *t
	r.s.tokens = append(r.s.tokens, &cp)
	return t, nil
}

func (r *memTokens) resolve(match func(t *models.Token, u *models.User) bool, now time.Time) (*models.User, error) {
	for _, t := range r.s.tokens {
		u, ok := r.s.users[t.UserID]
		if ok && match(t, u) && t.Expires.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memTokens) ResolveByToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	if err := r.s.op("tokens.ResolveByToken"); err != nil {
		return nil, err
	}
	return r.resolve(func(t *models.Token, _ *models.User) bool { return t.Token == token }, now)
}

func (r *memTokens) ResolveByEmail(_ context.Context, email string, now time.Time) (*models.User, error) {
	if err := r.s.op("tokens.ResolveByEmail"); err != nil {
		return nil, err
	}
	return r.resolve(func(_ *models.Token, u *models.User) bool { return u.Email == email }, now)
}

func (r *memTokens) HasValid(_ context.Context, userID int64, now time.Time) (bool, error) {
	if err := r.s.op("tokens.HasValid"); err != nil {
		return false, err
	}
	for _, t := range r.s.tokens {
		if t.UserID == userID && t.Expires.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTokens) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	if err := r.s.op("tokens.DeleteByUser"); err != nil {
		return 0, err
	}
	kept := r.s.tokens[:0]
	var n int64
	for _, t := range r.s.tokens {
		if t.UserID == userID {
			n++
			continue
		}
		kept = append(kept, t)
	}
	r.s.tokens = kept
	return n, nil
}

type memInterests struct{ s *memStore }

func (r *memInterests) Create(_ context.Context, in *models.Interests) (*models.Interests, error) {
	if err := r.s.op("interests.Create"); err != nil {
		return nil, err
	}
	in.ID = r.s.id()
	cp := *in
	r.s.interests = append(r.s.interests, &cp)
	return in, nil
}

func (r *memInterests) GetByUser(_ context.Context, userID int64) (*models.Interests, error) {
	if err := r.s.op("interests.GetByUser"); err != nil {
		return nil, err
	}
	for _, in := range r.s.interests {
		if in.UserID == userID {
			cp := *in
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memInterests) UpdateByUser(_ context.Context, userID int64, interests string) (*models.Interests, error) {
	if err := r.s.op("interests.UpdateByUser"); err != nil {
		return nil, err
	}
	for _, in := range r.s.interests {
		if in.UserID == userID {
			in.Interests = interests
			cp := *in
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memInterests) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	if err := r.s.op("interests.DeleteByUser"); err != nil {
		return 0, err
	}
	kept := r.s.interests[:0]
	var n int64
	for _, in := range r.s.interests {
		if in.UserID == userID {
			n++
			continue
		}
		kept = append(kept, in)
	}
	r.s.interests = kept
	return n, nil
}

type memPosts struct{ s *memStore }

func (r *memPosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	if err := r.s.op("posts.Create"); err != nil {
		return nil, err
	}
	p.ID = r.s.id()
	cp := *p
	r.s.posts = append(r.s.posts, &cp)
	return p, nil
}

func (r *memPosts) ListByUser(_ context.Context, userID int64) ([]models.Post, error) {
	if err := r.s.op("posts.ListByUser"); err != nil {
		return nil, err
	}
	out := []models.Post{}
	for _, p := range r.s.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPosts) ListByOwnerName(_ context.Context, name string) ([]models.Post, error) {
	if err := r.s.op("posts.ListByOwnerName"); err != nil {
		return nil, err
	}
	out := []models.Post{}
	for _, p := range r.s.posts {
		if u, ok := r.s.users[p.UserID]; ok && u.Name == name {
			cp := *p
			cp.AuthorName = u.Name
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *memPosts) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	if err := r.s.op("posts.DeleteByUser"); err != nil {
		return 0, err
	}
	kept := r.s.posts[:0]
	var n int64
	for _, p := range r.s.posts {
		if p.UserID == userID {
			n++
			continue
		}
		kept = append(kept, p)
	}
	r.s.posts = kept
	return n, nil
}

func (r *memPosts) UpdateContentByTitle(_ context.Context, userID int64, title, content string) (int64, error) {
	if err := r.s.op("posts.UpdateContentByTitle"); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range r.s.posts {
		if p.UserID == userID && p.Title == title {
			p.Content = content
			n++
		}
	}
	return n, nil
}
