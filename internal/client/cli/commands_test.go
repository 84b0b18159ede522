package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/interestnet/internal/client/client"
	"github.com/dmitrijs2005/interestnet/internal/logging"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token string

	registered *models.SignupRequest
	loginEmail string
	loginPass  string
	loginErr   error

	me          *models.User
	interests   string
	similar     map[string][]string
	posts       []models.Post
	created     *models.PostInput
	updated     [2]string
	affected    int64
	deletedMe   bool
	postsOfName string
	users       []models.UserInterests
	admin       []models.AdminUserView
	adminErr    error
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Check(ctx context.Context) error { return nil }

func (f *fakeAPI) Register(ctx context.Context, req models.SignupRequest) (*models.UserView, error) {
	f.registered = &req
	f.token = "tok"
	return &models.UserView{ID: 5, Email: req.Email, Name: req.Name, Interests: req.Interests,
		Token: models.TokenEnvelope{Token: "tok", Expires: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "tok"
	return nil
}

func (f *fakeAPI) Logout()             { f.token = "" }
func (f *fakeAPI) Authenticated() bool { return f.token != "" }

func (f *fakeAPI) Me(ctx context.Context) (*models.User, error) {
	if f.me == nil {
		return nil, client.ErrUnauthorized
	}
	return f.me, nil
}

func (f *fakeAPI) DeleteMe(ctx context.Context) error {
	f.deletedMe = true
	f.token = ""
	return nil
}

func (f *fakeAPI) Interests(ctx context.Context) (*models.Interests, error) {
	return &models.Interests{Interests: f.interests}, nil
}

func (f *fakeAPI) UpdateInterests(ctx context.Context, interests string) (*models.Interests, error) {
	f.interests = interests
	return &models.Interests{Interests: interests}, nil
}

func (f *fakeAPI) Similar(ctx context.Context) (map[string][]string, error) {
	return f.similar, nil
}

func (f *fakeAPI) AllUsers(ctx context.Context) ([]models.UserInterests, error) {
	return f.users, nil
}

func (f *fakeAPI) AdminUsers(ctx context.Context) ([]models.AdminUserView, error) {
	return f.admin, f.adminErr
}

func (f *fakeAPI) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	f.created = &in
	return &models.Post{ID: 9, Title: in.Title, Content: in.Content}, nil
}

func (f *fakeAPI) MyPosts(ctx context.Context) ([]models.Post, error) { return f.posts, nil }

func (f *fakeAPI) PostsOf(ctx context.Context, name string) ([]models.Post, error) {
	f.postsOfName = name
	return f.posts, nil
}

func (f *fakeAPI) UpdatePost(ctx context.Context, title, content string) (int64, error) {
	f.updated = [2]string{title, content}
	return f.affected, nil
}

func (f *fakeAPI) DeletePosts(ctx context.Context) (int64, error) { return f.affected, nil }

func newTestApp(api *fakeAPI, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		api:    api,
		logger: logging.New(logging.FormatText, io.Discard),
		reader: rdr(input),
		out:    out,
	}, out
}

func stubPasswords(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(pw) {
			return nil, errors.New("no more passwords")
		}
		p := []byte(pw[i])
		i++
		return p, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func TestApp_Register(t *testing.T) {
	stubPasswords(t, "pw", "pw")
	api := &fakeAPI{}
	a, out := newTestApp(api, "a@x.com\nAlice\nart, music\n")

	require.NoError(t, a.Register(context.Background()))

	require.NotNil(t, api.registered)
	assert.Equal(t, models.SignupRequest{
		Email: "a@x.com", Name: "Alice", Password: "pw", RepeatingPassword: "pw", Interests: "art, music",
	}, *api.registered)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(Alice)", a.getStatus())
	assert.Contains(t, out.String(), "Registered a@x.com (id 5)")
}

func TestApp_RegisterPasswordMismatch(t *testing.T) {
	stubPasswords(t, "pw", "other")
	api := &fakeAPI{}
	a, _ := newTestApp(api, "a@x.com\nAlice\nart, music\n")

	err := a.Register(context.Background())

	require.ErrorIs(t, err, errPasswordMismatch)
	assert.Nil(t, api.registered)
}

func TestApp_LoginUsesProfileName(t *testing.T) {
	stubPasswords(t, "pw")
	api := &fakeAPI{me: &models.User{ID: 1, Name: "Alice"}}
	a, out := newTestApp(api, "a@x.com\n")

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "a@x.com", api.loginEmail)
	assert.Equal(t, "pw", api.loginPass)
	assert.Equal(t, "(Alice)", a.getStatus())
	assert.Contains(t, out.String(), "Login successful")
}

func TestApp_LoginFailure(t *testing.T) {
	stubPasswords(t, "bad")
	api := &fakeAPI{loginErr: &client.APIError{StatusCode: 400, Message: "Oops! incorrect email or password"}}
	a, _ := newTestApp(api, "a@x.com\n")

	err := a.Login(context.Background())

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())
}

func TestApp_LogoutClearsStatus(t *testing.T) {
	api := &fakeAPI{token: "tok"}
	a, _ := newTestApp(api, "")
	a.userName = "Alice"

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())
}

func TestApp_SimilarSortedByName(t *testing.T) {
	api := &fakeAPI{token: "tok", similar: map[string][]string{
		"Carol": {"games"},
		"Bob B": {"art", "music"},
	}}
	a, out := newTestApp(api, "")

	require.NoError(t, a.Similar(context.Background()))

	assert.Equal(t, "Bob B: art, music\nCarol: games\n", out.String())
}

func TestApp_SimilarEmpty(t *testing.T) {
	a, out := newTestApp(&fakeAPI{token: "tok"}, "")
	require.NoError(t, a.Similar(context.Background()))
	assert.Equal(t, "No users with shared interests\n", out.String())
}

func TestApp_PostAndEdit(t *testing.T) {
	api := &fakeAPI{token: "tok", affected: 2}
	a, out := newTestApp(api, "Hello\nline one\nline two\n\nHello\nnew body\n\n")
	ctx := context.Background()

	require.NoError(t, a.Post(ctx))
	require.NotNil(t, api.created)
	assert.Equal(t, models.PostInput{Title: "Hello", Content: "line one\nline two"}, *api.created)
	assert.Contains(t, out.String(), "Post 9 created")

	require.NoError(t, a.EditPost(ctx))
	assert.Equal(t, [2]string{"Hello", "new body"}, api.updated)
	assert.Contains(t, out.String(), "2 post(s) updated")
}

func TestApp_PostsOf(t *testing.T) {
	api := &fakeAPI{token: "tok", posts: []models.Post{
		{ID: 3, Title: "T", Content: "c", AuthorName: "Bob B", CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
	}}
	a, out := newTestApp(api, "Bob B\n")

	require.NoError(t, a.PostsOf(context.Background()))

	assert.Equal(t, "Bob B", api.postsOfName)
	assert.Contains(t, out.String(), "#3 T by Bob B (2025-03-01 10:00)\n  c\n")
}

func TestApp_DeletePostsNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{token: "tok", affected: 4}
	a, out := newTestApp(api, "n\ny\n")
	ctx := context.Background()

	require.NoError(t, a.DeletePosts(ctx))
	assert.NotContains(t, out.String(), "deleted")

	require.NoError(t, a.DeletePosts(ctx))
	assert.Contains(t, out.String(), "4 post(s) deleted")
}

func TestApp_DeleteMe(t *testing.T) {
	api := &fakeAPI{token: "tok"}
	a, out := newTestApp(api, "yes\n")
	a.userName = "Alice"

	require.NoError(t, a.DeleteMe(context.Background()))

	assert.True(t, api.deletedMe)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Account deleted")
}

func TestApp_SetInterestsAndShow(t *testing.T) {
	api := &fakeAPI{token: "tok"}
	a, out := newTestApp(api, "art, games\n")
	ctx := context.Background()

	require.NoError(t, a.SetInterests(ctx))
	require.NoError(t, a.Interests(ctx))

	assert.Equal(t, "art, games", api.interests)
	assert.Contains(t, out.String(), "Interests updated: art, games\nart, games\n")
}

func TestApp_Me(t *testing.T) {
	api := &fakeAPI{token: "tok", me: &models.User{ID: 1, Email: "a@x.com", Name: "Alice", IsActive: true}}
	a, out := newTestApp(api, "")

	require.NoError(t, a.Me(context.Background()))

	assert.Contains(t, out.String(), "email:     a@x.com")
	assert.Contains(t, out.String(), "superuser: false")
}

func TestApp_Users(t *testing.T) {
	api := &fakeAPI{token: "tok", users: []models.UserInterests{
		{ID: 2, Email: "b@x.com", Name: "Bob B", Interests: "art, tea"},
	}}
	a, out := newTestApp(api, "")

	require.NoError(t, a.Users(context.Background()))
	assert.Equal(t, "2 Bob B <b@x.com>: art, tea\n", out.String())

	api.users = nil
	out.Reset()
	require.NoError(t, a.Users(context.Background()))
	assert.Equal(t, "No users\n", out.String())
}

func TestApp_Admin(t *testing.T) {
	api := &fakeAPI{token: "tok", admin: []models.AdminUserView{{
		ID: 1, Email: "a@x.com", Name: "Alice", IsActive: true, IsSuperuser: true,
		Token: models.TokenEnvelope{Token: "t1", Expires: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}}
	a, out := newTestApp(api, "")

	require.NoError(t, a.Admin(context.Background()))
	assert.Equal(t, "1 Alice <a@x.com> active=true superuser=true token=t1 expires=2030-01-01 00:00\n", out.String())

	api.adminErr = &client.APIError{StatusCode: 403, Message: "Oops! not enough privileges"}
	var apiErr *client.APIError
	require.ErrorAs(t, a.Admin(context.Background()), &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}
