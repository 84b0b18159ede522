package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/interestnet/internal/common"
	"github.com/dmitrijs2005/interestnet/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload: %v", common.ErrValidation, err)
	}
	return nil
}

// pathParam returns the decoded chi URL parameter. chi matches against
// RawPath only when the request set one, otherwise the value is already
// decoded and must not be unescaped again.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// currentUser is only called behind the auth middleware.
func currentUser(r *http.Request) *models.User {
	u, _ := UserFromContext(r.Context())
	return u
}

func (s *HTTPServer) check(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

// login takes an OAuth2 password form: username is the email.
func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondWithError(w, r, fmt.Errorf("%w: invalid form: %v", common.ErrValidation, err))
		return
	}

	email, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if email == "" || password == "" {
		s.respondWithError(w, r, fmt.Errorf("%w: username and password are required", common.ErrValidation))
		return
	}

	token, err := s.svc.Accounts.Login(r.Context(), email, password)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, token)
}

func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		s.respondWithError(w, r, err)
		return
	}

	view, err := s.svc.Accounts.Register(r.Context(), req)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", view.ID)
	respondWithJSON(w, http.StatusCreated, view)
}

func (s *HTTPServer) myPage(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, currentUser(r))
}

func (s *HTTPServer) myInterests(w http.ResponseWriter, r *http.Request) {
	in, err := s.svc.Interests.Get(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, in)
}

func (s *HTTPServer) updateInterests(w http.ResponseWriter, r *http.Request) {
	var upd models.InterestsUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.respondWithError(w, r, err)
		return
	}

	in, err := s.svc.Interests.Update(r.Context(), currentUser(r).ID, upd)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, in)
}

func (s *HTTPServer) deleteMyPage(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := s.svc.Accounts.DeleteAccount(r.Context(), user.ID); err != nil {
		s.respondWithError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Account deleted", "user_id", user.ID)
	respondWithSuccess(w, nil)
}

func (s *HTTPServer) myPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.svc.Posts.ListMine(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, posts)
}

func (s *HTTPServer) similarUsers(w http.ResponseWriter, r *http.Request) {
	similar, err := s.svc.Interests.Similar(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, similar)
}

func (s *HTTPServer) allUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Accounts.ListAll(r.Context())
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) usersInterests(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		s.respondWithError(w, r, fmt.Errorf("%w: user_id must be an integer", common.ErrValidation))
		return
	}

	users, err := s.svc.Accounts.ListOthers(r.Context(), id)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) createPost(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondWithError(w, r, err)
		return
	}

	post, err := s.svc.Posts.Create(r.Context(), currentUser(r).ID, in)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, post)
}

func (s *HTTPServer) postsByName(w http.ResponseWriter, r *http.Request) {
	posts, err := s.svc.Posts.ListByOwnerName(r.Context(), pathParam(r, "name"))
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, posts)
}

func (s *HTTPServer) deletePosts(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.Posts.DeleteAll(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithSuccess(w, &n)
}

// updatePost takes the title from the path and the new content from the
// body; a title in the body is ignored.
func (s *HTTPServer) updatePost(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	if err := decodeJSON(r, &in); err != nil {
		s.respondWithError(w, r, err)
		return
	}

	n, err := s.svc.Posts.UpdateByTitle(r.Context(), currentUser(r).ID, pathParam(r, "title"), in.Content)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithSuccess(w, &n)
}

func (s *HTTPServer) adminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Accounts.ListAllForAdmin(r.Context(), currentUser(r).ID)
	if err != nil {
		s.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}
