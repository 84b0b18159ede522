package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/interestnet/internal/server/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler builds the router with all routes and middleware.
func (s *HTTPServer) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(processTime)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.metrics.Middleware)

	r.Get("/check", s.check)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Post("/auth", s.login)
	r.Post("/api/user/sign-up", s.signup)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate(services.RequireActive))

		r.Route("/api/user/auth", func(r chi.Router) {
			r.Get("/my_page", s.myPage)
			r.Get("/my_page/interests", s.myInterests)
			r.Patch("/my_page/update_interests", s.updateInterests)
			r.Delete("/my_page/delete_my_page", s.deleteMyPage)
			r.Get("/my_page/posts/", s.myPosts)
			r.Get("/get_me_users", s.similarUsers)
			r.Get("/get_all_users", s.allUsers)

			r.Route("/update_posts", func(r chi.Router) {
				r.Post("/", s.createPost)
				r.Get("/get_posts/{name}", s.postsByName)
				r.Delete("/delete", s.deletePosts)
				r.Patch("/patch_mine_post/{title}", s.updatePost)
			})
		})

		r.Get("/secret/auth/users/get_all_ui", s.usersInterests)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate(services.RequireSuperuser))
		r.Get("/api/admin/all_users", s.adminUsers)
	})

	return r
}
