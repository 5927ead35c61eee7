package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/msomdec/inkpost/internal/service"
)

// Options configures the router's outer surface.
type Options struct {
	CORSOrigins []string
	// StaticDir, when set, is served at / for the browser frontend.
	StaticDir string
	// AuthLimiter throttles register and login; nil disables throttling.
	AuthLimiter *service.TokenBucket
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable it only behind a reverse proxy that sets those headers.
	TrustProxy bool
}

// NewRouter wires every API route and the shared middleware stack.
func NewRouter(auth *service.AuthService, posts *service.PostService, comments *service.CommentService, opts Options) http.Handler {
	authH := NewAuthHandler(auth)
	postH := NewPostHandler(posts)
	commentH := NewCommentHandler(comments)

	requireAuth := RequireAuth(auth)
	optionalAuth := OptionalAuth(auth)
	throttle := RateLimit(opts.AuthLimiter)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger)
	r.Use(Recover)
	r.Use(SecurityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", HandleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.With(throttle).Post("/register", authH.HandleRegister)
		r.With(throttle).Post("/login", authH.HandleLogin)
		r.With(requireAuth).Get("/me", authH.HandleMe)
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postH.HandleList)
		r.With(requireAuth).Post("/", postH.HandleCreate)
		r.With(requireAuth).Get("/mine", postH.HandleListMine)

		r.Route("/{uid}", func(r chi.Router) {
			r.With(optionalAuth).Get("/", postH.HandleGet)
			r.With(requireAuth).Patch("/", postH.HandleUpdate)
			r.With(requireAuth).Delete("/", postH.HandleDelete)

			r.Route("/comments", func(r chi.Router) {
				r.With(optionalAuth).Get("/", commentH.HandleList)
				r.With(optionalAuth).Post("/", commentH.HandleCreate)
				r.With(requireAuth).Patch("/{cuid}", commentH.HandleUpdate)
				r.With(requireAuth).Delete("/{cuid}", commentH.HandleDelete)
			})
		})
	})

	if opts.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(opts.StaticDir)))
	} else {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		})
	}
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
