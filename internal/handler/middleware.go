package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/msomdec/inkpost/internal/domain"
	"github.com/msomdec/inkpost/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext extracts the authenticated user from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// RequireAuth protects routes that need an identity. It reads the
// "Authorization: Bearer <token>" header, validates the token, loads the user,
// and injects it into the request context. Any failure ends the request with 401.
func RequireAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrInvalidToken):
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			case errors.Is(err, domain.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, "User no longer exists")
				return
			default:
				writeInternalError(w, r, "authenticate request", err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attempts the same resolution as RequireAuth but never blocks:
// on any failure the request proceeds anonymously.
func OptionalAuth(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				user, err := auth.Authenticate(r.Context(), token)
				switch {
				case err == nil:
					r = r.WithContext(context.WithValue(r.Context(), userContextKey, user))
				case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrUnauthenticated):
				default:
					slog.Warn("optional auth lookup failed", "error", err,
						"request_id", middleware.GetReqID(r.Context()))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// RateLimit throttles requests per client IP; limiter may be nil to disable it.
func RateLimit(limiter *service.TokenBucket) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys the rate limiter on the connection's peer address. RemoteAddr
// reflects forwarding headers only when the router mounts middleware.RealIP.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// SecurityHeaders sets conservative response headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		next.ServeHTTP(w, r)
	})
}

// RequestLogger writes one structured access log line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			slog.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// Recover turns a panic into a logged 500 with the standard error body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic serving request",
				"panic", fmt.Sprint(rec),
				"request_id", middleware.GetReqID(r.Context()),
				"stack", string(debug.Stack()),
			)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}
