package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"miniblog/internal/config"
	"miniblog/internal/models"
	"miniblog/internal/service"
)

type contextKey string

const (
	currentUserKey contextKey = "currentUser"
	tokenClaimsKey contextKey = "tokenClaims"
)

type Middleware func(http.Handler) http.Handler

// CurrentUser returns the identity resolved by RequireAuth, or nil when the
// request never passed the bearer gate.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(currentUserKey).(*models.User)
	return user
}

// TokenClaims returns the claims of the token that authenticated the request.
func TokenClaims(ctx context.Context) *service.TokenClaims {
	claims, _ := ctx.Value(tokenClaimsKey).(*service.TokenClaims)
	return claims
}

// WithIdentity puts a resolved identity into the context; used by tests to
// call owner-gated handlers without a real token.
func WithIdentity(ctx context.Context, user *models.User, claims *service.TokenClaims) context.Context {
	ctx = context.WithValue(ctx, currentUserKey, user)
	return context.WithValue(ctx, tokenClaimsKey, claims)
}

// writeUnauthorized is the single 401 body for every rejection reason, so the
// response never reveals which token check failed.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": "Authentication required",
	})
}

// RequireAuth is the bearer-identity gate: the request must carry a token
// that the auth service accepts. The rejection reason is logged, never sent.
func RequireAuth(authService service.AuthService, logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w)
				return
			}

			// Checking the "Bearer <token>" format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w)
				return
			}

			user, claims, err := authService.ValidateToken(r.Context(), parts[1])
			if err != nil {
				logger.Warn().
					Str("path", r.URL.Path).
					Err(err).
					Msg("token rejected")
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), user, claims)))
		})
	}
}

// RequireAdminKey gates category mutations on a process-wide shared secret in
// the X-Admin-Key header. Not tied to any user account.
func RequireAdminKey(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")

			if cfg.AdminAPIKey == "" ||
				subtle.ConstantTimeCompare([]byte(key), []byte(cfg.AdminAPIKey)) != 1 {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware writes one structured access-log line per request.
func LoggingMiddleware(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
