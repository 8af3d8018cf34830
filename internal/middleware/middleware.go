// Package middleware provides HTTP middleware for the EWERS server.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SessionCookie is the name of the cookie carrying the session token
const SessionCookie = "ewers.sid"

type ctxKey int

const (
	userKey ctxKey = iota
	logKey
)

// requestLog collects fields filled in further down the chain
type requestLog struct {
	userID int
}

// Authenticator resolves a session token to a user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// StructuredLogger returns a middleware that logs HTTP requests with zap
func StructuredLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// keeps Hijacker so /ws upgrades still work
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			info := &requestLog{}
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), logKey, info)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			}
			if info.userID != 0 {
				fields = append(fields, zap.Int("user_id", info.userID))
			}
			logger.Info("HTTP Request", fields...)
		})
	}
}

// SecurityHeaders sets conservative response headers
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "same-origin")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests without a live session. The resolved user is
// available to handlers through UserFromContext.
func RequireAuth(auth Authenticator, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Context(), SessionToken(r))
			if err != nil {
				if !errors.Is(err, services.ErrUnauthorized) {
					logger.Errorw("Session lookup failed", "error", err)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
				return
			}

			if info, ok := r.Context().Value(logKey).(*requestLog); ok {
				info.userID = user.ID
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// SessionToken returns the session token from the request cookie, if any
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// WithUser attaches an authenticated user to ctx
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user set by RequireAuth
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
