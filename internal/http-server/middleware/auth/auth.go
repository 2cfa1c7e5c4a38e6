// Package auth verifies the bearer token issued by the login service
// and exposes the caller's identity to handlers. Issuing tokens is the
// login service's job, not ours.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"

	"picstore/internal/lib/api/response"
	"picstore/internal/lib/logger/sl"
)

type User struct {
	Email       string
	DisplayName string
	IsAdmin     bool
}

type ctxKey struct{}

// FromContext returns the authenticated caller, if any.
func FromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(ctxKey{}).(User)
	return user, ok
}

// WithUser returns a context carrying the given identity.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// New parses an optional Authorization bearer token and stores the
// identity in the request context. Requests without a token pass
// through anonymously; a present-but-invalid token is rejected.
func New(log *slog.Logger, secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				if err != nil {
					log.Warn("invalid token", sl.Err(err))
				}
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			user := User{}
			if email, ok := claims["email"].(string); ok {
				user.Email = email
			}
			if name, ok := claims["name"].(string); ok {
				user.DisplayName = name
			}
			if isAdmin, ok := claims["is_admin"].(bool); ok {
				user.IsAdmin = isAdmin
			}

			if user.Email == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		}

		return http.HandlerFunc(fn)
	}
}

// Require rejects anonymous requests.
func Require(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// RequireAdmin rejects callers without the admin claim.
func RequireAdmin(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		user, ok := FromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}
		if !user.IsAdmin {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("admin privileges required"))
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
