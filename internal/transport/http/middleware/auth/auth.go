package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/manfeltor/dadsproject/internal/service/models/user"
)

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID int64
	Role   user.Role
}

type contextKey struct{}

// tokenParser validates a token and returns the identity it carries.
type tokenParser interface {
	ParseToken(tokenString string) (int64, user.Role, error)
}

// RequireAuth rejects requests without a valid bearer token and stores
// the caller's identity in the request context.
func RequireAuth(parser tokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "authentication required", http.StatusUnauthorized)

				return
			}

			userID, role, err := parser.ParseToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)

				return
			}

			ctx := WithIdentity(r.Context(), Identity{UserID: userID, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity stores an identity in the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in the context, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
