package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manfeltor/dadsproject/internal/service/models/user"
)

type stubParser struct {
	userID int64
	role   user.Role
	err    error
}

func (s *stubParser) ParseToken(tokenString string) (int64, user.Role, error) {
	return s.userID, s.role, s.err
}

func run(t *testing.T, parser *stubParser, header string) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()

	var captured *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := FromContext(r.Context()); ok {
			captured = &id
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	RequireAuth(parser)(next).ServeHTTP(w, req)

	return w, captured
}

func TestRequireAuth_ValidToken(t *testing.T) {
	w, identity := run(t, &stubParser{userID: 7, role: user.RoleManager}, "Bearer sometoken")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, identity)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, user.RoleManager, identity.Role)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	w, identity := run(t, &stubParser{userID: 7}, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, identity)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	w, _ := run(t, &stubParser{userID: 7}, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	w, identity := run(t, &stubParser{err: errors.New("expired")}, "Bearer bad")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, identity)
}
