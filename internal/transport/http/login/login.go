package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/user"
)

// service is an interface for the service layer.
type service interface {
	Login(ctx context.Context, username, password string) (string, *user.User, error)
}

// loginRequest represents a login request.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate validates the login request.
func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login handles the login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding login request", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	token, u, err := service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errs.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusUnauthorized)

			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)
		slog.Error("Error logging in", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(loginResponse{
		Token:    token,
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role.String(),
	}); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
