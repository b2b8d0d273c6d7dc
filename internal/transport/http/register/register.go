package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/user"
	"github.com/manfeltor/dadsproject/internal/service/services/usersvc"
)

// service is an interface for the service layer.
type service interface {
	Register(ctx context.Context, payload usersvc.RegisterPayload) (*user.User, error)
}

// registerRequest represents an account creation request.
type registerRequest struct {
	Username    string `json:"username"     validate:"required"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	PhoneNumber string `json:"phone_number"`
}

// Validate validates the register request.
func (r *registerRequest) Validate() error {
	return validator.New().Struct(r)
}

type registerResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register handles the account creation request.
func Register(w http.ResponseWriter, r *http.Request, service service) {
	req := registerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding register request", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	u, err := service.Register(r.Context(), usersvc.RegisterPayload{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errs.IsValidation(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)
		slog.Error("Error registering user", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(registerResponse{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role.String(),
	}); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
