package usersvc

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	iuser "github.com/manfeltor/dadsproject/internal/dal/interfaces/iuserrepo"
	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	userrepo "github.com/manfeltor/dadsproject/internal/dal/repositories/user/postgres"
	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/user"
)

const tokenTTL = 24 * time.Hour

// UserService handles accounts and authentication tokens.
type UserService struct {
	userRepo  iuser.IUserRepository
	jwtSecret []byte
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService. The JWT secret comes from
// the environment and must be set.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{
		jwtSecret: []byte(os.Getenv("STOREFRONT_JWT_SECRET")),
	}
	for _, opt := range opts {
		opt(s)
	}

	if len(s.jwtSecret) == 0 {
		panic("STOREFRONT_JWT_SECRET is not set")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the UserService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *UserService) {
		s.userRepo = userrepo.NewPostgresUserRepository(pgClient.Pool())
	}
}

// RegisterPayload is the account-creation input.
type RegisterPayload struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// Register creates a new cliente account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, payload RegisterPayload) (*user.User, error) {
	username := strings.TrimSpace(payload.Username)
	email := strings.TrimSpace(payload.Email)
	if username == "" || email == "" {
		return nil, errs.Validation("username and email are required")
	}
	if len(payload.Password) < 8 {
		return nil, errs.Validation("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, errs.Validation("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Insert(ctx, user.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  strings.TrimSpace(payload.PhoneNumber),
		Role:         user.RoleClient,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &created, nil
}

// Login verifies credentials and issues a signed token.
func (s *UserService) Login(
	ctx context.Context,
	username, password string,
) (string, *user.User, error) {
	u, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if u == nil {
		return "", nil, errs.Validation("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, errs.Validation("invalid username or password")
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

// IssueToken signs a HS256 token carrying the user id and role.
func (s *UserService) IssueToken(u *user.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(u.ID, 10),
		"role": u.Role.String(),
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// ParseToken validates a token and returns the user id and role it carries.
func (s *UserService) ParseToken(tokenString string) (int64, user.Role, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", errs.Validation("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errs.Validation("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, "", errs.Validation("invalid token subject")
	}

	roleClaim, _ := claims["role"].(string)
	role, err := user.ParseRole(roleClaim)
	if err != nil {
		return 0, "", errs.Validation("invalid token role")
	}

	return id, role, nil
}
