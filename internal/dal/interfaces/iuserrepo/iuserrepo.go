package iuser

import (
	"context"

	"github.com/manfeltor/dadsproject/internal/service/models/user"
)

// IUserRepository is an interface for user postgres repository.
type IUserRepository interface {
	Insert(ctx context.Context, u user.User) (user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
}
