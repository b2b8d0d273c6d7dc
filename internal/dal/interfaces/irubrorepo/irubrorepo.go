package irubro

import (
	"context"

	"github.com/manfeltor/dadsproject/internal/service/models/rubro"
)

// IRubroRepository is an interface for rubro postgres repository.
type IRubroRepository interface {
	List(ctx context.Context) ([]rubro.Rubro, error)
}
