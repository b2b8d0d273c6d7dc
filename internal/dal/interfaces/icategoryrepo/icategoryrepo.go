package icategory

import (
	"context"

	"github.com/manfeltor/dadsproject/internal/service/models/category"
)

// ICategoryRepository is an interface for category postgres repository.
type ICategoryRepository interface {
	List(ctx context.Context) ([]category.Category, error)
}
