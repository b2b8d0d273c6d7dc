package iproduct

import (
	"context"

	"github.com/manfeltor/dadsproject/internal/service/models/product"
)

// IProductRepository is an interface for product postgres repository.
type IProductRepository interface {
	// BulkGetByIds resolves products in a single query. Absent ids are
	// simply missing from the result map.
	BulkGetByIds(ctx context.Context, ids []int64) (map[int64]product.Product, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	Count(ctx context.Context, filter *product.QueryProductsModel) (int64, error)
	BundleItemIds(ctx context.Context, productIds []int64) (map[int64][]int64, error)
}
