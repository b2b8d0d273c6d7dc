package catalogsvc

import (
	"context"
	"fmt"

	icategory "github.com/manfeltor/dadsproject/internal/dal/interfaces/icategoryrepo"
	iproduct "github.com/manfeltor/dadsproject/internal/dal/interfaces/iproductrepo"
	irubro "github.com/manfeltor/dadsproject/internal/dal/interfaces/irubrorepo"
	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	categoryrepo "github.com/manfeltor/dadsproject/internal/dal/repositories/category/postgres"
	productrepo "github.com/manfeltor/dadsproject/internal/dal/repositories/product/postgres"
	rubrorepo "github.com/manfeltor/dadsproject/internal/dal/repositories/rubro/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/category"
	"github.com/manfeltor/dadsproject/internal/service/models/product"
	"github.com/manfeltor/dadsproject/internal/service/models/rubro"
)

const defaultPageSize = 40

// CatalogService serves the read side of the product catalog.
type CatalogService struct {
	productRepo  iproduct.IProductRepository
	rubroRepo    irubro.IRubroRepository
	categoryRepo icategory.ICategoryRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.productRepo = productrepo.NewPostgresProductRepository(pgClient.Pool())
		s.rubroRepo = rubrorepo.NewPostgresRubroRepository(pgClient.Pool())
		s.categoryRepo = categoryrepo.NewPostgresCategoryRepository(pgClient.Pool())
	}
}

// ProductListing is one page of catalog results plus the rubro and
// category lists used to build storefront filters.
type ProductListing struct {
	Products   []product.Product   `json:"products"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
	Rubros     []rubro.Rubro       `json:"rubros"`
	Categories []category.Category `json:"categories"`
}

// ListProducts returns a filtered, sorted, paginated slice of the catalog.
func (s *CatalogService) ListProducts(
	ctx context.Context,
	filter product.QueryProductsModel,
) (*ProductListing, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}

	products, err := s.productRepo.Query(ctx, &filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	count, err := s.productRepo.Count(ctx, &filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	totalPages := int((count + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	rubros, err := s.rubroRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rubros: %w", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if products == nil {
		products = []product.Product{}
	}

	return &ProductListing{
		Products:   products,
		Page:       filter.Page,
		TotalPages: totalPages,
		Rubros:     rubros,
		Categories: categories,
	}, nil
}

// GetProduct returns one product with its bundle contents attached, or
// nil when the id is unknown.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*product.Product, error) {
	products, err := s.productRepo.BulkGetByIds(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	p, ok := products[id]
	if !ok {
		return nil, nil
	}

	bundles, err := s.productRepo.BundleItemIds(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("failed to get bundle items: %w", err)
	}
	p.BundleItemIds = bundles[id]

	return &p, nil
}
