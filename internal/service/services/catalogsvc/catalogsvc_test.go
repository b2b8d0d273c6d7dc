package catalogsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manfeltor/dadsproject/internal/service/models/category"
	"github.com/manfeltor/dadsproject/internal/service/models/product"
	"github.com/manfeltor/dadsproject/internal/service/models/rubro"
)

type fakeProductRepo struct {
	products []product.Product
	bundles  map[int64][]int64

	lastFilter *product.QueryProductsModel
}

func (f *fakeProductRepo) BulkGetByIds(
	ctx context.Context,
	ids []int64,
) (map[int64]product.Product, error) {
	result := map[int64]product.Product{}
	for _, p := range f.products {
		for _, id := range ids {
			if p.ID == id {
				result[id] = p
			}
		}
	}
	return result, nil
}

func (f *fakeProductRepo) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	f.lastFilter = filter
	return f.products, nil
}

func (f *fakeProductRepo) Count(
	ctx context.Context,
	filter *product.QueryProductsModel,
) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) BundleItemIds(
	ctx context.Context,
	productIds []int64,
) (map[int64][]int64, error) {
	return f.bundles, nil
}

type fakeRubroRepo struct{ rubros []rubro.Rubro }

func (f *fakeRubroRepo) List(ctx context.Context) ([]rubro.Rubro, error) {
	return f.rubros, nil
}

type fakeCategoryRepo struct{ categories []category.Category }

func (f *fakeCategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	return f.categories, nil
}

func TestListProducts_Defaults(t *testing.T) {
	repo := &fakeProductRepo{products: []product.Product{{ID: 1, Name: "a"}}}
	s := &CatalogService{
		productRepo:  repo,
		rubroRepo:    &fakeRubroRepo{rubros: []rubro.Rubro{{ID: 1, Name: "Food", Slug: "food"}}},
		categoryRepo: &fakeCategoryRepo{},
	}

	listing, err := s.ListProducts(context.Background(), product.QueryProductsModel{})
	require.NoError(t, err)

	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 1, listing.TotalPages)
	assert.Equal(t, defaultPageSize, repo.lastFilter.PageSize)
	assert.Len(t, listing.Rubros, 1)
}

func TestListProducts_PaginationMath(t *testing.T) {
	products := make([]product.Product, 85)
	repo := &fakeProductRepo{products: products}
	s := &CatalogService{
		productRepo:  repo,
		rubroRepo:    &fakeRubroRepo{},
		categoryRepo: &fakeCategoryRepo{},
	}

	listing, err := s.ListProducts(context.Background(), product.QueryProductsModel{
		Page:     2,
		PageSize: 40,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, listing.Page)
	assert.Equal(t, 3, listing.TotalPages, "85 products at 40 per page")
}

func TestGetProduct(t *testing.T) {
	s := &CatalogService{
		productRepo: &fakeProductRepo{
			products: []product.Product{{ID: 5, Name: "combo"}},
			bundles:  map[int64][]int64{5: {6, 7}},
		},
	}

	p, err := s.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, []int64{6, 7}, p.BundleItemIds)
	assert.True(t, p.IsBundle())

	missing, err := s.GetProduct(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
