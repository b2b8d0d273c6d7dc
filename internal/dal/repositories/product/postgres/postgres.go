package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/product"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id               int64           `db:"id"`
	Name             string          `db:"name"`
	Slug             string          `db:"slug"`
	CategoryId       int64           `db:"category_id"`
	Price            decimal.Decimal `db:"price"`
	Discount         decimal.Decimal `db:"discount"`
	DiscountName     string          `db:"discount_name"`
	Featured         bool            `db:"featured"`
	ShortDescription string          `db:"short_description"`
	LongDescription  string          `db:"long_description"`
	Image            string          `db:"image"`
	Stock            int             `db:"stock"`
	CreatedAt        time.Time       `db:"created_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:               p.Id,
		Name:             p.Name,
		Slug:             p.Slug,
		CategoryID:       p.CategoryId,
		Price:            p.Price,
		Discount:         p.Discount,
		DiscountName:     p.DiscountName,
		Featured:         p.Featured,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Image:            p.Image,
		Stock:            p.Stock,
		CreatedAt:        p.CreatedAt,
	}
}

// PostgresProductRepository is the Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkGetByIds resolves a set of products in a single query. Ids that do
// not exist are simply absent from the returned map.
func (r *PostgresProductRepository) BulkGetByIds(
	ctx context.Context,
	ids []int64,
) (map[int64]product.Product, error) {
	result := make(map[int64]product.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.
		Select(
			"p.id",
			"p.name",
			"p.slug",
			"p.category_id",
			"p.price",
			"p.discount",
			"p.discount_name",
			"p.featured",
			"p.short_description",
			"p.long_description",
			"p.image",
			"p.stock",
			"p.created_at",
		).
		From("products p").
		Where(sq.Eq{"p.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		dal, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result[dal.Id] = *dal.ToModel()
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// buildFilter applies catalog filters shared by Query and Count.
func (r *PostgresProductRepository) buildFilter(
	query sq.SelectBuilder,
	filter *product.QueryProductsModel,
) sq.SelectBuilder {
	if filter.RubroSlug != "" || filter.CategorySlug != "" {
		query = query.Join("categories c ON c.id = p.category_id")
	}

	if filter.RubroSlug != "" {
		query = query.
			Join("rubros r ON r.id = c.rubro_id").
			Where(sq.Eq{"r.slug": filter.RubroSlug})
	}

	if filter.CategorySlug != "" {
		query = query.Where(sq.Eq{"c.slug": filter.CategorySlug})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(sq.Or{
			sq.ILike{"p.name": pattern},
			sq.ILike{"p.short_description": pattern},
			sq.ILike{"p.long_description": pattern},
		})
	}

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"p.id": filter.Ids})
	}

	return query
}

// Query retrieves products based on catalog filter criteria.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	query := r.buildFilter(r.sb.
		Select(
			"p.id",
			"p.name",
			"p.slug",
			"p.category_id",
			"p.price",
			"p.discount",
			"p.discount_name",
			"p.featured",
			"p.short_description",
			"p.long_description",
			"p.image",
			"p.stock",
			"p.created_at",
		).
		From("products p"), filter)

	switch filter.Sort {
	case product.SortPriceAsc:
		query = query.OrderBy("p.price")
	case product.SortPriceDesc:
		query = query.OrderBy("p.price DESC")
	case product.SortNameAsc:
		query = query.OrderBy("p.name")
	default:
		query = query.OrderBy("p.featured DESC", "p.name")
	}

	if filter.PageSize > 0 {
		query = query.Limit(uint64(filter.PageSize))
		if filter.Page > 1 {
			query = query.Offset(uint64((filter.Page - 1) * filter.PageSize))
		}
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		dal, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of products matching the filter, ignoring
// pagination.
func (r *PostgresProductRepository) Count(
	ctx context.Context,
	filter *product.QueryProductsModel,
) (int64, error) {
	query := r.buildFilter(r.sb.Select("COUNT(*)").From("products p"), filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

// BundleItemIds returns the bundle contents for each of the given products.
// Products without bundle items are absent from the result map.
func (r *PostgresProductRepository) BundleItemIds(
	ctx context.Context,
	productIds []int64,
) (map[int64][]int64, error) {
	result := make(map[int64][]int64)
	if len(productIds) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.
		Select("bundle_id", "item_id").
		From("product_items").
		Where(sq.Eq{"bundle_id": productIds}).
		OrderBy("bundle_id", "item_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bundle items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bundleID, itemID int64
		if err := rows.Scan(&bundleID, &itemID); err != nil {
			return nil, fmt.Errorf("failed to scan bundle item: %w", err)
		}
		result[bundleID] = append(result[bundleID], itemID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*ProductDal, error) {
	var dal ProductDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Slug,
		&dal.CategoryId,
		&dal.Price,
		&dal.Discount,
		&dal.DiscountName,
		&dal.Featured,
		&dal.ShortDescription,
		&dal.LongDescription,
		&dal.Image,
		&dal.Stock,
		&dal.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	return &dal, nil
}
