package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id          int64           `db:"id"`
	OrderId     int64           `db:"order_id"`
	ProductId   *int64          `db:"product_id"`
	ProductName string          `db:"product_name"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Quantity    int             `db:"quantity"`
	LineTotal   decimal.Decimal `db:"line_total"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	var productID int64
	if oi.ProductId != nil {
		productID = *oi.ProductId
	}

	return &orderitem.OrderItem{
		ID:          oi.Id,
		OrderID:     oi.OrderId,
		ProductID:   productID,
		ProductName: oi.ProductName,
		UnitPrice:   oi.UnitPrice,
		Quantity:    oi.Quantity,
		LineTotal:   oi.LineTotal,
	}
}

// PostgresOrderItemRepository is the Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple order items in one statement and returns them
// with generated ids, preserving input order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql := `
		INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, line_total)
		SELECT order_id, product_id, product_name, unit_price, quantity, line_total
		FROM unnest($1::bigint[], $2::bigint[], $3::text[], $4::numeric[], $5::int[], $6::numeric[])
		AS t(order_id, product_id, product_name, unit_price, quantity, line_total)
		RETURNING id, order_id, product_id, product_name, unit_price, quantity, line_total
	`

	orderIds := make([]int64, len(orderItems))
	productIds := make([]*int64, len(orderItems))
	productNames := make([]string, len(orderItems))
	unitPrices := make([]string, len(orderItems))
	quantities := make([]int32, len(orderItems))
	lineTotals := make([]string, len(orderItems))

	for i, oi := range orderItems {
		orderIds[i] = oi.OrderID
		if oi.ProductID != 0 {
			id := oi.ProductID
			productIds[i] = &id
		}
		productNames[i] = oi.ProductName
		unitPrices[i] = oi.UnitPrice.StringFixed(2)
		quantities[i] = int32(oi.Quantity)
		lineTotals[i] = oi.LineTotal.StringFixed(2)
	}

	rows, err := r.conn.Query(ctx, sql,
		orderIds,
		productIds,
		productNames,
		unitPrices,
		quantities,
		lineTotals,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.UnitPrice,
			&dal.Quantity,
			&dal.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	query := r.sb.
		Select(
			"id",
			"order_id",
			"product_id",
			"product_name",
			"unit_price",
			"quantity",
			"line_total",
		).
		From("order_items").
		OrderBy("id")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		query = query.Where(sq.Eq{"order_id": filter.OrderIds})
	}

	if len(filter.ProductIds) > 0 {
		query = query.Where(sq.Eq{"product_id": filter.ProductIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.UnitPrice,
			&dal.Quantity,
			&dal.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
