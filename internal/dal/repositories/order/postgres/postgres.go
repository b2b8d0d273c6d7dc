package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/order"
	"github.com/manfeltor/dadsproject/internal/service/models/orderitem"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              int64           `db:"id"`
	UserId          *int64          `db:"user_id"`
	Status          string          `db:"status"`
	DeliveryMethod  string          `db:"delivery_method"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   string          `db:"customer_email"`
	CustomerAddress string          `db:"customer_address"`
	CustomerPhone   string          `db:"customer_phone"`
	Note            string          `db:"note"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	DiscountTotal   decimal.Decimal `db:"discount_total"`
	ShippingTotal   decimal.Decimal `db:"shipping_total"`
	Total           decimal.Decimal `db:"total"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	method, err := order.ParseDeliveryMethod(o.DeliveryMethod)
	if err != nil {
		return nil, err
	}

	var userID int64
	if o.UserId != nil {
		userID = *o.UserId
	}

	return &order.Order{
		ID:              o.Id,
		UserID:          userID,
		Status:          status,
		DeliveryMethod:  method,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		CustomerPhone:   o.CustomerPhone,
		Note:            o.Note,
		Subtotal:        o.Subtotal,
		DiscountTotal:   o.DiscountTotal,
		ShippingTotal:   o.ShippingTotal,
		Total:           o.Total,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		OrderItems:      []orderitem.OrderItem{}, // populated separately
	}, nil
}

// OrderDalFromModel converts the service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	var userID *int64
	if o.UserID != 0 {
		id := o.UserID
		userID = &id
	}

	return &OrderDal{
		Id:              o.ID,
		UserId:          userID,
		Status:          o.Status.String(),
		DeliveryMethod:  o.DeliveryMethod.String(),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		CustomerPhone:   o.CustomerPhone,
		Note:            o.Note,
		Subtotal:        o.Subtotal,
		DiscountTotal:   o.DiscountTotal,
		ShippingTotal:   o.ShippingTotal,
		Total:           o.Total,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// PostgresOrderRepository is the Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a single order row and returns it with its generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns(
			"user_id",
			"status",
			"delivery_method",
			"customer_name",
			"customer_email",
			"customer_address",
			"customer_phone",
			"note",
			"subtotal",
			"discount_total",
			"shipping_total",
			"total",
			"created_at",
			"updated_at",
		).
		Values(
			dal.UserId,
			dal.Status,
			dal.DeliveryMethod,
			dal.CustomerName,
			dal.CustomerEmail,
			dal.CustomerAddress,
			dal.CustomerPhone,
			dal.Note,
			dal.Subtotal,
			dal.DiscountTotal,
			dal.ShippingTotal,
			dal.Total,
			dal.CreatedAt,
			dal.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert order query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// UpdateTotals finalizes the monetary totals of an existing order.
func (r *PostgresOrderRepository) UpdateTotals(ctx context.Context, o order.Order) error {
	sql, args, err := r.sb.
		Update("orders").
		Set("subtotal", o.Subtotal).
		Set("discount_total", o.DiscountTotal).
		Set("shipping_total", o.ShippingTotal).
		Set("total", o.Total).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update order totals query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to update order totals: %w", err)
	}

	return nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(
			"id",
			"user_id",
			"status",
			"delivery_method",
			"customer_name",
			"customer_email",
			"customer_address",
			"customer_phone",
			"note",
			"subtotal",
			"discount_total",
			"shipping_total",
			"total",
			"created_at",
			"updated_at",
		).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
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
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.Status,
			&dal.DeliveryMethod,
			&dal.CustomerName,
			&dal.CustomerEmail,
			&dal.CustomerAddress,
			&dal.CustomerPhone,
			&dal.Note,
			&dal.Subtotal,
			&dal.DiscountTotal,
			&dal.ShippingTotal,
			&dal.Total,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
