package ordersvc

import (
	"context"
	"fmt"
	"time"

	iorder "github.com/manfeltor/dadsproject/internal/dal/interfaces/iorderrepo"
	iorderitem "github.com/manfeltor/dadsproject/internal/dal/interfaces/iorderitemrepo"
	iproduct "github.com/manfeltor/dadsproject/internal/dal/interfaces/iproductrepo"
	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/dal/uow"
	"github.com/manfeltor/dadsproject/internal/service/models/order"
	"github.com/manfeltor/dadsproject/internal/service/models/orderitem"
)

// OrderService builds and queries orders.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorder.IOrderRepository
	OrderItemRepository() iorderitem.IOrderItemRepository
	ProductRepository() iproduct.IProductRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
	}
}

// Checkout builds one order from a cart payload. Prices come from the
// catalog, never from the client. The order row, its items and the final
// totals are written in a single transaction: on any failure nothing is
// persisted.
//
// actorID associates the order with an authenticated user; zero means
// anonymous and leaves the order unowned.
func (s *OrderService) Checkout(
	ctx context.Context,
	actorID int64,
	payload CheckoutPayload,
) (*order.Order, error) {
	normalized, err := payload.normalize()
	if err != nil {
		return nil, err
	}

	work := s.newUOW()

	// Single bulk lookup before the transaction. A snapshot read: catalog
	// writes racing this checkout are not guarded against.
	products, err := work.ProductRepository().BulkGetByIds(ctx, normalized.productIds())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	cart, err := priceCart(normalized.Items, products)
	if err != nil {
		return nil, err
	}

	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	built, err := s.persistOrder(ctx, work, actorID, normalized, cart)
	if err != nil {
		_ = work.Rollback(ctx)
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		_ = work.Rollback(ctx)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return built, nil
}

// persistOrder writes the order header, its line items and the final
// totals inside the caller's transaction.
func (s *OrderService) persistOrder(
	ctx context.Context,
	work unitOfWork,
	actorID int64,
	payload *normalizedPayload,
	cart *pricedCart,
) (*order.Order, error) {
	now := time.Now()

	address := ""
	if payload.DeliveryMethod == order.DeliveryMethodDelivery {
		address = payload.CustomerAddress
	}

	o, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:          actorID,
		Status:          order.StatusPending,
		DeliveryMethod:  payload.DeliveryMethod,
		CustomerName:    payload.CustomerName,
		CustomerEmail:   payload.CustomerEmail,
		CustomerAddress: address,
		CustomerPhone:   payload.CustomerPhone,
		Note:            payload.Note,
		Subtotal:        zeroAmount,
		DiscountTotal:   zeroAmount,
		ShippingTotal:   zeroAmount,
		Total:           zeroAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range cart.Lines {
		cart.Lines[i].OrderID = o.ID
	}

	items, err := work.OrderItemRepository().BulkInsert(ctx, cart.Lines)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order items: %w", err)
	}

	o.Subtotal = cart.Subtotal
	o.DiscountTotal = cart.DiscountTotal
	o.ShippingTotal = shippingFor(cart.Subtotal)
	o.Total = cart.Subtotal.Add(o.ShippingTotal)
	o.UpdatedAt = now

	if err := work.OrderRepository().UpdateTotals(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order totals: %w", err)
	}

	o.OrderItems = items

	return &o, nil
}

// GetOrders retrieves orders with their items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	itemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		itemQuery.OrderIds = append(itemQuery.OrderIds, o.ID)
	}
	items, err := work.OrderItemRepository().Query(ctx, itemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}
