package ordersvc

import (
	"context"
	"errors"

	iorder "github.com/manfeltor/dadsproject/internal/dal/interfaces/iorderrepo"
	iorderitem "github.com/manfeltor/dadsproject/internal/dal/interfaces/iorderitemrepo"
	iproduct "github.com/manfeltor/dadsproject/internal/dal/interfaces/iproductrepo"
	"github.com/manfeltor/dadsproject/internal/service/models/order"
	"github.com/manfeltor/dadsproject/internal/service/models/orderitem"
	"github.com/manfeltor/dadsproject/internal/service/models/product"
)

// fakeUnitOfWork is an in-memory unitOfWork. Rows written after Begin are
// staged and only become visible on Commit; Rollback discards them.
type fakeUnitOfWork struct {
	products map[int64]product.Product

	orders     []order.Order
	orderItems []orderitem.OrderItem

	stagedOrders     []order.Order
	stagedOrderItems []orderitem.OrderItem

	nextOrderID     int64
	nextOrderItemID int64

	inTx       bool
	began      int
	committed  int
	rolledBack int

	failOrderInsert  bool
	failItemInsert   bool
	failUpdateTotals bool
}

func newFakeUOW(products ...product.Product) *fakeUnitOfWork {
	m := make(map[int64]product.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeUnitOfWork{products: m}
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error {
	f.inTx = true
	f.began++
	return nil
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	f.orders = append(f.orders, f.stagedOrders...)
	f.orderItems = append(f.orderItems, f.stagedOrderItems...)
	f.stagedOrders = nil
	f.stagedOrderItems = nil
	f.inTx = false
	f.committed++
	return nil
}

func (f *fakeUnitOfWork) Rollback(ctx context.Context) error {
	f.stagedOrders = nil
	f.stagedOrderItems = nil
	f.inTx = false
	f.rolledBack++
	return nil
}

func (f *fakeUnitOfWork) OrderRepository() iorder.IOrderRepository {
	return &fakeOrderRepo{f}
}

func (f *fakeUnitOfWork) OrderItemRepository() iorderitem.IOrderItemRepository {
	return &fakeOrderItemRepo{f}
}

func (f *fakeUnitOfWork) ProductRepository() iproduct.IProductRepository {
	return &fakeProductRepo{f}
}

type fakeOrderRepo struct{ f *fakeUnitOfWork }

func (r *fakeOrderRepo) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	if r.f.failOrderInsert {
		return order.Order{}, errors.New("insert blew up")
	}
	r.f.nextOrderID++
	o.ID = r.f.nextOrderID
	r.f.stagedOrders = append(r.f.stagedOrders, o)
	return o, nil
}

func (r *fakeOrderRepo) UpdateTotals(ctx context.Context, o order.Order) error {
	if r.f.failUpdateTotals {
		return errors.New("update blew up")
	}
	for i := range r.f.stagedOrders {
		if r.f.stagedOrders[i].ID == o.ID {
			r.f.stagedOrders[i].Subtotal = o.Subtotal
			r.f.stagedOrders[i].DiscountTotal = o.DiscountTotal
			r.f.stagedOrders[i].ShippingTotal = o.ShippingTotal
			r.f.stagedOrders[i].Total = o.Total
			return nil
		}
	}
	return errors.New("order not staged")
}

func (r *fakeOrderRepo) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	return append([]order.Order(nil), r.f.orders...), nil
}

type fakeOrderItemRepo struct{ f *fakeUnitOfWork }

func (r *fakeOrderItemRepo) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if r.f.failItemInsert {
		return nil, errors.New("bulk insert blew up")
	}
	out := make([]orderitem.OrderItem, len(items))
	for i, item := range items {
		r.f.nextOrderItemID++
		item.ID = r.f.nextOrderItemID
		r.f.stagedOrderItems = append(r.f.stagedOrderItems, item)
		out[i] = item
	}
	return out, nil
}

func (r *fakeOrderItemRepo) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	return append([]orderitem.OrderItem(nil), r.f.orderItems...), nil
}

type fakeProductRepo struct{ f *fakeUnitOfWork }

func (r *fakeProductRepo) BulkGetByIds(
	ctx context.Context,
	ids []int64,
) (map[int64]product.Product, error) {
	result := make(map[int64]product.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.f.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count(
	ctx context.Context,
	filter *product.QueryProductsModel,
) (int64, error) {
	return 0, nil
}

func (r *fakeProductRepo) BundleItemIds(
	ctx context.Context,
	productIds []int64,
) (map[int64][]int64, error) {
	return map[int64][]int64{}, nil
}

func newTestService(f *fakeUnitOfWork) *OrderService {
	return &OrderService{newUOW: func() unitOfWork { return f }}
}
