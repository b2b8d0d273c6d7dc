package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	iorder "github.com/manfeltor/dadsproject/internal/dal/interfaces/iorderrepo"
	iorderitem "github.com/manfeltor/dadsproject/internal/dal/interfaces/iorderitemrepo"
	iproduct "github.com/manfeltor/dadsproject/internal/dal/interfaces/iproductrepo"
	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	orderrepo "github.com/manfeltor/dadsproject/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/manfeltor/dadsproject/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/manfeltor/dadsproject/internal/dal/repositories/product/postgres"
)

// unitOfWork scopes repository access to one transaction. Before Begin the
// repositories run against the pool; after Begin they are rebound to the
// transaction until Commit or Rollback.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorder.IOrderRepository
	orderItemRepo iorderitem.IOrderItemRepository
	productRepo   iproduct.IProductRepository
}

// NewUnitOfWork creates a unit of work bound to the pool.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client:        client,
		orderRepo:     orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(client.Pool()),
		productRepo:   productrepo.NewPostgresProductRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorder.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitem.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproduct.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
