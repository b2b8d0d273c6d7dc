package ordersvc

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/order"
	"github.com/manfeltor/dadsproject/internal/service/models/product"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testProduct(id int64, name, price, discount string) product.Product {
	return product.Product{
		ID:       id,
		Name:     name,
		Price:    d(price),
		Discount: d(discount),
	}
}

func validPayload(items ...CheckoutItem) CheckoutPayload {
	return CheckoutPayload{
		Items:         items,
		CustomerName:  "Ana Gomez",
		CustomerEmail: "ana@example.com",
	}
}

func TestCheckout_EndToEnd(t *testing.T) {
	f := newFakeUOW(
		testProduct(1, "Combo familiar", "10.00", "2.00"),
		testProduct(2, "Empanada", "5.00", "0"),
	)
	s := newTestService(f)

	o, err := s.Checkout(context.Background(), 7, validPayload(
		CheckoutItem{ProductID: 1, Quantity: 2},
		CheckoutItem{ProductID: 2, Quantity: 1},
	))
	require.NoError(t, err)

	assert.True(t, d("21.00").Equal(o.Subtotal), "subtotal = %s", o.Subtotal)
	assert.True(t, d("4.00").Equal(o.DiscountTotal), "discount = %s", o.DiscountTotal)
	assert.True(t, d("4.50").Equal(o.ShippingTotal), "shipping = %s", o.ShippingTotal)
	assert.True(t, d("25.50").Equal(o.Total), "total = %s", o.Total)

	require.Len(t, o.OrderItems, 2)
	assert.Equal(t, "Combo familiar", o.OrderItems[0].ProductName)
	assert.True(t, d("8.00").Equal(o.OrderItems[0].UnitPrice))
	assert.Equal(t, 2, o.OrderItems[0].Quantity)
	assert.True(t, d("16.00").Equal(o.OrderItems[0].LineTotal))
	assert.Equal(t, "Empanada", o.OrderItems[1].ProductName)

	assert.Equal(t, int64(7), o.UserID)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.DeliveryMethodPickup, o.DeliveryMethod)

	assert.Equal(t, 1, f.committed)
	assert.Zero(t, f.rolledBack)
	require.Len(t, f.orders, 1)
	assert.True(t, d("25.50").Equal(f.orders[0].Total), "persisted totals must be final")
	assert.Len(t, f.orderItems, 2)
}

// The total must equal subtotal plus shipping exactly, with no float
// drift, even across many discounted lines.
func TestCheckout_TotalIdentityManyLines(t *testing.T) {
	products := make([]product.Product, 0, 50)
	items := make([]CheckoutItem, 0, 50)
	for i := int64(1); i <= 50; i++ {
		products = append(products, testProduct(i, "p", "0.10", "0.01"))
		items = append(items, CheckoutItem{ProductID: i, Quantity: 3})
	}
	f := newFakeUOW(products...)
	s := newTestService(f)

	o, err := s.Checkout(context.Background(), 0, validPayload(items...))
	require.NoError(t, err)

	// 50 lines of 3 x 0.09
	assert.True(t, d("13.50").Equal(o.Subtotal), "subtotal = %s", o.Subtotal)
	assert.True(t, d("1.50").Equal(o.DiscountTotal))
	assert.True(t, o.Total.Equal(o.Subtotal.Add(o.ShippingTotal)))
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFakeUOW()
	s := newTestService(f)

	_, err := s.Checkout(context.Background(), 0, validPayload())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "no items in order")
	assert.Zero(t, f.began)
	assert.Empty(t, f.orders)
}

func TestCheckout_InvalidDeliveryMethod(t *testing.T) {
	f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
	s := newTestService(f)

	payload := validPayload(CheckoutItem{ProductID: 1, Quantity: 1})
	payload.DeliveryMethod = "drone"

	_, err := s.Checkout(context.Background(), 0, payload)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "invalid delivery method")
	assert.Empty(t, f.orders)
}

func TestCheckout_MissingCustomerFields(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*CheckoutPayload)
	}{
		{"blank name", func(p *CheckoutPayload) { p.CustomerName = "   " }},
		{"blank email", func(p *CheckoutPayload) { p.CustomerEmail = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
			s := newTestService(f)

			payload := validPayload(CheckoutItem{ProductID: 1, Quantity: 1})
			tt.mut(&payload)

			_, err := s.Checkout(context.Background(), 0, payload)
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err))
			assert.Contains(t, err.Error(), "customer name and email are required")
			assert.Empty(t, f.orders)
		})
	}
}

// Any unknown product id fails the whole cart; nothing may be persisted.
func TestCheckout_UnknownProductAtomicity(t *testing.T) {
	f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
	s := newTestService(f)

	_, err := s.Checkout(context.Background(), 0, validPayload(
		CheckoutItem{ProductID: 1, Quantity: 1},
		CheckoutItem{ProductID: 99, Quantity: 2},
	))
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "product with id=99 not found")
	assert.Empty(t, f.orders)
	assert.Empty(t, f.orderItems)
	assert.Empty(t, f.stagedOrders)
}

// Items with missing ids or non-positive quantities are silently dropped.
// Non-numeric quantities coerce to zero rather than failing; this is the
// historical storefront behavior, preserved on purpose.
func TestCheckout_QuantityAndIdFiltering(t *testing.T) {
	f := newFakeUOW(
		testProduct(1, "kept", "2.00", "0"),
		testProduct(2, "string qty", "3.00", "0"),
	)
	s := newTestService(f)

	o, err := s.Checkout(context.Background(), 0, validPayload(
		CheckoutItem{ProductID: 1, Quantity: 1},
		CheckoutItem{ProductID: 2, Quantity: "2"},   // numeric string kept
		CheckoutItem{ProductID: 1, Quantity: "abc"}, // non-numeric dropped
		CheckoutItem{ProductID: 1, Quantity: 0},     // zero dropped
		CheckoutItem{ProductID: 1, Quantity: -3},    // negative dropped
		CheckoutItem{ProductID: 0, Quantity: 5},     // missing id dropped
		CheckoutItem{ProductID: 1, Quantity: nil},   // absent dropped
	))
	require.NoError(t, err)

	require.Len(t, o.OrderItems, 2)
	assert.True(t, d("8.00").Equal(o.Subtotal), "subtotal = %s", o.Subtotal)
}

func TestCheckout_AllItemsFiltered(t *testing.T) {
	f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
	s := newTestService(f)

	_, err := s.Checkout(context.Background(), 0, validPayload(
		CheckoutItem{ProductID: 1, Quantity: 0},
		CheckoutItem{ProductID: 0, Quantity: 3},
	))
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
	assert.Contains(t, err.Error(), "no valid items in order")
	assert.Empty(t, f.orders)
}

func TestCheckout_AddressPolicy(t *testing.T) {
	t.Run("pickup clears address", func(t *testing.T) {
		f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
		s := newTestService(f)

		payload := validPayload(CheckoutItem{ProductID: 1, Quantity: 1})
		payload.DeliveryMethod = "pickup"
		payload.CustomerAddress = "Av. Siempre Viva 742"

		o, err := s.Checkout(context.Background(), 0, payload)
		require.NoError(t, err)
		assert.Empty(t, o.CustomerAddress)
		assert.Empty(t, f.orders[0].CustomerAddress)
	})

	t.Run("delivery keeps trimmed address", func(t *testing.T) {
		f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
		s := newTestService(f)

		payload := validPayload(CheckoutItem{ProductID: 1, Quantity: 1})
		payload.DeliveryMethod = "delivery"
		payload.CustomerAddress = "  Av. Siempre Viva 742  "

		o, err := s.Checkout(context.Background(), 0, payload)
		require.NoError(t, err)
		assert.Equal(t, "Av. Siempre Viva 742", o.CustomerAddress)
		assert.Equal(t, order.DeliveryMethodDelivery, o.DeliveryMethod)
	})
}

func TestCheckout_ShippingThreshold(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		shipping string
		total    string
	}{
		{"just under threshold", "29.99", "4.50", "34.49"},
		{"at threshold ships free", "30.00", "0.00", "30.00"},
		{"zero subtotal ships free", "0.00", "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeUOW(testProduct(1, "p", tt.price, "0"))
			s := newTestService(f)

			o, err := s.Checkout(context.Background(), 0,
				validPayload(CheckoutItem{ProductID: 1, Quantity: 1}))
			require.NoError(t, err)
			assert.True(t, d(tt.shipping).Equal(o.ShippingTotal), "shipping = %s", o.ShippingTotal)
			assert.True(t, d(tt.total).Equal(o.Total), "total = %s", o.Total)
		})
	}
}

// Discounts at or above the price floor the unit price at zero; the
// discount granted is then the full catalog price, never negative.
func TestCheckout_DiscountFloor(t *testing.T) {
	f := newFakeUOW(testProduct(1, "freebie", "5.00", "7.00"))
	s := newTestService(f)

	o, err := s.Checkout(context.Background(), 0,
		validPayload(CheckoutItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)

	assert.True(t, o.OrderItems[0].UnitPrice.IsZero())
	assert.True(t, o.Subtotal.IsZero())
	assert.True(t, d("10.00").Equal(o.DiscountTotal), "discount = %s", o.DiscountTotal)
	assert.True(t, o.ShippingTotal.IsZero())
}

func TestCheckout_AnonymousActor(t *testing.T) {
	f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
	s := newTestService(f)

	o, err := s.Checkout(context.Background(), 0,
		validPayload(CheckoutItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	assert.Zero(t, o.UserID)
}

func TestCheckout_PersistenceFailureRollsBack(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*fakeUnitOfWork)
	}{
		{"order insert fails", func(f *fakeUnitOfWork) { f.failOrderInsert = true }},
		{"item insert fails", func(f *fakeUnitOfWork) { f.failItemInsert = true }},
		{"totals update fails", func(f *fakeUnitOfWork) { f.failUpdateTotals = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeUOW(testProduct(1, "p", "1.00", "0"))
			tt.mut(f)
			s := newTestService(f)

			_, err := s.Checkout(context.Background(), 0,
				validPayload(CheckoutItem{ProductID: 1, Quantity: 1}))
			require.Error(t, err)
			assert.False(t, errs.IsValidation(err), "storage failures are not validation errors")
			assert.False(t, strings.Contains(err.Error(), "not found"))
			assert.Equal(t, 1, f.rolledBack)
			assert.Empty(t, f.orders)
			assert.Empty(t, f.orderItems)
		})
	}
}
