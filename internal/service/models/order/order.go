package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/manfeltor/dadsproject/internal/service/models/orderitem"
)

// Order represents one purchase transaction with its totals frozen at
// creation time.
type Order struct {
	ID              int64                 `json:"id"`
	UserID          int64                 `json:"userId,omitempty"`
	Status          Status                `json:"status"`
	DeliveryMethod  DeliveryMethod        `json:"deliveryMethod"`
	CustomerName    string                `json:"customerName"`
	CustomerEmail   string                `json:"customerEmail"`
	CustomerAddress string                `json:"customerAddress"`
	CustomerPhone   string                `json:"customerPhone"`
	Note            string                `json:"note"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	DiscountTotal   decimal.Decimal       `json:"discountTotal"`
	ShippingTotal   decimal.Decimal       `json:"shippingTotal"`
	Total           decimal.Decimal       `json:"total"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	OrderItems      []orderitem.OrderItem `json:"orderItems"`
}

// IsDelivery reports whether the order is shipped to the customer.
func (o *Order) IsDelivery() bool {
	return o.DeliveryMethod == DeliveryMethodDelivery
}

// IsPickup reports whether the order is collected by the customer.
func (o *Order) IsPickup() bool {
	return o.DeliveryMethod == DeliveryMethodPickup
}
