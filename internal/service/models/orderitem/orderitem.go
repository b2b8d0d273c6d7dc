package orderitem

import (
	"github.com/shopspring/decimal"
)

// OrderItem is a priced snapshot of one product within one order.
// Numeric fields are immutable after creation; they record the price at
// the moment the order was placed, independent of later catalog changes.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId,omitempty"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}
