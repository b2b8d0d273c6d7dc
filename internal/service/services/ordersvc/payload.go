package ordersvc

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/order"
)

// CheckoutItem is one cart entry. Quantity is deliberately untyped: the
// storefront front end has historically sent it as a number or a string,
// and anything non-numeric is treated as zero and dropped rather than
// rejected.
type CheckoutItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  any   `json:"quantity"`
}

// CheckoutPayload is the cart submission consumed by Checkout. It carries
// no prices; pricing is always resolved from the catalog.
type CheckoutPayload struct {
	Items           []CheckoutItem `json:"items"`
	DeliveryMethod  string         `json:"delivery_method"`
	CustomerName    string         `json:"customer_name"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerAddress string         `json:"customer_address"`
	CustomerPhone   string         `json:"customer_phone"`
	Note            string         `json:"note"`
}

// normalizedPayload is a CheckoutPayload after validation and trimming.
type normalizedPayload struct {
	Items           []checkoutLine
	DeliveryMethod  order.DeliveryMethod
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	CustomerPhone   string
	Note            string
}

// checkoutLine is a cart entry with its quantity coerced to an integer.
type checkoutLine struct {
	ProductID int64
	Quantity  int
}

// normalize validates the payload and coerces item quantities. Item-level
// filtering (zero ids, non-positive quantities) happens later in priceCart;
// here only order-level constraints are enforced.
func (p CheckoutPayload) normalize() (*normalizedPayload, error) {
	if len(p.Items) == 0 {
		return nil, errs.Validation("no items in order")
	}

	method, err := order.ParseDeliveryMethod(p.DeliveryMethod)
	if err != nil {
		return nil, errs.Validation("invalid delivery method")
	}

	name := strings.TrimSpace(p.CustomerName)
	email := strings.TrimSpace(p.CustomerEmail)
	if name == "" || email == "" {
		return nil, errs.Validation("customer name and email are required")
	}

	lines := make([]checkoutLine, len(p.Items))
	for i, item := range p.Items {
		lines[i] = checkoutLine{
			ProductID: item.ProductID,
			Quantity:  coerceQuantity(item.Quantity),
		}
	}

	return &normalizedPayload{
		Items:           lines,
		DeliveryMethod:  method,
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerAddress: strings.TrimSpace(p.CustomerAddress),
		CustomerPhone:   strings.TrimSpace(p.CustomerPhone),
		Note:            p.Note,
	}, nil
}

// productIds collects the distinct product ids referenced by the cart,
// ignoring entries without one.
func (p *normalizedPayload) productIds() []int64 {
	seen := make(map[int64]struct{}, len(p.Items))
	ids := make([]int64, 0, len(p.Items))
	for _, line := range p.Items {
		if line.ProductID <= 0 {
			continue
		}
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	return ids
}

// coerceQuantity turns whatever the client sent into an integer quantity.
// Non-numeric values become zero, which drops the item downstream.
func coerceQuantity(v any) int {
	switch q := v.(type) {
	case nil:
		return 0
	case int:
		return q
	case int64:
		return int(q)
	case float64:
		return int(q)
	case json.Number:
		n, err := q.Int64()
		if err != nil {
			f, ferr := q.Float64()
			if ferr != nil {
				return 0
			}
			return int(f)
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
