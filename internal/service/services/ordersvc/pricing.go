package ordersvc

import (
	"github.com/shopspring/decimal"

	"github.com/manfeltor/dadsproject/internal/service/errs"
	"github.com/manfeltor/dadsproject/internal/service/models/orderitem"
	"github.com/manfeltor/dadsproject/internal/service/models/product"
)

// Shipping business constants. The threshold is inclusive: a 30.00
// subtotal ships free.
var (
	freeShippingThreshold = decimal.New(3000, -2)
	flatShippingFee       = decimal.New(450, -2)
	zeroAmount            = decimal.New(0, -2)
)

// pricedCart is the pure result of pricing a cart against the catalog,
// ready to be persisted as one batch.
type pricedCart struct {
	Lines         []orderitem.OrderItem
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
}

// priceCart prices every cart line from catalog data. Lines without a
// product id or with a non-positive quantity are silently dropped; a line
// referencing an unknown product fails the whole cart. At least one line
// must survive.
func priceCart(
	lines []checkoutLine,
	products map[int64]product.Product,
) (*pricedCart, error) {
	cart := &pricedCart{
		Subtotal:      zeroAmount,
		DiscountTotal: zeroAmount,
	}

	for _, line := range lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			continue
		}

		p, ok := products[line.ProductID]
		if !ok {
			return nil, errs.Validation("product with id=%d not found", line.ProductID)
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		unitPrice := p.DiscountedPrice()
		lineTotal := unitPrice.Mul(qty)

		cart.Subtotal = cart.Subtotal.Add(lineTotal)

		if discountUnit := p.Price.Sub(unitPrice); discountUnit.IsPositive() {
			cart.DiscountTotal = cart.DiscountTotal.Add(discountUnit.Mul(qty))
		}

		cart.Lines = append(cart.Lines, orderitem.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
	}

	if len(cart.Lines) == 0 {
		return nil, errs.Validation("no valid items in order")
	}

	return cart, nil
}

// shippingFor applies the flat-fee shipping rule to a subtotal.
func shippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return zeroAmount
	}
	if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		return zeroAmount
	}

	return flatShippingFee
}
