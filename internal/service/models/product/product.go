package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The builder side of the system consumes it
// through a narrow read contract: bulk lookup by id, pricing via
// DiscountedPrice.
type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	CategoryID       int64           `json:"categoryId"`
	Price            decimal.Decimal `json:"price"`
	Discount         decimal.Decimal `json:"discount"`
	DiscountName     string          `json:"discountName"`
	Featured         bool            `json:"featured"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Image            string          `json:"image"`
	Stock            int             `json:"stock"`
	BundleItemIds    []int64         `json:"bundleItemIds,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// DiscountedPrice is the authoritative unit price: price minus discount,
// floored at zero.
func (p *Product) DiscountedPrice() decimal.Decimal {
	dp := p.Price.Sub(p.Discount)
	if dp.IsNegative() {
		return decimal.Zero
	}

	return dp
}

// IsBundle reports whether the product contains other products.
func (p *Product) IsBundle() bool {
	return len(p.BundleItemIds) > 0
}
