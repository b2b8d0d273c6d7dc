package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount string
		want     string
	}{
		{"no discount", "10.00", "0", "10.00"},
		{"partial discount", "10.00", "2.50", "7.50"},
		{"discount equals price", "5.00", "5.00", "0"},
		{"discount above price floors at zero", "5.00", "7.00", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{
				Price:    decimal.RequireFromString(tt.price),
				Discount: decimal.RequireFromString(tt.discount),
			}
			got := p.DiscountedPrice()
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestIsBundle(t *testing.T) {
	assert.False(t, (&Product{}).IsBundle())
	assert.True(t, (&Product{BundleItemIds: []int64{2, 3}}).IsBundle())
}
