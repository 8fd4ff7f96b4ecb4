package journey

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/yourname/afresh/internal"
)

func TestDailyCost(t *testing.T) {
	pricing := &internal.Pricing{Costs: map[internal.ProductType]decimal.Decimal{
		internal.ProductCigarette: decimal.RequireFromString("12.5"),
		internal.ProductPouch:     decimal.RequireFromString("5"),
	}}

	tests := []struct {
		name    string
		product internal.ProductType
		pricing *internal.Pricing
		want    string
	}{
		{"configured", internal.ProductCigarette, pricing, "12.5"},
		{"missing entry falls back", internal.ProductVape, pricing, "10"},
		{"no pricing at all", internal.ProductGum, nil, "10"},
		{"pouch dampened", internal.ProductPouch, pricing, "4"},
		{"pouch default dampened", internal.ProductPouch, nil, "8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DailyCost(tt.product, tt.pricing)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestProjectSavings(t *testing.T) {
	p := ProjectSavings(decimal.NewFromInt(10))
	assert.Equal(t, "10", p.Daily.String())
	assert.Equal(t, "70", p.Weekly.String())
	assert.Equal(t, "300", p.Monthly.String())
	assert.Equal(t, "3650", p.Yearly.String())
}

func TestCumulativeSavings(t *testing.T) {
	cost := decimal.RequireFromString("7.25")
	assert.Equal(t, "29", CumulativeSavings(4, cost).String())
	assert.True(t, CumulativeSavings(0, cost).IsZero())
	assert.True(t, CumulativeSavings(-3, cost).IsZero())
}
