package journey

import (
	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
)

var (
	// DefaultDailyCost applies when the pricing table has no entry for a product.
	DefaultDailyCost = decimal.NewFromInt(10)

	pouchDampening = decimal.RequireFromString("0.8")
)

// Projection multiplies the daily figure by flat 7/30/365 day periods.
type Projection struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// DailyCost looks up the user's daily spend on product, falling back to
// DefaultDailyCost. Pouch spend is dampened to 80% of the stored figure.
func DailyCost(product internal.ProductType, pricing *internal.Pricing) decimal.Decimal {
	cost := DefaultDailyCost
	if pricing != nil {
		if v, ok := pricing.Costs[product]; ok {
			cost = v
		}
	}
	if product == internal.ProductPouch {
		cost = cost.Mul(pouchDampening)
	}
	return cost
}

func ProjectSavings(dailyCost decimal.Decimal) Projection {
	return Projection{
		Daily:   dailyCost,
		Weekly:  dailyCost.Mul(decimal.NewFromInt(7)),
		Monthly: dailyCost.Mul(decimal.NewFromInt(30)),
		Yearly:  dailyCost.Mul(decimal.NewFromInt(365)),
	}
}

// CumulativeSavings is days * dailyCost; non-positive day counts save nothing.
func CumulativeSavings(days int, dailyCost decimal.Decimal) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return dailyCost.Mul(decimal.NewFromInt(int64(days)))
}
