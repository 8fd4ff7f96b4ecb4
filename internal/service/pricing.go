package service

import (
	"context"
	"maps"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/storage"
)

type PricingRequest struct {
	Costs map[internal.ProductType]decimal.Decimal `json:"costs" validate:"required,dive,keys,oneof=cigarette vape pouch gum patch other,endkeys,gte=0"`
}

func ValidatePricingRequest(req *PricingRequest) error {
	return validate.Struct(req)
}

func SavePricing(ctx context.Context, repo storage.PricingRepository, user *internal.User, req *PricingRequest) (*internal.Pricing, error) {
	p := &internal.Pricing{
		UserID:    user.ID,
		Costs:     maps.Clone(req.Costs),
		UpdatedAt: time.Now(),
	}
	if err := repo.SetPricing(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
