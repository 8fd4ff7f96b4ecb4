package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourname/afresh/internal"
	"github.com/yourname/afresh/internal/journey"
	"github.com/yourname/afresh/internal/storage"
)

var validate = newValidator()

// newValidator compares decimal amounts as floats so numeric tags like gte
// apply to money fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// CanonicalScale is the scale mood, energy and focus are stored on.
const CanonicalScale = 5

type LogEntryRequest struct {
	Date             string               `json:"date" validate:"required,datetime=2006-01-02"`
	UsedNicotine     bool                 `json:"used_nicotine"`
	ProductType      internal.ProductType `json:"product_type,omitempty" validate:"omitempty,oneof=cigarette vape pouch gum patch other"`
	Quantity         float64              `json:"quantity" validate:"gte=0"`
	Scale            int                  `json:"scale,omitempty" validate:"omitempty,oneof=5 10"`
	Mood             *int                 `json:"mood,omitempty" validate:"omitempty,gte=1,lte=10"`
	Energy           *int                 `json:"energy,omitempty" validate:"omitempty,gte=1,lte=10"`
	Focus            *int                 `json:"focus,omitempty" validate:"omitempty,gte=1,lte=10"`
	SleepHours       *float64             `json:"sleep_hours,omitempty" validate:"omitempty,gte=0,lte=24"`
	SleepQuality     *int                 `json:"sleep_quality,omitempty" validate:"omitempty,gte=1,lte=5"`
	CravingIntensity *int                 `json:"craving_intensity,omitempty" validate:"omitempty,gte=0,lte=10"`
	CravingTrigger   string               `json:"craving_trigger,omitempty" validate:"omitempty,max=64"`
}

var ErrFutureDate = errors.New("date is after today")

// ValidateLogEntryRequest checks req against now. Entries dated after now's
// calendar day in now's zone are rejected.
func ValidateLogEntryRequest(req *LogEntryRequest, now time.Time) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	day, err := time.ParseInLocation(internal.DateLayout, req.Date, now.Location())
	if err != nil {
		return err
	}
	if day.After(journey.StartOfDay(now)) {
		return fmt.Errorf("%s: %w", req.Date, ErrFutureDate)
	}
	if req.UsedNicotine && req.ProductType == "" {
		return errors.New("product_type is required when used_nicotine is true")
	}
	scale := req.scale()
	for name, v := range map[string]*int{"mood": req.Mood, "energy": req.Energy, "focus": req.Focus} {
		if v != nil && *v > scale {
			return fmt.Errorf("%s must be between 1 and %d", name, scale)
		}
	}
	return nil
}

func (r *LogEntryRequest) scale() int {
	if r.Scale == 0 {
		return CanonicalScale
	}
	return r.Scale
}

// normalizeScore maps a 1..scale score onto the canonical 1–5 scale.
// Ten-point scores pair up: 1–2 → 1, 3–4 → 2, … 9–10 → 5.
func normalizeScore(v *int, scale int) *int {
	if v == nil {
		return nil
	}
	n := *v
	if scale == 10 {
		n = (n + 1) / 2
	}
	return &n
}

func CreateLogEntry(ctx context.Context, repo storage.LogRepository, user *internal.User, req *LogEntryRequest) (*internal.LogEntry, error) {
	scale := req.scale()
	entry := &internal.LogEntry{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		Date:             req.Date,
		UsedNicotine:     req.UsedNicotine,
		Mood:             normalizeScore(req.Mood, scale),
		Energy:           normalizeScore(req.Energy, scale),
		Focus:            normalizeScore(req.Focus, scale),
		SleepHours:       req.SleepHours,
		SleepQuality:     req.SleepQuality,
		CravingIntensity: req.CravingIntensity,
		CravingTrigger:   req.CravingTrigger,
		CreatedAt:        time.Now(),
	}
	if req.UsedNicotine {
		entry.ProductType = req.ProductType
		entry.Quantity = req.Quantity
	}
	if err := repo.SaveLogEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
