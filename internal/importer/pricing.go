package importer

import (
	"math"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

// Quote is the outcome of applying a pricing policy to one base price.
type Quote struct {
	// Price is the final integer price in whole currency units.
	Price int64
	// Features carries the tags the policy attached, at most the
	// free-shipping marker today.
	Features []string
}

// PricingPolicy turns a normalized base price into a final price and
// feature tags. ok=false rejects the row outright.
type PricingPolicy interface {
	Quote(base float64) (q Quote, ok bool)
}

// roundPrice rounds half-up to the nearest whole currency unit. All
// pipeline price math goes through it so rounding stays consistent.
func roundPrice(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// ThresholdPolicy rejects rows below a minimum base price and folds the
// shipping cost into every accepted price.
type ThresholdPolicy struct {
	ShippingCost float64
	Margin       float64
	MinBasePrice float64
}

func (p ThresholdPolicy) Quote(base float64) (Quote, bool) {
	if base <= 0 {
		return Quote{Price: 0, Features: []string{}}, true
	}
	if base < p.MinBasePrice {
		return Quote{}, false
	}
	return Quote{
		Price:    roundPrice((base + p.ShippingCost) * p.Margin),
		Features: []string{domain.FeatureFreeShipping},
	}, true
}

// TieredPolicy accepts every row: above the absorption threshold shipping
// is folded in and the item is tagged free-shipping, below it the customer
// pays shipping separately at checkout.
type TieredPolicy struct {
	ShippingCost        float64
	AbsorptionThreshold float64
	HighMargin          float64
	LowMargin           float64
}

func (p TieredPolicy) Quote(base float64) (Quote, bool) {
	if base <= 0 {
		return Quote{Price: 0, Features: []string{}}, true
	}
	if base >= p.AbsorptionThreshold {
		return Quote{
			Price:    roundPrice((base + p.ShippingCost) * p.HighMargin),
			Features: []string{domain.FeatureFreeShipping},
		}, true
	}
	return Quote{
		Price:    roundPrice(base * p.LowMargin),
		Features: []string{},
	}, true
}

// NewPricingPolicy builds the policy selected by the store's pricing
// settings. Unknown modes fall back to the tiered policy.
func NewPricingPolicy(p domain.Pricing) PricingPolicy {
	if p.Mode == domain.PricingModeThreshold {
		return ThresholdPolicy{
			ShippingCost: p.ShippingCost,
			Margin:       p.Margin,
			MinBasePrice: p.MinBasePrice,
		}
	}
	return TieredPolicy{
		ShippingCost:        p.ShippingCost,
		AbsorptionThreshold: p.AbsorptionThreshold,
		HighMargin:          p.HighMargin,
		LowMargin:           p.LowMargin,
	}
}
