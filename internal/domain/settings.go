package domain

// PricingMode selects how the pricing policy folds shipping into prices.
type PricingMode string

const (
	// PricingModeThreshold rejects items below a minimum base price and
	// absorbs shipping into every accepted item.
	PricingModeThreshold PricingMode = "threshold"

	// PricingModeTiered accepts every item; shipping is absorbed only above
	// a base-price threshold, and those items get the free-shipping tag.
	PricingModeTiered PricingMode = "tiered"
)

// Pricing holds the knobs for the import pricing policy. Monetary values
// are in whole currency units.
type Pricing struct {
	Mode                PricingMode `json:"mode"`
	ShippingCost        float64     `json:"shipping_cost"`
	Margin              float64     `json:"margin"`
	MinBasePrice        float64     `json:"min_base_price"`
	AbsorptionThreshold float64     `json:"absorption_threshold"`
	LowMargin           float64     `json:"low_margin"`
	HighMargin          float64     `json:"high_margin"`
}

// Settings is the store-wide configuration editable from the back office.
type Settings struct {
	SiteName        string  `json:"site_name"`
	SiteDescription string  `json:"site_description"`
	WhatsappNumber  string  `json:"whatsapp_number"`
	Pricing         Pricing `json:"pricing"`
}

// DefaultSettings returns the settings used when none have been stored yet.
func DefaultSettings() Settings {
	return Settings{
		SiteName:        "BOLUSHOP",
		SiteDescription: "Tu tienda online de confianza",
		Pricing: Pricing{
			Mode:                PricingModeTiered,
			ShippingCost:        9000,
			Margin:              1.05,
			MinBasePrice:        15000,
			AbsorptionThreshold: 20000,
			LowMargin:           1.10,
			HighMargin:          1.10,
		},
	}
}
