package domain

// Sentinel values used by the import pipeline and the catalog.
const (
	// NoName marks a product row that arrived without a name. Items carrying
	// it are rejected during import validation.
	NoName = "Sin Nombre"

	// DefaultImage is the placeholder path used when a row has no image.
	DefaultImage = "/bolushop.png"

	// DefaultCategory is the generic bucket; rows tagged with it (or with
	// nothing at all) go through the category detector.
	DefaultCategory = "varios"

	// FeatureFreeShipping is the feature tag for products whose price
	// already absorbs the shipping cost.
	FeatureFreeShipping = "Envío Gratis 🚚"
)

// Product is a normalized catalog item ready for storage and display.
// Price is expressed in whole currency units (ARS, no cents).
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// HasFreeShipping reports whether the product carries the free-shipping tag.
func (p *Product) HasFreeShipping() bool {
	for _, f := range p.Features {
		if f == FeatureFreeShipping {
			return true
		}
	}
	return false
}

// Category describes a storefront category entry.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories returns the fixed set of storefront categories.
func Categories() []Category {
	return []Category{
		{ID: "tech", Name: "Tecnología", Icon: "📱"},
		{ID: "hogar", Name: "Hogar", Icon: "🏠"},
		{ID: "cocina", Name: "Cocina", Icon: "🍳"},
		{ID: "aire-libre", Name: "Aire Libre", Icon: "⛺"},
		{ID: "belleza", Name: "Belleza", Icon: "💅"},
		{ID: "moda", Name: "Moda", Icon: "👕"},
		{ID: "verano", Name: "Verano", Icon: "🌴"},
	}
}
