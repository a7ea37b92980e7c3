package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/pkg/slug"
)

// RawRow is one spreadsheet record, keyed by column header. Values are the
// raw cell text; absent columns simply have no key.
type RawRow map[string]string

// ColumnMapping lists, per product field, the column headers to try in
// order. The first non-empty cell wins.
type ColumnMapping struct {
	Price       []string `json:"price"`
	Name        []string `json:"name"`
	Description []string `json:"description"`
	Category    []string `json:"category"`
	Tags        []string `json:"tags"`
	Image       []string `json:"image"`
	SKU         []string `json:"sku"`
	Slug        []string `json:"slug"`
}

// DefaultColumnMapping matches the Spanish headers of the supplier export.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Price:       []string{"Precio"},
		Name:        []string{"Nombre"},
		Description: []string{"Descripción"},
		Category:    []string{"Categorias"},
		Tags:        []string{"Tags"},
		Image:       []string{"Imagen"},
		SKU:         []string{"SKU"},
		Slug:        []string{"Identificador de URL"},
	}
}

// RowMapper turns raw rows into catalog products, applying the pricing
// policy and the fallback chains for every field.
type RowMapper struct {
	mapping  ColumnMapping
	policy   PricingPolicy
	detector *CategoryDetector
	newID    func() string
}

// NewRowMapper builds a mapper over the given mapping, policy and detector.
func NewRowMapper(mapping ColumnMapping, policy PricingPolicy, detector *CategoryDetector) *RowMapper {
	return &RowMapper{
		mapping:  mapping,
		policy:   policy,
		detector: detector,
		newID:    uuid.NewString,
	}
}

// first returns the first non-empty cell among the given columns.
func (m *RowMapper) first(row RawRow, columns []string) string {
	for _, col := range columns {
		if v := row[col]; v != "" {
			return v
		}
	}
	return ""
}

// Map produces one product from a row, or nil when the pricing policy
// rejects it. Field resolution order matters: price first (a rejection
// skips everything else), then description, image, category, id, name and
// slug, each with its fallback.
func (m *RowMapper) Map(row RawRow) *domain.Product {
	base := NormalizePrice(m.first(row, m.mapping.Price))
	quote, ok := m.policy.Quote(base)
	if !ok {
		return nil
	}

	description := m.first(row, m.mapping.Description)

	image := m.first(row, m.mapping.Image)
	if image == "" {
		image = domain.DefaultImage
	}

	rawName := m.first(row, m.mapping.Name)

	category := strings.TrimSpace(m.first(row, m.mapping.Category))
	if category == "" {
		category = strings.TrimSpace(m.first(row, m.mapping.Tags))
	}
	if category == "" || strings.EqualFold(category, domain.DefaultCategory) {
		category = m.detector.Detect(rawName, description)
	}

	id := m.first(row, m.mapping.SKU)
	if id == "" {
		id = m.newID()
	}

	name := rawName
	if name == "" {
		name = domain.NoName
	}

	s := m.first(row, m.mapping.Slug)
	if s == "" {
		if rawName != "" {
			s = slug.Generate(rawName)
		} else {
			s = m.newID()
		}
	}

	return &domain.Product{
		ID:          id,
		Name:        name,
		Slug:        s,
		Price:       quote.Price,
		Image:       image,
		Category:    category,
		Description: description,
		Features:    quote.Features,
	}
}
