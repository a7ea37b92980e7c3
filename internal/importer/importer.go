// Package importer implements the product import pipeline: price
// normalization, pricing policy, category detection, row mapping and
// validation. The pipeline is a pure in-memory transformation; persistence
// of the accepted set belongs to the caller.
package importer

import (
	"errors"
	"fmt"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

var (
	// ErrNoValidProducts means every row was dropped; the caller must not
	// commit anything, since an empty import is a no-op rather than a
	// catalog wipe.
	ErrNoValidProducts = errors.New("no valid products found")

	// ErrProcessing wraps an unexpected failure while mapping rows. The
	// whole import aborts; no partial write happens.
	ErrProcessing = errors.New("import processing failed")
)

// Importer runs the full pipeline over a batch of raw rows.
type Importer struct {
	mapper *RowMapper
}

// New builds an importer from the store's pricing settings, using the
// default column mapping and category rules.
func New(pricing domain.Pricing) *Importer {
	return NewWithMapper(NewRowMapper(
		DefaultColumnMapping(),
		NewPricingPolicy(pricing),
		NewCategoryDetector(nil),
	))
}

// NewWithMapper builds an importer over a custom row mapper.
func NewWithMapper(mapper *RowMapper) *Importer {
	return &Importer{mapper: mapper}
}

// Process maps and validates every row, returning the accepted products.
// Rejected and invalid rows are dropped silently; a batch with zero
// accepted rows fails with ErrNoValidProducts. A panic while mapping
// aborts the whole batch with ErrProcessing.
func (imp *Importer) Process(rows []RawRow) (products []domain.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			products = nil
			err = fmt.Errorf("%w: %v", ErrProcessing, r)
		}
	}()

	products = make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p := imp.mapper.Map(row)
		if p == nil {
			continue
		}
		if !validate(p) {
			continue
		}
		products = append(products, *p)
	}

	if len(products) == 0 {
		return nil, ErrNoValidProducts
	}
	return products, nil
}

// validate keeps only rows with a real name and a positive price.
func validate(p *domain.Product) bool {
	return p.Name != "" && p.Name != domain.NoName && p.Price > 0
}
