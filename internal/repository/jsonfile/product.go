package jsonfile

import (
	"context"
	"strings"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

// ProductRepository implements repository.ProductRepository on a JSON file.
type ProductRepository struct {
	store *store[[]domain.Product]
}

// NewProductRepository creates a JSON-file-backed product repository rooted
// at dataDir.
func NewProductRepository(dataDir string) *ProductRepository {
	return &ProductRepository{store: newStore[[]domain.Product](dataDir, "products.json")}
}

// Create inserts a new product. The slug must be unique across the catalog.
func (r *ProductRepository) Create(_ context.Context, p *domain.Product) error {
	return r.store.update(func(products []domain.Product) ([]domain.Product, error) {
		for _, existing := range products {
			if existing.ID == p.ID {
				return nil, apperrors.AlreadyExists("product", "id", p.ID)
			}
			if existing.Slug == p.Slug {
				return nil, apperrors.AlreadyExists("product", "slug", p.Slug)
			}
		}
		return append(products, *p), nil
	})
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	products, err := r.store.read()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			p := products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", id)
}

// GetBySlug retrieves a product by its slug.
func (r *ProductRepository) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	products, err := r.store.read()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == slug {
			p := products[i]
			return &p, nil
		}
	}
	return nil, apperrors.NotFound("product", slug)
}

// List returns products matching the filter along with the total count of
// matches before pagination.
func (r *ProductRepository) List(_ context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	products, err := r.store.read()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(p.Name), q) &&
				!strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		matched = append(matched, p)
	}

	total := len(matched)
	page, perPage := filter.Page, filter.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		return matched, total, nil
	}

	start := (page - 1) * perPage
	if start >= total {
		return []domain.Product{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Update modifies an existing product, matched by ID.
func (r *ProductRepository) Update(_ context.Context, p *domain.Product) error {
	return r.store.update(func(products []domain.Product) ([]domain.Product, error) {
		for i := range products {
			if products[i].Slug == p.Slug && products[i].ID != p.ID {
				return nil, apperrors.AlreadyExists("product", "slug", p.Slug)
			}
		}
		for i := range products {
			if products[i].ID == p.ID {
				products[i] = *p
				return products, nil
			}
		}
		return nil, apperrors.NotFound("product", p.ID)
	})
}

// Delete removes a product by ID.
func (r *ProductRepository) Delete(_ context.Context, id string) error {
	return r.store.update(func(products []domain.Product) ([]domain.Product, error) {
		for i := range products {
			if products[i].ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, apperrors.NotFound("product", id)
	})
}

// ReplaceAll swaps the entire catalog in a single atomic write.
func (r *ProductRepository) ReplaceAll(_ context.Context, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return r.store.write(products)
}
