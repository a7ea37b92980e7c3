package jsonfile

import (
	"context"
	"sort"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

// OrderRepository implements repository.OrderRepository on a JSON file.
type OrderRepository struct {
	store *store[[]domain.Order]
}

// NewOrderRepository creates a JSON-file-backed order repository rooted at
// dataDir.
func NewOrderRepository(dataDir string) *OrderRepository {
	return &OrderRepository{store: newStore[[]domain.Order](dataDir, "orders.json")}
}

// Create inserts a new order.
func (r *OrderRepository) Create(_ context.Context, o *domain.Order) error {
	return r.store.update(func(orders []domain.Order) ([]domain.Order, error) {
		for _, existing := range orders {
			if existing.ID == o.ID {
				return nil, apperrors.AlreadyExists("order", "id", o.ID)
			}
		}
		return append(orders, *o), nil
	})
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	orders, err := r.store.read()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			o := orders[i]
			return &o, nil
		}
	}
	return nil, apperrors.NotFound("order", id)
}

// List returns orders matching the filter, newest first, along with the
// total count of matches before pagination.
func (r *OrderRepository) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	orders, err := r.store.read()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})

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
		return []domain.Order{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// Update modifies an existing order, matched by ID.
func (r *OrderRepository) Update(_ context.Context, o *domain.Order) error {
	return r.store.update(func(orders []domain.Order) ([]domain.Order, error) {
		for i := range orders {
			if orders[i].ID == o.ID {
				orders[i] = *o
				return orders, nil
			}
		}
		return nil, apperrors.NotFound("order", o.ID)
	})
}
