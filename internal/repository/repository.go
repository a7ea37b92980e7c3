package repository

import (
	"context"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
)

// ProductFilter defines filter criteria for listing products.
type ProductFilter struct {
	Category *string
	Search   *string
	Page     int
	PerPage  int
}

// ProductRepository defines the interface for product persistence operations.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// GetBySlug retrieves a product by its URL-friendly slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// List returns products matching the given filter along with the total count.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int, error)

	// Update modifies an existing product in the store.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product from the store by its identifier.
	Delete(ctx context.Context, id string) error

	// ReplaceAll atomically swaps the entire catalog for the given set.
	ReplaceAll(ctx context.Context, products []domain.Product) error
}

// OrderFilter defines filter criteria for listing orders.
type OrderFilter struct {
	Status  *domain.OrderStatus
	Page    int
	PerPage int
}

// OrderRepository defines the interface for order persistence operations.
type OrderRepository interface {
	// Create inserts a new order into the store.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// List returns orders matching the given filter along with the total count.
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int, error)

	// Update modifies an existing order in the store.
	Update(ctx context.Context, order *domain.Order) error
}

// SettingsRepository defines the interface for store settings persistence.
type SettingsRepository interface {
	// Get returns the stored settings, or the defaults when none exist yet.
	Get(ctx context.Context) (domain.Settings, error)

	// Save persists the given settings.
	Save(ctx context.Context, settings domain.Settings) error
}
