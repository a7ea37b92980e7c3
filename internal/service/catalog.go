package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"
	"github.com/23sarmiento78/BOLUSHOP/pkg/slug"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/event"
	"github.com/23sarmiento78/BOLUSHOP/internal/importer"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

// CatalogService implements the business logic for catalog operations.
type CatalogService struct {
	products repository.ProductRepository
	settings repository.SettingsRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	settings repository.SettingsRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		settings: settings,
		producer: producer,
		logger:   logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug"`
	Price       int64    `json:"price" validate:"gte=0"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// UpdateProductInput holds the parameters for updating a product. Nil
// fields keep their current value.
type UpdateProductInput struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Price       *int64    `json:"price"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
}

// ListProducts returns the catalog page matching the filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// GetProduct retrieves a product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// GetProductBySlug retrieves a product by its URL slug.
func (s *CatalogService) GetProductBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return product, nil
}

// Categories returns the storefront category set.
func (s *CatalogService) Categories(_ context.Context) []domain.Category {
	return domain.Categories()
}

// CreateProduct creates a new product with the given input.
func (s *CatalogService) CreateProduct(ctx context.Context, input *CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("product name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Slug:        input.Slug,
		Price:       input.Price,
		Image:       input.Image,
		Category:    input.Category,
		Description: input.Description,
		Features:    input.Features,
	}
	if product.Slug == "" {
		product.Slug = slug.Generate(input.Name)
	}
	if product.Image == "" {
		product.Image = domain.DefaultImage
	}
	if product.Category == "" {
		product.Category = domain.DefaultCategory
	}
	if product.Features == nil {
		product.Features = []string{}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)

	return product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("product name must not be empty")
		}
		product.Name = *input.Name
	}
	if input.Slug != nil && *input.Slug != "" {
		product.Slug = *input.Slug
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Features != nil {
		product.Features = *input.Features
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", product.ID))

	return product, nil
}

// DeleteProduct removes a single product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// DeleteManyProducts removes the given products from the catalog and
// returns how many were actually deleted. IDs that no longer exist are
// skipped rather than failing the batch.
func (s *CatalogService) DeleteManyProducts(ctx context.Context, ids []string) (int, error) {
	deleted := 0
	for _, id := range ids {
		if err := s.products.Delete(ctx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return deleted, fmt.Errorf("delete product %s: %w", id, err)
		}
		deleted++
	}
	s.logger.InfoContext(ctx, "products deleted",
		slog.Int("requested", len(ids)),
		slog.Int("deleted", deleted),
	)
	return deleted, nil
}

// DeleteAllProducts wipes the catalog. This is the only path that may
// persist an empty product set; imports never do.
func (s *CatalogService) DeleteAllProducts(ctx context.Context) error {
	if err := s.products.ReplaceAll(ctx, []domain.Product{}); err != nil {
		return fmt.Errorf("delete all products: %w", err)
	}
	s.logger.WarnContext(ctx, "catalog wiped")
	return nil
}

// ImportProducts runs the import pipeline over raw rows and, when at least
// one row survives validation, replaces the whole catalog with the result.
// Nothing is written when the pipeline fails.
func (s *CatalogService) ImportProducts(ctx context.Context, rows []importer.RawRow, source string) (int, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}

	products, err := importer.New(settings.Pricing).Process(rows)
	if err != nil {
		s.logger.WarnContext(ctx, "import produced no catalog update",
			slog.String("source", source),
			slog.Int("rows", len(rows)),
			slog.String("error", err.Error()),
		)
		return 0, err
	}

	if err := s.products.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("commit imported catalog: %w", err)
	}

	if err := s.producer.PublishCatalogImported(ctx, len(products), source); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish catalog.imported event",
			slog.String("error", err.Error()),
		)
		// Do not fail the import if event publishing fails.
	}

	s.logger.InfoContext(ctx, "catalog imported",
		slog.String("source", source),
		slog.Int("rows", len(rows)),
		slog.Int("accepted", len(products)),
	)

	return len(products), nil
}
