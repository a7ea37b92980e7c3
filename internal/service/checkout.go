package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/event"
	"github.com/23sarmiento78/BOLUSHOP/internal/payment"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

// freePaymentPrefix marks orders that skipped the gateway entirely.
const freePaymentPrefix = "FREE-ORDER-"

// CheckoutService implements the business logic for checkout operations.
type CheckoutService struct {
	orders   repository.OrderRepository
	gateway  payment.Gateway
	producer *event.Producer
	logger   *slog.Logger
	siteURL  string
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service. siteURL is the public
// origin the gateway redirects back to.
func NewCheckoutService(
	orders repository.OrderRepository,
	gateway payment.Gateway,
	producer *event.Producer,
	logger *slog.Logger,
	siteURL string,
) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		gateway:  gateway,
		producer: producer,
		logger:   logger,
		siteURL:  siteURL,
		now:      time.Now,
	}
}

// CheckoutItemInput is one cart line in a checkout request.
type CheckoutItemInput struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Image    string `json:"image"`
}

// CheckoutInput holds the parameters for starting a checkout.
type CheckoutInput struct {
	Items []CheckoutItemInput `json:"items" validate:"required,min=1,dive"`
	Payer domain.Payer        `json:"payer"`
}

// CheckoutResult is the outcome of starting a checkout: the created order
// plus the URL the customer should be sent to.
type CheckoutResult struct {
	OrderID   string `json:"order_id"`
	InitPoint string `json:"init_point"`
}

// Checkout creates a pending order and a gateway checkout session for it.
// A zero-total order skips the gateway and is marked paid immediately.
func (s *CheckoutService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	if input == nil || len(input.Items) == 0 {
		return nil, apperrors.InvalidInput("at least one item is required")
	}
	for i, item := range input.Items {
		if item.ID == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("item %d: id is required", i))
		}
		if item.Name == "" {
			return nil, apperrors.InvalidInput(fmt.Sprintf("item %d: name is required", i))
		}
		if item.Price < 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("item %d: price must not be negative", i))
		}
		if item.Quantity <= 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("item %d: quantity must be greater than 0", i))
		}
	}

	payer := input.Payer
	if payer.Name == "" {
		payer.Name = "Cliente"
	}
	if payer.Email == "" {
		payer.Email = "no-email@test.com"
	}

	order := &domain.Order{
		ID:     uuid.NewString(),
		Date:   s.now().UTC(),
		Status: domain.OrderStatusPending,
		Items:  make([]domain.OrderItem, len(input.Items)),
		Payer:  payer,
	}
	for i, item := range input.Items {
		order.Items[i] = domain.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
	}
	order.Total = order.ComputeTotal()

	// Free orders bypass the gateway and are paid on the spot.
	if order.Total == 0 {
		order.Status = domain.OrderStatusPaid
		order.PaymentID = freePaymentPrefix + order.ID

		if err := s.orders.Create(ctx, order); err != nil {
			return nil, fmt.Errorf("create order: %w", err)
		}
		s.publishCreated(ctx, order)

		return &CheckoutResult{
			OrderID:   order.ID,
			InitPoint: fmt.Sprintf("%s/checkout/success?orderId=%s&status=approved", s.siteURL, order.ID),
		}, nil
	}

	pref, err := s.gateway.CreatePreference(ctx, s.buildPreference(order))
	if err != nil {
		return nil, fmt.Errorf("create gateway preference: %w", err)
	}
	order.PaymentID = pref.ID

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.publishCreated(ctx, order)

	s.logger.InfoContext(ctx, "checkout started",
		slog.String("order_id", order.ID),
		slog.Int64("total", order.Total),
	)

	return &CheckoutResult{OrderID: order.ID, InitPoint: pref.InitPoint}, nil
}

// buildPreference maps an order to the gateway request. Shipping cost is
// zero because product prices already absorb it.
func (s *CheckoutService) buildPreference(order *domain.Order) *payment.PreferenceRequest {
	items := make([]payment.PreferenceItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = payment.PreferenceItem{
			ID:         item.ProductID,
			Title:      item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  float64(item.Price),
			CurrencyID: "ARS",
			PictureURL: item.Image,
		}
	}

	return &payment.PreferenceRequest{
		ExternalReference: order.ID,
		Items:             items,
		Shipments:         payment.Shipments{Cost: 0, Mode: "not_specified"},
		BackURLs: payment.BackURLs{
			Success: fmt.Sprintf("%s/checkout/success?orderId=%s", s.siteURL, order.ID),
			Failure: fmt.Sprintf("%s/checkout/failure?orderId=%s", s.siteURL, order.ID),
			Pending: fmt.Sprintf("%s/checkout/pending?orderId=%s", s.siteURL, order.ID),
		},
		AutoReturn: "approved",
	}
}

func (s *CheckoutService) publishCreated(ctx context.Context, order *domain.Order) {
	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}
