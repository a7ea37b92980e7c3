package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/event"
	"github.com/23sarmiento78/BOLUSHOP/internal/notifier"
	"github.com/23sarmiento78/BOLUSHOP/internal/payment"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

// OrderService implements the business logic for order operations.
type OrderService struct {
	orders   repository.OrderRepository
	gateway  payment.Gateway
	notifier *notifier.Notifier
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	gateway payment.Gateway,
	n *notifier.Notifier,
	producer *event.Producer,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		gateway:  gateway,
		notifier: n,
		producer: producer,
		logger:   logger,
	}
}

// ListOrders returns the order page matching the filter, newest first.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// GetOrder retrieves an order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// UpdateStatus moves an order to a new status, enforcing the lifecycle
// transitions.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("order cannot move from %s to %s", order.Status, status))
	}

	order.Status = status
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", order.ID),
		slog.String("status", string(order.Status)),
	)

	return order, nil
}

// CancelOrder cancels an order and emails the customer a refund request.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.UpdateStatus(ctx, id, domain.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	email := order.Payer.Email
	if email == "" {
		email = "cliente@ejemplo.com"
	}
	if err := s.notifier.SendRefundRequest(ctx, order.ID, email); err != nil {
		s.logger.ErrorContext(ctx, "failed to send refund request email",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		// The cancellation already committed; the email is best effort.
	}

	if err := s.producer.PublishOrderCancelled(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.cancelled event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	return order, nil
}

// HandlePaymentNotification processes a gateway webhook for the "payment"
// topic: it fetches the payment, resolves the order via the external
// reference, and applies the mapped status.
func (s *OrderService) HandlePaymentNotification(ctx context.Context, paymentID string) error {
	p, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("get payment %s: %w", paymentID, err)
	}
	if p.ExternalReference == "" {
		s.logger.WarnContext(ctx, "payment has no external reference",
			slog.String("payment_id", paymentID),
		)
		return nil
	}

	order, err := s.orders.GetByID(ctx, p.ExternalReference)
	if err != nil {
		return fmt.Errorf("get order %s: %w", p.ExternalReference, err)
	}

	status := mapPaymentStatus(p.Status)
	if order.Status == status {
		order.PaymentID = p.ID
		if err := s.orders.Update(ctx, order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	}
	if !order.Status.CanTransitionTo(status) {
		s.logger.WarnContext(ctx, "ignoring payment notification for settled order",
			slog.String("order_id", order.ID),
			slog.String("current", string(order.Status)),
			slog.String("incoming", string(status)),
		)
		return nil
	}

	order.Status = status
	order.PaymentID = p.ID
	if err := s.orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	s.logger.InfoContext(ctx, "order updated from payment notification",
		slog.String("order_id", order.ID),
		slog.String("payment_id", p.ID),
		slog.String("status", string(order.Status)),
	)

	switch status {
	case domain.OrderStatusPaid:
		if err := s.producer.PublishOrderPaid(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.paid event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	case domain.OrderStatusCancelled:
		if err := s.producer.PublishOrderCancelled(ctx, order); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish order.cancelled event",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// mapPaymentStatus translates gateway payment statuses into order statuses.
func mapPaymentStatus(status string) domain.OrderStatus {
	switch status {
	case payment.PaymentStatusApproved:
		return domain.OrderStatusPaid
	case payment.PaymentStatusRejected, payment.PaymentStatusCancelled:
		return domain.OrderStatusCancelled
	default:
		return domain.OrderStatusPending
	}
}
