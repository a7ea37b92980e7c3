package payment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"
)

// MockGateway is an in-memory Gateway for local development: preferences
// resolve to a fake hosted URL and every payment comes back approved.
type MockGateway struct {
	mu       sync.Mutex
	payments map[string]*Payment
}

// NewMockGateway creates an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{payments: make(map[string]*Payment)}
}

// CreatePreference records an approved payment for the order and returns a
// fake init point carrying the preference id.
func (g *MockGateway) CreatePreference(_ context.Context, req *PreferenceRequest) (*Preference, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := uuid.NewString()
	g.payments[id] = &Payment{
		ID:                id,
		Status:            PaymentStatusApproved,
		ExternalReference: req.ExternalReference,
	}

	return &Preference{
		ID:        id,
		InitPoint: "https://sandbox.mercadopago.local/checkout?pref_id=" + id,
	}, nil
}

// GetPayment returns a previously recorded payment.
func (g *MockGateway) GetPayment(_ context.Context, id string) (*Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[id]
	if !ok {
		return nil, apperrors.NotFound("payment", id)
	}
	cp := *p
	return &cp, nil
}

// SetPaymentStatus overrides a recorded payment's status, so local flows
// can exercise rejections.
func (g *MockGateway) SetPaymentStatus(id, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if p, ok := g.payments[id]; ok {
		p.Status = status
	}
}
