package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"
)

// DefaultBaseURL is the gateway's production API endpoint.
const DefaultBaseURL = "https://api.mercadopago.com"

// HTTPDoer is the interface for executing HTTP requests. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// MercadoPagoGateway implements Gateway against the MercadoPago REST API.
type MercadoPagoGateway struct {
	client      HTTPDoer
	baseURL     string
	accessToken string
	logger      *slog.Logger
}

// NewMercadoPagoGateway creates a gateway client. An empty baseURL uses the
// production endpoint.
func NewMercadoPagoGateway(client HTTPDoer, baseURL, accessToken string, logger *slog.Logger) *MercadoPagoGateway {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &MercadoPagoGateway{
		client:      client,
		baseURL:     baseURL,
		accessToken: accessToken,
		logger:      logger,
	}
}

// CreatePreference registers a hosted checkout session.
func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, prefReq *PreferenceRequest) (*Preference, error) {
	payload, err := json.Marshal(prefReq)
	if err != nil {
		return nil, fmt.Errorf("marshal preference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/checkout/preferences", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.ErrorContext(ctx, "gateway rejected preference",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, apperrors.PaymentFailed(fmt.Sprintf("gateway returned status %d", resp.StatusCode))
	}

	var pref Preference
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("decode preference response: %w", err)
	}
	return &pref, nil
}

// GetPayment fetches a payment by id.
func (g *MercadoPagoGateway) GetPayment(ctx context.Context, id string) (*Payment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/payments/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NotFound("payment", id)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.PaymentFailed(fmt.Sprintf("gateway returned status %d", resp.StatusCode))
	}

	// The gateway reports the payment id as a number.
	var raw struct {
		ID                json.Number `json:"id"`
		Status            string      `json:"status"`
		ExternalReference string      `json:"external_reference"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}

	return &Payment{
		ID:                raw.ID.String(),
		Status:            raw.Status,
		ExternalReference: raw.ExternalReference,
	}, nil
}
