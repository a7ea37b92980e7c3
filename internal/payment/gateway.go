// Package payment integrates the hosted payment gateway: preference
// creation at checkout, payment lookups for webhooks, and webhook
// signature verification.
package payment

import "context"

// PreferenceItem is one purchasable line sent to the gateway.
type PreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
	PictureURL string  `json:"picture_url,omitempty"`
}

// BackURLs are the storefront pages the gateway redirects back to.
type BackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// Shipments carries the shipping cost the gateway should charge. The cost
// is always zero here since prices already absorb shipping.
type Shipments struct {
	Cost float64 `json:"cost"`
	Mode string  `json:"mode"`
}

// PreferenceRequest is the payload for creating a hosted checkout session.
type PreferenceRequest struct {
	ExternalReference string           `json:"external_reference"`
	Items             []PreferenceItem `json:"items"`
	Shipments         Shipments        `json:"shipments"`
	BackURLs          BackURLs         `json:"back_urls"`
	AutoReturn        string           `json:"auto_return"`
}

// Preference is the gateway's created checkout session.
type Preference struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// Payment statuses reported by the gateway.
const (
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusPending   = "pending"
)

// Payment is the gateway's view of a processed payment.
type Payment struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	ExternalReference string `json:"external_reference"`
}

// Gateway is the client surface the checkout and webhook flows need.
type Gateway interface {
	// CreatePreference registers a checkout session and returns the hosted
	// payment URL.
	CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error)

	// GetPayment fetches a payment by the gateway's payment id.
	GetPayment(ctx context.Context, id string) (*Payment, error)
}
