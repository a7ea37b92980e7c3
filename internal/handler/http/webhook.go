package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"

	"github.com/23sarmiento78/BOLUSHOP/internal/payment"
	"github.com/23sarmiento78/BOLUSHOP/internal/service"
)

// WebhookHandler receives payment notifications from the gateway.
type WebhookHandler struct {
	orders        *service.OrderService
	webhookSecret string
	logger        *slog.Logger
}

// NewWebhookHandler creates the gateway webhook handler. An empty secret
// disables signature verification, which only makes sense locally.
func NewWebhookHandler(orders *service.OrderService, webhookSecret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		orders:        orders,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// webhookBody is the notification payload shape the gateway posts.
type webhookBody struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// HandleNotification handles POST /api/v1/webhooks/mercadopago
// The gateway retries on non-2xx, so everything that is not an auth or
// processing failure answers 200.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var body webhookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid notification body"},
		})
		return
	}

	if h.webhookSecret != "" {
		ok := payment.VerifySignature(
			h.webhookSecret,
			r.Header.Get("x-signature"),
			r.Header.Get("x-request-id"),
			body.Data.ID,
		)
		if !ok {
			h.logger.WarnContext(r.Context(), "rejected webhook with invalid signature",
				slog.String("data_id", body.Data.ID),
			)
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "invalid signature"},
			})
			return
		}
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = body.Type
	}
	if topic != "payment" || body.Data.ID == "" {
		// Other topics (merchant_order etc.) are acknowledged and skipped.
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"success": true}})
		return
	}

	if err := h.orders.HandlePaymentNotification(r.Context(), body.Data.ID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"success": true}})
}
