package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/payment"
)

func webhookRouter(handler *WebhookHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/webhooks/mercadopago", handler.HandleNotification)
	return r
}

func webhookTestHandler(orders *mockOrderRepo, gateway *mockPaymentGateway, secret string) *WebhookHandler {
	return NewWebhookHandler(orderTestService(orders, gateway), secret, handlerTestLogger())
}

func signWebhook(secret, dataID, requestID, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func paymentNotification(dataID string) []byte {
	b, _ := json.Marshal(map[string]any{
		"type": "payment",
		"data": map[string]string{"id": dataID},
	})
	return b
}

func TestWebhook_ApprovedPaymentMarksOrderPaid(t *testing.T) {
	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, ""))

	order := &domain.Order{ID: "order-1", Status: domain.OrderStatusPending, Total: 37400}
	gateway.On("GetPayment", mock.Anything, "pay-1").
		Return(&payment.Payment{ID: "pay-1", Status: payment.PaymentStatusApproved, ExternalReference: "order-1"}, nil)
	orders.On("GetByID", mock.Anything, "order-1").Return(order, nil)
	orders.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == "order-1" && o.Status == domain.OrderStatusPaid && o.PaymentID == "pay-1"
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader(paymentNotification("pay-1")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	orders.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestWebhook_RejectedPaymentCancelsOrder(t *testing.T) {
	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, ""))

	order := &domain.Order{ID: "order-1", Status: domain.OrderStatusPending}
	gateway.On("GetPayment", mock.Anything, "pay-1").
		Return(&payment.Payment{ID: "pay-1", Status: payment.PaymentStatusRejected, ExternalReference: "order-1"}, nil)
	orders.On("GetByID", mock.Anything, "order-1").Return(order, nil)
	orders.On("Update", mock.Anything, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Status == domain.OrderStatusCancelled
	})).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader(paymentNotification("pay-1")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	orders.AssertExpectations(t)
}

func TestWebhook_ValidSignatureAccepted(t *testing.T) {
	const secret = "webhook-secret"

	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, secret))

	order := &domain.Order{ID: "order-1", Status: domain.OrderStatusPending}
	gateway.On("GetPayment", mock.Anything, "pay-1").
		Return(&payment.Payment{ID: "pay-1", Status: payment.PaymentStatusApproved, ExternalReference: "order-1"}, nil)
	orders.On("GetByID", mock.Anything, "order-1").Return(order, nil)
	orders.On("Update", mock.Anything, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader(paymentNotification("pay-1")))
	req.Header.Set("x-request-id", "req-1")
	req.Header.Set("x-signature", signWebhook(secret, "pay-1", "req-1", "1725148800"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	orders.AssertExpectations(t)
}

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, "webhook-secret"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader(paymentNotification("pay-1")))
	req.Header.Set("x-request-id", "req-1")
	req.Header.Set("x-signature", signWebhook("wrong-secret", "pay-1", "req-1", "1725148800"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "INVALID_SIGNATURE", resp.Error.Code)
	gateway.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
}

func TestWebhook_NonPaymentTopicAcknowledged(t *testing.T) {
	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, ""))

	b, _ := json.Marshal(map[string]any{
		"type": "merchant_order",
		"data": map[string]string{"id": "mo-1"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader(b))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	gateway.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
}

func TestWebhook_TopicQueryParamWins(t *testing.T) {
	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, ""))

	// Body says payment, query says merchant_order: the query wins and the
	// notification is acknowledged without touching the gateway.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago?topic=merchant_order", bytes.NewReader(paymentNotification("pay-1")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	gateway.AssertNotCalled(t, "GetPayment", mock.Anything, mock.Anything)
}

func TestWebhook_InvalidBody(t *testing.T) {
	orders := new(mockOrderRepo)
	gateway := new(mockPaymentGateway)
	router := webhookRouter(webhookTestHandler(orders, gateway, ""))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/mercadopago", bytes.NewReader([]byte(`{invalid`)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
