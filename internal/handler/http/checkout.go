package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"
	"github.com/23sarmiento78/BOLUSHOP/pkg/validator"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/service"
)

// CheckoutHandler handles the public checkout endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// CheckoutRequest is the JSON request body for starting a checkout.
type CheckoutRequest struct {
	Items []service.CheckoutItemInput `json:"items" validate:"required,min=1,dive"`
	Payer domain.Payer                `json:"payer"`
}

// Checkout handles POST /api/v1/checkout
// @Summary Start a checkout
// @Description Creates a pending order and returns the hosted payment URL
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Cart contents and payer"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /api/v1/checkout [post]
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	result, err := h.service.Checkout(r.Context(), &service.CheckoutInput{
		Items: req.Items,
		Payer: req.Payer,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: result})
}
