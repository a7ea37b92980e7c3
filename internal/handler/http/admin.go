package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"
	"github.com/23sarmiento78/BOLUSHOP/pkg/validator"

	"github.com/23sarmiento78/BOLUSHOP/internal/importer"
	"github.com/23sarmiento78/BOLUSHOP/internal/service"
)

// AdminProductHandler handles the back-office catalog endpoints.
type AdminProductHandler struct {
	service     *service.CatalogService
	maxUploadMB int64
	logger      *slog.Logger
}

// NewAdminProductHandler creates a new admin product HTTP handler.
func NewAdminProductHandler(svc *service.CatalogService, maxUploadMB int64, logger *slog.Logger) *AdminProductHandler {
	return &AdminProductHandler{
		service:     svc,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=500"`
	Slug        string   `json:"slug"`
	Price       int64    `json:"price" validate:"gte=0"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// UpdateProductRequest is the JSON request body for updating a product.
type UpdateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=500"`
	Slug        *string   `json:"slug"`
	Price       *int64    `json:"price" validate:"omitempty,gte=0"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
}

// CreateProduct handles POST /api/v1/admin/products
func (h *AdminProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateProductRequest
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

	product, err := h.service.CreateProduct(r.Context(), &service.CreateProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
		Features:    req.Features,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}
func (h *AdminProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id is required"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateProductRequest
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

	product, err := h.service.UpdateProduct(r.Context(), id, &service.UpdateProductInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
		Features:    req.Features,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *AdminProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "product id is required"},
		})
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id, "status": "deleted"}})
}

// DeleteManyRequest is the JSON request body for batch product deletion.
type DeleteManyRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// DeleteManyProducts handles POST /api/v1/admin/products/batch-delete
// IDs that no longer exist are ignored, so retrying a batch is safe.
func (h *AdminProductHandler) DeleteManyProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req DeleteManyRequest
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

	deleted, err := h.service.DeleteManyProducts(r.Context(), req.IDs)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]int{"deleted": deleted}})
}

// DeleteAllProducts handles DELETE /api/v1/admin/products
// The catalog wipe is destructive, so it demands an explicit confirmation
// parameter instead of running on a bare request.
func (h *AdminProductHandler) DeleteAllProducts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "CONFIRMATION_REQUIRED", Message: "pass confirm=true to wipe the catalog"},
		})
		return
	}

	if err := h.service.DeleteAllProducts(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "catalog wiped"}})
}

// ImportProducts handles POST /api/v1/admin/products/import
// It accepts a multipart upload ("file") holding a CSV or XLSX export,
// runs the import pipeline, and replaces the catalog on success.
func (h *AdminProductHandler) ImportProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB<<20)
	if err := r.ParseMultipartForm(h.maxUploadMB << 20); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid multipart upload: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file field is required"},
		})
		return
	}
	defer file.Close()

	var (
		rows   []importer.RawRow
		source string
	)
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		source = "csv"
		rows, err = importer.ParseCSV(file)
	case ".xlsx":
		source = "xlsx"
		rows, err = importer.ParseXLSX(file)
	default:
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "unsupported file type, expected .csv or .xlsx"},
		})
		return
	}
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to parse import upload",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()),
		)
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "could not parse upload: " + err.Error()},
		})
		return
	}

	count, err := h.service.ImportProducts(r.Context(), rows, source)
	if err != nil {
		switch {
		case errors.Is(err, importer.ErrNoValidProducts):
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "NO_VALID_PRODUCTS", Message: "no valid products found in the upload"},
			})
		case errors.Is(err, importer.ErrProcessing):
			httputil.WriteJSON(w, http.StatusUnprocessableEntity, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "PROCESSING_ERROR", Message: "could not process the uploaded rows"},
			})
		default:
			httputil.WriteError(w, r, err, h.logger)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"count":  count,
		"source": source,
	}})
}
