package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/23sarmiento78/BOLUSHOP/pkg/errors"
	"github.com/23sarmiento78/BOLUSHOP/pkg/httputil"

	"github.com/23sarmiento78/BOLUSHOP/internal/domain"
	"github.com/23sarmiento78/BOLUSHOP/internal/repository"
)

func productRouter(handler *ProductHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Get("/products/{idOrSlug}", handler.GetProduct)
		r.Get("/categories", handler.ListCategories)
	})
	return r
}

func productTestHandler(products *mockProductRepo) *ProductHandler {
	svc := catalogTestService(products, new(mockSettingsRepo))
	return NewProductHandler(svc, handlerTestLogger())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) httputil.Response {
	t.Helper()
	var resp httputil.Response
	err := json.NewDecoder(rec.Body).Decode(&resp)
	require.NoError(t, err)
	return resp
}

func sampleProduct() *domain.Product {
	return &domain.Product{
		ID:          "550e8400-e29b-41d4-a716-446655440001",
		Name:        "Sarten Antiadherente",
		Slug:        "sarten-antiadherente",
		Price:       30450,
		Image:       "/bolushop.png",
		Category:    "cocina",
		Description: "Sarten de ceramica 24cm",
		Features:    []string{domain.FeatureFreeShipping},
	}
}

// =============================================================================
// GET /api/v1/products - ListProducts
// =============================================================================

func TestListProducts_Success(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	products.On("List", mock.Anything, mock.AnythingOfType("repository.ProductFilter")).
		Return([]domain.Product{*sampleProduct()}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp httputil.PaginatedResponse[domain.Product]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PerPage)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Sarten Antiadherente", resp.Data[0].Name)
	products.AssertExpectations(t)
}

func TestListProducts_FiltersForwarded(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	products.On("List", mock.Anything, mock.MatchedBy(func(f repository.ProductFilter) bool {
		return f.Category != nil && *f.Category == "cocina" &&
			f.Search != nil && *f.Search == "sarten" &&
			f.Page == 2 && f.PerPage == 5
	})).Return([]domain.Product{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?category=cocina&search=sarten&page=2&per_page=5", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	products.AssertExpectations(t)
}

func TestListProducts_InvalidPage(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=0", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PARAMETER", resp.Error.Code)
	products.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListProducts_PerPageTooLarge(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?per_page=500", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// GET /api/v1/products/{idOrSlug} - GetProduct
// =============================================================================

func TestGetProduct_ByID(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	p := sampleProduct()
	products.On("GetByID", mock.Anything, p.ID).Return(p, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+p.ID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
	products.AssertExpectations(t)
	products.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
}

func TestGetProduct_BySlug(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	p := sampleProduct()
	products.On("GetBySlug", mock.Anything, "sarten-antiadherente").Return(p, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/sarten-antiadherente", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	products.AssertExpectations(t)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetProduct_NotFound(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	products.On("GetBySlug", mock.Anything, "missing").
		Return(nil, apperrors.NotFound("product", "missing"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

// =============================================================================
// GET /api/v1/categories - ListCategories
// =============================================================================

func TestListCategories(t *testing.T) {
	products := new(mockProductRepo)
	router := productRouter(productTestHandler(products))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Category `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Data)

	ids := make([]string, 0, len(resp.Data))
	for _, c := range resp.Data {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "cocina")
	assert.Contains(t, ids, "tech")
}
