package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/storefront-catalog/internal/auth"
	"github.com/maxviazov/storefront-catalog/internal/config"
	"github.com/maxviazov/storefront-catalog/internal/handler"
	"github.com/maxviazov/storefront-catalog/internal/metrics"
	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/paging"
	"github.com/maxviazov/storefront-catalog/internal/repository"
	"github.com/maxviazov/storefront-catalog/internal/service"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubBrandService struct {
	created model.Brand
	err     error
	lastReq service.PageRequest
	lastIn  service.BrandInput
}

func (s *stubBrandService) CreateBrand(_ context.Context, in service.BrandInput) (model.Brand, error) {
	s.lastIn = in
	return s.created, s.err
}

func (s *stubBrandService) GetBrand(_ context.Context, id int64) (model.Brand, error) {
	if s.err != nil {
		return model.Brand{}, s.err
	}
	return model.Brand{ID: id, Name: "Acme"}, nil
}

func (s *stubBrandService) ListBrands(_ context.Context, req service.PageRequest) (paging.PagedList[model.Brand], error) {
	s.lastReq = req
	if s.err != nil {
		return paging.PagedList[model.Brand]{}, s.err
	}
	items := []model.Brand{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Contoso"}}
	return paging.NewWithTotal(items, max(req.Index, 0), 2, 5), nil
}

type stubCategoryService struct{}

func (stubCategoryService) CreateCategory(context.Context, service.CategoryInput) (model.Category, error) {
	return model.Category{ID: 1}, nil
}

func (stubCategoryService) GetCategory(context.Context, int64) (model.Category, error) {
	return model.Category{}, repository.ErrNotFound
}

func (stubCategoryService) ListCategories(_ context.Context, req service.PageRequest) (paging.PagedList[model.Category], error) {
	return paging.New([]model.Category{{ID: 1, Name: "Shoes"}}, req.Index, max(req.Size, 1))
}

type stubProductService struct {
	lastFilter model.ProductFilter
	lastReq    service.PageRequest
}

func (s *stubProductService) CreateProduct(_ context.Context, in service.ProductInput) (model.Product, error) {
	return model.Product{ID: 7, SKU: strings.ToUpper(in.SKU)}, nil
}

func (s *stubProductService) GetProduct(context.Context, int64) (model.Product, error) {
	return model.Product{ID: 7}, nil
}

func (s *stubProductService) ListProducts(_ context.Context, f model.ProductFilter, req service.PageRequest) (paging.PagedList[model.Product], error) {
	s.lastFilter, s.lastReq = f, req
	return paging.NewWithTotal([]model.Product{}, req.Index, 10, 0), nil
}

type fixture struct {
	router   *gin.Engine
	brands   *stubBrandService
	products *stubProductService
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T, apiEnabled bool, pinger handler.Pinger) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schemes := auth.NewSchemes()
	require.NoError(t, schemes.Add(auth.Scheme{
		Name:         "Facebook",
		Login:        func(c *gin.Context) { c.Redirect(http.StatusFound, "https://provider.example.com/") },
		CallbackPath: "/signin-facebook",
		Callback:     func(c *gin.Context) { c.Status(http.StatusOK) },
		FailurePath:  "/fb-signin-failed",
		Failure:      func(c *gin.Context) { c.Status(http.StatusUnauthorized) },
	}))

	f := fixture{brands: &stubBrandService{}, products: &stubProductService{}, metrics: metrics.New()}
	r, err := handler.NewRouter(context.Background(), handler.Deps{
		Pinger:     pinger,
		Brands:     f.brands,
		Categories: stubCategoryService{},
		Products:   f.products,
		Schemes:    schemes,
		Metrics:    f.metrics,
		Logger:     zerolog.Nop(),
		API:        config.APIConfig{Enabled: apiEnabled, DefaultPageSize: 20, MaxPageSize: 100},
	})
	require.NoError(t, err)
	f.router = r
	return f
}

func (f fixture) do(method, target string, body []byte, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestNewRouter_RequiresMetrics(t *testing.T) {
	_, err := handler.NewRouter(context.Background(), handler.Deps{})
	assert.Error(t, err)
}

func TestBrandHandler_List_RendersPagedList(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/brands?page_index=1&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.PageRequest{Index: 1, Size: 2}, f.brands.lastReq)

	var body struct {
		Items           []model.Brand `json:"items"`
		PageIndex       int           `json:"page_index"`
		PageSize        int           `json:"page_size"`
		TotalCount      int           `json:"total_count"`
		TotalPages      int           `json:"total_pages"`
		HasPreviousPage bool          `json:"has_previous_page"`
		HasNextPage     bool          `json:"has_next_page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
	assert.Equal(t, 1, body.PageIndex)
	assert.Equal(t, 5, body.TotalCount)
	assert.Equal(t, 3, body.TotalPages)
	assert.True(t, body.HasPreviousPage)
	assert.True(t, body.HasNextPage)
}

func TestBrandHandler_List_BadQuery(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/brands?page_index=abc&page_size=1.5", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"page_index"`)
	assert.Contains(t, w.Body.String(), `"field":"page_size"`)
}

func TestBrandHandler_Create(t *testing.T) {
	f := newFixture(t, true, stubPinger{})
	f.brands.created = model.Brand{ID: 9, Name: "Acme"}

	w := f.do(http.MethodPost, handler.APIV1Prefix+"/brands", []byte(`{"name":"Acme","display_order":3}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, service.BrandInput{Name: "Acme", DisplayOrder: 3, Published: true}, f.brands.lastIn)

	w = f.do(http.MethodPost, handler.APIV1Prefix+"/brands", []byte(`{"name":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.brands.err = repository.ErrAlreadyExists
	w = f.do(http.MethodPost, handler.APIV1Prefix+"/brands", []byte(`{"name":"Acme","published":false}`))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, f.brands.lastIn.Published)
}

func TestBrandHandler_GetByID(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/brands/12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":12`)

	w = f.do(http.MethodGet, handler.APIV1Prefix+"/brands/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.brands.err = repository.ErrNotFound
	w = f.do(http.MethodGet, handler.APIV1Prefix+"/brands/12", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryHandler(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/categories?page_size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_count":1`)

	w = f.do(http.MethodGet, handler.APIV1Prefix+"/categories/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_List_Filters(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/products?brand_id=4&category_id=8&q=shoe&published=true&page_index=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.products.lastFilter.BrandID)
	require.NotNil(t, f.products.lastFilter.CategoryID)
	assert.Equal(t, int64(4), *f.products.lastFilter.BrandID)
	assert.Equal(t, int64(8), *f.products.lastFilter.CategoryID)
	assert.Equal(t, "shoe", f.products.lastFilter.Query)
	assert.True(t, f.products.lastFilter.PublishedOnly)
	assert.Equal(t, 2, f.products.lastReq.Index)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	w = f.do(http.MethodGet, handler.APIV1Prefix+"/products?brand_id=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"brand_id"`)
}

func TestProductHandler_Create(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodPost, handler.APIV1Prefix+"/products", []byte(`{"sku":"ab-1","name":"Anvil","price_cents":100}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sku":"AB-1"`)
}

func TestCreate_MalformedBodyNamesBodyField(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	for _, path := range []string{"/brands", "/categories", "/products"} {
		t.Run(path, func(t *testing.T) {
			w := f.do(http.MethodPost, handler.APIV1Prefix+path, []byte(`{"name":`))
			require.Equal(t, http.StatusBadRequest, w.Code)

			var body struct {
				Error       string               `json:"error"`
				FieldErrors []service.FieldError `json:"field_errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "invalid_input", body.Error)
			require.Len(t, body.FieldErrors, 1)
			assert.Equal(t, "body", body.FieldErrors[0].Field)
			assert.Contains(t, body.FieldErrors[0].Message, "malformed JSON")
		})
	}
}

func TestListResponses_UseResponseShapes(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"root":true`)

	w = f.do(http.MethodPost, handler.APIV1Prefix+"/products", []byte(`{"sku":"ab-1","name":"Anvil","price_cents":100}`))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"price":"0.00"`)
}

func TestList_PastEndPageIsCounted(t *testing.T) {
	f := newFixture(t, true, stubPinger{})
	f.do(http.MethodGet, handler.APIV1Prefix+"/products?page_index=0", nil)
	f.do(http.MethodGet, handler.APIV1Prefix+"/products?page_index=3", nil)

	w := f.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_catalog_pages_past_end_total{resource="products"} 1`)
}

func TestAPIDisabled_OnlyProbesMetricsAuth(t *testing.T) {
	f := newFixture(t, false, stubPinger{})

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, handler.APIV1Prefix+"/brands", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/live", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, handler.APIV1Prefix+"/health/ready", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusFound, f.do(http.MethodGet, "/auth/facebook/login", nil).Code)
}

func TestCORS_PermissiveOnAPI(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, handler.APIV1Prefix+"/brands", nil, "Origin", "https://other.example.com")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	pre := f.do(http.MethodOptions, handler.APIV1Prefix+"/products", nil,
		"Origin", "https://other.example.com",
		"Access-Control-Request-Method", "POST",
		"Access-Control-Request-Headers", "X-Custom-Header",
	)
	assert.Equal(t, http.StatusNoContent, pre.Code)
	assert.Equal(t, "*", pre.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, "/live", nil, handler.RequestIDHeader, "req-123")
	assert.Equal(t, "req-123", w.Header().Get(handler.RequestIDHeader))

	w = f.do(http.MethodGet, "/live", nil)
	assert.Len(t, w.Header().Get(handler.RequestIDHeader), 36)
}

func TestMetricsEndpoint_CountsRequests(t *testing.T) {
	f := newFixture(t, true, stubPinger{})
	f.do(http.MethodGet, handler.APIV1Prefix+"/brands/1", nil)
	f.do(http.MethodGet, handler.APIV1Prefix+"/brands", nil)

	w := f.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/v1/brands/:id"`)
	assert.Contains(t, w.Body.String(), `storefront_catalog_page_size`)
}

func TestAuthRoutes(t *testing.T) {
	f := newFixture(t, true, stubPinger{})

	w := f.do(http.MethodGet, "/auth/FACEBOOK/login", nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = f.do(http.MethodGet, "/auth/twitter/login", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(http.MethodGet, "/auth/schemes", nil)
	assert.JSONEq(t, `{"schemes":["Facebook"]}`, w.Body.String())

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/signin-facebook", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/fb-signin-failed", nil).Code)
}

func TestHealth(t *testing.T) {
	ok := newFixture(t, true, stubPinger{})
	assert.Equal(t, http.StatusOK, ok.do(http.MethodGet, "/ready", nil).Code)

	down := newFixture(t, true, handler.Pingers{stubPinger{}, stubPinger{err: errors.New("mongo down")}})
	w := down.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "mongo down")
	assert.Equal(t, http.StatusOK, down.do(http.MethodGet, "/live", nil).Code)
}

func TestDocs(t *testing.T) {
	f := newFixture(t, false, stubPinger{})
	assert.Contains(t, f.do(http.MethodGet, "/openapi.yaml", nil).Body.String(), "openapi: 3.0.3")
	assert.Contains(t, f.do(http.MethodGet, "/docs", nil).Body.String(), "swagger-ui")
}
