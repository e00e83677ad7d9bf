package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-catalog/internal/metrics"
	"github.com/maxviazov/storefront-catalog/internal/paging"
	"github.com/maxviazov/storefront-catalog/internal/service"
	"github.com/maxviazov/storefront-catalog/pkg/response"
)

type BrandHandler struct {
	svc     service.BrandService
	metrics *metrics.Metrics
}

func NewBrandHandler(svc service.BrandService, m *metrics.Metrics) *BrandHandler {
	return &BrandHandler{svc: svc, metrics: m}
}

func (h *BrandHandler) Order() int { return 100 }

func (h *BrandHandler) String() string { return "brands" }

func (h *BrandHandler) Register(_ context.Context, r *gin.RouterGroup) error {
	g := r.Group(BrandsPath)
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
	}
	return nil
}

type createBrandRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	Published    *bool  `json:"published"`
}

func (h *BrandHandler) create(c *gin.Context) {
	var req createBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, bodyError(err))
		return
	}
	brand, err := h.svc.CreateBrand(c.Request.Context(), service.BrandInput{
		Name:         req.Name,
		DisplayOrder: req.DisplayOrder,
		Published:    boolOr(req.Published, true),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, toBrandResponse(brand))
}

func (h *BrandHandler) getByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	brand, err := h.svc.GetBrand(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, toBrandResponse(brand))
}

func (h *BrandHandler) list(c *gin.Context) {
	req, err := parsePageRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	page, err := h.svc.ListBrands(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	writePage(c, h.metrics, "brands", paging.Map(page, toBrandResponse))
}

// writePage renders a PagedList and records its shape. A page is past the
// end when no item of the source falls at or after its offset.
func writePage[T any](c *gin.Context, m *metrics.Metrics, resource string, page paging.PagedList[T]) {
	if m != nil {
		pastEnd := page.PageIndex() > 0 && page.Offset() >= page.TotalCount()
		m.ObservePage(resource, page.PageSize(), pastEnd)
	}
	response.WriteData(c, http.StatusOK, page)
}

// bodyError turns a JSON binding failure into a field error on the body.
func bodyError(err error) error {
	return service.NewInvalidInput(service.FieldError{Field: "body", Message: "malformed JSON: " + err.Error()})
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
