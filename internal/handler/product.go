package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-catalog/internal/metrics"
	"github.com/maxviazov/storefront-catalog/internal/paging"
	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/service"
	"github.com/maxviazov/storefront-catalog/pkg/response"
)

type ProductHandler struct {
	svc     service.ProductService
	metrics *metrics.Metrics
}

func NewProductHandler(svc service.ProductService, m *metrics.Metrics) *ProductHandler {
	return &ProductHandler{svc: svc, metrics: m}
}

func (h *ProductHandler) Order() int { return 300 }

func (h *ProductHandler) String() string { return "products" }

func (h *ProductHandler) Register(_ context.Context, r *gin.RouterGroup) error {
	g := r.Group(ProductsPath)
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
	}
	return nil
}

type createProductRequest struct {
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	BrandID    *int64 `json:"brand_id"`
	CategoryID *int64 `json:"category_id"`
	PriceCents int64  `json:"price_cents"`
	Published  *bool  `json:"published"`
}

func (h *ProductHandler) create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, bodyError(err))
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), service.ProductInput{
		SKU:        req.SKU,
		Name:       req.Name,
		BrandID:    req.BrandID,
		CategoryID: req.CategoryID,
		PriceCents: req.PriceCents,
		Published:  boolOr(req.Published, true),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) getByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	product, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) list(c *gin.Context) {
	req, err := parsePageRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	var ferrs []service.FieldError
	brandID, fe := parseOptionalID(c, "brand_id")
	if fe != nil {
		ferrs = append(ferrs, *fe)
	}
	categoryID, fe := parseOptionalID(c, "category_id")
	if fe != nil {
		ferrs = append(ferrs, *fe)
	}
	if err := service.NewInvalidInput(ferrs...); err != nil {
		response.WriteError(c, err)
		return
	}

	filter := model.ProductFilter{
		BrandID:       brandID,
		CategoryID:    categoryID,
		Query:         c.Query("q"),
		PublishedOnly: parseBoolQuery(c.Query("published")),
	}
	page, err := h.svc.ListProducts(c.Request.Context(), filter, req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	writePage(c, h.metrics, "products", paging.Map(page, toProductResponse))
}
