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

type CategoryHandler struct {
	svc     service.CategoryService
	metrics *metrics.Metrics
}

func NewCategoryHandler(svc service.CategoryService, m *metrics.Metrics) *CategoryHandler {
	return &CategoryHandler{svc: svc, metrics: m}
}

func (h *CategoryHandler) Order() int { return 200 }

func (h *CategoryHandler) String() string { return "categories" }

func (h *CategoryHandler) Register(_ context.Context, r *gin.RouterGroup) error {
	g := r.Group(CategoriesPath)
	{
		g.POST("", h.create)
		g.GET("", h.list)
		g.GET("/:id", h.getByID)
	}
	return nil
}

type createCategoryRequest struct {
	Name         string `json:"name"`
	ParentID     *int64 `json:"parent_id"`
	DisplayOrder int    `json:"display_order"`
	Published    *bool  `json:"published"`
}

func (h *CategoryHandler) create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, bodyError(err))
		return
	}
	category, err := h.svc.CreateCategory(c.Request.Context(), service.CategoryInput{
		Name:         req.Name,
		ParentID:     req.ParentID,
		DisplayOrder: req.DisplayOrder,
		Published:    boolOr(req.Published, true),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, toCategoryResponse(category))
}

func (h *CategoryHandler) getByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	category, err := h.svc.GetCategory(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, toCategoryResponse(category))
}

func (h *CategoryHandler) list(c *gin.Context) {
	req, err := parsePageRequest(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	page, err := h.svc.ListCategories(c.Request.Context(), req)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	writePage(c, h.metrics, "categories", paging.Map(page, toCategoryResponse))
}
