package handler

import (
	"strconv"
	"time"

	"github.com/maxviazov/storefront-catalog/internal/model"
)

type brandResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toBrandResponse(b model.Brand) brandResponse {
	return brandResponse{
		ID:           b.ID,
		Name:         b.Name,
		DisplayOrder: b.DisplayOrder,
		Published:    b.Published,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type categoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	Root         bool      `json:"root"`
	DisplayOrder int       `json:"display_order"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		ParentID:     c.ParentID,
		Root:         c.ParentID == nil,
		DisplayOrder: c.DisplayOrder,
		Published:    c.Published,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// productResponse carries the price both in minor units and as a decimal
// string, so clients never divide floats.
type productResponse struct {
	ID         int64     `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	BrandID    *int64    `json:"brand_id,omitempty"`
	CategoryID *int64    `json:"category_id,omitempty"`
	PriceCents int64     `json:"price_cents"`
	Price      string    `json:"price"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		BrandID:    p.BrandID,
		CategoryID: p.CategoryID,
		PriceCents: p.PriceCents,
		Price:      formatCents(p.PriceCents),
		Published:  p.Published,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	frac := strconv.FormatInt(cents%100, 10)
	if len(frac) == 1 {
		frac = "0" + frac
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + frac
}
