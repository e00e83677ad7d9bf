package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/storefront-catalog/internal/model"
)

func TestFormatCents(t *testing.T) {
	cases := map[int64]string{
		0:       "0.00",
		5:       "0.05",
		99:      "0.99",
		100:     "1.00",
		1999:    "19.99",
		1234567: "12345.67",
		-250:    "-2.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatCents(in), "cents=%d", in)
	}
}

func TestToProductResponse(t *testing.T) {
	brand := int64(4)
	out := toProductResponse(model.Product{ID: 1, SKU: "AB-1", BrandID: &brand, PriceCents: 1999})
	assert.Equal(t, "19.99", out.Price)
	assert.Equal(t, int64(1999), out.PriceCents)
	assert.Equal(t, &brand, out.BrandID)
}

func TestToCategoryResponse_Root(t *testing.T) {
	parent := int64(1)
	assert.True(t, toCategoryResponse(model.Category{ID: 1}).Root)
	assert.False(t, toCategoryResponse(model.Category{ID: 2, ParentID: &parent}).Root)
}
