// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"encoding/json"
	"time"
)

// Brand represents a manufacturer or label products can be attributed to.
type Brand struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category groups products; ParentID is nil for root categories.
type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	DisplayOrder int       `json:"display_order"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product represents a sellable catalog item.
// Price is kept in minor units (cents) to avoid float rounding.
type Product struct {
	ID         int64     `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	BrandID    *int64    `json:"brand_id,omitempty"`
	CategoryID *int64    `json:"category_id,omitempty"`
	PriceCents int64     `json:"price_cents"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	BrandID       *int64
	CategoryID    *int64
	Query         string
	PublishedOnly bool
}

// Setting is a named configuration blob stored alongside catalog data.
// Metadata holds the JSON-encoded settings object.
type Setting struct {
	Name      string          `json:"name" bson:"name"`
	Metadata  json.RawMessage `json:"metadata" bson:"-"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}
