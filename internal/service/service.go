// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation, paging and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/paging"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInput lets transport code report malformed parameters the same
// way services report invalid fields.
func NewInvalidInput(fe ...FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// PageRequest is a zero-based page index plus page size as clients send it.
type PageRequest struct {
	Index int
	Size  int
}

// PagingLimits bounds client page sizes; see normalizePageRequest.
type PagingLimits struct {
	DefaultSize int
	MaxSize     int
}

// BrandInput carries client-provided brand fields.
type BrandInput struct {
	Name         string
	DisplayOrder int
	Published    bool
}

// CategoryInput carries client-provided category fields.
type CategoryInput struct {
	Name         string
	ParentID     *int64
	DisplayOrder int
	Published    bool
}

// ProductInput carries client-provided product fields.
type ProductInput struct {
	SKU        string
	Name       string
	BrandID    *int64
	CategoryID *int64
	PriceCents int64
	Published  bool
}

// BrandService defines brand-oriented use cases.
type BrandService interface {
	CreateBrand(ctx context.Context, in BrandInput) (model.Brand, error)
	GetBrand(ctx context.Context, id int64) (model.Brand, error)
	ListBrands(ctx context.Context, req PageRequest) (paging.PagedList[model.Brand], error)
}

// CategoryService defines category-oriented use cases.
type CategoryService interface {
	CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	ListCategories(ctx context.Context, req PageRequest) (paging.PagedList[model.Category], error)
}

// ProductService defines product-oriented use cases.
type ProductService interface {
	CreateProduct(ctx context.Context, in ProductInput) (model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context, f model.ProductFilter, req PageRequest) (paging.PagedList[model.Product], error)
}
