package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/paging"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

type productService struct {
	products   repository.ProductRepository
	brands     repository.BrandRepository
	categories repository.CategoryRepository
	tx         repository.TxManager
	limits     PagingLimits
	log        zerolog.Logger
}

func NewProductService(
	products repository.ProductRepository,
	brands repository.BrandRepository,
	categories repository.CategoryRepository,
	tx repository.TxManager,
	limits PagingLimits,
	logger zerolog.Logger,
) ProductService {
	l := logger.With().Str("module", "service").Str("component", "product").Logger()
	return &productService{products: products, brands: brands, categories: categories, tx: tx, limits: limits, log: l}
}

// withinTx runs fn in a transaction when a manager is configured.
func (s *productService) withinTx(ctx context.Context, fn repository.TxFunc) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return s.tx.WithinTx(ctx, fn)
}

func (s *productService) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	start := time.Now()
	rawSKU := in.SKU
	in.SKU = normalizeSKU(in.SKU)
	in.Name = strings.TrimSpace(in.Name)

	ferrs := validateName("sku", in.SKU, 1, 64)
	ferrs = append(ferrs, validateName("name", in.Name, 1, 200)...)
	if in.PriceCents < 0 {
		ferrs = append(ferrs, FieldError{Field: "price_cents", Message: "must be >= 0"})
	}
	ferrs = append(ferrs, validateRef("brand_id", in.BrandID)...)
	ferrs = append(ferrs, validateRef("category_id", in.CategoryID)...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("sku_raw", rawSKU).Interface("field_errors", ferrs).Msg("product validation failed")
		return model.Product{}, err
	}

	// Reference checks and the insert share one transaction.
	var out model.Product
	err := s.withinTx(ctx, func(ctx context.Context) error {
		if err := s.checkRefs(ctx, in); err != nil {
			return err
		}
		var err error
		out, err = s.products.Create(ctx, model.Product{
			SKU:        in.SKU,
			Name:       in.Name,
			BrandID:    in.BrandID,
			CategoryID: in.CategoryID,
			PriceCents: in.PriceCents,
			Published:  in.Published,
		})
		return err
	})
	if errors.Is(err, ErrInvalidInput) {
		return model.Product{}, err
	}
	if err != nil {
		s.log.Error().Err(err).Str("sku", in.SKU).Msg("create product failed")
		return model.Product{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("product_id", out.ID).Str("sku", out.SKU).Msg("product created")
	return out, nil
}

// checkRefs reports every missing reference at once.
func (s *productService) checkRefs(ctx context.Context, in ProductInput) error {
	var ferrs []FieldError
	if in.BrandID != nil {
		if _, err := s.brands.GetByID(ctx, *in.BrandID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.log.Error().Err(err).Int64("brand_id", *in.BrandID).Msg("lookup brand failed")
				return err
			}
			ferrs = append(ferrs, FieldError{Field: "brand_id", Message: "brand does not exist"})
		}
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.log.Error().Err(err).Int64("category_id", *in.CategoryID).Msg("lookup category failed")
				return err
			}
			ferrs = append(ferrs, FieldError{Field: "category_id", Message: "category does not exist"})
		}
	}
	return newInvalidInput(ferrs)
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if err := validateID(id); err != nil {
		return model.Product{}, err
	}
	return s.products.GetByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, f model.ProductFilter, req PageRequest) (paging.PagedList[model.Product], error) {
	var ferrs []FieldError
	ferrs = append(ferrs, validateRef("brand_id", f.BrandID)...)
	ferrs = append(ferrs, validateRef("category_id", f.CategoryID)...)
	if qLen := len([]rune(strings.TrimSpace(f.Query))); qLen > 200 {
		ferrs = append(ferrs, FieldError{Field: "q", Message: "length must be <= 200"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return paging.PagedList[model.Product]{}, err
	}

	req = normalizePageRequest(req, s.limits)
	res, err := s.products.List(ctx, f, window(req))
	if err != nil {
		s.log.Error().Err(err).Int("page_index", req.Index).Int("page_size", req.Size).Msg("list products failed")
		return paging.PagedList[model.Product]{}, err
	}
	return paging.NewWithTotal(res.Items, req.Index, req.Size, res.Total), nil
}
