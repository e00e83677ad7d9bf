package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/storefront-catalog/internal/model"
	"github.com/maxviazov/storefront-catalog/internal/paging"
	"github.com/maxviazov/storefront-catalog/internal/repository"
)

// brandService pages brands in SQL and wraps each window with its total.
type brandService struct {
	repo   repository.BrandRepository
	limits PagingLimits
	log    zerolog.Logger
}

func NewBrandService(repo repository.BrandRepository, limits PagingLimits, logger zerolog.Logger) BrandService {
	l := logger.With().Str("module", "service").Str("component", "brand").Logger()
	return &brandService{repo: repo, limits: limits, log: l}
}

func (s *brandService) CreateBrand(ctx context.Context, in BrandInput) (model.Brand, error) {
	start := time.Now()
	raw := in.Name
	in.Name = strings.TrimSpace(in.Name)

	ferrs := validateName("name", in.Name, 2, 100)
	if in.DisplayOrder < 0 {
		ferrs = append(ferrs, FieldError{Field: "display_order", Message: "must be >= 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("name_raw", raw).Interface("field_errors", ferrs).Msg("brand validation failed")
		return model.Brand{}, err
	}

	out, err := s.repo.Create(ctx, model.Brand{Name: in.Name, DisplayOrder: in.DisplayOrder, Published: in.Published})
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("create brand failed")
		return model.Brand{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("brand_id", out.ID).Msg("brand created")
	return out, nil
}

func (s *brandService) GetBrand(ctx context.Context, id int64) (model.Brand, error) {
	if err := validateID(id); err != nil {
		return model.Brand{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *brandService) ListBrands(ctx context.Context, req PageRequest) (paging.PagedList[model.Brand], error) {
	req = normalizePageRequest(req, s.limits)
	res, err := s.repo.List(ctx, window(req))
	if err != nil {
		s.log.Error().Err(err).Int("page_index", req.Index).Int("page_size", req.Size).Msg("list brands failed")
		return paging.PagedList[model.Brand]{}, err
	}
	return paging.NewWithTotal(res.Items, req.Index, req.Size, res.Total), nil
}
