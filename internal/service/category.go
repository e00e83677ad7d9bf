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

// categoryService loads the whole category tree and pages it in memory; the
// set is small and the storefront renders it from one snapshot.
type categoryService struct {
	repo   repository.CategoryRepository
	limits PagingLimits
	log    zerolog.Logger
}

func NewCategoryService(repo repository.CategoryRepository, limits PagingLimits, logger zerolog.Logger) CategoryService {
	l := logger.With().Str("module", "service").Str("component", "category").Logger()
	return &categoryService{repo: repo, limits: limits, log: l}
}

func (s *categoryService) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	start := time.Now()
	in.Name = strings.TrimSpace(in.Name)

	ferrs := validateName("name", in.Name, 1, 100)
	ferrs = append(ferrs, validateRef("parent_id", in.ParentID)...)
	if in.DisplayOrder < 0 {
		ferrs = append(ferrs, FieldError{Field: "display_order", Message: "must be >= 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("category validation failed")
		return model.Category{}, err
	}

	// Existence check gives a field error instead of a bare FK conflict.
	if in.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *in.ParentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return model.Category{}, newInvalidInput([]FieldError{{Field: "parent_id", Message: "category does not exist"}})
			}
			s.log.Error().Err(err).Int64("parent_id", *in.ParentID).Msg("lookup parent category failed")
			return model.Category{}, err
		}
	}

	out, err := s.repo.Create(ctx, model.Category{
		Name:         in.Name,
		ParentID:     in.ParentID,
		DisplayOrder: in.DisplayOrder,
		Published:    in.Published,
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", in.Name).Msg("create category failed")
		return model.Category{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("category_id", out.ID).Msg("category created")
	return out, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	if err := validateID(id); err != nil {
		return model.Category{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *categoryService) ListCategories(ctx context.Context, req PageRequest) (paging.PagedList[model.Category], error) {
	req = normalizePageRequest(req, s.limits)
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list categories failed")
		return paging.PagedList[model.Category]{}, err
	}
	page, err := paging.New(all, req.Index, req.Size)
	if err != nil {
		s.log.Error().Err(err).Msg("category repository returned no source")
		return paging.PagedList[model.Category]{}, err
	}
	return page, nil
}
