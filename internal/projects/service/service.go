// Package service handles project business logic: validation, ownership
// checks and facet-cache bookkeeping.
package service

import (
	"context"
	"time"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/projects/domain"
	"github.com/appli-farm/applifarm-backend/internal/projects/store"
)

// FacetCache is the slice of the search cache the project service needs.
type FacetCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, facets []string)
	Invalidate(ctx context.Context)
}

type ProjectService struct {
	store  store.Store
	facets FacetCache
}

func NewProjectService(st store.Store, facets FacetCache) *ProjectService {
	return &ProjectService{store: st, facets: facets}
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, d domain.Draft) (*domain.Project, error) {
	if ownerID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.Create(ctx, ownerID, d)
	if err != nil {
		return nil, err
	}

	s.invalidateFacets(ctx)
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.store.Get(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id, callerID string, patch domain.Patch) (*domain.Project, error) {
	if callerID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != callerID {
		return nil, apperr.ErrForbidden
	}

	if err := p.Apply(patch, time.Now()); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateFacets(ctx)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, callerID string) error {
	if callerID == "" {
		return apperr.ErrUnauthenticated
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.OwnerID != callerID {
		return apperr.ErrForbidden
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateFacets(ctx)
	return nil
}

func (s *ProjectService) Search(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	return s.store.Search(ctx, f)
}

func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// CategoryFacets returns the distinct categories across all stored projects,
// serving from the cache when it is warm.
func (s *ProjectService) CategoryFacets(ctx context.Context) ([]string, error) {
	if s.facets != nil {
		if facets, ok := s.facets.Get(ctx); ok {
			return facets, nil
		}
	}

	facets, err := s.store.CategoryFacets(ctx)
	if err != nil {
		return nil, err
	}

	if s.facets != nil {
		s.facets.Set(ctx, facets)
	}
	return facets, nil
}

func (s *ProjectService) invalidateFacets(ctx context.Context) {
	if s.facets != nil {
		s.facets.Invalidate(ctx)
	}
}
