// Package store persists projects. PostgresStore is the production
// implementation; an in-memory equivalent lives in internal/storage/memory.
package store

import (
	"context"

	"github.com/appli-farm/applifarm-backend/internal/projects/domain"
)

type Store interface {
	// Create persists a validated draft, assigning id and timestamps.
	// CreatedAt and UpdatedAt are equal on the returned project.
	Create(ctx context.Context, ownerID string, d domain.Draft) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	// Update writes the project's mutable fields back; the caller applies
	// the patch first. LikesCount is never written here.
	Update(ctx context.Context, p *domain.Project) error
	// Delete removes the project and cascades its likes and comments.
	Delete(ctx context.Context, id string) error
	// Search returns matching projects ordered newest-first. An empty
	// result is not an error.
	Search(ctx context.Context, f domain.Filter) ([]domain.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	// CategoryFacets returns the distinct categories present across all
	// stored projects, sorted alphabetically.
	CategoryFacets(ctx context.Context) ([]string, error)
}
