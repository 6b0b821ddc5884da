// Package service handles engagement business logic: authentication and
// authorship checks around the like and comment stores.
package service

import (
	"context"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/engagement/domain"
	"github.com/appli-farm/applifarm-backend/internal/engagement/store"
)

type EngagementService struct {
	store store.Store
}

func NewEngagementService(st store.Store) *EngagementService {
	return &EngagementService{store: st}
}

// ToggleLike flips the caller's like on a project and returns the
// post-state. Anonymous callers are rejected before any storage work.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, projectID string) (domain.LikeState, error) {
	if userID == "" {
		return domain.LikeState{}, apperr.ErrUnauthenticated
	}
	return s.store.ToggleLike(ctx, userID, projectID)
}

// HasLiked is false for anonymous callers, never an error.
func (s *EngagementService) HasLiked(ctx context.Context, userID, projectID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.store.HasLiked(ctx, userID, projectID)
}

func (s *EngagementService) AddComment(ctx context.Context, authorID, projectID, content string) (*domain.CommentWithAuthor, error) {
	if authorID == "" {
		return nil, apperr.ErrUnauthenticated
	}

	content, err := domain.ValidateContent(content)
	if err != nil {
		return nil, err
	}
	return s.store.AddComment(ctx, authorID, projectID, content)
}

func (s *EngagementService) DeleteComment(ctx context.Context, commentID, callerID string) error {
	if callerID == "" {
		return apperr.ErrUnauthenticated
	}

	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c.AuthorID != callerID {
		return apperr.ErrForbidden
	}
	return s.store.DeleteComment(ctx, commentID)
}

func (s *EngagementService) ListComments(ctx context.Context, projectID string) ([]domain.CommentWithAuthor, error) {
	return s.store.ListComments(ctx, projectID)
}
