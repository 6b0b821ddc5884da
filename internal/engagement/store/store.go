// Package store persists likes and comments, and owns every write to the
// projects.likes_count counter.
package store

import (
	"context"

	"github.com/appli-farm/applifarm-backend/internal/engagement/domain"
)

type Store interface {
	// ToggleLike flips the like relation and adjusts the project's
	// counter as one atomic unit. No observer ever sees the relation and
	// the counter disagree.
	ToggleLike(ctx context.Context, userID, projectID string) (domain.LikeState, error)
	HasLiked(ctx context.Context, userID, projectID string) (bool, error)
	AddComment(ctx context.Context, authorID, projectID, content string) (*domain.CommentWithAuthor, error)
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	// ListComments runs a fresh query each call, newest-first.
	ListComments(ctx context.Context, projectID string) ([]domain.CommentWithAuthor, error)
	// ReconcileLikeCounts recomputes likes_count from the like relations
	// and returns how many projects were corrected.
	ReconcileLikeCounts(ctx context.Context) (int64, error)
}
