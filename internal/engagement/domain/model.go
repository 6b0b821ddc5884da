// Package domain defines the like relation and comment model.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
)

// ContentMax caps comment content, matching the description cap.
const ContentMax = 2000

// Like is a binary per-user-per-project endorsement. Its identity is the
// (UserID, ProjectID) pair; it is only ever created or destroyed.
type Like struct {
	UserID    string    `json:"user_id"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is one piece of free-text feedback on a project. Comments are
// never edited in place.
type Comment struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentWithAuthor carries denormalized author display info so the caller
// can render the comment without a second round trip.
type CommentWithAuthor struct {
	Comment
	AuthorName      *string `json:"author_name"`
	AuthorAvatarURL *string `json:"author_avatar_url"`
}

// LikeState is the post-state of a toggle.
type LikeState struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// ValidateContent trims and checks comment content.
func ValidateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperr.Validation("content", "comment content is required")
	}
	if utf8.RuneCountInString(content) > ContentMax {
		return "", apperr.Validation("content", "comment must be at most 2000 characters")
	}
	return content, nil
}
