// Package profiles owns the user profile records attributed to the external
// identity provider's opaque UIDs. A profile must exist before any project,
// like or comment can be attributed to a user; Ensure is the single,
// idempotent provisioning point and is invoked from the auth middleware.
package profiles

import (
	"context"
	"strings"
	"time"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
)

type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	AvatarURL   *string   `json:"avatar_url"`
	Bio         *string   `json:"bio"`
	Website     *string   `json:"website"`
	GithubURL   *string   `json:"github_url"`
	XURL        *string   `json:"x_url"`
	LinkedinURL *string   `json:"linkedin_url"`
	NoteURL     *string   `json:"note_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EnsureInput carries the identity-provider fields used to provision or
// refresh a minimal profile.
type EnsureInput struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
}

// Patch holds optional replacements for the profile's own fields.
// Nil means unchanged.
type Patch struct {
	FullName    *string `json:"full_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
	Website     *string `json:"website"`
	GithubURL   *string `json:"github_url"`
	XURL        *string `json:"x_url"`
	LinkedinURL *string `json:"linkedin_url"`
	NoteURL     *string `json:"note_url"`
}

type Store interface {
	// Ensure upserts a minimal profile for the given identity. Existing
	// profile fields are only filled in, never overwritten with blanks.
	Ensure(ctx context.Context, in EnsureInput) (*Profile, error)
	Get(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

func (in EnsureInput) validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return apperr.Validation("id", "identity is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return apperr.Validation("email", "email is required")
	}
	return nil
}

// Apply merges the patch into p and refreshes UpdatedAt.
func (p *Profile) Apply(patch Patch, now time.Time) {
	if patch.FullName != nil {
		p.FullName = nilIfEmpty(*patch.FullName)
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = nilIfEmpty(*patch.AvatarURL)
	}
	if patch.Bio != nil {
		p.Bio = nilIfEmpty(*patch.Bio)
	}
	if patch.Website != nil {
		p.Website = nilIfEmpty(*patch.Website)
	}
	if patch.GithubURL != nil {
		p.GithubURL = nilIfEmpty(*patch.GithubURL)
	}
	if patch.XURL != nil {
		p.XURL = nilIfEmpty(*patch.XURL)
	}
	if patch.LinkedinURL != nil {
		p.LinkedinURL = nilIfEmpty(*patch.LinkedinURL)
	}
	if patch.NoteURL != nil {
		p.NoteURL = nilIfEmpty(*patch.NoteURL)
	}
	p.UpdatedAt = now
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
