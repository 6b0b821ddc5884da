// Package domain defines the project model shared across the store, service
// and HTTP layers.
package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/appli-farm/applifarm-backend/internal/apperr"
)

const (
	TitleMax       = 80
	DescriptionMax = 2000
)

// Project is one published work: a link to something a user built, plus the
// taxonomy metadata the community filters on. LikesCount is a denormalized
// cache of the like relations pointing at this project; only the engagement
// store's toggle path and the reconciliation job may write it.
type Project struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	URL             string    `json:"url"`
	ImageURL        *string   `json:"image_url"`
	Categories      []string  `json:"categories"`
	Tags            []string  `json:"tags"`
	AITools         []string  `json:"ai_tools,omitempty"`
	BackendServices []string  `json:"backend_services,omitempty"`
	FrontendTools   []string  `json:"frontend_tools,omitempty"`
	LikesCount      int       `json:"likes_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Draft is the validated input for creating a project.
type Draft struct {
	Title           string
	Description     string
	URL             string
	ImageURL        *string
	Categories      []string
	Tags            []string
	AITools         []string
	BackendServices []string
	FrontendTools   []string
}

// Patch holds optional replacements for a project's own fields. Nil pointer
// or nil slice means unchanged; RemoveImage clears the image reference.
type Patch struct {
	Title           *string
	Description     *string
	URL             *string
	ImageURL        *string
	RemoveImage     bool
	Categories      []string
	Tags            []string
	AITools         []string
	BackendServices []string
	FrontendTools   []string
}

// Filter restricts a project search. Zero values mean "no restriction".
type Filter struct {
	// Category must be contained in the project's category set (exact match).
	Category string
	// Text matches title or description case-insensitively as a substring.
	Text string
}

func (d *Draft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.URL = strings.TrimSpace(d.URL)

	if err := validateTitle(d.Title); err != nil {
		return err
	}
	if err := validateDescription(d.Description); err != nil {
		return err
	}
	if err := validateURL(d.URL); err != nil {
		return err
	}
	if err := validateCategories(d.Categories); err != nil {
		return err
	}
	return nil
}

// Apply merges the patch into p after validating it, refreshing UpdatedAt.
func (p *Project) Apply(patch Patch, now time.Time) error {
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if err := validateTitle(t); err != nil {
			return err
		}
		p.Title = t
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		if err := validateDescription(d); err != nil {
			return err
		}
		p.Description = d
	}
	if patch.URL != nil {
		u := strings.TrimSpace(*patch.URL)
		if err := validateURL(u); err != nil {
			return err
		}
		p.URL = u
	}
	if patch.Categories != nil {
		if err := validateCategories(patch.Categories); err != nil {
			return err
		}
		p.Categories = patch.Categories
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	if patch.AITools != nil {
		p.AITools = patch.AITools
	}
	if patch.BackendServices != nil {
		p.BackendServices = patch.BackendServices
	}
	if patch.FrontendTools != nil {
		p.FrontendTools = patch.FrontendTools
	}
	if patch.RemoveImage {
		p.ImageURL = nil
	} else if patch.ImageURL != nil {
		img := strings.TrimSpace(*patch.ImageURL)
		if img == "" {
			p.ImageURL = nil
		} else {
			p.ImageURL = &img
		}
	}

	p.UpdatedAt = now
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperr.Validation("title", "title is required")
	}
	if utf8.RuneCountInString(title) > TitleMax {
		return apperr.Validation("title", "title must be at most 80 characters")
	}
	return nil
}

func validateDescription(desc string) error {
	if desc == "" {
		return apperr.Validation("description", "description is required")
	}
	if utf8.RuneCountInString(desc) > DescriptionMax {
		return apperr.Validation("description", "description must be at most 2000 characters")
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return apperr.Validation("url", "url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return apperr.Validation("url", "url must be a well-formed absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperr.Validation("url", "url must use http or https")
	}
	return nil
}

func validateCategories(cats []string) error {
	if len(cats) == 0 {
		return apperr.Validation("categories", "at least one category is required")
	}
	for _, cat := range cats {
		if strings.TrimSpace(cat) == "" {
			return apperr.Validation("categories", "categories must not be blank")
		}
	}
	return nil
}
