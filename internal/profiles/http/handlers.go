// Package http exposes the caller's own profile and the public profile
// pages over gin.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apihttp "github.com/appli-farm/applifarm-backend/internal/api/http"
	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/auth"
	"github.com/appli-farm/applifarm-backend/internal/profiles"
	projdomain "github.com/appli-farm/applifarm-backend/internal/projects/domain"
)

// ProjectLister is the slice of the project service the public profile
// page needs.
type ProjectLister interface {
	ListByOwner(ctx context.Context, ownerID string) ([]projdomain.Project, error)
}

type Handler struct {
	store    profiles.Store
	projects ProjectLister
}

func Register(me, public *gin.RouterGroup, store profiles.Store, projects ProjectLister) {
	h := &Handler{store: store, projects: projects}

	me.GET("", h.getOwn)
	me.PATCH("", h.updateOwn)
	public.GET("/:id", h.getPublic)
}

func (h *Handler) getOwn(c *gin.Context) {
	id := auth.ProfileID(c)
	if id == "" {
		apihttp.Error(c, apperr.ErrUnauthenticated)
		return
	}

	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) updateOwn(c *gin.Context) {
	id := auth.ProfileID(c)
	if id == "" {
		apihttp.Error(c, apperr.ErrUnauthenticated)
		return
	}

	var patch profiles.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apihttp.BadRequest(c, "invalid body")
		return
	}

	p, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		apihttp.Error(c, err)
		return
	}
	p.Apply(patch, time.Now())
	if err := h.store.Update(c.Request.Context(), p); err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

// publicProfile is the profile as other users see it. No email.
type publicProfile struct {
	ID          string  `json:"id"`
	FullName    *string `json:"full_name"`
	AvatarURL   *string `json:"avatar_url"`
	Bio         *string `json:"bio"`
	Website     *string `json:"website"`
	GithubURL   *string `json:"github_url"`
	XURL        *string `json:"x_url"`
	LinkedinURL *string `json:"linkedin_url"`
	NoteURL     *string `json:"note_url"`
}

func (h *Handler) getPublic(c *gin.Context) {
	p, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	items, err := h.projects.ListByOwner(c.Request.Context(), p.ID)
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"profile": publicProfile{
			ID:          p.ID,
			FullName:    p.FullName,
			AvatarURL:   p.AvatarURL,
			Bio:         p.Bio,
			Website:     p.Website,
			GithubURL:   p.GithubURL,
			XURL:        p.XURL,
			LinkedinURL: p.LinkedinURL,
			NoteURL:     p.NoteURL,
		},
		"projects": items,
	})
}
