// Package http exposes the project catalog over gin.
package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/appli-farm/applifarm-backend/internal/api/http"
	"github.com/appli-farm/applifarm-backend/internal/auth"
	"github.com/appli-farm/applifarm-backend/internal/projects/domain"
	"github.com/appli-farm/applifarm-backend/internal/projects/service"
)

// LikeChecker reports whether a user has liked a project. Satisfied by the
// engagement service; nil means the detail view omits per-user like state.
type LikeChecker interface {
	HasLiked(ctx context.Context, userID, projectID string) (bool, error)
}

type Handler struct {
	svc   *service.ProjectService
	likes LikeChecker
}

func Register(rg *gin.RouterGroup, svc *service.ProjectService, likes LikeChecker) {
	h := &Handler{svc: svc, likes: likes}

	rg.POST("", h.create)
	rg.GET("", h.search)
	rg.GET("/facets", h.facets)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

type createReq struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	URL             string   `json:"url"`
	ImageURL        *string  `json:"image_url"`
	Categories      []string `json:"categories"`
	Tags            []string `json:"tags"`
	AITools         []string `json:"ai_tools"`
	BackendServices []string `json:"backend_services"`
	FrontendTools   []string `json:"frontend_tools"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.BadRequest(c, "invalid body")
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.ProfileID(c), domain.Draft{
		Title:           req.Title,
		Description:     req.Description,
		URL:             req.URL,
		ImageURL:        req.ImageURL,
		Categories:      req.Categories,
		Tags:            req.Tags,
		AITools:         req.AITools,
		BackendServices: req.BackendServices,
		FrontendTools:   req.FrontendTools,
	})
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) search(c *gin.Context) {
	f := domain.Filter{
		Category: c.Query("category"),
		Text:     c.Query("search"),
	}

	items, err := h.svc.Search(c.Request.Context(), f)
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) facets(c *gin.Context) {
	facets, err := h.svc.CategoryFacets(c.Request.Context())
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "categories": facets})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	liked := false
	if uid := auth.ProfileID(c); uid != "" && h.likes != nil {
		if liked, err = h.likes.HasLiked(c.Request.Context(), uid, p.ID); err != nil {
			apihttp.Error(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p, "liked": liked})
}

type patchReq struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	URL             *string  `json:"url"`
	ImageURL        *string  `json:"image_url"`
	RemoveImage     bool     `json:"remove_image"`
	Categories      []string `json:"categories"`
	Tags            []string `json:"tags"`
	AITools         []string `json:"ai_tools"`
	BackendServices []string `json:"backend_services"`
	FrontendTools   []string `json:"frontend_tools"`
}

func (h *Handler) update(c *gin.Context) {
	var req patchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.BadRequest(c, "invalid body")
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), auth.ProfileID(c), domain.Patch{
		Title:           req.Title,
		Description:     req.Description,
		URL:             req.URL,
		ImageURL:        req.ImageURL,
		RemoveImage:     req.RemoveImage,
		Categories:      req.Categories,
		Tags:            req.Tags,
		AITools:         req.AITools,
		BackendServices: req.BackendServices,
		FrontendTools:   req.FrontendTools,
	})
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), auth.ProfileID(c)); err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
