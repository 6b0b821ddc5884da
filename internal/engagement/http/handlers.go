// Package http exposes likes and comments over gin.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/appli-farm/applifarm-backend/internal/api/http"
	"github.com/appli-farm/applifarm-backend/internal/auth"
	"github.com/appli-farm/applifarm-backend/internal/engagement/service"
)

type Handler struct {
	svc *service.EngagementService
}

// Register mounts the like and comment routes. Likes and comment listings
// hang off the project they belong to; comment deletion addresses the
// comment directly.
func Register(projects, comments *gin.RouterGroup, svc *service.EngagementService) {
	h := &Handler{svc: svc}

	projects.POST("/:id/like", h.toggleLike)
	projects.GET("/:id/like", h.likeStatus)
	projects.POST("/:id/comments", h.addComment)
	projects.GET("/:id/comments", h.listComments)
	comments.DELETE("/:comment_id", h.deleteComment)
}

func (h *Handler) toggleLike(c *gin.Context) {
	state, err := h.svc.ToggleLike(c.Request.Context(), auth.ProfileID(c), c.Param("id"))
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "liked": state.Liked, "likes_count": state.LikesCount})
}

func (h *Handler) likeStatus(c *gin.Context) {
	liked, err := h.svc.HasLiked(c.Request.Context(), auth.ProfileID(c), c.Param("id"))
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "liked": liked})
}

type commentReq struct {
	Content string `json:"content"`
}

func (h *Handler) addComment(c *gin.Context) {
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.BadRequest(c, "invalid body")
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), auth.ProfileID(c), c.Param("id"), req.Content)
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "comment": comment})
}

func (h *Handler) listComments(c *gin.Context) {
	comments, err := h.svc.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "comments": comments})
}

func (h *Handler) deleteComment(c *gin.Context) {
	if err := h.svc.DeleteComment(c.Request.Context(), c.Param("comment_id"), auth.ProfileID(c)); err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
