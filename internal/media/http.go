package media

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/appli-farm/applifarm-backend/internal/api/http"
	"github.com/appli-farm/applifarm-backend/internal/apperr"
	"github.com/appli-farm/applifarm-backend/internal/auth"
)

type Handler struct {
	presigner *Presigner
}

func Register(rg *gin.RouterGroup, presigner *Presigner) {
	h := &Handler{presigner: presigner}

	rg.POST("/upload-url", h.presignUpload)
}

type presignReq struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

func (h *Handler) presignUpload(c *gin.Context) {
	ownerID := auth.ProfileID(c)
	if ownerID == "" {
		apihttp.Error(c, apperr.ErrUnauthenticated)
		return
	}
	if h.presigner == nil {
		apihttp.Error(c, apperr.ErrUnavailable)
		return
	}

	var req presignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apihttp.BadRequest(c, "invalid body")
		return
	}

	up, err := h.presigner.PresignImageUpload(c.Request.Context(), ownerID, req.Filename, req.ContentType, req.SizeBytes)
	if err != nil {
		apihttp.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "upload": up})
}
