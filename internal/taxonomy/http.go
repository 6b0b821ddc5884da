package taxonomy

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register attaches the vocabulary endpoint to the given router group.
func Register(rg *gin.RouterGroup) {
	rg.GET("/taxonomy", getTaxonomy)
}

func getTaxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"category_groups": CategoryGroups(),
		"tag_groups":      TagGroups(),
		"ai_tools":        AITools(),
	})
}
