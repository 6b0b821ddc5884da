package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxProfileID   = "profile_id"
	CtxEmail       = "email"
	CtxDisplayName = "display_name"
	CtxPhotoURL    = "photo_url"
)

// ProfileID returns the caller's profile id, or "" for anonymous requests.
// Set by WithProfile.
func ProfileID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxProfileID))
}

// FirebaseUID returns the verified Firebase UID, or "" for anonymous
// requests. Set by Identity.
func FirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}
