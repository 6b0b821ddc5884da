package auth

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/appli-farm/applifarm-backend/internal/profiles"
)

// Identity resolves the caller's identity from a Firebase ID token. The
// token is optional: anonymous requests pass through with no identity in
// context, and the per-operation auth checks live in the services. A token
// that is present but invalid is rejected here.
func Identity(authClient *auth.Client) gin.HandlerFunc {
	if authClient == nil {
		return devIdentity()
	}

	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxFirebaseUID, decoded.UID)
		if email, ok := decoded.Claims["email"].(string); ok {
			c.Set(CtxEmail, email)
		}
		if name, ok := decoded.Claims["name"].(string); ok {
			c.Set(CtxDisplayName, name)
		}
		if picture, ok := decoded.Claims["picture"].(string); ok {
			c.Set(CtxPhotoURL, picture)
		}

		c.Next()
	}
}

// devIdentity reads the identity from plain headers instead of a token.
// Used ONLY when Firebase is disabled, for local development and tests.
func devIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			c.Next()
			return
		}

		c.Set(CtxFirebaseUID, uid)
		email := strings.TrimSpace(c.GetHeader("X-User-Email"))
		if email == "" {
			email = uid + "@dev.local"
		}
		c.Set(CtxEmail, email)
		if name := strings.TrimSpace(c.GetHeader("X-User-Name")); name != "" {
			c.Set(CtxDisplayName, name)
		}
		if photo := strings.TrimSpace(c.GetHeader("X-User-Photo")); photo != "" {
			c.Set(CtxPhotoURL, photo)
		}

		c.Next()
	}
}

// WithProfile upserts a profile row for the authenticated caller and puts
// the profile id in context. Anonymous requests pass through untouched.
func WithProfile(store profiles.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := FirebaseUID(c)
		if uid == "" {
			c.Next()
			return
		}

		p, err := store.Ensure(c.Request.Context(), profiles.EnsureInput{
			ID:        uid,
			Email:     c.GetString(CtxEmail),
			FullName:  c.GetString(CtxDisplayName),
			AvatarURL: c.GetString(CtxPhotoURL),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure profile: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxProfileID, p.ID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
