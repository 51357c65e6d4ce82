package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userIDKey holds the authenticated user id in the gin context.
const userIDKey = "userId"

const (
	errMissingAuth  = "missing Authorization header"
	errAuthFormat   = "invalid Authorization header format"
	errInvalidToken = "invalid or expired token"
)

// userIdMiddleware guards the run history with a bearer token.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
		return
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthFormat})
		return
	}

	userID, err := h.services.ParseToken(strings.TrimSpace(token))
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_token_rejected", "path", c.FullPath(), "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// userIDFrom returns the id stored by userIdMiddleware, or 0.
func userIDFrom(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
