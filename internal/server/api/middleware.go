package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/server/auth"
)

const userIDKey = "userID"

// accessTokenMiddleware rejects requests without a valid bearer token and
// stores the token's user id on the context.
func (s *Server) accessTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		accessToken, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(accessToken) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(accessToken), s.jwtSecret)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// idParamMiddleware answers 404 for an ":id" path segment that is not a
// UUID; no such record can exist.
func idParamMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := c.Params.Get("id"); ok && uuid.Validate(id) != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request completed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
