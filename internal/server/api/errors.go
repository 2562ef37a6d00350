package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shubham-musmade/interview-tracker/internal/common"
	"github.com/Shubham-musmade/interview-tracker/internal/server/notify"
)

// writeError maps service errors onto HTTP status codes. Unexpected errors
// are logged and reported without detail.
func (s *Server) writeError(c *gin.Context, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorValidation.Error(), "fields": ve.Fields})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, notify.ErrNoRecipient):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrSendFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send email"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSON decodes the request body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// roundParam parses the :round path segment.
func roundParam(c *gin.Context) (int, error) {
	n, err := strconv.Atoi(c.Param("round"))
	if err != nil || n <= 0 {
		return 0, common.NewValidationError("round", "must be a positive number")
	}
	return n, nil
}
