package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"filmorate/internal/domain/shared"
	"filmorate/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// respondError maps domain error kinds onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case shared.IsValidation(err):
		resp := ErrorResponse{Error: err.Error()}
		var vErr *shared.ValidationError
		if errors.As(err, &vErr) && len(vErr.Violations) > 0 {
			resp.Details = vErr.Violations
		}
		c.JSON(http.StatusBadRequest, resp)
	case shared.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Unexpected error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// pathID parses an integer path parameter, answering 400 when it is malformed
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid " + name + " format: " + raw,
		})
		return 0, false
	}
	return id, true
}

func invalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request format",
		Details: err.Error(),
	})
}
