package middleware

import (
	"errors"
	"net/http"

	"go-nest-backend/internal/delivery/http/response"
	"go-nest-backend/pkg/apperror"
	"go-nest-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors appended to the gin context into the
// standard response envelope. Internal errors are logged server-side and
// never leak details to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				reqID, _ := c.Get("RequestID")
				logger.Log.Error("request failed",
					"path", c.FullPath(), "request_id", reqID, "error", err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		reqID, _ := c.Get("RequestID")
		logger.Log.Error("unhandled error",
			"path", c.FullPath(), "request_id", reqID, "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
