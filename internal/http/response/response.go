package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrongnotebook/notebook-backend/internal/platform/apierr"
)

// APIError is the body of every failed request. Message is stable and meant
// for clients to match on.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code, message string) {
	if message == "" {
		message = "unknown error"
	}
	c.AbortWithStatusJSON(status, APIError{Message: message, Code: code})
}

// RespondErr maps err through apierr; unclassified errors answer 500 with fallback.
func RespondErr(c *gin.Context, err error, fallback string) {
	ae := apierr.From(err, fallback)
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	RespondError(c, ae.Status, ae.Code, ae.Error())
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
