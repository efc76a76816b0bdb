// Package handlers implements the versioned REST API: anonymous sessions,
// document uploads, the analysis pipeline surface, and the data-portability
// endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an application error onto its HTTP status. Server-side
// failures are masked; their detail belongs in the logs, not the browser.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	message := err.Error()
	if ae, ok := errors.AsAppError(err); ok {
		message = ae.Message
	}
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:    code.String(),
		Message: message,
	})
}

// sessionID pulls the session ID path parameter. IDs are opaque; a malformed
// one simply never matches a session.
func sessionID(c *gin.Context) common.ID {
	return common.ID(c.Param("sessionID"))
}
