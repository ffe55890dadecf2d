// Package response writes the JSON envelope shared by every HTTP endpoint.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageSuccess is the message of every 200 response.
const MessageSuccess = "Success"

// DefaultErrorMessage hides internal failures behind a generic message.
const DefaultErrorMessage = "Something went wrong"

// write sends body under status. Failures carry the status as their error code.
func write(c *gin.Context, status int, body Resp) {
	if status != http.StatusOK {
		body.ErrorCode = status
	}
	c.JSON(status, body)
}

// OK sends 200 with data.
func OK(c *gin.Context, data any) {
	write(c, http.StatusOK, Resp{Message: MessageSuccess, Data: data})
}

// Error sends 400 with the error message.
func Error(c *gin.Context, err error) {
	write(c, http.StatusBadRequest, Resp{Message: err.Error()})
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context) {
	write(c, http.StatusUnauthorized, Resp{Message: http.StatusText(http.StatusUnauthorized)})
}

// Conflict sends 409 with the error message.
func Conflict(c *gin.Context, err error) {
	write(c, http.StatusConflict, Resp{Message: err.Error()})
}

// InternalError sends 500 with a generic message; err goes in Errors and
// data, when non-nil, alongside it.
func InternalError(c *gin.Context, err error, data any) {
	write(c, http.StatusInternalServerError, Resp{
		Message: DefaultErrorMessage,
		Data:    data,
		Errors:  []string{err.Error()},
	})
}
