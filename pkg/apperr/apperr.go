// Package apperr carries status-coded errors from components to the HTTP
// boundary, where they render as a uniform {success:false, message} body.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// Abort writes err as the JSON error response and stops the handler
// chain. Anything that is not an *Error maps to a 500 with a generic
// message so store internals never leak to clients.
func Abort(c *gin.Context, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal("internal server error")
	}
	c.AbortWithStatusJSON(ae.Code, gin.H{"success": false, "message": ae.Message})
}
