package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a use case error to its HTTP status.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	c.JSON(StatusFor(be.Kind), HTTPError{
		Code:    be.Code,
		Message: messageFor(be),
		Fields:  be.Fields,
	})
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation, KindBusiness:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindState:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

var codeMessages = map[string]string{
	"time_conflict": "The court is already booked for this time.",
	"email_taken":   "This email is already registered.",
}

func messageFor(be BusinessError) string {
	if msg, ok := codeMessages[be.Code]; ok {
		return msg
	}

	switch be.Kind {
	case KindValidation:
		return "Invalid data."
	case KindConflict:
		return "Conflicts with existing data."
	case KindNotFound:
		return "Resource not found."
	case KindState:
		return "Operation not allowed in the current state."
	case KindForbidden:
		return "Not allowed."
	}
	return "Request rejected."
}
