package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials", nil)
	ErrTokenExpired       = New(http.StatusUnauthorized, "Token expired", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid token", nil)
)

// Business logic error types
var (
	ErrValidation       = New(http.StatusBadRequest, "Validation error", nil)
	ErrPersistence      = New(http.StatusInternalServerError, "Persistence error", nil)
	ErrUnverifiedEvent  = New(http.StatusBadRequest, "Unverified event", nil)
	ErrCheckoutRejected = New(http.StatusUnprocessableEntity, "Checkout rejected", nil)
)

// Respond writes an error as a structured JSON response and aborts the request.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if e, ok := err.(*Error); ok {
		appErr = e
	} else {
		appErr = New(http.StatusInternalServerError, "Internal server error", err)
	}
	c.AbortWithStatusJSON(appErr.Code, appErr)
}
