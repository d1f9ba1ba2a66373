package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds shared across the reservation and settlement services. Handlers
// translate kinds into HTTP statuses at the boundary; services never write
// responses themselves.
const (
	KindNotFound        = "notFound"
	KindConflict        = "conflict"
	KindUnauthorized    = "unauthorized"
	KindInvalidInput    = "invalidInput"
	KindInvalidSig      = "invalidSignature"
	KindUpstreamPayment = "upstreamPaymentError"
	KindUpstream        = "upstreamError"
	KindInconsistency   = "settlementInconsistency"
)

// DomainError carries a stable error code alongside the message.
type DomainError struct {
	Kind    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewDomainError(kind, format string, args ...any) error {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error kind, or "" for plain errors.
func KindOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// HTTPStatus maps an error kind to the response status used at the boundary.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindInvalidSig:
		return http.StatusBadRequest
	case KindUpstreamPayment, KindUpstream:
		return http.StatusBadGateway
	case KindInconsistency:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONDomainError translates a service error into a client-facing response
// with its stable code.
func JSONDomainError(c *gin.Context, err error) {
	var de *DomainError
	if errors.As(err, &de) {
		c.JSON(HTTPStatus(err), ErrorResponse{Code: de.Kind, Message: de.Message})
		return
	}
	GetLogger().Error("unexpected error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
}
