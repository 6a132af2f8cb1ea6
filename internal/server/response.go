package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// StandardResponse represents a standardized API response
type StandardResponse struct {
	Success       bool        `json:"success"`
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	Message       string      `json:"message,omitempty"`
	CorrelationID string      `json:"correlationId"`
	Timestamp     time.Time   `json:"timestamp"`
}

// ErrorInfo represents error information in responses
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, &StandardResponse{
		Success:       true,
		Data:          data,
		CorrelationID: correlationID(c),
		Timestamp:     time.Now(),
	})
}

func successMessage(c *gin.Context, status int, message string) {
	c.JSON(status, &StandardResponse{
		Success:       true,
		Message:       message,
		CorrelationID: correlationID(c),
		Timestamp:     time.Now(),
	})
}

func fail(c *gin.Context, status int, code, message, details string) {
	c.AbortWithStatusJSON(status, &StandardResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		CorrelationID: correlationID(c),
		Timestamp:     time.Now(),
	})
}
