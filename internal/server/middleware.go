package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	CorrelationIDHeader = "X-Correlation-ID"
	correlationIDKey    = "correlation_id"
)

type contextKey string

// CorrelationIDKey is the request context key holding the correlation ID
const CorrelationIDKey contextKey = correlationIDKey

// CorrelationID propagates the X-Correlation-ID header, generating one when absent
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(CorrelationIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(correlationIDKey, id)
		c.Header(CorrelationIDHeader, id)

		ctx := context.WithValue(c.Request.Context(), CorrelationIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func correlationID(c *gin.Context) string {
	return c.GetString(correlationIDKey)
}

// RequestLogger logs one line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":         c.Request.Method,
			"path":           c.Request.URL.Path,
			"status":         c.Writer.Status(),
			"latency":        time.Since(start).String(),
			"correlation_id": correlationID(c),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// Recovery turns a panic into an INTERNAL_ERROR response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(log.Fields{
			"panic":          recovered,
			"correlation_id": correlationID(c),
		}).Error("recovered from panic")
		fail(c, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", "")
	})
}

// LimitBody caps the size of request bodies
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
