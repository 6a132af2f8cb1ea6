package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tordrt/schemamap/internal/formatter"
	"github.com/tordrt/schemamap/internal/schema"
	"github.com/tordrt/schemamap/internal/store"
)

// DiagnosticsHeader carries the number of parse diagnostics on export responses
const DiagnosticsHeader = "X-Schemamap-Diagnostics"

// DiagramStore persists saved diagrams
type DiagramStore interface {
	Save(ctx context.Context, d *store.Diagram) error
	Get(ctx context.Context, id string) (*store.Diagram, error)
	List(ctx context.Context) ([]store.Diagram, error)
	Delete(ctx context.Context, id string) error
}

// ParseRequest is the body of the parse and export endpoints
type ParseRequest struct {
	SQL string `json:"sql"`
}

// DiagramRequest is the body of the diagram create and update endpoints
type DiagramRequest struct {
	Name          string          `json:"name" binding:"required"`
	SQL           string          `json:"sql"`
	NodePositions store.Positions `json:"nodePositions"`
}

// Health handles GET /health
func (s *Server) Health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"status": "ok"})
}

// Parse handles POST /api/v1/parse
func (s *Server) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	result := s.parse(c, req.SQL)
	success(c, http.StatusOK, result)
}

// Export handles POST /api/v1/export/:format
func (s *Server) Export(c *gin.Context) {
	format := c.Param("format")

	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	var buf bytes.Buffer
	f, err := formatter.New(format, &buf)
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeUnsupportedFormat, "Unsupported export format", err.Error())
		return
	}

	result := s.parse(c, req.SQL)
	if err := f.Format(&result); err != nil {
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternalError, "Failed to render export", "")
		return
	}

	c.Header(DiagnosticsHeader, strconv.Itoa(len(result.Errors)))
	c.Data(http.StatusOK, formatter.ContentType(format), buf.Bytes())
}

func (s *Server) parse(c *gin.Context, sql string) schema.ParseResult {
	start := time.Now()
	result := s.parser.Parse(sql)
	s.metrics.ObserveParse(result, time.Since(start))

	log.WithFields(log.Fields{
		"tables":         len(result.Tables),
		"relationships":  len(result.Relationships),
		"diagnostics":    len(result.Errors),
		"correlation_id": correlationID(c),
	}).Debug("parsed DDL")
	return result
}

// ListDiagrams handles GET /api/v1/diagrams
func (s *Server) ListDiagrams(c *gin.Context) {
	diagrams, err := s.store.List(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, http.StatusOK, diagrams)
}

// CreateDiagram handles POST /api/v1/diagrams
func (s *Server) CreateDiagram(c *gin.Context) {
	var req DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	d := &store.Diagram{Name: req.Name, SQL: req.SQL, NodePositions: req.NodePositions}
	if err := s.store.Save(c.Request.Context(), d); err != nil {
		s.storeError(c, err)
		return
	}
	success(c, http.StatusCreated, d)
}

// GetDiagram handles GET /api/v1/diagrams/:id
func (s *Server) GetDiagram(c *gin.Context) {
	d, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	success(c, http.StatusOK, d)
}

// UpdateDiagram handles PUT /api/v1/diagrams/:id. Saving to an unknown ID
// creates the diagram under that ID.
func (s *Server) UpdateDiagram(c *gin.Context) {
	var req DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, "Invalid request body", err.Error())
		return
	}

	d := &store.Diagram{ID: c.Param("id"), Name: req.Name, SQL: req.SQL, NodePositions: req.NodePositions}
	if err := s.store.Save(c.Request.Context(), d); err != nil {
		s.storeError(c, err)
		return
	}
	success(c, http.StatusOK, d)
}

// DeleteDiagram handles DELETE /api/v1/diagrams/:id
func (s *Server) DeleteDiagram(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.storeError(c, err)
		return
	}
	successMessage(c, http.StatusOK, "Diagram deleted")
}

func (s *Server) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrDiagramNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Diagram not found", "")
	case errors.Is(err, store.ErrInvalidDiagram):
		fail(c, http.StatusBadRequest, ErrCodeValidationFailed, err.Error(), "")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternalError, "An internal error occurred", "")
	}
}
