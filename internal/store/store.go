// Package store persists saved diagrams in a SQLite database through GORM
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tordrt/schemamap/internal/ddl"
)

var (
	ErrDiagramNotFound = errors.New("diagram not found")
	ErrInvalidDiagram  = errors.New("diagram name is required")
)

// Store is the diagram repository
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path and migrates it
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open diagram store: %w", err)
	}
	return New(db)
}

// New wraps an existing connection and migrates the diagram table
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Diagram{}); err != nil {
		return nil, fmt.Errorf("failed to migrate diagram store: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save inserts or replaces a diagram. An empty ID gets a new UUID. The table
// count is recomputed from the SQL and DateSaved is set to the current time.
func (s *Store) Save(ctx context.Context, d *Diagram) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return ErrInvalidDiagram
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	d.TableCount = len(ddl.Parse(d.SQL).Tables)
	d.DateSaved = s.now().UTC()

	if err := s.db.WithContext(ctx).Save(d).Error; err != nil {
		return fmt.Errorf("failed to save diagram: %w", err)
	}

	log.WithFields(log.Fields{"id": d.ID, "tables": d.TableCount}).Debug("saved diagram")
	return nil
}

// Get retrieves a diagram by ID
func (s *Store) Get(ctx context.Context, id string) (*Diagram, error) {
	var d Diagram
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&d)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrDiagramNotFound
		}
		return nil, fmt.Errorf("failed to get diagram: %w", result.Error)
	}
	return &d, nil
}

// List returns every diagram, most recently saved first
func (s *Store) List(ctx context.Context) ([]Diagram, error) {
	diagrams := []Diagram{}
	if err := s.db.WithContext(ctx).Order("date_saved DESC").Find(&diagrams).Error; err != nil {
		return nil, fmt.Errorf("failed to list diagrams: %w", err)
	}
	return diagrams, nil
}

// Delete removes a diagram by ID
func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Diagram{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete diagram: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDiagramNotFound
	}
	return nil
}
