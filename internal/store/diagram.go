package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Position is the canvas location of a table node
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps table names to node positions. It is stored as a JSON column.
type Positions map[string]Position

// Diagram is a saved DDL document with its layout
type Diagram struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	SQL           string    `gorm:"type:text" json:"sql"`
	TableCount    int       `json:"tableCount"`
	DateSaved     time.Time `gorm:"index" json:"dateSaved"`
	NodePositions Positions `gorm:"type:text" json:"nodePositions,omitempty"`
}

// Value implements driver.Valuer interface for GORM
func (p Positions) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner interface for GORM
func (p *Positions) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported positions value %T", value)
	}

	return json.Unmarshal(bytes, p)
}
