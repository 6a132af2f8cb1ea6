package schema

// Constraint labels recorded on columns, in the order they are emitted
const (
	ConstraintPrimaryKey    = "PRIMARY KEY"
	ConstraintUnique        = "UNIQUE"
	ConstraintAutoIncrement = "AUTO_INCREMENT"
	ConstraintNotNull       = "NOT NULL"
)

// ParseResult is the complete output of parsing a piece of DDL text
type ParseResult struct {
	Tables        []Table        `json:"tables"`
	Relationships []Relationship `json:"relationships"`
	Errors        []string       `json:"errors"`
}

// Table represents a database table
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Indexes []Index  `json:"indexes,omitempty"`
}

// Column represents a table column
type Column struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Nullable     bool       `json:"nullable"`
	DefaultValue *string    `json:"defaultValue"`
	IsPrimaryKey bool       `json:"isPrimaryKey"`
	IsForeignKey bool       `json:"isForeignKey"`
	References   *Reference `json:"references,omitempty"`
	Constraints  []string   `json:"constraints"`
}

// Reference is the target of a foreign key
type Reference struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// Relationship represents a foreign key edge between two tables
type Relationship struct {
	FromTable  string `json:"fromTable"`
	FromColumn string `json:"fromColumn"`
	ToTable    string `json:"toTable"`
	ToColumn   string `json:"toColumn"`
	OnDelete   string `json:"onDelete,omitempty"`
	OnUpdate   string `json:"onUpdate,omitempty"`
}

// Index represents a table-level UNIQUE, INDEX or KEY clause
type Index struct {
	Name     string   `json:"name,omitempty"`
	Columns  []string `json:"columns"`
	IsUnique bool     `json:"isUnique"`
}

// Table returns the table with the given name
func (r *ParseResult) Table(name string) (*Table, bool) {
	for i := range r.Tables {
		if r.Tables[i].Name == name {
			return &r.Tables[i], true
		}
	}
	return nil, false
}

// RelationshipsFrom returns the relationships declared by the given table
func (r *ParseResult) RelationshipsFrom(table string) []Relationship {
	var rels []Relationship
	for _, rel := range r.Relationships {
		if rel.FromTable == table {
			rels = append(rels, rel)
		}
	}
	return rels
}

// RelationshipsTo returns the relationships pointing at the given table
func (r *ParseResult) RelationshipsTo(table string) []Relationship {
	var rels []Relationship
	for _, rel := range r.Relationships {
		if rel.ToTable == table {
			rels = append(rels, rel)
		}
	}
	return rels
}

// Column returns the column with the given name
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// PrimaryKey returns the names of the primary key columns in declaration order
func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, col := range t.Columns {
		if col.IsPrimaryKey {
			pk = append(pk, col.Name)
		}
	}
	return pk
}

// HasConstraint reports whether the column carries the given constraint label
func (c *Column) HasConstraint(label string) bool {
	for _, existing := range c.Constraints {
		if existing == label {
			return true
		}
	}
	return false
}
