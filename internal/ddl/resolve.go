package ddl

import "github.com/tordrt/schemamap/internal/schema"

// resolve applies the primary key set and the pending foreign keys to the
// collected columns and returns the table with its relationships. Every
// declaration yields a relationship, even when its column was never defined.
func (b *tableBuilder) resolve() (schema.Table, []schema.Relationship) {
	pk := make(map[string]bool, len(b.primaryKey))
	for _, name := range b.primaryKey {
		pk[name] = true
	}

	for i := range b.columns {
		col := &b.columns[i]
		if !pk[col.Name] {
			continue
		}
		col.IsPrimaryKey = true
		if !col.HasConstraint(schema.ConstraintPrimaryKey) {
			// PRIMARY KEY is always the first label
			col.Constraints = append([]string{schema.ConstraintPrimaryKey}, col.Constraints...)
		}
	}

	rels := []schema.Relationship{}
	for _, fk := range b.foreignKeys {
		n := min(len(fk.columns), len(fk.refColumns))
		for i := 0; i < n; i++ {
			from, to := fk.columns[i], fk.refColumns[i]
			if col, ok := findColumn(b.columns, from); ok {
				col.IsForeignKey = true
				col.References = &schema.Reference{Table: fk.refTable, Column: to}
			}
			rels = append(rels, schema.Relationship{
				FromTable:  b.name,
				FromColumn: from,
				ToTable:    fk.refTable,
				ToColumn:   to,
				OnDelete:   fk.onDelete,
				OnUpdate:   fk.onUpdate,
			})
		}
	}

	table := schema.Table{Name: b.name, Columns: b.columns}
	if len(b.indexes) > 0 {
		table.Indexes = b.indexes
	}
	return table, rels
}

func findColumn(cols []schema.Column, name string) (*schema.Column, bool) {
	for i := range cols {
		if cols[i].Name == name {
			return &cols[i], true
		}
	}
	return nil, false
}
