// Package load holds the raw schema metadata alchemy generates code from.
//
// A Schema is an immutable snapshot of what a database reflects: tables with
// their columns, constraints and indexes, in dependency order. Snapshots are
// produced by Inspect (live database) or ReadFile (a msgpack snapshot written
// by an earlier run) and consumed by the gen package.
package load

import (
	"cmp"
	"slices"

	"github.com/syssam/alchemy/schema/field"
)

// Constraint kinds as they are reported by the reflection source.
// Any other kind is carried verbatim and rejected by the code generator.
const (
	KindCheck      = "check"
	KindForeignKey = "foreign_key"
	KindPrimaryKey = "primary_key"
	KindUnique     = "unique"
)

// Schema is a reflected database schema.
type Schema struct {
	// Tables are sorted so that referenced tables come first.
	Tables []*Table `json:"tables,omitempty" msgpack:"tables,omitempty"`
}

// Table represents a reflected table.
type Table struct {
	Name string `json:"name" msgpack:"name"`
	// Schema is empty for tables of the default schema.
	Schema      string        `json:"schema,omitempty" msgpack:"schema,omitempty"`
	Comment     *string       `json:"comment,omitempty" msgpack:"comment,omitempty"`
	Columns     []*Column     `json:"columns,omitempty" msgpack:"columns,omitempty"`
	Constraints []*Constraint `json:"constraints,omitempty" msgpack:"constraints,omitempty"`
	Indexes     []*Index      `json:"indexes,omitempty" msgpack:"indexes,omitempty"`
}

// Column represents a reflected column.
type Column struct {
	Name     string          `json:"name" msgpack:"name"`
	Info     *field.TypeInfo `json:"type,omitempty" msgpack:"type,omitempty"`
	Nullable bool            `json:"nullable,omitempty" msgpack:"nullable,omitempty"`
	Comment  *string         `json:"comment,omitempty" msgpack:"comment,omitempty"`
	// Default and OnUpdate hold the raw server side SQL expressions.
	Default  *string `json:"default,omitempty" msgpack:"default,omitempty"`
	OnUpdate *string `json:"on_update,omitempty" msgpack:"on_update,omitempty"`
}

// Constraint represents a reflected table constraint.
type Constraint struct {
	Kind string `json:"kind" msgpack:"kind"`
	// Name is empty for unnamed constraints.
	Name    string   `json:"name,omitempty" msgpack:"name,omitempty"`
	Columns []string `json:"columns,omitempty" msgpack:"columns,omitempty"`
	// Expr is the predicate of check constraints.
	Expr string `json:"expr,omitempty" msgpack:"expr,omitempty"`
	// Foreign-key only.
	RefSchema  string   `json:"ref_schema,omitempty" msgpack:"ref_schema,omitempty"`
	RefTable   string   `json:"ref_table,omitempty" msgpack:"ref_table,omitempty"`
	RefColumns []string `json:"ref_columns,omitempty" msgpack:"ref_columns,omitempty"`
	OnDelete   string   `json:"on_delete,omitempty" msgpack:"on_delete,omitempty"`
	OnUpdate   string   `json:"on_update,omitempty" msgpack:"on_update,omitempty"`
}

// Index represents a reflected index.
type Index struct {
	Name   string       `json:"name" msgpack:"name"`
	Unique bool         `json:"unique,omitempty" msgpack:"unique,omitempty"`
	Parts  []*IndexPart `json:"parts,omitempty" msgpack:"parts,omitempty"`
}

// IndexPart is either a column reference or an expression.
type IndexPart struct {
	Column string `json:"column,omitempty" msgpack:"column,omitempty"`
	Expr   string `json:"expr,omitempty" msgpack:"expr,omitempty"`
}

// Table returns the table with the given name, or nil.
func (s *Schema) Table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ForeignKeys returns the foreign-key constraints of the table.
func (t *Table) ForeignKeys() []*Constraint {
	var fks []*Constraint
	for _, c := range t.Constraints {
		if c.Kind == KindForeignKey {
			fks = append(fks, c)
		}
	}
	return fks
}

// Sort orders tables so that every table comes after the tables it
// references. Ties are broken by name, self references are ignored and
// tables taking part in a reference cycle are appended in name order.
func Sort(tables []*Table) []*Table {
	sorted := slices.Clone(tables)
	slices.SortStableFunc(sorted, func(a, b *Table) int {
		return cmp.Compare(a.Name, b.Name)
	})
	var (
		names = make(map[string]bool, len(sorted))
		deps  = make(map[string]map[string]bool, len(sorted))
	)
	for _, t := range sorted {
		names[t.Name] = true
	}
	for _, t := range sorted {
		deps[t.Name] = make(map[string]bool)
		for _, fk := range t.ForeignKeys() {
			if fk.RefTable != t.Name && names[fk.RefTable] {
				deps[t.Name][fk.RefTable] = true
			}
		}
	}
	var (
		out  = make([]*Table, 0, len(sorted))
		done = make(map[string]bool, len(sorted))
	)
	for len(out) < len(sorted) {
		progress := false
		for _, t := range sorted {
			if done[t.Name] || !ready(deps[t.Name], done) {
				continue
			}
			done[t.Name] = true
			out = append(out, t)
			progress = true
		}
		if !progress {
			// A cycle. Release the first pending table in name order.
			for _, t := range sorted {
				if !done[t.Name] {
					done[t.Name] = true
					out = append(out, t)
					break
				}
			}
		}
	}
	return out
}

func ready(deps, done map[string]bool) bool {
	for d := range deps {
		if !done[d] {
			return false
		}
	}
	return true
}
