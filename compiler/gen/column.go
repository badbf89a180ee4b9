package gen

import (
	"strings"

	"github.com/syssam/alchemy/compiler/load"
	"github.com/syssam/alchemy/internal/pyfmt"
	"github.com/syssam/alchemy/schema/field"
)

// Column is the intermediate representation of a table column.
// Two columns are the same column iff their Fullname is equal.
type Column struct {
	def   *load.Column
	table *Table

	// Name of the column in the database and of the generated attribute.
	Name string
	// Type is the generic type of the column.
	Type *field.TypeInfo
	// Nullable reports whether the column accepts NULL.
	Nullable bool
	// Comment, ServerDefault and ServerOnUpdate hold the rendered Python
	// literals, or the empty string when absent.
	Comment        string
	ServerDefault  string
	ServerOnUpdate string
}

func newColumn(def *load.Column, t *Table) *Column {
	return &Column{def: def, table: t, Name: def.Name}
}

func (c *Column) computeProperties() {
	c.Type = c.def.Info
	if c.Type == nil {
		c.Type = &field.TypeInfo{Type: field.TypeNull}
	}
	c.Nullable = c.def.Nullable
	if c.def.Comment != nil {
		c.Comment = pyfmt.Quote(*c.def.Comment)
	}
	if c.def.Default != nil {
		c.ServerDefault = pyfmt.Repr(*c.def.Default)
	}
	if c.def.OnUpdate != nil {
		c.ServerOnUpdate = pyfmt.Repr(*c.def.OnUpdate)
	}
}

// String implements the fmt.Stringer interface.
func (c *Column) String() string { return "<Column " + pyfmt.Quote(c.Fullname()) + ">" }

// Table returns the table the column belongs to.
func (c *Column) Table() *Table { return c.table }

// TypeName returns the class name of the column type.
func (c *Column) TypeName() string { return c.Type.Type.Name() }

// Fullname returns the "table.column" identity of the column.
func (c *Column) Fullname() string { return c.table.Name + "." + c.Name }

// TargetName returns the name foreign keys use to reference the column,
// qualified with the table schema when there is one.
func (c *Column) TargetName() string {
	if c.table.Schema != "" {
		return c.table.Schema + "." + c.Fullname()
	}
	return c.Fullname()
}

// ClassPropertyName returns the attribute path of the column on its class.
func (c *Column) ClassPropertyName() string { return c.table.ClassName + "." + c.Name }

// ImplicitPrimaryKey reports whether the column was promoted to a primary
// key because its table lacks an explicit one.
func (c *Column) ImplicitPrimaryKey() bool { return c.table.keys.implicit(c) }

// Codegen renders the column declaration. The primary-key marker is added
// when trySetPrimaryKey is set and the column is not nullable.
func (c *Column) Codegen(trySetPrimaryKey bool) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" = Column(")
	b.WriteString(pyfmt.Quote(c.Name))
	b.WriteString(", ")
	b.WriteString(c.Type.String())
	b.WriteString(", nullable=")
	b.WriteString(pyfmt.Bool(c.Nullable))
	for _, attr := range []struct{ name, value string }{
		{"primary_key", primaryKeyMarker(trySetPrimaryKey && !c.Nullable)},
		{"comment", c.Comment},
		{"server_default", c.ServerDefault},
		{"server_onupdate", c.ServerOnUpdate},
	} {
		if attr.value != "" {
			b.WriteString(", ")
			b.WriteString(attr.name)
			b.WriteString("=")
			b.WriteString(attr.value)
		}
	}
	b.WriteString(")")
	return b.String()
}

func primaryKeyMarker(set bool) string {
	if set {
		return pyfmt.Bool(true)
	}
	return ""
}
