package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/alchemy/compiler/load"
	"github.com/syssam/alchemy/internal/pyfmt"
)

// ConstraintKind is the closed set of constraint kinds alchemy renders.
type ConstraintKind uint8

// Supported constraint kinds.
const (
	CheckConstraint ConstraintKind = iota + 1
	ForeignKeyConstraint
	PrimaryKeyConstraint
	UniqueConstraint
)

var constraintKinds = map[string]ConstraintKind{
	load.KindCheck:      CheckConstraint,
	load.KindForeignKey: ForeignKeyConstraint,
	load.KindPrimaryKey: PrimaryKeyConstraint,
	load.KindUnique:     UniqueConstraint,
}

// String returns the class name of the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case CheckConstraint:
		return "CheckConstraint"
	case ForeignKeyConstraint:
		return "ForeignKeyConstraint"
	case PrimaryKeyConstraint:
		return "PrimaryKeyConstraint"
	case UniqueConstraint:
		return "UniqueConstraint"
	default:
		return fmt.Sprintf("ConstraintKind(%d)", uint8(k))
	}
}

// Constraint is the intermediate representation of a table constraint.
type Constraint struct {
	def   *load.Constraint
	table *Table

	// Name is empty for unnamed constraints.
	Name string
	Kind ConstraintKind
	// Columns are the participating columns, in declaration order.
	Columns []*Column
	// RefTable and RefColumns are set for foreign keys. RefColumns
	// correspond positionally to Columns.
	RefTable   *Table
	RefColumns []*Column
	// OnDelete and OnUpdate hold the quoted referential actions, if any.
	OnDelete string
	OnUpdate string
	// RelationshipTo is the referenced column of single column foreign keys.
	RelationshipTo *Column
}

func newConstraint(def *load.Constraint, t *Table) (*Constraint, error) {
	kind, ok := constraintKinds[def.Kind]
	if !ok {
		return nil, &ConstraintError{Table: t.Name, Constraint: def.Name, Kind: def.Kind}
	}
	return &Constraint{def: def, table: t, Name: def.Name, Kind: kind}, nil
}

func (c *Constraint) computeProperties() error {
	c.Columns = make([]*Column, 0, len(c.def.Columns))
	for _, name := range c.def.Columns {
		col := c.table.Column(name)
		if col == nil {
			return NewSchemaError(c.table.Name, c.displayName(), fmt.Sprintf("unknown column %q", name), nil)
		}
		c.Columns = append(c.Columns, col)
	}
	if c.Kind == ForeignKeyConstraint {
		c.RefTable = c.table.lab.Table(c.def.RefTable)
		if c.RefTable == nil {
			return NewSchemaError(c.table.Name, c.displayName(), fmt.Sprintf("unknown referenced table %q", c.def.RefTable), nil)
		}
		for _, name := range c.def.RefColumns {
			col := c.RefTable.Column(name)
			if col == nil {
				return NewSchemaError(c.table.Name, c.displayName(), fmt.Sprintf("unknown referenced column %q.%q", c.RefTable.Name, name), nil)
			}
			c.RefColumns = append(c.RefColumns, col)
		}
		if len(c.RefColumns) != len(c.Columns) {
			return NewSchemaError(c.table.Name, c.displayName(), "foreign key columns do not match the referenced columns", nil)
		}
		if len(c.Columns) == 1 {
			c.RelationshipTo = c.RefColumns[0]
		}
		if c.def.OnDelete != "" {
			c.OnDelete = pyfmt.Quote(c.def.OnDelete)
		}
		if c.def.OnUpdate != "" {
			c.OnUpdate = pyfmt.Quote(c.def.OnUpdate)
		}
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (c *Constraint) String() string {
	return "<Constraint " + c.Kind.String() + " " + pyfmt.Quote(c.Name) + ">"
}

func (c *Constraint) displayName() string {
	if c.Name == "" {
		return "<unnamed " + c.Kind.String() + ">"
	}
	return c.Name
}

// Table returns the table declaring the constraint.
func (c *Constraint) Table() *Table { return c.table }

// HasRelationship reports whether the constraint licenses a relationship
// declaration: a foreign key over exactly one column.
func (c *Constraint) HasRelationship() bool {
	return c.Kind == ForeignKeyConstraint && len(c.Columns) == 1
}

// RelationshipName returns the attribute name of the relationship the
// constraint declares. Foreign keys without a name usable as a Python
// attribute are named after the fk_<table>_<column>_<referred table>
// pattern.
func (c *Constraint) RelationshipName() string {
	if pyfmt.IsIdentifier(c.Name) {
		return c.Name
	}
	var ref string
	if c.RefTable != nil {
		ref = c.RefTable.Name
	}
	cols := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = col.Name
	}
	return "fk_" + c.table.Name + "_" + strings.Join(cols, "_") + "_" + ref
}

// Codegen renders the constraint declaration. It reports false, rendering
// nothing, for non-check constraints without columns.
func (c *Constraint) Codegen() (string, bool) {
	if len(c.def.Columns) == 0 && c.Kind != CheckConstraint {
		return "", false
	}
	var b strings.Builder
	b.WriteString(c.Kind.String())
	b.WriteString("(")
	switch c.Kind {
	case ForeignKeyConstraint:
		b.WriteString(quotedList(c.Columns, func(col *Column) string { return col.Name }))
		b.WriteString(", ")
		b.WriteString(quotedList(c.RefColumns, (*Column).TargetName))
	case CheckConstraint:
		b.WriteString(pyfmt.Quote(c.def.Expr))
	case PrimaryKeyConstraint, UniqueConstraint:
		names := make([]string, len(c.Columns))
		for i, col := range c.Columns {
			names[i] = pyfmt.Quote(col.Name)
		}
		b.WriteString(strings.Join(names, ", "))
	}
	for _, attr := range []struct{ name, value string }{
		{"name", c.quotedName()},
		{"ondelete", c.OnDelete},
		{"onupdate", c.OnUpdate},
	} {
		if attr.value != "" {
			b.WriteString(", ")
			b.WriteString(attr.name)
			b.WriteString("=")
			b.WriteString(attr.value)
		}
	}
	b.WriteString(")")
	return b.String(), true
}

// CodegenRelationship renders the relationship declaration of the
// constraint, if it has one.
func (c *Constraint) CodegenRelationship() (string, bool) {
	if !c.HasRelationship() {
		return "", false
	}
	cols := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = col.Name
	}
	return fmt.Sprintf("%s = relationship(%s, foreign_keys=[%s])",
		c.RelationshipName(), pyfmt.Quote(c.RefTable.ClassName), strings.Join(cols, ", ")), true
}

func (c *Constraint) quotedName() string {
	if c.Name == "" {
		return ""
	}
	return pyfmt.Quote(c.Name)
}

func quotedList(cols []*Column, name func(*Column) string) string {
	items := make([]string, len(cols))
	for i, col := range cols {
		items[i] = pyfmt.Quote(name(col))
	}
	return "[" + strings.Join(items, ", ") + "]"
}
