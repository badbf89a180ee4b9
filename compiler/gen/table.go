package gen

import (
	"slices"
	"strings"

	"github.com/syssam/alchemy/compiler/load"
	"github.com/syssam/alchemy/internal/pyfmt"
)

// KeyPlan records how the primary key of a table is established. It is
// computed once, before any rendering, and never changes afterwards.
type KeyPlan struct {
	// Explicit is set when the table declares a primary key constraint over
	// at least one column.
	Explicit bool
	// Implicit lists the non-nullable columns promoted to a composite
	// primary key when there is no explicit one.
	Implicit []*Column
}

// Established reports whether the plan yields a primary key.
func (p KeyPlan) Established() bool {
	return p.Explicit || len(p.Implicit) > 0
}

func (p KeyPlan) implicit(c *Column) bool {
	return slices.Contains(p.Implicit, c)
}

func planKeys(t *Table) KeyPlan {
	for _, c := range t.Constraints {
		if c.Kind == PrimaryKeyConstraint && len(c.Columns) > 0 {
			return KeyPlan{Explicit: true}
		}
	}
	var p KeyPlan
	for _, c := range t.Columns {
		if !c.Nullable {
			p.Implicit = append(p.Implicit, c)
		}
	}
	return p
}

// Relationship is a one-sided relationship discovered from a single
// column foreign key.
type Relationship struct {
	Constraint *Constraint
	From       *Column
	To         *Column
}

// TableCode is the rendered code of a table: the class body and the
// statements following it.
type TableCode struct {
	Class string
	End   string
}

// Table is the intermediate representation of a table. Tables are
// identified by their bare name.
type Table struct {
	def *load.Table
	lab *Lab

	Name      string
	ClassName string
	// Schema is the schema qualifying the table, if any.
	Schema string
	// Comment is the quoted table comment, or empty.
	Comment       string
	Columns       []*Column
	Constraints   []*Constraint
	Indexes       []*Index
	Relationships []Relationship

	keys KeyPlan
}

func newTable(def *load.Table, lab *Lab) *Table {
	return &Table{def: def, lab: lab, Name: def.Name}
}

// computeProperties derives everything that does not depend on other
// tables: naming, comment, schema and columns.
func (t *Table) computeProperties() {
	t.ClassName = pyfmt.PascalCase(t.Name)
	if t.def.Comment != nil {
		t.Comment = pyfmt.Quote(*t.def.Comment)
	}
	t.Schema = t.def.Schema
	t.Columns = make([]*Column, len(t.def.Columns))
	for i, def := range t.def.Columns {
		t.Columns[i] = newColumn(def, t)
		t.Columns[i].computeProperties()
	}
}

// resolve builds constraints, relationships and indexes, which may refer
// to other tables of the lab, and plans the primary key.
func (t *Table) resolve() error {
	t.Constraints = make([]*Constraint, 0, len(t.def.Constraints))
	for _, def := range t.def.Constraints {
		c, err := newConstraint(def, t)
		if err != nil {
			return err
		}
		t.Constraints = append(t.Constraints, c)
	}
	type relKey struct{ class, target string }
	seen := make(map[relKey]bool)
	for _, c := range t.Constraints {
		if err := c.computeProperties(); err != nil {
			return err
		}
		if c.RelationshipTo == nil {
			continue
		}
		k := relKey{c.RefTable.ClassName, c.RelationshipTo.Fullname()}
		if !seen[k] {
			seen[k] = true
			t.Relationships = append(t.Relationships, Relationship{Constraint: c, From: c.Columns[0], To: c.RelationshipTo})
		}
	}
	t.Indexes = make([]*Index, len(t.def.Indexes))
	for i, def := range t.def.Indexes {
		t.Indexes[i] = newIndex(def, t)
		if err := t.Indexes[i].computeProperties(); err != nil {
			return err
		}
	}
	t.keys = planKeys(t)
	return nil
}

// String implements the fmt.Stringer interface.
func (t *Table) String() string { return "<Table " + pyfmt.Quote(t.Name) + ">" }

// Lab returns the lab owning the table.
func (t *Table) Lab() *Lab { return t.lab }

// Keys returns the primary key plan of the table.
func (t *Table) Keys() KeyPlan { return t.keys }

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ForeignKeys returns the foreign key constraints of the table.
func (t *Table) ForeignKeys() []*Constraint {
	var fks []*Constraint
	for _, c := range t.Constraints {
		if c.Kind == ForeignKeyConstraint {
			fks = append(fks, c)
		}
	}
	return fks
}

// WillGenerate reports whether a primary key can be established for the
// table, that is, whether Codegen succeeds on its key.
func (t *Table) WillGenerate() bool { return t.keys.Established() }

// Imports returns the imports the generated module of the table needs.
func (t *Table) Imports() ImportSet {
	imports := make(ImportSet)
	imports.Add("sqlalchemy", "Column")
	if len(t.Indexes) > 0 {
		imports.Add("sqlalchemy", "Index")
	}
	for _, c := range t.Columns {
		imports.Add(c.Type.Type.Package(), c.TypeName())
	}
	for _, c := range t.Constraints {
		imports.Add("sqlalchemy", c.Kind.String())
		if c.HasRelationship() {
			imports.Add("sqlalchemy.orm", "relationship")
		}
	}
	return imports
}

// Codegen renders the table. It fails with a *TableError when no primary
// key can be established and with an *IndexError on expression indexes.
// Codegen does not modify the table.
func (t *Table) Codegen() (*TableCode, error) {
	var b strings.Builder
	b.WriteString("class " + t.ClassName + "(Base):\n")
	b.WriteString("    __tablename__ = " + pyfmt.Quote(t.Name) + "\n")

	var args [][2]string
	if t.Comment != "" {
		args = append(args, [2]string{"comment", t.Comment})
	}
	if t.Schema != "" {
		args = append(args, [2]string{"schema", pyfmt.Quote(t.Schema)})
	}
	if len(args)+len(t.Constraints) > 0 {
		b.WriteString("    __table_args__ = (\n")
		for _, c := range t.Constraints {
			if code, ok := c.Codegen(); ok {
				b.WriteString("        " + code + ",\n")
			}
		}
		if len(args) > 0 {
			b.WriteString("        {\n")
			for _, arg := range args {
				b.WriteString("            " + pyfmt.Quote(arg[0]) + ": " + arg[1] + ",\n")
			}
			b.WriteString("        },\n")
		}
		b.WriteString("    )\n")
	}
	b.WriteString("\n")

	for _, c := range t.Columns {
		b.WriteString("    " + c.Codegen(!t.keys.Explicit) + "\n")
	}
	if len(t.Columns) > 0 {
		b.WriteString("\n")
	}
	if !t.keys.Established() {
		return nil, &TableError{Table: t.Name}
	}

	for _, r := range t.Relationships {
		code, _ := r.Constraint.CodegenRelationship()
		b.WriteString("    " + code + "\n")
	}
	if len(t.Relationships) > 0 {
		b.WriteString("\n")
	}

	var end strings.Builder
	for _, idx := range t.Indexes {
		code, err := idx.Codegen()
		if err != nil {
			return nil, err
		}
		end.WriteString(code + "\n")
	}
	if len(t.Indexes) > 0 {
		end.WriteString("\n")
	}
	return &TableCode{Class: b.String(), End: end.String()}, nil
}
