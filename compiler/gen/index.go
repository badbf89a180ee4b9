package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/alchemy/compiler/load"
	"github.com/syssam/alchemy/internal/pyfmt"
)

// Index is the intermediate representation of a table index.
type Index struct {
	def   *load.Index
	table *Table

	// Name is empty for unnamed indexes.
	Name    string
	Unique  bool
	Columns []*Column
}

func newIndex(def *load.Index, t *Table) *Index {
	return &Index{def: def, table: t, Name: def.Name}
}

func (i *Index) computeProperties() error {
	i.Unique = i.def.Unique
	for _, p := range i.def.Parts {
		if p.Column == "" {
			continue
		}
		col := i.table.Column(p.Column)
		if col == nil {
			return NewSchemaError(i.table.Name, i.Name, fmt.Sprintf("index references unknown column %q", p.Column), nil)
		}
		i.Columns = append(i.Columns, col)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (i *Index) String() string { return "<Index " + pyfmt.Quote(i.Name) + ">" }

// Codegen renders the index declaration. Indexes over expressions are
// rejected with an *IndexError.
func (i *Index) Codegen() (string, error) {
	for _, p := range i.def.Parts {
		if p.Column == "" {
			return "", &IndexError{Table: i.table.Name, Index: i.Name, Expr: p.Expr}
		}
	}
	name := "None"
	if i.Name != "" {
		name = pyfmt.Quote(i.Name)
	}
	cols := make([]string, len(i.Columns))
	for j, col := range i.Columns {
		cols[j] = col.ClassPropertyName()
	}
	return fmt.Sprintf("Index(%s, %s, unique=%s)", name, strings.Join(cols, ", "), pyfmt.Bool(i.Unique)), nil
}
