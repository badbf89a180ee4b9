// Package relation provides plugins deriving the relationships that foreign
// keys imply but do not declare: back references of one-to-many keys and
// the two sides of many-to-many associations.
//
//	lab.CreateClone(ctx, "models", relation.OneToMany, relation.ManyToMany)
package relation

import (
	"slices"

	"github.com/syssam/alchemy/compiler/gen"
	"github.com/syssam/alchemy/internal/pyfmt"
)

// Names of the plugins, as used in configuration files.
const (
	OneToManyName  = "one_to_many"
	ManyToManyName = "many_to_many"
)

// Lookup returns the plugin registered under name.
func Lookup(name string) (gen.Plugin, bool) {
	switch name {
	case OneToManyName:
		return OneToMany, true
	case ManyToManyName:
		return ManyToMany, true
	default:
		return nil, false
	}
}

// Names returns the names of all plugins.
func Names() []string {
	return []string{OneToManyName, ManyToManyName}
}

// OneToMany adds a view-only back reference into the table referenced by
// every single column foreign key. Keys are ignored when another key of the
// same table references the same table, when they reference their own
// table, or when their table is not generated.
func OneToMany(lab *gen.Lab) *gen.Result {
	r := gen.NewResult()
	for _, t := range lab.Tables {
		fks := t.ForeignKeys()
		refs := make(map[string]int, len(fks))
		for _, fk := range fks {
			refs[fk.RefTable.Name]++
		}
		for _, fk := range fks {
			ref := fk.RefTable
			if refs[ref.Name] != 1 || len(fk.Columns) != 1 || len(fk.RefColumns) != 1 {
				continue
			}
			if ref == t || !t.WillGenerate() {
				continue
			}
			r.AddImport(ref.Name, imports(t)...)
			r.AddCode(ref.Name, gen.LocationClass,
				ref.Name+"_to_"+t.Name+" = relationship("+pyfmt.Quote(t.ClassName)+
					", back_populates="+pyfmt.Quote(fk.RelationshipName())+", viewonly=True)")
		}
	}
	return r
}

// ManyToMany adds reciprocal view-only relationships into both tables
// linked by a junction table: a generated table with exactly two foreign
// keys referencing two distinct other tables.
func ManyToMany(lab *gen.Lab) *gen.Result {
	r := gen.NewResult()
	seen := make(map[[3]string]bool)
	for _, j := range lab.Tables {
		fks := j.ForeignKeys()
		if len(fks) != 2 {
			continue
		}
		ref1, ref2 := fks[0].RefTable, fks[1].RefTable
		if ref1 == j || ref2 == j || ref1 == ref2 || !j.WillGenerate() {
			continue
		}
		pair := []string{ref1.Name, ref2.Name}
		slices.Sort(pair)
		k := [3]string{j.Name, pair[0], pair[1]}
		if seen[k] {
			continue
		}
		seen[k] = true
		name1 := ref2.Name + "_through_" + j.Name
		name2 := ref1.Name + "_through_" + j.Name
		secondary := j.ClassName + ".__table__"
		r.AddImport(ref1.Name, imports(j)...)
		r.AddImport(ref2.Name, imports(j)...)
		r.AddCode(ref1.Name, gen.LocationClass,
			name1+" = relationship("+pyfmt.Quote(ref2.ClassName)+", secondary="+secondary+
				", back_populates="+pyfmt.Quote(name2)+", viewonly=True)")
		r.AddCode(ref2.Name, gen.LocationClass,
			name2+" = relationship("+pyfmt.Quote(ref1.ClassName)+", secondary="+secondary+
				", back_populates="+pyfmt.Quote(name1)+", viewonly=True)")
	}
	return r
}

func imports(t *gen.Table) []gen.Import {
	return []gen.Import{
		{Package: "sqlalchemy.orm", Symbols: []string{"relationship"}},
		{Package: "." + t.Name, Symbols: []string{t.ClassName}},
	}
}
