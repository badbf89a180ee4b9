package load

import (
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/alchemy/schema/field"
)

// FromSchemas reduces schemas inspected by atlas to a snapshot. When qualify
// is set, every table records the name of the schema it belongs to.
func FromSchemas(qualify bool, schemas ...*schema.Schema) *Schema {
	s := &Schema{}
	for _, as := range schemas {
		for _, at := range as.Tables {
			t := fromTable(at)
			if qualify {
				t.Schema = as.Name
			}
			s.Tables = append(s.Tables, t)
		}
	}
	s.Tables = Sort(s.Tables)
	return s
}

func fromTable(at *schema.Table) *Table {
	t := &Table{
		Name:    at.Name,
		Comment: comment(at.Attrs),
	}
	// SQLite has no names for primary keys, unnamed foreign keys and
	// UNIQUE column constraints. atlas reports placeholders for them.
	lite := hasCreateStmt(at.Attrs)
	for _, ac := range at.Columns {
		t.Columns = append(t.Columns, fromColumn(ac))
	}
	if pk := at.PrimaryKey; pk != nil {
		c := &Constraint{
			Kind:    KindPrimaryKey,
			Name:    pk.Name,
			Columns: partColumns(pk.Parts),
		}
		if lite && c.Name == "PRIMARY" {
			c.Name = ""
		}
		t.Constraints = append(t.Constraints, c)
	}
	for _, fk := range at.ForeignKeys {
		c := fromForeignKey(fk)
		if lite && isUint(c.Name) {
			c.Name = ""
		}
		t.Constraints = append(t.Constraints, c)
	}
	for _, a := range at.Attrs {
		if c, ok := a.(*schema.Check); ok {
			t.Constraints = append(t.Constraints, &Constraint{
				Kind: KindCheck,
				Name: c.Name,
				Expr: c.Expr,
			})
		}
	}
	for _, idx := range at.Indexes {
		// Postgres and SQLite report unique constraints as indexes carrying
		// the constraint type or the index origin.
		kind, ok := constraintKind(idx.Attrs)
		switch {
		case kind == KindPrimaryKey:
			continue
		case ok:
			c := &Constraint{
				Kind:    kind,
				Name:    idx.Name,
				Columns: partColumns(idx.Parts),
			}
			if lite && strings.HasPrefix(c.Name, "sqlite_autoindex_") {
				c.Name = ""
			}
			t.Constraints = append(t.Constraints, c)
			continue
		}
		t.Indexes = append(t.Indexes, fromIndex(idx))
	}
	return t
}

func fromColumn(ac *schema.Column) *Column {
	c := &Column{
		Name:    ac.Name,
		Comment: comment(ac.Attrs),
	}
	if ac.Type != nil {
		c.Nullable = ac.Type.Null
		c.Info = GenericType(ac.Type.Type)
	} else {
		c.Nullable = true
		c.Info = &field.TypeInfo{Type: field.TypeNull}
	}
	if x := exprString(ac.Default); x != "" {
		c.Default = &x
	}
	for _, a := range ac.Attrs {
		if u, ok := a.(*mysql.OnUpdate); ok && u.A != "" {
			x := u.A
			c.OnUpdate = &x
		}
	}
	return c
}

func fromForeignKey(fk *schema.ForeignKey) *Constraint {
	c := &Constraint{
		Kind:     KindForeignKey,
		Name:     fk.Symbol,
		OnDelete: referenceOption(fk.OnDelete),
		OnUpdate: referenceOption(fk.OnUpdate),
	}
	for _, col := range fk.Columns {
		c.Columns = append(c.Columns, col.Name)
	}
	if rt := fk.RefTable; rt != nil {
		c.RefTable = rt.Name
		if rt.Schema != nil {
			c.RefSchema = rt.Schema.Name
		}
	}
	for _, col := range fk.RefColumns {
		c.RefColumns = append(c.RefColumns, col.Name)
	}
	return c
}

func fromIndex(idx *schema.Index) *Index {
	i := &Index{Name: idx.Name, Unique: idx.Unique}
	for _, p := range idx.Parts {
		switch {
		case p.C != nil:
			i.Parts = append(i.Parts, &IndexPart{Column: p.C.Name})
		default:
			i.Parts = append(i.Parts, &IndexPart{Expr: exprString(p.X)})
		}
	}
	return i
}

// GenericType reduces an atlas column type to its generic form.
func GenericType(t schema.Type) *field.TypeInfo {
	switch t := t.(type) {
	case *schema.BoolType:
		return &field.TypeInfo{Type: field.TypeBoolean}
	case *schema.IntegerType:
		return &field.TypeInfo{Type: integerType(t.T)}
	case *postgres.SerialType:
		return &field.TypeInfo{Type: integerType(t.T)}
	case *schema.StringType:
		switch strings.ToLower(t.T) {
		case "text", "tinytext", "mediumtext", "longtext", "clob", "ntext":
			return &field.TypeInfo{Type: field.TypeText}
		default:
			return &field.TypeInfo{Type: field.TypeString, Length: t.Size}
		}
	case *schema.DecimalType:
		info := &field.TypeInfo{Type: field.TypeNumeric}
		if t.Precision > 0 {
			p, s := t.Precision, t.Scale
			info.Precision, info.Scale = &p, &s
		}
		return info
	case *schema.FloatType:
		info := &field.TypeInfo{Type: field.TypeFloat}
		if t.Precision > 0 {
			p := t.Precision
			info.Precision = &p
		}
		return info
	case *schema.TimeType:
		return timeType(t.T)
	case *postgres.IntervalType:
		return &field.TypeInfo{Type: field.TypeInterval}
	case *schema.BinaryType:
		info := &field.TypeInfo{Type: field.TypeLargeBinary}
		if t.Size != nil {
			info.Length = *t.Size
		}
		return info
	case *schema.JSONType:
		return &field.TypeInfo{Type: field.TypeJSON}
	case *schema.UUIDType:
		return &field.TypeInfo{Type: field.TypeUUID}
	case *schema.EnumType:
		return &field.TypeInfo{Type: field.TypeEnum, Enums: t.Values}
	default:
		return &field.TypeInfo{Type: field.TypeNull}
	}
}

func integerType(t string) field.Type {
	switch strings.ToLower(t) {
	case "bigint", "int8", "bigserial", "serial8":
		return field.TypeBigInteger
	case "smallint", "int2", "tinyint", "smallserial", "serial2":
		return field.TypeSmallInteger
	default:
		return field.TypeInteger
	}
}

func timeType(t string) *field.TypeInfo {
	t = strings.ToLower(t)
	tz := strings.Contains(t, "with time zone") || strings.HasSuffix(t, "tz")
	switch {
	case t == "date":
		return &field.TypeInfo{Type: field.TypeDate}
	case t == "year":
		return &field.TypeInfo{Type: field.TypeInteger}
	case strings.HasPrefix(t, "time") && !strings.HasPrefix(t, "timestamp"):
		return &field.TypeInfo{Type: field.TypeTime, Timezone: tz}
	default:
		return &field.TypeInfo{Type: field.TypeDateTime, Timezone: tz}
	}
}

func comment(attrs []schema.Attr) *string {
	for _, a := range attrs {
		if c, ok := a.(*schema.Comment); ok && c.Text != "" {
			text := c.Text
			return &text
		}
	}
	return nil
}

func constraintKind(attrs []schema.Attr) (string, bool) {
	for _, a := range attrs {
		switch a := a.(type) {
		case *postgres.Constraint:
			switch a.T {
			case "u":
				return KindUnique, true
			case "x":
				return "exclude", true
			}
		case *sqlite.IndexOrigin:
			switch a.O {
			case "u":
				return KindUnique, true
			case "pk":
				return KindPrimaryKey, true
			}
		}
	}
	return "", false
}

func hasCreateStmt(attrs []schema.Attr) bool {
	for _, a := range attrs {
		if _, ok := a.(*sqlite.CreateStmt); ok {
			return true
		}
	}
	return false
}

func isUint(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func partColumns(parts []*schema.IndexPart) []string {
	var names []string
	for _, p := range parts {
		if p.C != nil {
			names = append(names, p.C.Name)
		}
	}
	return names
}

// referenceOption drops the default action, which reflection reports as
// an absent clause.
func referenceOption(o schema.ReferenceOption) string {
	if o == schema.NoAction {
		return ""
	}
	return string(o)
}

func exprString(x schema.Expr) string {
	switch x := x.(type) {
	case *schema.RawExpr:
		return x.X
	case *schema.Literal:
		return x.V
	default:
		return ""
	}
}
