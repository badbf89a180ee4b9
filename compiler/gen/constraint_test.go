package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/alchemy/compiler/load"
	"github.com/syssam/alchemy/schema/field"
)

func TestConstraintKind(t *testing.T) {
	assert.Equal(t, "CheckConstraint", CheckConstraint.String())
	assert.Equal(t, "ForeignKeyConstraint", ForeignKeyConstraint.String())
	assert.Equal(t, "PrimaryKeyConstraint", PrimaryKeyConstraint.String())
	assert.Equal(t, "UniqueConstraint", UniqueConstraint.String())
	assert.Equal(t, "ConstraintKind(0)", ConstraintKind(0).String())
}

func TestConstraintCodegen(t *testing.T) {
	tests := []struct {
		name   string
		def    *load.Constraint
		want   string
		render bool
	}{
		{
			name:   "unnamed foreign key",
			def:    fk("", []string{"author_id"}, "authors", "id"),
			want:   `ForeignKeyConstraint(["author_id"], ["authors.id"])`,
			render: true,
		},
		{
			name: "foreign key with actions",
			def: &load.Constraint{
				Kind: load.KindForeignKey, Name: "fk_author", Columns: []string{"author_id"},
				RefTable: "authors", RefColumns: []string{"id"}, OnDelete: "CASCADE", OnUpdate: "SET NULL",
			},
			want:   `ForeignKeyConstraint(["author_id"], ["authors.id"], name="fk_author", ondelete="CASCADE", onupdate="SET NULL")`,
			render: true,
		},
		{
			name:   "check",
			def:    &load.Constraint{Kind: load.KindCheck, Name: "ck_year", Expr: "year > 0"},
			want:   `CheckConstraint("year > 0", name="ck_year")`,
			render: true,
		},
		{
			name:   "check with quotes",
			def:    &load.Constraint{Kind: load.KindCheck, Expr: `title <> ""`},
			want:   `CheckConstraint("""title <> """"")`,
			render: true,
		},
		{
			name:   "composite primary key",
			def:    &load.Constraint{Kind: load.KindPrimaryKey, Name: "pk_books", Columns: []string{"id", "author_id"}},
			want:   `PrimaryKeyConstraint("id", "author_id", name="pk_books")`,
			render: true,
		},
		{
			name:   "unique",
			def:    &load.Constraint{Kind: load.KindUnique, Columns: []string{"year"}},
			want:   `UniqueConstraint("year")`,
			render: true,
		},
		{
			name: "primary key without columns",
			def:  &load.Constraint{Kind: load.KindPrimaryKey},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := library()
			books := s.Table("books")
			books.Columns = append(books.Columns, col("year", field.TypeInteger, true))
			books.Constraints = []*load.Constraint{tt.def}
			lab := newTestLab(t, s)

			code, ok := lab.Table("books").Constraints[0].Codegen()
			assert.Equal(t, tt.render, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestConstraintRelationship(t *testing.T) {
	t.Run("single column foreign key", func(t *testing.T) {
		lab := newTestLab(t, library())
		c := lab.Table("books").Constraints[0]

		assert.True(t, c.HasRelationship())
		assert.Same(t, lab.Table("authors"), c.RefTable)
		assert.Same(t, lab.Table("authors").Column("id"), c.RelationshipTo)
		assert.Equal(t, "fk_books_author_id_authors", c.RelationshipName())
		code, ok := c.CodegenRelationship()
		require.True(t, ok)
		assert.Equal(t, `fk_books_author_id_authors = relationship("Authors", foreign_keys=[author_id])`, code)
	})

	t.Run("foreign key name not an identifier", func(t *testing.T) {
		for _, name := range []string{"0", "books-author", "class"} {
			s := library()
			s.Table("books").Constraints[0].Name = name
			c := newTestLab(t, s).Table("books").Constraints[0]
			assert.Equal(t, "fk_books_author_id_authors", c.RelationshipName(), name)
		}
	})

	t.Run("named foreign key", func(t *testing.T) {
		s := library()
		s.Table("books").Constraints[0].Name = "written_by"
		lab := newTestLab(t, s)
		code, ok := lab.Table("books").Constraints[0].CodegenRelationship()
		require.True(t, ok)
		assert.Equal(t, `written_by = relationship("Authors", foreign_keys=[author_id])`, code)
	})

	t.Run("composite foreign key", func(t *testing.T) {
		s := &load.Schema{Tables: []*load.Table{
			{Name: "editions", Columns: []*load.Column{col("isbn", field.TypeString, false), col("lang", field.TypeString, false)}},
			{
				Name:        "prints",
				Columns:     []*load.Column{col("isbn", field.TypeString, false), col("lang", field.TypeString, false)},
				Constraints: []*load.Constraint{fk("", []string{"isbn", "lang"}, "editions", "isbn", "lang")},
			},
		}}
		lab := newTestLab(t, s)
		c := lab.Table("prints").Constraints[0]

		assert.False(t, c.HasRelationship())
		assert.Nil(t, c.RelationshipTo)
		_, ok := c.CodegenRelationship()
		assert.False(t, ok)
		code, _ := c.Codegen()
		assert.Equal(t, `ForeignKeyConstraint(["isbn", "lang"], ["editions.isbn", "editions.lang"])`, code)
	})

	t.Run("schema qualified target", func(t *testing.T) {
		s := library()
		s.Tables[0].Schema = "lib"
		lab := newTestLab(t, s)
		code, _ := lab.Table("books").Constraints[0].Codegen()
		assert.Equal(t, `ForeignKeyConstraint(["author_id"], ["lib.authors.id"])`, code)
	})

	t.Run("other kinds", func(t *testing.T) {
		s := library()
		s.Tables[0].Constraints = []*load.Constraint{pk("id")}
		lab := newTestLab(t, s)
		c := lab.Table("authors").Constraints[0]
		assert.False(t, c.HasRelationship())
		_, ok := c.CodegenRelationship()
		assert.False(t, ok)
	})
}

func TestConstraintErrors(t *testing.T) {
	tests := []struct {
		name   string
		def    *load.Constraint
		target error
	}{
		{
			name:   "unsupported kind",
			def:    &load.Constraint{Kind: "exclude", Name: "no_overlap", Columns: []string{"id"}},
			target: ErrUnsupportedConstraint,
		},
		{
			name:   "unknown column",
			def:    &load.Constraint{Kind: load.KindUnique, Columns: []string{"isbn"}},
			target: ErrInvalidSchema,
		},
		{
			name:   "unknown referenced table",
			def:    fk("", []string{"author_id"}, "writers", "id"),
			target: ErrInvalidSchema,
		},
		{
			name:   "unknown referenced column",
			def:    fk("", []string{"author_id"}, "authors", "uuid"),
			target: ErrInvalidSchema,
		},
		{
			name:   "column count mismatch",
			def:    fk("", []string{"author_id"}, "authors", "id", "name"),
			target: ErrInvalidSchema,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := library()
			s.Table("books").Constraints = []*load.Constraint{tt.def}
			_, err := NewLab(testConfig(), s)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}
