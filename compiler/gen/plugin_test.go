package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, "table", LocationClass.String())
	assert.Equal(t, "end", LocationEnd.String())
	assert.Equal(t, "invalid", Location(0).String())
}

func TestAccumulator(t *testing.T) {
	r := NewResult()
	r.AddImport("authors", Import{Package: "sqlalchemy.orm", Symbols: []string{"relationship"}})
	r.AddImport("authors", Import{Package: ".books", Symbols: []string{"Books"}})
	r.AddCode("authors", LocationClass, "books = relationship(\"Books\")")
	r.AddCode("authors", LocationEnd, "# end")

	t.Run("add twice is a no-op", func(t *testing.T) {
		acc := NewAccumulator()
		acc.Add(r)
		acc.Add(r)
		acc.Add(nil)

		assert.Equal(t, []string{"books = relationship(\"Books\")"}, acc.Fragments("authors", LocationClass))
		assert.Equal(t, []string{"# end"}, acc.Fragments("authors", LocationEnd))
		assert.Equal(t, []string{
			"from .books import Books",
			"from sqlalchemy.orm import relationship",
		}, acc.Imports("authors").Lines())
		assert.Nil(t, acc.Imports("books"))
		assert.Empty(t, acc.Fragments("books", LocationClass))
	})

	t.Run("merge", func(t *testing.T) {
		other := NewResult()
		other.AddImport("authors", Import{Package: "sqlalchemy.orm", Symbols: []string{"relationship"}})
		other.AddCode("authors", LocationClass, "books = relationship(\"Books\")", "tags = relationship(\"Tags\")")

		a, b := NewAccumulator(), NewAccumulator()
		a.Add(r)
		b.Add(other)
		m := Merge(a, b)

		assert.Equal(t, []string{
			"books = relationship(\"Books\")",
			"tags = relationship(\"Tags\")",
		}, m.Fragments("authors", LocationClass))
		assert.Equal(t, []string{"Books"}, m.Imports("authors").Symbols(".books"))
		assert.Equal(t, []string{"relationship"}, m.Imports("authors").Symbols("sqlalchemy.orm"))
		// Inputs are left untouched.
		assert.Len(t, a.Fragments("authors", LocationClass), 1)
		assert.NotNil(t, Merge(nil, a))
	})

	t.Run("order independent", func(t *testing.T) {
		x, y, z := NewResult(), NewResult(), NewResult()
		x.AddCode("authors", LocationClass, `tags = relationship("Tags")`)
		y.AddCode("authors", LocationClass, `books = relationship("Books")`)
		z.AddCode("authors", LocationClass, `awards = relationship("Awards")`, `books = relationship("Books")`)
		z.AddImport("authors", Import{Package: ".awards", Symbols: []string{"Awards"}})
		acc := func(r *Result) *Accumulator {
			a := NewAccumulator()
			a.Add(r)
			return a
		}
		a, b, c := acc(x), acc(y), acc(z)

		want := []string{
			`awards = relationship("Awards")`,
			`books = relationship("Books")`,
			`tags = relationship("Tags")`,
		}
		for _, m := range []*Accumulator{
			Merge(Merge(a, b), c),
			Merge(a, Merge(b, c)),
			Merge(c, Merge(b, a)),
			Merge(Merge(c, a), b),
		} {
			assert.Equal(t, want, m.Fragments("authors", LocationClass))
			assert.Equal(t, []string{"from .awards import Awards"}, m.Imports("authors").Lines())
		}

		rev := NewAccumulator()
		for _, r := range []*Result{z, y, x} {
			rev.Add(r)
		}
		assert.Equal(t, want, rev.Fragments("authors", LocationClass))
	})
}
