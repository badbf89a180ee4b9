package pyfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascalCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my_table", "MyTable"},
		{"my-table_name", "MyTableName"},
		{"a__b", "AB"},
		{"a-_-b", "AB"},
		{"_leading", "Leading"},
		{"trailing_", "Trailing"},
		{"UPPER_case", "UpperCase"},
		{"authors", "Authors"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PascalCase(tt.in))
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, Quote("plain"))
	assert.Equal(t, `""`, Quote(""))
	assert.Equal(t, `"""say "hi""""`, Quote(`say "hi"`))
	assert.Equal(t, "\"\"\"two\nlines\"\"\"", Quote("two\nlines"))
	assert.Equal(t, `"it's"`, Quote("it's"))
}

func TestRepr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"now()", `'now()'`},
		{"it's", `"it's"`},
		{`both ' and "`, `'both \' and "'`},
		{`back\slash`, `'back\\slash'`},
		{"tab\there", `'tab\there'`},
		{"line\nbreak", `'line\nbreak'`},
		{"\x01", `'\x01'`},
		{"héllo", `'héllo'`},
		{"\u0085", `'\x85'`},
		{"no\u00a0break", `'no\xa0break'`},
		{"zero\u200bwidth", `'zero\u200bwidth'`},
		{"\U000e0001", `'\U000e0001'`},
		{"😀", `'😀'`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Repr(tt.in))
		})
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"author", "_private", "fk_books_author_id_authors", "x1", "café"} {
		assert.True(t, IsIdentifier(s), s)
	}
	for _, s := range []string{"", "0", "1fk", "books-fk", "fk name", "class", "None"} {
		assert.False(t, IsIdentifier(s), s)
	}
}

func TestBool(t *testing.T) {
	assert.Equal(t, "True", Bool(true))
	assert.Equal(t, "False", Bool(false))
}
