package gen

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/alchemy/compiler/load"
	"github.com/syssam/alchemy/schema/field"
)

func col(name string, typ field.Type, nullable bool) *load.Column {
	return &load.Column{Name: name, Info: &field.TypeInfo{Type: typ}, Nullable: nullable}
}

func fk(name string, cols []string, ref string, refCols ...string) *load.Constraint {
	return &load.Constraint{Kind: load.KindForeignKey, Name: name, Columns: cols, RefTable: ref, RefColumns: refCols}
}

func pk(cols ...string) *load.Constraint {
	return &load.Constraint{Kind: load.KindPrimaryKey, Columns: cols}
}

// library is the authors/books schema used across the tests.
func library() *load.Schema {
	return &load.Schema{Tables: []*load.Table{
		{
			Name: "authors",
			Columns: []*load.Column{
				col("id", field.TypeInteger, false),
				col("name", field.TypeText, true),
			},
		},
		{
			Name: "books",
			Columns: []*load.Column{
				col("id", field.TypeInteger, false),
				col("author_id", field.TypeInteger, true),
			},
			Constraints: []*load.Constraint{
				fk("", []string{"author_id"}, "authors", "id"),
			},
		},
	}}
}

func testConfig(opts ...Option) *Config {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return MustNewConfig(opts...)
}

func newTestLab(t *testing.T, s *load.Schema, opts ...Option) *Lab {
	t.Helper()
	lab, err := NewLab(testConfig(opts...), s)
	require.NoError(t, err)
	return lab
}
