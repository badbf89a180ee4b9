package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/alchemy/compiler/load"
)

func TestIndexCodegen(t *testing.T) {
	tests := []struct {
		name    string
		def     *load.Index
		want    string
		wantErr error
	}{
		{
			name: "single column",
			def:  &load.Index{Name: "ix_books_author", Parts: []*load.IndexPart{{Column: "author_id"}}},
			want: `Index("ix_books_author", Books.author_id, unique=False)`,
		},
		{
			name: "unique composite",
			def:  &load.Index{Name: "ux_books", Unique: true, Parts: []*load.IndexPart{{Column: "author_id"}, {Column: "id"}}},
			want: `Index("ux_books", Books.author_id, Books.id, unique=True)`,
		},
		{
			name: "unnamed",
			def:  &load.Index{Parts: []*load.IndexPart{{Column: "id"}}},
			want: `Index(None, Books.id, unique=False)`,
		},
		{
			name:    "expression",
			def:     &load.Index{Name: "ix_expr", Parts: []*load.IndexPart{{Column: "id"}, {Expr: "author_id + 1"}}},
			wantErr: ErrUnsupportedExpression,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := library()
			s.Table("books").Indexes = []*load.Index{tt.def}
			lab := newTestLab(t, s)
			idx := lab.Table("books").Indexes[0]

			code, err := idx.Codegen()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsIndexError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestIndexUnknownColumn(t *testing.T) {
	s := library()
	s.Table("books").Indexes = []*load.Index{{Name: "ix", Parts: []*load.IndexPart{{Column: "isbn"}}}}
	_, err := NewLab(testConfig(), s)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}
