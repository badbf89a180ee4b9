package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/alchemy/schema/field"
)

func intp(v int) *int { return &v }

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Integer", field.TypeInteger.Name())
	assert.Equal(t, "Uuid", field.TypeUUID.Name())
	assert.Equal(t, "NullType", field.TypeNull.Name())
	assert.Equal(t, "NullType", field.Type(200).Name())
	assert.False(t, field.Type(200).Valid())
	assert.Equal(t, "sqlalchemy", field.TypeDateTime.Package())
	assert.Equal(t, "sqlalchemy.types", field.TypeNull.Package())
}

func TestTypeInfoString(t *testing.T) {
	tests := []struct {
		name string
		info *field.TypeInfo
		want string
	}{
		{"nil", nil, "NullType()"},
		{"integer", &field.TypeInfo{Type: field.TypeInteger}, "Integer()"},
		{"integer ignores length", &field.TypeInfo{Type: field.TypeInteger, Length: 11}, "Integer()"},
		{"string", &field.TypeInfo{Type: field.TypeString, Length: 50}, "String(length=50)"},
		{"string without length", &field.TypeInfo{Type: field.TypeString}, "String()"},
		{"numeric", &field.TypeInfo{Type: field.TypeNumeric, Precision: intp(10), Scale: intp(2)}, "Numeric(precision=10, scale=2)"},
		{"numeric zero scale", &field.TypeInfo{Type: field.TypeNumeric, Precision: intp(10), Scale: intp(0)}, "Numeric(precision=10, scale=0)"},
		{"float", &field.TypeInfo{Type: field.TypeFloat, Precision: intp(53)}, "Float(precision=53)"},
		{"datetime tz", &field.TypeInfo{Type: field.TypeDateTime, Timezone: true}, "DateTime(timezone=True)"},
		{"date ignores tz", &field.TypeInfo{Type: field.TypeDate, Timezone: true}, "Date()"},
		{"enum", &field.TypeInfo{Type: field.TypeEnum, Enums: []string{"a", "b"}}, "Enum('a', 'b')"},
		{"binary", &field.TypeInfo{Type: field.TypeLargeBinary, Length: 16}, "LargeBinary(length=16)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}
