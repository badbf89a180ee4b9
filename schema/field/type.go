package field

import (
	"strconv"
	"strings"

	"github.com/syssam/alchemy/internal/pyfmt"
)

// A Type represents a generic column type.
type Type uint8

// List of generic column types.
const (
	TypeNull Type = iota
	TypeInteger
	TypeBigInteger
	TypeSmallInteger
	TypeBoolean
	TypeString
	TypeText
	TypeNumeric
	TypeFloat
	TypeDate
	TypeTime
	TypeDateTime
	TypeInterval
	TypeLargeBinary
	TypeJSON
	TypeUUID
	TypeEnum
	endTypes
)

var typeNames = [...]string{
	TypeNull:         "NullType",
	TypeInteger:      "Integer",
	TypeBigInteger:   "BigInteger",
	TypeSmallInteger: "SmallInteger",
	TypeBoolean:      "Boolean",
	TypeString:       "String",
	TypeText:         "Text",
	TypeNumeric:      "Numeric",
	TypeFloat:        "Float",
	TypeDate:         "Date",
	TypeTime:         "Time",
	TypeDateTime:     "DateTime",
	TypeInterval:     "Interval",
	TypeLargeBinary:  "LargeBinary",
	TypeJSON:         "JSON",
	TypeUUID:         "Uuid",
	TypeEnum:         "Enum",
}

// Valid reports if the given type is one of the known generic types.
func (t Type) Valid() bool { return t < endTypes }

// Name returns the class name of the type in generated code.
func (t Type) Name() string {
	if !t.Valid() {
		return typeNames[TypeNull]
	}
	return typeNames[t]
}

// Package returns the package the type class is imported from.
func (t Type) Package() string {
	if t == TypeNull || !t.Valid() {
		return "sqlalchemy.types"
	}
	return "sqlalchemy"
}

// String implements the fmt.Stringer interface.
func (t Type) String() string { return t.Name() }

// TypeInfo holds the generic type of a column with its arguments.
// Zero values mean "not set" and are left out of the rendered form.
type TypeInfo struct {
	Type      Type     `json:"type" msgpack:"type"`
	Length    int      `json:"length,omitempty" msgpack:"length,omitempty"`
	Precision *int     `json:"precision,omitempty" msgpack:"precision,omitempty"`
	Scale     *int     `json:"scale,omitempty" msgpack:"scale,omitempty"`
	Timezone  bool     `json:"timezone,omitempty" msgpack:"timezone,omitempty"`
	Enums     []string `json:"enums,omitempty" msgpack:"enums,omitempty"`
}

// String returns the constructor expression of the type, for example
// Numeric(precision=10, scale=2). Only the arguments that apply to the
// type category are rendered.
func (ti *TypeInfo) String() string {
	if ti == nil {
		return TypeNull.Name() + "()"
	}
	var args []string
	switch ti.Type {
	case TypeString, TypeText, TypeLargeBinary:
		if ti.Length > 0 {
			args = append(args, "length="+strconv.Itoa(ti.Length))
		}
	case TypeNumeric:
		if ti.Precision != nil {
			args = append(args, "precision="+strconv.Itoa(*ti.Precision))
		}
		if ti.Scale != nil {
			args = append(args, "scale="+strconv.Itoa(*ti.Scale))
		}
	case TypeFloat:
		if ti.Precision != nil {
			args = append(args, "precision="+strconv.Itoa(*ti.Precision))
		}
	case TypeDateTime, TypeTime:
		if ti.Timezone {
			args = append(args, "timezone=True")
		}
	case TypeEnum:
		for _, v := range ti.Enums {
			args = append(args, pyfmt.Repr(v))
		}
	}
	return ti.Type.Name() + "(" + strings.Join(args, ", ") + ")"
}
