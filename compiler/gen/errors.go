package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates metadata that cannot be modeled, such as a
	// constraint referencing a column that does not exist.
	ErrInvalidSchema = errors.New("alchemy: invalid schema")
	// ErrUnsupportedConstraint indicates a constraint kind other than check,
	// foreign-key, primary-key and unique.
	ErrUnsupportedConstraint = errors.New("alchemy: unsupported constraint type")
	// ErrUnsupportedExpression indicates an index over expressions.
	ErrUnsupportedExpression = errors.New("alchemy: unsupported index expression")
	// ErrMissingPrimaryKey indicates a table without an explicit or inferable primary key.
	ErrMissingPrimaryKey = errors.New("alchemy: missing primary key")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("alchemy: missing configuration")
	// ErrGenerationFailed indicates a failure while writing the generated package.
	ErrGenerationFailed = errors.New("alchemy: code generation failed")
)

// SchemaError represents metadata that cannot be modeled.
type SchemaError struct {
	Table   string
	Object  string // Column, constraint or index name (if applicable).
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("alchemy: schema error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Object != "" {
		b.WriteString(" object ")
		b.WriteString(e.Object)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(table, object, message string, cause error) *SchemaError {
	return &SchemaError{
		Table:   table,
		Object:  object,
		Message: message,
		Cause:   cause,
	}
}

// ConstraintError is returned when a table carries a constraint of an
// unsupported kind. It aborts the construction of the whole Lab.
type ConstraintError struct {
	Table      string
	Constraint string
	Kind       string
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	name := e.Constraint
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("alchemy: unsupported constraint type %q for constraint %s on table %s", e.Kind, name, e.Table)
}

// Is reports whether the target matches the sentinel error for ConstraintError.
func (e *ConstraintError) Is(target error) bool {
	return target == ErrUnsupportedConstraint
}

// IndexError is returned when an index cannot be rendered.
type IndexError struct {
	Table string
	Index string
	Expr  string
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("alchemy: index %s on table %s: only columns are supported in index expressions (got %q)", e.Index, e.Table, e.Expr)
}

// Is reports whether the target matches the sentinel error for IndexError.
func (e *IndexError) Is(target error) bool {
	return target == ErrUnsupportedExpression
}

// TableError is returned when no primary key can be established for a table.
type TableError struct {
	Table string
}

// Error implements the error interface.
func (e *TableError) Error() string {
	return fmt.Sprintf("alchemy: table %s does not have a primary key constraint, and no suitable combination of columns could be found", e.Table)
}

// Is reports whether the target matches the sentinel error for TableError.
func (e *TableError) Is(target error) bool {
	return target == ErrMissingPrimaryKey
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("alchemy: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("alchemy: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failure while writing the generated package.
type GenerationError struct {
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("alchemy: generation error")
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(file, message string, cause error) *GenerationError {
	return &GenerationError{
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConstraintError reports whether the error is a ConstraintError.
func IsConstraintError(err error) bool {
	var constraintErr *ConstraintError
	return errors.As(err, &constraintErr)
}

// IsIndexError reports whether the error is an IndexError.
func IsIndexError(err error) bool {
	var indexErr *IndexError
	return errors.As(err, &indexErr)
}

// IsTableError reports whether the error is a TableError.
func IsTableError(err error) bool {
	var tableErr *TableError
	return errors.As(err, &tableErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
