// Package field describes the generic, dialect independent column types a
// reflected column is reduced to before code generation.
//
// Every dialect specific type (VARCHAR2, TIMESTAMPTZ, TINYINT, ...) maps onto
// exactly one Type. The set is closed: rendering switches over it exhaustively,
// and anything that cannot be classified becomes TypeNull.
//
//	info := &field.TypeInfo{Type: field.TypeString, Length: 50}
//	info.String()    // String(length=50)
//	info.Type.Name() // String
//
// # Type Names
//
// Name returns the SQLAlchemy class a generated module imports, and Package
// the module it is imported from:
//
//	field.TypeUUID.Name()    // Uuid
//	field.TypeNull.Package() // sqlalchemy.types
package field
