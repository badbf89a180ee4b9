// Package gen turns a reflected schema snapshot into a Python package of
// SQLAlchemy declarative models.
//
// # Architecture
//
// Generation flows one way:
//
//	load.Schema (snapshot of the database metadata)
//	        ↓
//	   Lab (tables, columns, constraints, indexes with computed properties)
//	        ↓
//	   Plugins (derived relationships, merged by an Accumulator)
//	        ↓
//	   Render (one TableResult per table, generated or skipped)
//	        ↓
//	   _base.py, <table>.py, __init__.py
//
// # Key Types
//
//   - Lab: owns every Table of the schema and writes the package
//   - Table: class name, key plan, relationships, imports and Codegen
//   - Column: generic type, nullability, comment and server defaults
//   - Constraint: check, foreign key, primary key or unique constraint
//   - Index: plain column index
//   - Plugin: a function of a computed Lab returning imports and fragments
//
// Everything is computed when the Lab is built. Rendering never mutates
// the Lab, so tables render in parallel and repeated renders are identical.
//
// # Primary Keys
//
// A table without an explicit primary key constraint gets an implicit one
// made of all of its non-nullable columns. A table with neither cannot be
// mapped and is skipped:
//
//	report, err := lab.CreateClone(ctx, "models", relation.OneToMany)
//	for _, s := range report.Skipped {
//		fmt.Println(s.Table, s.Reason) // orphans: alchemy: table orphans does not have a primary key ...
//	}
//
// # Error Handling
//
// Construction errors abort the run:
//
//   - SchemaError: references to unknown tables or columns
//   - ConstraintError: constraint kinds other than the supported four
//
// Rendering errors only skip the table:
//
//   - TableError: no primary key can be established
//   - IndexError: index over expressions
//
// Each error type matches a sentinel with errors.Is:
//
//	if errors.Is(err, gen.ErrUnsupportedConstraint) {
//		// ...
//	}
package gen
