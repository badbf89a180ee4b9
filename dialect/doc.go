// Package dialect names the database dialects alchemy can reflect and
// assembles the connection strings used to reach them.
//
// # Supported Dialects
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Connection Strings
//
// A Source describes one database. DSN returns the data source name handed to
// database/sql, while EngineURL assembles the SQLAlchemy style URL that is
// written to logs (with the password masked by Redacted):
//
//	src := dialect.Source{Dialect: dialect.Postgres, Host: "db", Port: 5432, User: "app", Database: "shop"}
//	src.DSN()      // postgres://app@db:5432/shop?sslmode=disable
//	src.Redacted() // postgresql://app:xxxxx@db:5432/shop
package dialect
