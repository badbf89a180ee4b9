package load

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	// Drivers for the supported dialects.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/alchemy/dialect"
	dsql "github.com/syssam/alchemy/dialect/sql"
)

// Inspect connects to the database described by src and returns the
// snapshot of its default schema. When schema names are given, those
// schemas are inspected instead and tables are qualified with them.
// Inspection queries are logged to the default logger at debug level.
func Inspect(ctx context.Context, src dialect.Source, schemas ...string) (*Schema, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open(src.DriverName(), src.DSN())
	if err != nil {
		return nil, fmt.Errorf("load: open %s: %w", src.Redacted(), err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("load: connect %s: %w", src.Redacted(), err)
	}
	logger := slog.Default()
	conn := dsql.NewStatsConn(db,
		dsql.WithQueryLog(logger),
		dsql.WithSlowQueryLog(logger),
		dsql.WithSlowThreshold(src.SlowQuery),
	)
	s, err := InspectDB(ctx, src.Dialect, conn, schemas...)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "inspected database", "url", src.Redacted(), "tables", len(s.Tables), "stats", conn.QueryStats().Stats())
	return s, nil
}

// InspectDB is like Inspect, but uses an already opened database.
func InspectDB(ctx context.Context, name string, db schema.ExecQuerier, schemas ...string) (*Schema, error) {
	drv, err := openDriver(name, db)
	if err != nil {
		return nil, err
	}
	if len(schemas) == 0 {
		s, err := drv.InspectSchema(ctx, "", nil)
		if err != nil {
			return nil, fmt.Errorf("load: inspect schema: %w", err)
		}
		return FromSchemas(false, s), nil
	}
	realm, err := drv.InspectRealm(ctx, &schema.InspectRealmOption{Schemas: schemas})
	if err != nil {
		return nil, fmt.Errorf("load: inspect schemas %v: %w", schemas, err)
	}
	return FromSchemas(true, realm.Schemas...), nil
}

func openDriver(name string, db schema.ExecQuerier) (drv migrate.Driver, err error) {
	switch name {
	case dialect.SQLite:
		drv, err = sqlite.Open(db)
	case dialect.MySQL:
		drv, err = mysql.Open(db)
	case dialect.Postgres:
		drv, err = postgres.Open(db)
	default:
		return nil, fmt.Errorf("load: unsupported dialect %q", name)
	}
	if err != nil {
		return nil, fmt.Errorf("load: open %s driver: %w", name, err)
	}
	return drv, nil
}
