package compiler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/alchemy/compiler/gen"
	"github.com/syssam/alchemy/dialect"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("ALCHEMY_TEST_PASSWORD", "s3cret")
	cfg, err := ParseConfig([]byte(`
source:
  dialect: postgres
  host: db
  port: 5432
  user: app
  password: ${ALCHEMY_TEST_PASSWORD}
  database: shop
  slow_query: 250ms
schemas: [public, billing]
target: models
header: Code generated by alchemy. DO NOT EDIT.
workers: 4
plugins: [one_to_many, many_to_many]
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, dialect.Source{
		Dialect: dialect.Postgres, Host: "db", Port: 5432, User: "app", Password: "s3cret", Database: "shop",
		SlowQuery: 250 * time.Millisecond,
	}, cfg.Source)
	assert.Equal(t, []string{"public", "billing"}, cfg.Schemas)
	assert.Equal(t, "models", cfg.Target)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, Log{Level: "debug", Format: "json"}, cfg.Log)

	gc, err := gen.NewConfig(cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, "models", gc.Target)
	assert.Equal(t, "Code generated by alchemy. DO NOT EDIT.", gc.Header)
	assert.Len(t, gc.Plugins, 2)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "no input",
			yaml: "target: models",
			want: []string{"either a source or a snapshot is required"},
		},
		{
			name: "no target",
			yaml: "snapshot: schema.msgpack",
			want: []string{"target directory cannot be empty"},
		},
		{
			name: "bad source",
			yaml: "source: {dialect: oracle}\ntarget: models",
			want: []string{`unsupported dialect "oracle"`},
		},
		{
			name: "unknown plugin and log settings",
			yaml: "snapshot: s\ntarget: t\nplugins: [one_to_one]\nlog: {level: loud, format: xml}",
			want: []string{"one_to_one", "log.level", "log.format"},
		},
		{
			name: "unknown key",
			yaml: "snapshot: s\ntarget: t\noutput: x",
			want: []string{"field output not found"},
		},
		{
			name: "empty",
			yaml: "",
			want: []string{"either a source or a snapshot is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alchemy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot: schema.msgpack\ntarget: /tmp/models\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "schema.msgpack"), cfg.Snapshot)
	assert.Equal(t, "/tmp/models", cfg.Target)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigDotenv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ALCHEMY_TEST_HOST=db.internal\nALCHEMY_TEST_USER=from-file\n"), 0o644))
	path := filepath.Join(dir, "alchemy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  dialect: mysql\n  host: ${ALCHEMY_TEST_HOST}\n  user: ${ALCHEMY_TEST_USER}\ntarget: models\n"), 0o644))
	t.Setenv("ALCHEMY_TEST_USER", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Source.Host)
	assert.Equal(t, "from-env", cfg.Source.User)
	assert.Equal(t, filepath.Join(dir, "models"), cfg.Target)
}

func TestLogNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := Log{Level: "warn", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "table", "books")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"table":"books"`)

	buf.Reset()
	l, err = Log{}.NewLogger(&buf)
	require.NoError(t, err)
	l.Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	_, err = Log{Level: "loud"}.NewLogger(&buf)
	assert.True(t, gen.IsConfigError(err))
}

func TestParseTOML(t *testing.T) {
	cfg, err := ParseTOML([]byte(`
target = "models"
plugins = ["many_to_many"]

[source]
dialect = "sqlite"
path = "library.db"
slow_query = "1s"

[log]
level = "warn"
`))
	require.NoError(t, err)
	assert.Equal(t, dialect.Source{Dialect: dialect.SQLite, Path: "library.db", SlowQuery: time.Second}, cfg.Source)
	assert.Equal(t, []string{"many_to_many"}, cfg.Plugins)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = ParseTOML([]byte("target = \"models\"\nsnapshot = \"s\"\noutput = \"x\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "output"`)

	dir := t.TempDir()
	path := filepath.Join(dir, "alchemy.toml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot = \"schema.msgpack\"\ntarget = \"models\"\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "models"), cfg.Target)
}
