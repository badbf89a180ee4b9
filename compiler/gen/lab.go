package gen

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/alchemy/compiler/load"
)

const baseModule = `__all__ = ["Base"]

from sqlalchemy.orm import declarative_base


Base = declarative_base()
`

// Lab owns the intermediate representation of a schema and writes it out
// as a package of SQLAlchemy models.
type Lab struct {
	cfg    *Config
	Tables []*Table
	byName map[string]*Table
}

// NewLab builds the tables of s, in the order s lists them, and computes
// their properties. Tables are built in two passes so that foreign keys
// may reference any table of the schema. Structural errors, such as an
// unsupported constraint kind or a reference to an unknown column, are
// returned as is.
func NewLab(cfg *Config, s *load.Schema) (*Lab, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if s == nil {
		return nil, NewSchemaError("", "", "nil schema", nil)
	}
	l := &Lab{
		cfg:    cfg,
		Tables: make([]*Table, 0, len(s.Tables)),
		byName: make(map[string]*Table, len(s.Tables)),
	}
	for _, def := range s.Tables {
		t := newTable(def, l)
		// Tables are keyed by bare name; the first one wins.
		if _, ok := l.byName[t.Name]; ok {
			cfg.logger().Warn("dropping duplicate table name", "table", t.Name, "schema", def.Schema)
			continue
		}
		l.byName[t.Name] = t
		l.Tables = append(l.Tables, t)
	}
	for _, t := range l.Tables {
		t.computeProperties()
	}
	for _, t := range l.Tables {
		if err := t.resolve(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Config returns the configuration of the lab.
func (l *Lab) Config() *Config { return l.cfg }

// Table returns the table with the given name, or nil.
func (l *Lab) Table(name string) *Table { return l.byName[name] }

// TableResult is the outcome of rendering one table: either code, or the
// reason the table was skipped.
type TableResult struct {
	Table *Table
	Code  *TableCode
	Err   error
}

// Skipped reports whether the table was skipped.
func (r TableResult) Skipped() bool { return r.Err != nil }

// Render renders every table, in parallel. Per-table failures are reported
// in the results; the returned error is only set when ctx is done.
func (l *Lab) Render(ctx context.Context) ([]TableResult, error) {
	results := make([]TableResult, len(l.Tables))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(l.cfg.workers())
	for i, t := range l.Tables {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			code, err := t.Codegen()
			results[i] = TableResult{Table: t, Code: code, Err: err}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CreateClone runs the plugins, renders all tables and writes the package
// into target. Tables that cannot be rendered are logged, left out of the
// package and listed in the report. An empty target falls back to the
// configured one; plugins run after the configured ones.
func (l *Lab) CreateClone(ctx context.Context, target string, plugins ...Plugin) (*Report, error) {
	if target == "" {
		target = l.cfg.Target
	}
	if target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory")
	}
	report := &Report{RunID: uuid.NewString(), Target: target}
	log := l.cfg.logger().With("run", report.RunID)
	acc := NewAccumulator()
	for _, p := range append(append([]Plugin(nil), l.cfg.Plugins...), plugins...) {
		acc.Add(p(l))
	}
	results, err := l.Render(ctx)
	if err != nil {
		return nil, err
	}

	files := []fileTask{{name: "_base.py", content: []byte(baseModule)}}
	var generated []*Table
	for _, r := range results {
		if r.Skipped() {
			log.Warn("skipping table", "table", r.Table.Name, "error", r.Err)
			report.Skipped = append(report.Skipped, Skip{Table: r.Table.Name, Reason: r.Err})
			continue
		}
		files = append(files, fileTask{name: r.Table.Name + ".py", content: []byte(l.module(r.Table, r.Code, acc))})
		generated = append(generated, r.Table)
		report.Generated = append(report.Generated, r.Table.Name)
	}
	files = append(files, fileTask{name: "__init__.py", content: []byte(packageIndex(generated))})

	w := NewFileWriter(target, l.cfg.workers())
	if err := w.WriteAll(ctx, files); err != nil {
		return nil, err
	}
	for _, f := range files {
		report.Files = append(report.Files, f.name)
	}
	log.Info("generated package", "target", target,
		"tables", len(report.Generated), "skipped", len(report.Skipped), "bytes", w.Metrics().TotalBytes)
	return report, nil
}

// module assembles the source of a table module.
func (l *Lab) module(t *Table, code *TableCode, acc *Accumulator) string {
	var b strings.Builder
	if h := l.cfg.Header; h != "" {
		if !strings.HasPrefix(h, "#") {
			h = "# " + h
		}
		b.WriteString(h + "\n\n")
	}
	imports := t.Imports()
	imports.Merge(acc.Imports(t.Name))
	for _, line := range imports.Lines() {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	b.WriteString("from ._base import Base\n\n\n")
	b.WriteString(code.Class)
	for _, f := range acc.Fragments(t.Name, LocationClass) {
		b.WriteString("    " + f + "\n")
	}
	b.WriteString("\n")
	b.WriteString(code.End)
	for _, f := range acc.Fragments(t.Name, LocationEnd) {
		b.WriteString(f + "\n")
	}
	return b.String()
}

func packageIndex(tables []*Table) string {
	var b strings.Builder
	b.WriteString("__all__ = [\n")
	b.WriteString("    \"_base\",\n")
	for _, t := range tables {
		b.WriteString("    \"" + t.ClassName + "\",\n")
	}
	b.WriteString("]\n\n")
	b.WriteString("from . import _base\n")
	for _, t := range tables {
		b.WriteString("from ." + t.Name + " import " + t.ClassName + "\n")
	}
	return b.String()
}
