package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/alchemy/compiler/gen"
	"github.com/syssam/alchemy/contrib/relation"
	"github.com/syssam/alchemy/dialect"
)

// Config is the configuration file of a generation run, written in YAML
// or TOML.
//
//	source:
//	  dialect: postgres
//	  host: localhost
//	  user: app
//	  password: ${DB_PASSWORD}
//	  database: shop
//	target: models
//	plugins: [one_to_many, many_to_many]
type Config struct {
	// Source is the database to reflect. It may be left empty when Snapshot
	// names an existing snapshot file.
	Source dialect.Source `yaml:"source" toml:"source"`
	// Schemas restricts reflection to the named schemas and qualifies
	// the generated tables with them.
	Schemas []string `yaml:"schemas" toml:"schemas"`
	// Snapshot is a msgpack snapshot file. Without a source it is the input
	// of the run; with one, the reflected schema is written to it.
	Snapshot string `yaml:"snapshot" toml:"snapshot"`
	// Target is the output directory of the generated package.
	Target  string   `yaml:"target" toml:"target"`
	Header  string   `yaml:"header" toml:"header"`
	Workers int      `yaml:"workers" toml:"workers"`
	Plugins []string `yaml:"plugins" toml:"plugins"`
	Log     Log      `yaml:"log" toml:"log"`
}

// Log configures the logger of the command line tool.
type Log struct {
	// Level is one of debug, info, warn or error. Defaults to info.
	Level string `yaml:"level" toml:"level"`
	// Format is text or json. Defaults to text.
	Format string `yaml:"format" toml:"format"`
}

// LoadConfig reads the configuration file at path. Relative file paths in
// the configuration are resolved against the directory of the file, and a
// .env file in that directory supplies ${VAR} values missing from the
// environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiler: read config: %w", err)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	dotenv := map[string]string{}
	if envFile := filepath.Join(dir, ".env"); fileExists(envFile) {
		if dotenv, err = godotenv.Read(envFile); err != nil {
			return nil, fmt.Errorf("compiler: read %s: %w", envFile, err)
		}
	}
	format := "yaml"
	if filepath.Ext(path) == ".toml" {
		format = "toml"
	}
	cfg, err := parseConfig(data, format, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	})
	if err != nil {
		return nil, fmt.Errorf("compiler: %s: %w", path, err)
	}
	for _, p := range []*string{&cfg.Snapshot, &cfg.Target, &cfg.Source.Path} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return cfg, nil
}

// ParseConfig decodes a YAML configuration file. ${VAR} references are
// expanded from the environment before decoding, and unknown keys are
// rejected.
func ParseConfig(data []byte) (*Config, error) {
	return parseConfig(data, "yaml", os.Getenv)
}

// ParseTOML is like ParseConfig for TOML configuration files.
func ParseTOML(data []byte) (*Config, error) {
	return parseConfig(data, "toml", os.Getenv)
}

func parseConfig(data []byte, format string, getenv func(string) string) (*Config, error) {
	expanded := os.Expand(string(data), getenv)
	cfg := &Config{}
	switch format {
	case "toml":
		md, err := toml.Decode(expanded, cfg)
		if err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return nil, fmt.Errorf("decode config: unknown key %q", keys[0].String())
		}
	default:
		dec := yaml.NewDecoder(strings.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Source.Dialect != "" {
		if err := c.Source.Validate(); err != nil {
			errs = append(errs, err)
		}
	} else if c.Snapshot == "" {
		errs = append(errs, gen.NewConfigError("source", nil, "either a source or a snapshot is required"))
	}
	if c.Target == "" {
		errs = append(errs, gen.NewConfigError("target", nil, "target directory cannot be empty"))
	}
	for _, name := range c.Plugins {
		if _, ok := relation.Lookup(name); !ok {
			errs = append(errs, gen.NewConfigError("plugins", name, "unknown plugin, expected one of "+strings.Join(relation.Names(), ", ")))
		}
	}
	if _, err := c.Log.level(); err != nil {
		errs = append(errs, err)
	}
	if f := c.Log.Format; f != "" && f != "text" && f != "json" {
		errs = append(errs, gen.NewConfigError("log.format", f, "expected text or json"))
	}
	return errors.Join(errs...)
}

// Options returns the code generation options of the configuration.
func (c *Config) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(c.Target),
		gen.WithHeader(c.Header),
		gen.WithWorkers(c.Workers),
	}
	for _, name := range c.Plugins {
		if p, ok := relation.Lookup(name); ok {
			opts = append(opts, gen.WithPlugins(p))
		}
	}
	return opts
}

// NewLogger returns a logger writing to w as configured.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, gen.NewConfigError("log.level", l.Level, err.Error())
	}
	return level, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
