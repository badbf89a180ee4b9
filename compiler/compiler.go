// Package compiler runs alchemy end to end: it reflects a database (or
// reads a snapshot of one), builds the gen.Lab and writes the generated
// package.
//
//	cfg, err := compiler.LoadConfig("alchemy.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := compiler.Generate(ctx, cfg, slog.Default())
package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syssam/alchemy/compiler/gen"
	"github.com/syssam/alchemy/compiler/load"
)

// Load returns the schema the configuration describes. A configured source
// is reflected, and the result written to the snapshot file if one is set;
// otherwise the snapshot file is read.
func Load(ctx context.Context, cfg *Config, logger *slog.Logger) (*load.Schema, error) {
	if cfg.Source.Dialect == "" {
		s, err := load.ReadFile(cfg.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("compiler: %w", err)
		}
		logger.Debug("loaded snapshot", "path", cfg.Snapshot, "tables", len(s.Tables))
		return s, nil
	}
	logger.Info("inspecting database", "url", cfg.Source.Redacted(), "schemas", cfg.Schemas)
	s, err := load.Inspect(ctx, cfg.Source, cfg.Schemas...)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}
	if cfg.Snapshot != "" {
		if err := load.WriteFile(cfg.Snapshot, s); err != nil {
			return nil, fmt.Errorf("compiler: %w", err)
		}
		logger.Debug("wrote snapshot", "path", cfg.Snapshot)
	}
	return s, nil
}

// Generate loads the schema and writes the generated package.
func Generate(ctx context.Context, cfg *Config, logger *slog.Logger) (*gen.Report, error) {
	s, err := Load(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return GenerateSchema(ctx, cfg, s, logger)
}

// GenerateSchema writes the generated package of s.
func GenerateSchema(ctx context.Context, cfg *Config, s *load.Schema, logger *slog.Logger) (*gen.Report, error) {
	gc, err := gen.NewConfig(append(cfg.Options(), gen.WithLogger(logger))...)
	if err != nil {
		return nil, err
	}
	lab, err := gen.NewLab(gc, s)
	if err != nil {
		return nil, fmt.Errorf("compiler: build lab: %w", err)
	}
	return lab.CreateClone(ctx, "")
}
