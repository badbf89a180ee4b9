// alchemy generates a package of SQLAlchemy models from a live database or
// a schema snapshot.
//
//	alchemy [generate] -config alchemy.yaml
//	alchemy dump -config alchemy.yaml -o schema.msgpack
//	alchemy watch -config alchemy.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/alchemy/compiler"
	"github.com/syssam/alchemy/compiler/gen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "alchemy:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := "generate"
	if len(args) > 0 && (args[0] == "generate" || args[0] == "dump" || args[0] == "watch") {
		cmd, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet("alchemy "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", "alchemy.yaml", "configuration file")
	out := fs.String("o", "", "snapshot file to write (dump)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := compiler.LoadConfig(*path)
	if err != nil {
		return err
	}
	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	switch cmd {
	case "dump":
		if *out == "" {
			return errors.New("dump requires -o")
		}
		if cfg.Source.Dialect == "" {
			return errors.New("dump requires a source")
		}
		cfg.Snapshot = *out
		s, err := compiler.Load(ctx, cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %d table(s) to %s\n", len(s.Tables), *out)
		return nil
	case "watch":
		return compiler.Watch(ctx, *path, logger, func(r *gen.Report, err error) {
			if err != nil {
				logger.Error("generation failed", "error", err)
				return
			}
			fmt.Fprintln(stdout, r)
		})
	default:
		r, err := compiler.Generate(ctx, cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, r)
		return nil
	}
}
