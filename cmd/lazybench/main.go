// lazybench runs grouping, join and ordering pipelines over a synthetic
// order book and reports their timings.
//
// Usage:
//
//	lazybench                                # defaults
//	lazybench --records 500000 --rounds 5    # larger workload
//	lazybench --config bench.yml             # settings from YAML
//	LAZYBENCH_LOG_LEVEL=debug lazybench      # include library debug events
//
// Every query is enumerated twice to check that it replays identically.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/dacapoday/lazy"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := LoadConfig(args)
	if err != nil {
		return err
	}

	log := newLogger(cfg.Log, out)
	lazy.SetLogger(log)

	start := time.Now()
	w := Generate(cfg)
	log.Info().
		Int("orders", len(w.Orders)).
		Int("customers", len(w.Customers)).
		Uint64("seed", cfg.Seed).
		Dur("elapsed", time.Since(start)).
		Msg("workload generated")

	for round := range cfg.Rounds {
		results, err := Run(w, round, log)
		if err != nil {
			return err
		}
		for _, r := range results {
			if !r.Restarts {
				return fmt.Errorf("%s: second enumeration differs from the first", r.Query)
			}
		}
	}
	return nil
}

func newLogger(cfg LogConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "lazybench").Logger()
}
