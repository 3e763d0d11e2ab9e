// cmd/holdsim/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// holdsim flies holding pattern scenarios through the lateral guidance
// with a simple aircraft model and reports how each one went.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmgs/lnav/log"
	"github.com/fmgs/lnav/nav"

	"github.com/goforj/godump"
	"golang.org/x/sync/errgroup"
)

var ticks = flag.Int("ticks", 1800, "Maximum number of simulation steps for each scenario")
var dt = flag.Float64("dt", 1, "Simulation step, in seconds")
var logLevel = flag.String("loglevel", "info", "Logging verbosity: debug, info, warn, error")
var logDir = flag.String("logdir", "", "Directory for log files")
var traceDir = flag.String("trace", "", "If set, write a compressed per-tick trace of each scenario to this directory")
var dump = flag.Bool("dump", false, "Dump the final state of each scenario")
var navLog = flag.String("navlog", "", "Comma-separated navigation log categories (navlog builds only)")
var navLogFix = flag.String("navlogfix", "", "Only write navigation log messages for this fix")

func main() {
	flag.Parse()

	usage := func() {
		fmt.Fprintf(os.Stderr, "usage: holdsim [flags] scenario.json...\nwhere [flags] may be:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if len(flag.Args()) == 0 || *ticks <= 0 || *dt <= 0 {
		usage()
	}

	lg := log.New(*logLevel, *logDir)
	nav.InitNavLog(*navLog != "", *navLog, *navLogFix)

	if *traceDir != "" {
		if err := os.MkdirAll(*traceDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *traceDir, err)
			os.Exit(1)
		}
	}

	results := make([]Result, len(flag.Args()))
	var eg errgroup.Group
	for i, fn := range flag.Args() {
		i, fn := i, fn
		eg.Go(func() error {
			sc, err := LoadScenario(fn, lg)
			if err != nil {
				return err
			}
			results[i], err = runScenario(sc, lg)
			if err != nil {
				return fmt.Errorf("%s: %w", fn, err)
			}
			return nil
		})
	}

	err := eg.Wait()
	for _, r := range results {
		if r.Scenario == "" {
			continue
		}
		fmt.Println(r)
		if *dump {
			godump.Fdump(os.Stdout, r)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenario(sc *Scenario, lg *log.Logger) (Result, error) {
	if *traceDir == "" {
		return sc.Run(*ticks, float32(*dt), nil, lg)
	}

	f, err := os.Create(filepath.Join(*traceDir, sc.Name+".trace.zst"))
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	tw, err := NewTraceWriter(f)
	if err != nil {
		return Result{}, err
	}

	res, err := sc.Run(*ticks, float32(*dt), tw, lg)
	if cerr := tw.Close(); err == nil {
		err = cerr
	}
	lg.Infof("%s: wrote %d trace records to %s", sc.Name, tw.N, f.Name())
	return res, err
}
