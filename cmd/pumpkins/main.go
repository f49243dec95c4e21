// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Pumpkins smashes imaginary pumpkins while reporting its progress.
//
// It demonstrates the progress package: a slow sequential activity, a
// fully configured logger writing under its own target, and an activity
// spread over several goroutines.
//
// Settings are read from the environment: PROGRESS_ITEM, PROGRESS_ITEMS,
// PROGRESS_DELAY, PROGRESS_INTERVAL, PROGRESS_WORKERS and
// PROGRESS_THRESHOLD.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/progress"
	"golang.org/x/progress/internal/proginfo"
	"golang.org/x/sync/errgroup"
)

var (
	verbose = flag.Bool("v", false, "also print debug and trace lines")
	version = flag.Bool("version", false, "print the program version and exit")
)

// output is the sink of every logger; nil means slog.Default().
var output progress.Sink

func main() {
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if *version {
		printVersion()
		return
	}

	level := progress.LevelInfo
	if *verbose {
		level = progress.LevelTrace
	}
	slog.SetDefault(slog.New(progress.NewHandler(os.Stderr, level)))

	cfg, err := newConfig()
	if err != nil {
		log.Print(err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"slow"}
	}
	switch mode := args[0]; mode {
	case "slow":
		err = smashSlow(ctx, cfg)
	case "target":
		err = smashTarget(ctx, cfg)
	case "concurrent":
		err = smashConcurrent(ctx, cfg)
	case "help":
		flag.CommandLine.SetOutput(os.Stdout)
		flag.Usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "\tpumpkins [slow] (smash pumpkins one at a time)")
	fmt.Fprintln(w, "\tpumpkins target (smash pumpkins with a fully configured logger)")
	fmt.Fprintln(w, "\tpumpkins concurrent (smash pumpkins on several goroutines)")
	fmt.Fprintln(w, "\tpumpkins help")
	fmt.Fprintln(w, "Flags:")
	flag.CommandLine.PrintDefaults()
}

func printVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Println("pumpkins: no build information")
		return
	}
	goVers, progPath, progVers := proginfo.ProgramInfo(info)
	if progVers == "" {
		progVers = "devel"
	}
	fmt.Printf("%s %s (%s)\n", progPath, progVers, goVers)
}

// smash smashes one pumpkin, taking d. It returns early with the error
// of ctx if ctx is done first.
func smash(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// smashAll smashes n pumpkins, reporting each one to pl.
func smashAll(ctx context.Context, pl progress.ProgressLog, n int64, d time.Duration) error {
	for i := int64(0); i < n; i++ {
		if err := smash(ctx, d); err != nil {
			return err
		}
		pl.Update()
	}
	return nil
}

func smashSlow(ctx context.Context, cfg *Config) error {
	pl := progress.New()
	pl.ItemName(cfg.Item).LogInterval(cfg.Interval).Output(output)
	pl.Start("Smashing pumpkins (slowly)...")
	if err := smashAll(ctx, pl, cfg.Items, cfg.Delay); err != nil {
		pl.Stop()
		pl.Warnf("Interrupted: %v", err)
		return err
	}
	pl.Done()
	return nil
}

func smashTarget(ctx context.Context, cfg *Config) error {
	pl := progress.New()
	pl.ItemName(cfg.Item).
		LogInterval(cfg.Interval).
		ExpectedUpdates(uint64(cfg.Items)).
		LocalSpeed(true).
		DisplayMemory(true).
		LogTarget("smash").
		LogLevel(progress.LevelDebug).
		Output(output)
	pl.Debugf("Expecting %d updates", cfg.Items)
	pl.Start("Smashing pumpkins...")
	if err := smashAll(ctx, pl, cfg.Items, cfg.Delay); err != nil {
		pl.Stop()
		pl.Warnf("Interrupted: %v", err)
		return err
	}
	pl.Done()
	pl.Tracef("Smashed %d items", pl.Count())
	return nil
}

func smashConcurrent(ctx context.Context, cfg *Config) error {
	cl := progress.NewConcurrentWithThreshold(uint32(cfg.Threshold))
	cl.ItemName(cfg.Item).
		LogInterval(cfg.Interval).
		ExpectedUpdates(uint64(cfg.Items)).
		Output(output)
	cl.Start(fmt.Sprintf("Smashing pumpkins on %d goroutines...", cfg.Workers))

	g, ctx := errgroup.WithContext(ctx)
	for w := int64(0); w < cfg.Workers; w++ {
		// Spread the remainder over the first workers.
		n := cfg.Items / cfg.Workers
		if w < cfg.Items%cfg.Workers {
			n++
		}
		pl := cl.Duplicate()
		g.Go(func() error {
			defer pl.Close()
			return smashAll(ctx, pl, n, cfg.Delay)
		})
	}
	if err := g.Wait(); err != nil {
		cl.Stop()
		cl.Warnf("Interrupted: %v", err)
		return err
	}
	cl.Done()
	return nil
}
