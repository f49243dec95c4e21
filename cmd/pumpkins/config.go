// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/progress"
)

type Config struct {
	// Item is the singular name of the smashed items.
	Item string

	// Items is the number of items to smash.
	Items int64

	// Delay is the time it takes to smash one item.
	Delay time.Duration

	// Interval is the minimum time between status lines.
	Interval time.Duration

	// Workers is the number of goroutines of the concurrent mode.
	Workers int64

	// Threshold is the number of updates each goroutine of the concurrent
	// mode buffers before passing them to the shared logger.
	Threshold int64
}

// newConfig returns the configuration read from the environment.
func newConfig() (*Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Item, err = env("PROGRESS_ITEM", "pumpkin"); err != nil {
		return nil, err
	}
	if cfg.Items, err = env("PROGRESS_ITEMS", int64(1000)); err != nil {
		return nil, err
	}
	if cfg.Delay, err = env("PROGRESS_DELAY", 10*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.Interval, err = env("PROGRESS_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.Workers, err = env("PROGRESS_WORKERS", int64(4)); err != nil {
		return nil, err
	}
	if cfg.Threshold, err = env("PROGRESS_THRESHOLD", int64(progress.DefaultThreshold)); err != nil {
		return nil, err
	}
	switch {
	case cfg.Items < 0:
		return nil, fmt.Errorf("PROGRESS_ITEMS must not be negative, got %d", cfg.Items)
	case cfg.Workers < 1:
		return nil, fmt.Errorf("PROGRESS_WORKERS must be positive, got %d", cfg.Workers)
	case cfg.Threshold < 1 || cfg.Threshold > 1<<32-1:
		return nil, fmt.Errorf("PROGRESS_THRESHOLD out of range: %d", cfg.Threshold)
	}
	return &cfg, nil
}

// env reads a value from the os environment and returns a fallback
// when it is unset.
func env[T string | int64 | time.Duration](key string, fallback T) (T, error) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	switch any(fallback).(type) {
	case string:
		return any(s).(T), nil
	case int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fallback, fmt.Errorf("bad value %q for %s: %v", s, key, err)
		}
		return any(v).(T), nil
	case time.Duration:
		v, err := time.ParseDuration(s)
		if err != nil {
			return fallback, fmt.Errorf("bad value %q for %s: %v", s, key, err)
		}
		return any(v).(T), nil
	}
	return fallback, nil
}
