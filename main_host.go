//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"tact/app"
	"tact/hal"
)

func main() {
	var cfg hal.HeadlessConfig
	var dim, sleep time.Duration
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.DurationVar(&dim, "dim", 0, "Display dim timeout (0 = default).")
	flag.DurationVar(&sleep, "sleep", 0, "Display sleep timeout after dimming (0 = default).")
	flag.Parse()

	sysCfg := app.Config{DimTimeout: dim, SleepTimeout: sleep}
	newSystem := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, sysCfg)
	}

	if cfg.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newSystem, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newSystem); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
