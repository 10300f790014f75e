// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command minimal renders a ground plane lit by one directional light
// and two spot lights until its window is closed.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"cogentcore.org/core/cli"
	"cogentcore.org/minimal/app"
	"cogentcore.org/minimal/config"
	"cogentcore.org/minimal/dialog"
	"cogentcore.org/minimal/engine"
	"cogentcore.org/minimal/gpurs"
)

func init() {
	// glfw and the gpu must run on the main thread
	runtime.LockOSThread()
}

func main() {
	opts := cli.DefaultOptions("minimal", "Minimal renders a lit ground plane with Cogent Core.")
	opts.DefaultFiles = []string{"minimal.toml"}
	cli.Run(opts, &config.Config{}, Run)
}

// Run runs the example. Declining the configuration dialog is not an error.
func Run(c *config.Config) error { //cli:cmd -root
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, c, app.Deps{
		Plugins: gpurs.Plugins(gpurs.Current()),
		// the default logger writes to stderr at the -v/-q level
		Dialog:  dialog.New(c.Title+" Setup", slog.Default()),
		Console: os.Stderr,
	})
}

// run runs the app, treating a declined configuration dialog as a
// clean exit.
func run(ctx context.Context, c *config.Config, deps app.Deps) error {
	err := app.Run(ctx, c, deps)
	if errors.Is(err, engine.ErrConfigCanceled) {
		return nil
	}
	return err
}
