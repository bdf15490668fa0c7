// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the tasktree demo: a simulated build pipeline drawn
// with the configured renderer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/jeranaias/tasktree"
	"github.com/jeranaias/tasktree/internal/config"
	"github.com/jeranaias/tasktree/render"
)

// Version information (set at build time)
var Version = "0.1.0"

func main() {
	var (
		configPath  = flag.String("config", "", "config file (default ~/.tasktree/config.toml)")
		concurrency = flag.Int("concurrency", -1, "group concurrency, 0 for unlimited (default from config)")
		rendererArg = flag.String("renderer", "", "renderer: auto, tea, plain or none (default from config)")
		fail        = flag.Bool("fail", false, "make one step of the pipeline fail")
		verbose     = flag.Bool("v", false, "log lifecycle diagnostics to stderr")
		writeConfig = flag.Bool("write-config", false, "write the effective config to ~/.tasktree/config.toml and exit")
		showVersion = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("tasktree v%s\n", Version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if *concurrency >= 0 {
		cfg.Group.Concurrency = *concurrency
	}
	if *rendererArg != "" {
		cfg.Render.Renderer = *rendererArg
	}

	if *writeConfig {
		if err := saveConfig(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	renderer, err := render.ByName(cfg.Render.Renderer, os.Stdout,
		render.WithTheme(cfg.UI.Theme, cfg.UI.NoColor),
		render.WithSpinner(cfg.UI.Spinner),
		render.WithFPS(cfg.Render.FPS),
		render.WithDuration(cfg.Render.ShowDuration),
		render.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tree := tasktree.New(
		tasktree.WithRenderer(renderer),
		tasktree.WithLogger(logger),
		tasktree.WithDefaultConcurrency(cfg.Group.Concurrency),
		tasktree.WithDefaultStopOnError(cfg.Group.StopOnError),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = pipeline(ctx, tree, *fail)
	stop()
	tree.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads path when given, otherwise the default locations. It
// always returns a usable config.
func loadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(path)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg, err
}

func saveConfig(cfg *config.Config) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// =============================================================================
// PIPELINE
// =============================================================================

var errUpload = errors.New("upload rejected: checksum mismatch")

// pipeline runs a nested task, a bounded group and a final step that fails
// when fail is set.
func pipeline(ctx context.Context, tree *tasktree.Tree, fail bool) error {
	_, err := tasktree.Task(ctx, tree, "Prepare workspace", func(ctx context.Context, api *tasktree.API) (struct{}, error) {
		if _, err := tasktree.Task(ctx, api, "Resolve dependencies", step(400*time.Millisecond)); err != nil {
			return struct{}{}, err
		}
		cache, err := tasktree.Task(ctx, api, "Check build cache", func(ctx context.Context, api *tasktree.API) (int, error) {
			if err := sleep(ctx, 300*time.Millisecond); err != nil {
				return 0, err
			}
			api.SetWarning(tasktree.Text("cache is 3 days old"))
			return 12, nil
		})
		if err != nil {
			return struct{}{}, err
		}
		api.SetStatus(fmt.Sprintf("%d cached", cache.Value))
		return struct{}{}, nil
	})
	if err != nil {
		return err
	}

	packages := []string{"api", "cli", "config", "render", "storage", "web"}
	results, err := tasktree.Group(ctx, tree, func(task tasktree.Registrar[int]) []*tasktree.Registration[int] {
		regs := make([]*tasktree.Registration[int], 0, len(packages))
		for _, name := range packages {
			regs = append(regs, task("Compile "+name, compile(name)))
		}
		return regs
	})
	if err != nil {
		return err
	}

	var files int
	for _, n := range results.Values() {
		files += n
	}

	_, err = tasktree.Task(ctx, tree, "Upload artifacts", func(ctx context.Context, api *tasktree.API) (struct{}, error) {
		api.SetStatus(fmt.Sprintf("%d files", files))
		if err := sleep(ctx, 500*time.Millisecond); err != nil {
			return struct{}{}, err
		}
		if fail {
			return struct{}{}, errUpload
		}
		return struct{}{}, nil
	})
	return err
}

func compile(name string) tasktree.Func[int] {
	return func(ctx context.Context, api *tasktree.API) (int, error) {
		files := 5 + rand.Intn(20)
		for i := 1; i <= files; i++ {
			api.SetStatus(fmt.Sprintf("%d/%d", i, files))
			if err := sleep(ctx, 40*time.Millisecond); err != nil {
				return 0, err
			}
		}
		api.SetStatus("")
		api.SetOutput(tasktree.Text(fmt.Sprintf("%s: %d files", name, files)))
		return files, nil
	}
}

func step(d time.Duration) tasktree.Func[struct{}] {
	return func(ctx context.Context, _ *tasktree.API) (struct{}, error) {
		return struct{}{}, sleep(ctx, d)
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
