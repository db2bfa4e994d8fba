// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jayvdb/hsr/internal/config"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [spec]",
	Short: "Watch the API description and regenerate on change",
	Args:  cobra.MaximumNArgs(1),
	Long: `Watch the API description and regenerate on every change.

Watch runs one generation pass immediately, then monitors the
description file and reruns generation whenever it changes. Rapid
successive writes are coalesced by the debounce window. Generation
failures are reported and watching continues, so a half-saved edit
does not end the session.

Example:
  hsr watch                               # Watch the configured spec
  hsr watch petstore.yaml                 # Watch a specific file
  hsr watch --debounce 1000               # Wait 1s before regenerating
  hsr watch --on-change "go test ./..."   # Run a command after regeneration`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 500, "debounce window in milliseconds")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after each regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply command-line overrides
	if len(args) > 0 {
		cfg.Spec = args[0]
	}
	if output != "" {
		cfg.Output = output
	}
	if pkgName != "" {
		cfg.Package = pkgName
	}
	if cmd.Flags().Changed("debounce") {
		cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		cfg.Watch.OnChange = watchOnChange
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	absSpec, err := filepath.Abs(cfg.Spec)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cfg.Spec, err)
	}

	printVerbose("Watch configuration:")
	printVerbose("  Spec: %s", absSpec)
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	if cfg.Watch.OnChange != "" {
		printVerbose("  On change: %s", cfg.Watch.OnChange)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate(ctx, cfg)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files by rename, which drops a watch placed on
	// the file itself. Watch the directory and filter events instead.
	if err := watcher.Add(filepath.Dir(absSpec)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absSpec), err)
	}

	printInfo("Watching %s", displayPath(absSpec))
	printInfo("Press Ctrl+C to stop")

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			printInfo("Stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absSpec {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			printVerbose("Change detected: %s (%s)", displayPath(event.Name), event.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError("watch error: %v", err)

		case <-timerC:
			regenerate(ctx, cfg)
		}
	}
}

// regenerate runs one generation pass and reports the outcome without
// stopping the watch loop.
func regenerate(ctx context.Context, cfg *config.Config) {
	start := time.Now()
	paths, err := generateOnce(ctx, cfg)
	if err != nil {
		printError("%v", err)
		return
	}
	printInfo("Generated %d file(s) in %s (%s)", len(paths), cfg.Output, time.Since(start).Round(time.Millisecond))
	runOnChange(ctx, cfg.Watch.OnChange)
}

// runOnChange runs the configured post-generation hook through the shell.
func runOnChange(ctx context.Context, command string) {
	if command == "" {
		return
	}
	printVerbose("Running: %s", command)
	hook := exec.CommandContext(ctx, "sh", "-c", command)
	hook.Stdout = os.Stdout
	hook.Stderr = os.Stderr
	if err := hook.Run(); err != nil {
		printError("on-change command failed: %v", err)
	}
}
