// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jayvdb/hsr/internal/compile"
	"github.com/jayvdb/hsr/internal/config"
	"github.com/jayvdb/hsr/internal/emit"
	"github.com/jayvdb/hsr/pkg/ir"
)

var (
	generateEmitters []string
	generateDryRun   bool
	generateCheck    bool
	generateNoFormat bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [spec]",
	Short: "Generate typed Go code from an OpenAPI description",
	Long: `Generate typed Go code from an OpenAPI 3 description.

The generate command compiles the description and writes one file per
selected emitter into the output directory:

  types       model types (types_gen.go)
  interface   the service interface (handler_gen.go)
  dispatcher  http.HandlerFunc adapters (dispatcher_gen.go)
  server      ServeMux wiring and ListenAndServe (server_gen.go)
  client      HTTP client implementing the interface (client_gen.go)

Example:
  hsr generate                               # Compile the configured description
  hsr generate petstore.yaml                 # Compile a specific description
  hsr generate -e types -e interface         # Generate a subset of artifacts
  hsr generate --check                       # Verify outputs are current (CI)
  hsr generate --dry-run                     # Preview without writing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSliceVarP(&generateEmitters, "emitters", "e", nil, "emitters to run: types, interface, dispatcher, server, client")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output files without writing them")
	generateCmd.Flags().BoolVar(&generateCheck, "check", false, "verify written files are up to date instead of writing")
	generateCmd.Flags().BoolVar(&generateNoFormat, "no-format", false, "skip gofmt on generated files")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Load config
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
	if len(generateEmitters) > 0 {
		cfg.Emitters = generateEmitters
	}
	if generateNoFormat {
		cfg.Format = false
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configPath := cfgFile
	if configPath == "" {
		configPath = config.ConfigFilePath()
	}
	if configPath != "" {
		printVerbose("Using config file %s", configPath)
	}
	printVerbose("Configuration:")
	printVerbose("  Spec: %s", cfg.Spec)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Package: %s", cfg.Package)
	printVerbose("  Emitters: %s", strings.Join(cfg.Emitters, ", "))

	model, err := compileFile(cmd.Context(), cfg.Spec)
	if err != nil {
		return err
	}
	printVerbose("Compiled %d operation(s) and %d type(s)", model.Routes.Len(), model.Types.Len())

	artifacts, err := emit.EmitAll(cfg.Emitters, model, emit.Options{
		Package: cfg.Package,
		Addr:    cfg.Server.Addr,
	})
	if err != nil {
		return err
	}

	writer := emit.NewWriter(cfg.Output)
	if cfg.Format {
		writer.Format = format.Source
	}

	if generateCheck {
		stale, err := writer.CheckAll(artifacts)
		if err != nil {
			return err
		}
		if len(stale) > 0 {
			for _, name := range stale {
				printError("out of date: %s", filepath.Join(cfg.Output, name))
			}
			return fmt.Errorf("%d file(s) out of date, run 'hsr generate'", len(stale))
		}
		printInfo("Generated files are up to date")
		return nil
	}

	if generateDryRun {
		printInfo("Dry run mode - no files will be written")
		for _, a := range artifacts {
			printInfo("  would write %s", filepath.Join(cfg.Output, a.Filename))
		}
		return nil
	}

	paths, err := writer.WriteAll(artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printVerbose("Wrote %s", p)
	}
	printInfo("Generated %d file(s) in %s", len(paths), cfg.Output)

	return nil
}

// compileFile loads, validates, and compiles the description at path.
func compileFile(ctx context.Context, path string) (*ir.Model, error) {
	doc, err := compile.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	model, err := compile.New(doc).Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return model, nil
}

// generateOnce compiles the configured description and writes the
// configured artifacts. Watch mode runs it per change event.
func generateOnce(ctx context.Context, cfg *config.Config) ([]string, error) {
	model, err := compileFile(ctx, cfg.Spec)
	if err != nil {
		return nil, err
	}
	artifacts, err := emit.EmitAll(cfg.Emitters, model, emit.Options{
		Package: cfg.Package,
		Addr:    cfg.Server.Addr,
	})
	if err != nil {
		return nil, err
	}
	writer := emit.NewWriter(cfg.Output)
	if cfg.Format {
		writer.Format = format.Source
	}
	return writer.WriteAll(artifacts)
}
