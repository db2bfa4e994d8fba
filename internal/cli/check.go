// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jayvdb/hsr/internal/compile"
	"github.com/jayvdb/hsr/internal/config"
	"github.com/jayvdb/hsr/internal/scanner"
	"github.com/jayvdb/hsr/pkg/ir"
)

// Exit codes for check command
const (
	ExitCodeValid      = 0 // Every description compiled
	ExitCodeInvalid    = 1 // At least one description failed to compile
	ExitCodeCheckError = 2 // Error during discovery
)

var checkCI bool

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check that API descriptions compile",
	Long: `Check discovers API descriptions and compiles each one.

Every discovered file runs through the full pipeline short of emission:
document validation, reference resolution, type extraction, and route
construction. A description that check accepts will also generate.

Exit codes:
  0  Every description compiled
  1  At least one description failed to compile
  2  Error during discovery

Example:
  hsr check                           # Check descriptions under configured paths
  hsr check ./apis ./services         # Check specific paths
  hsr check petstore.yaml             # Check one file
  hsr check --ci                      # CI mode with exit-code status`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		if checkCI {
			os.Exit(ExitCodeCheckError)
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Determine paths to check
	paths := args
	if len(paths) == 0 {
		paths = cfg.Source.Paths
	}

	printVerbose("Check configuration:")
	printVerbose("  CI mode: %t", checkCI)
	printVerbose("  Paths: %s", strings.Join(paths, ", "))

	files, err := discoverSpecs(cfg, paths)
	if err != nil {
		if checkCI {
			os.Exit(ExitCodeCheckError)
		}
		return err
	}

	valid, invalid := 0, 0
	for _, f := range files {
		model, err := compileData(cmd.Context(), f.Content)
		if err != nil {
			invalid++
			printError("%s: %v", displayPath(f.Path), err)
			continue
		}
		valid++
		printInfo("%s: OK (%d operation(s), %d type(s))", displayPath(f.Path), model.Routes.Len(), model.Types.Len())
	}

	if valid == 0 && invalid == 0 {
		printInfo("No API descriptions found under: %s", strings.Join(paths, ", "))
		if checkCI {
			os.Exit(ExitCodeValid)
		}
		return nil
	}

	if invalid > 0 {
		if checkCI {
			os.Exit(ExitCodeInvalid)
		}
		return fmt.Errorf("%d description(s) failed to compile", invalid)
	}

	printInfo("All %d description(s) compiled", valid)
	if checkCI {
		os.Exit(ExitCodeValid)
	}
	return nil
}

// discoverSpecs scans paths for description files using the configured
// include and exclude patterns. Explicit file arguments bypass the
// patterns; scanned files are kept only when they look like descriptions.
func discoverSpecs(cfg *config.Config, paths []string) ([]scanner.SpecFile, error) {
	scannerCfg := scanner.Config{
		IncludePatterns: cfg.Source.Include,
		ExcludePatterns: cfg.Source.Exclude,
	}

	var files []scanner.SpecFile
	seen := make(map[string]bool)
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		// An explicit file argument bypasses the include patterns.
		if !info.IsDir() {
			if !scanner.IsSupportedFile(absPath) {
				return nil, fmt.Errorf("unsupported file type: %s", path)
			}
			content, err := os.ReadFile(absPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			if !seen[absPath] {
				seen[absPath] = true
				files = append(files, scanner.SpecFile{
					Path:    absPath,
					Format:  scanner.DetectFormat(absPath),
					Content: content,
					ModTime: info.ModTime(),
				})
			}
			continue
		}

		scannerCfg.BasePath = absPath
		s := scanner.New(scannerCfg)
		pathFiles, err := s.Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan path %s: %w", path, err)
		}
		for _, f := range pathFiles {
			if seen[f.Path] {
				continue
			}
			seen[f.Path] = true
			if !f.LooksLikeSpec() {
				printVerbose("Skipping %s (no openapi key)", displayPath(f.Path))
				continue
			}
			files = append(files, f)
		}
	}

	printVerbose("Discovered %d candidate file(s)", len(files))
	return files, nil
}

// compileData compiles an in-memory description.
func compileData(ctx context.Context, data []byte) (*ir.Model, error) {
	doc, err := compile.LoadData(ctx, data)
	if err != nil {
		return nil, err
	}
	return compile.New(doc).Compile()
}

// displayPath shortens path relative to the working directory when it
// fits underneath it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
