// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jayvdb/hsr/internal/config"
	"github.com/jayvdb/hsr/internal/scanner"
)

var (
	initSpec        string
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new hsr configuration file",
	Long: `Initialize a new hsr configuration file in the current directory.

This command creates an hsr.yaml file with sensible defaults
that you can customize for your project.

Features:
  - Auto-detects an API description in the project root
  - Derives the generated package name from go.mod
  - Sets up appropriate exclude patterns

Example:
  hsr init                          # Auto-detect and create config
  hsr init --spec api/openapi.yaml  # Point at a specific description
  hsr init --force                  # Overwrite existing config
  hsr init -i                       # Interactive mode with prompts`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initSpec, "spec", "", "path to the API description. If not specified, auto-detects from the project root")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := "hsr.yaml"

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	// Determine project root
	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	// Create config with sensible defaults
	cfg := config.Default()

	// Detect the description file if not specified
	if initSpec != "" {
		cfg.Spec = initSpec
	} else {
		printVerbose("Looking for an API description...")
		if detected := detectSpecFile(projectRoot); detected != "" {
			cfg.Spec = detected
			printInfo("Detected API description: %s", detected)
		} else {
			printInfo("No API description found. Using default %q.", cfg.Spec)
		}
	}

	// Derive the generated package name from go.mod
	info := detectProjectInfo(projectRoot)
	if info.Package != "" {
		cfg.Package = info.Package
		printVerbose("Detected package name: %s (module %s)", info.Package, info.Module)
	}

	// Global flags win over detection
	if output != "" {
		cfg.Output = output
	}
	if pkgName != "" {
		cfg.Package = pkgName
	}

	// Interactive mode
	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Write config file
	content := buildConfigYAML(cfg)
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Spec: %s", cfg.Spec)
	printVerbose("Output: %s", cfg.Output)
	printVerbose("Package: %s", cfg.Package)

	return nil
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Module  string
	Package string
}

// detectProjectInfo detects project information from go.mod.
func detectProjectInfo(projectRoot string) projectInfo {
	info := projectInfo{}

	goModPath := filepath.Join(projectRoot, "go.mod")
	file, err := os.Open(goModPath)
	if err != nil {
		return info
	}
	defer file.Close()

	s := bufio.NewScanner(file)
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "module ") {
			info.Module = strings.TrimSpace(strings.TrimPrefix(line, "module "))
			info.Package = packageFromModule(info.Module)
			break
		}
	}

	return info
}

// packageFromModule derives a Go package name from a module path,
// e.g. "github.com/user/pet-store/v2" -> "petstore". Returns "" when
// no valid name can be derived.
func packageFromModule(module string) string {
	parts := strings.Split(module, "/")

	// Skip trailing major-version elements like "v2"
	last := len(parts) - 1
	for last > 0 && isVersionElement(parts[last]) {
		last--
	}

	var b strings.Builder
	for _, r := range strings.ToLower(parts[last]) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := strings.TrimLeft(b.String(), "0123456789")

	if !token.IsIdentifier(name) {
		return ""
	}
	return name
}

// isVersionElement reports whether s is a major-version path element.
func isVersionElement(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// detectSpecFile looks for an API description in the project root.
// Only the root itself is scanned, in directory order, and the first
// file that looks like a description wins.
func detectSpecFile(projectRoot string) string {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return ""
	}

	for _, entry := range entries {
		if entry.IsDir() || !scanner.IsSupportedFile(entry.Name()) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(projectRoot, entry.Name()))
		if err != nil {
			continue
		}
		f := scanner.SpecFile{
			Path:    entry.Name(),
			Format:  scanner.DetectFormat(entry.Name()),
			Content: content,
		}
		if f.LooksLikeSpec() {
			return entry.Name()
		}
	}

	return ""
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config) (*config.Config, error) {
	reader := bufio.NewReader(os.Stdin)

	// API description
	fmt.Printf("API description [%s]: ", cfg.Spec)
	spec, _ := reader.ReadString('\n')
	spec = strings.TrimSpace(spec)
	if spec != "" {
		cfg.Spec = spec
	}

	// Output directory
	fmt.Printf("Output directory [%s]: ", cfg.Output)
	outDir, _ := reader.ReadString('\n')
	outDir = strings.TrimSpace(outDir)
	if outDir != "" {
		cfg.Output = outDir
	}

	// Package name
	fmt.Printf("Package name [%s]: ", cfg.Package)
	pkg, _ := reader.ReadString('\n')
	pkg = strings.TrimSpace(pkg)
	if pkg != "" {
		cfg.Package = pkg
	}

	// Emitters
	fmt.Printf("Emitters [%s]: ", strings.Join(cfg.Emitters, ","))
	emitters, _ := reader.ReadString('\n')
	emitters = strings.TrimSpace(emitters)
	if emitters != "" {
		var list []string
		for _, e := range strings.Split(emitters, ",") {
			if e = strings.TrimSpace(e); e != "" {
				list = append(list, e)
			}
		}
		cfg.Emitters = list
	}

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) string {
	data, _ := yaml.Marshal(cfg)

	header := `# hsr configuration file
# https://github.com/jayvdb/hsr

`
	return header + string(data)
}
