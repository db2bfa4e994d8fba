// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jayvdb/hsr/internal/diff"
)

var (
	diffFormat   string
	diffExitCode bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Compare two API descriptions",
	Args:  cobra.ExactArgs(2),
	Long: `Compare two API descriptions at the operation and type level.

Diff compiles both descriptions and compares the resulting operations
and types by shape. Documentation changes are ignored. Removed or
modified entries mark the result as breaking; additions alone do not.

Example:
  hsr diff old.yaml new.yaml              # Human-readable report
  hsr diff old.yaml new.yaml -f json      # Machine-readable JSON
  hsr diff old.yaml new.yaml --exit-code  # Fail CI on any change`,
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text", "output format (text, yaml, or json)")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with 1 when the descriptions differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	if diffFormat != "text" && diffFormat != "yaml" && diffFormat != "json" {
		return fmt.Errorf("unsupported format %q, must be text, yaml, or json", diffFormat)
	}

	printVerbose("Diff configuration:")
	printVerbose("  Old: %s", args[0])
	printVerbose("  New: %s", args[1])
	printVerbose("  Format: %s", diffFormat)

	oldModel, err := compileFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	newModel, err := compileFile(cmd.Context(), args[1])
	if err != nil {
		return err
	}

	result := diff.New().Diff(oldModel, newModel)

	w := cmd.OutOrStdout()
	switch diffFormat {
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to encode diff: %w", err)
		}
		fmt.Fprint(w, string(data))
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode diff: %w", err)
		}
		fmt.Fprintln(w, string(data))
	default:
		fmt.Fprint(w, diff.Format(result))
	}

	if diffExitCode && !result.IsEmpty() {
		os.Exit(1)
	}
	return nil
}
