// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for hsr.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	output  string
	pkgName string
	verbose bool
	quiet   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hsr",
	Short: "Typed Go server and client generator for OpenAPI 3",
	Long: `hsr compiles an OpenAPI 3 description into typed Go code: model types,
a service interface, an http.ServeMux dispatcher, a server entry point,
and a client implementing the same interface over the wire.

The five artifacts share one naming contract, so the handler you
implement, the routes the dispatcher mounts, and the calls the client
makes all line up by construction.

Example:
  hsr generate                         # Generate code from openapi.yaml
  hsr generate petstore.yaml -o gen    # Generate from a specific description
  hsr check                            # Validate every description in the tree
  hsr diff old.yaml new.yaml           # Compare two descriptions
  hsr watch                            # Regenerate on description changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: hsr.yaml)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output directory (default: gen)")
	rootCmd.PersistentFlags().StringVarP(&pkgName, "package", "p", "", "package name of the generated files (default: api)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(printCmd)
}

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

// GetOutput returns the output directory from the flag.
func GetOutput() string {
	return output
}

// GetPackage returns the generated package name from the flag.
func GetPackage() string {
	return pkgName
}

// IsVerbose returns whether verbose output is enabled.
func IsVerbose() bool {
	return verbose
}

// IsQuiet returns whether quiet mode is enabled.
func IsQuiet() bool {
	return quiet
}

// printInfo prints a message if not in quiet mode.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printVerbose prints a message if verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printError prints an error message.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
