// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package main is the entry point for the hsr CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jayvdb/hsr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
