// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"encoding/json"
	"fmt"
	"go/format"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jayvdb/hsr/internal/config"
	"github.com/jayvdb/hsr/internal/emit"
	"github.com/jayvdb/hsr/pkg/ir"
)

var (
	printSummary  bool
	printFormat   string
	printEmitters []string
)

var printCmd = &cobra.Command{
	Use:   "print [spec]",
	Short: "Print generated code to stdout",
	Args:  cobra.MaximumNArgs(1),
	Long: `Print generated code to standard output.

By default print runs the configured emitters and writes every artifact
to stdout instead of the output directory. With --summary it prints the
compiled operations and types as YAML or JSON without generating code.

This is useful for piping the output to other tools or for quick inspection.

Example:
  hsr print                           # Print all configured artifacts
  hsr print petstore.yaml -e types    # Print a single artifact
  hsr print --summary                 # Compiled model as YAML
  hsr print --summary -f json | jq .  # Compiled model as JSON`,
	RunE: runPrint,
}

func init() {
	printCmd.Flags().BoolVar(&printSummary, "summary", false, "print the compiled model instead of generated code")
	printCmd.Flags().StringVarP(&printFormat, "format", "f", "yaml", "summary format (yaml or json)")
	printCmd.Flags().StringSliceVarP(&printEmitters, "emitters", "e", nil, "emitters to print (default: all configured)")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply command-line overrides
	if len(args) > 0 {
		cfg.Spec = args[0]
	}
	if pkgName != "" {
		cfg.Package = pkgName
	}
	if len(printEmitters) > 0 {
		cfg.Emitters = printEmitters
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if printFormat != "yaml" && printFormat != "json" {
		return fmt.Errorf("unsupported format %q, must be yaml or json", printFormat)
	}

	printVerbose("Print configuration:")
	printVerbose("  Spec: %s", cfg.Spec)
	printVerbose("  Summary: %t", printSummary)

	model, err := compileFile(cmd.Context(), cfg.Spec)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()

	if printSummary {
		summary := buildSummary(cfg.Spec, model)
		switch printFormat {
		case "json":
			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode summary: %w", err)
			}
			fmt.Fprintln(w, string(data))
		default:
			data, err := yaml.Marshal(summary)
			if err != nil {
				return fmt.Errorf("failed to encode summary: %w", err)
			}
			fmt.Fprint(w, string(data))
		}
		return nil
	}

	artifacts, err := emit.EmitAll(cfg.Emitters, model, emit.Options{
		Package: cfg.Package,
		Addr:    cfg.Server.Addr,
	})
	if err != nil {
		return err
	}

	for i, a := range artifacts {
		src := a.Source
		if cfg.Format {
			formatted, err := format.Source(src)
			if err != nil {
				return fmt.Errorf("failed to format %s: %w", a.Filename, err)
			}
			src = formatted
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		// Single-artifact output stays pipeable, so separator headers
		// only appear when printing more than one file.
		if len(artifacts) > 1 {
			fmt.Fprintf(w, "// ----- %s -----\n", a.Filename)
		}
		if _, err := w.Write(src); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// modelSummary is the printable form of a compiled model.
type modelSummary struct {
	Spec       string         `yaml:"spec" json:"spec"`
	Operations []routeSummary `yaml:"operations" json:"operations"`
	Types      []typeSummary  `yaml:"types" json:"types"`
}

type routeSummary struct {
	Operation   string            `yaml:"operation" json:"operation"`
	Method      string            `yaml:"method" json:"method"`
	Path        string            `yaml:"path" json:"path"`
	PathParams  []paramSummary    `yaml:"pathParameters,omitempty" json:"pathParameters,omitempty"`
	QueryParams []paramSummary    `yaml:"queryParameters,omitempty" json:"queryParameters,omitempty"`
	Body        string            `yaml:"body,omitempty" json:"body,omitempty"`
	Success     responseSummary   `yaml:"success" json:"success"`
	Errors      []responseSummary `yaml:"errors,omitempty" json:"errors,omitempty"`
}

type paramSummary struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

type responseSummary struct {
	Status int    `yaml:"status" json:"status"`
	Type   string `yaml:"type,omitempty" json:"type,omitempty"`
}

type typeSummary struct {
	Name   string         `yaml:"name" json:"name"`
	Alias  string         `yaml:"alias,omitempty" json:"alias,omitempty"`
	Fields []fieldSummary `yaml:"fields,omitempty" json:"fields,omitempty"`
}

type fieldSummary struct {
	Name     string `yaml:"name" json:"name"`
	Type     string `yaml:"type" json:"type"`
	Required bool   `yaml:"required" json:"required"`
}

// buildSummary flattens the model into plain marshalable structs.
// Operations keep table order, types keep name order.
func buildSummary(spec string, model *ir.Model) modelSummary {
	s := modelSummary{
		Spec:       spec,
		Operations: make([]routeSummary, 0, model.Routes.Len()),
		Types:      make([]typeSummary, 0, model.Types.Len()),
	}

	for _, r := range model.Routes.All() {
		rs := routeSummary{
			Operation: r.OperationID.String(),
			Method:    string(r.Method),
			Path:      r.Path.Render(),
			Success:   summarizeResponse(r.Success),
		}
		for _, p := range r.PathParams {
			rs.PathParams = append(rs.PathParams, paramSummary{Name: p.Name.String(), Type: p.Type.String()})
		}
		for _, p := range r.QueryParams {
			rs.QueryParams = append(rs.QueryParams, paramSummary{Name: p.Name.String(), Type: p.Type.String()})
		}
		if r.Body != nil {
			rs.Body = r.Body.String()
		}
		for _, e := range r.Errors {
			rs.Errors = append(rs.Errors, summarizeResponse(e))
		}
		s.Operations = append(s.Operations, rs)
	}

	for _, d := range model.Types.Decls() {
		ts := typeSummary{Name: d.Name.String()}
		if d.IsStruct() {
			for _, f := range d.Struct.Fields() {
				ts.Fields = append(ts.Fields, fieldSummary{
					Name:     f.Name.String(),
					Type:     f.Type.String(),
					Required: f.Required,
				})
			}
		} else {
			ts.Alias = d.Alias.String()
		}
		s.Types = append(s.Types, ts)
	}

	return s
}

func summarizeResponse(r ir.Response) responseSummary {
	rs := responseSummary{Status: r.Status}
	if r.Type != nil {
		rs.Type = r.Type.String()
	}
	return rs
}
