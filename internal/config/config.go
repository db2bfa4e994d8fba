// SPDX-FileCopyrightText: 2026 hsr
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for hsr.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the hsr configuration.
type Config struct {
	// Spec is the path to the API description file
	Spec string `mapstructure:"spec" yaml:"spec" json:"spec"`

	// Output is the directory the generated files are written to
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Package is the package clause of the generated files
	Package string `mapstructure:"package" yaml:"package" json:"package"`

	// Emitters selects the artifacts to generate (types, interface,
	// dispatcher, server, client)
	Emitters []string `mapstructure:"emitters" yaml:"emitters" json:"emitters"`

	// Format determines whether generated files are gofmt-formatted
	Format bool `mapstructure:"format" yaml:"format" json:"format"`

	// Server contains generated-server configuration
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Source contains description file scanning configuration
	Source SourceConfig `mapstructure:"source" yaml:"source" json:"source"`

	// Watch contains file watching configuration
	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// ServerConfig contains generated-server configuration.
type ServerConfig struct {
	// Addr is the fallback listen address baked into the server artifact
	Addr string `mapstructure:"addr" yaml:"addr" json:"addr"`
}

// SourceConfig contains description file scanning configuration.
type SourceConfig struct {
	// Paths is a list of paths to scan
	Paths []string `mapstructure:"paths" yaml:"paths" json:"paths"`

	// Include is a list of glob patterns to include
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude is a list of glob patterns to exclude
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the debounce duration in milliseconds
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`

	// OnChange is the command to run after each regeneration
	OnChange string `mapstructure:"onChange" yaml:"onChange" json:"onChange"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"hsr.yaml",
	"hsr.json",
	".hsr.yaml",
	".hsr.json",
}

// supportedEmitters is the list of supported emitter names.
var supportedEmitters = []string{
	"types",
	"interface",
	"dispatcher",
	"server",
	"client",
}

// ErrConfigNotFound is returned when no config file is found.
var ErrConfigNotFound = errors.New("config file not found")

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Spec:     "openapi.yaml",
		Output:   "gen",
		Package:  "api",
		Emitters: []string{"types", "interface", "dispatcher", "server", "client"},
		Format:   true,
		Server: ServerConfig{
			Addr: ":8080",
		},
		Source: SourceConfig{
			Paths:   []string{"."},
			Include: []string{"**/*.yaml", "**/*.yml", "**/*.json"},
			Exclude: []string{
				"vendor/**",
				"node_modules/**",
				".git/**",
				"**/testdata/**",
				"dist/**",
				"build/**",
				"target/**",
				"**/hsr.yaml",
				"**/hsr.json",
				"**/.hsr.yaml",
				"**/.hsr.json",
			},
		},
		Watch: WatchConfig{
			Debounce: 500,
		},
	}
}

// Load loads the configuration from a file.
// It searches for config files in the following order:
// 1. hsr.yaml
// 2. hsr.json
// 3. .hsr.yaml
// 4. .hsr.json
//
// If configPath is provided, it will use that path instead.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	v.SetEnvPrefix("HSR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		// Use the provided config path
		v.SetConfigFile(configPath)
	} else {
		// Search for config files in order
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			// Return default config if no file found
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("spec", "openapi.yaml")
	v.SetDefault("output", "gen")
	v.SetDefault("package", "api")
	v.SetDefault("emitters", []string{"types", "interface", "dispatcher", "server", "client"})
	v.SetDefault("format", true)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("source.paths", []string{"."})
	v.SetDefault("source.include", []string{"**/*.yaml", "**/*.yml", "**/*.json"})
	v.SetDefault("source.exclude", []string{
		"vendor/**",
		"node_modules/**",
		".git/**",
		"**/testdata/**",
		"dist/**",
		"build/**",
		"target/**",
		"**/hsr.yaml",
		"**/hsr.json",
		"**/.hsr.yaml",
		"**/.hsr.json",
	})
	v.SetDefault("watch.debounce", 500)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Validate spec path
	if c.Spec == "" {
		errs = append(errs, ValidationError{
			Field:   "spec",
			Message: "description file path is required",
		})
	}

	// Validate output directory
	if c.Output == "" {
		errs = append(errs, ValidationError{
			Field:   "output",
			Message: "output directory is required",
		})
	}

	// Validate package name
	if c.Package == "" {
		errs = append(errs, ValidationError{
			Field:   "package",
			Message: "package name is required",
		})
	} else if !token.IsIdentifier(c.Package) {
		errs = append(errs, ValidationError{
			Field:   "package",
			Message: fmt.Sprintf("%q is not a valid Go package name", c.Package),
		})
	}

	// Validate emitters
	if len(c.Emitters) == 0 {
		errs = append(errs, ValidationError{
			Field:   "emitters",
			Message: "at least one emitter is required",
		})
	}
	for _, name := range c.Emitters {
		if !contains(supportedEmitters, name) {
			errs = append(errs, ValidationError{
				Field:   "emitters",
				Message: fmt.Sprintf("unsupported emitter %q, must be one of: %s", name, strings.Join(supportedEmitters, ", ")),
			})
		}
	}

	// Validate watch debounce
	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "debounce must be non-negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SupportedEmitters returns the emitter names accepted in the emitters key.
func SupportedEmitters() []string {
	out := make([]string, len(supportedEmitters))
	copy(out, supportedEmitters)
	return out
}

// ConfigFilePath returns the path of the loaded config file, if any.
func ConfigFilePath() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// contains checks if a slice contains a string.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
