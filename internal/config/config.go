// Package config loads the denote.yaml file that sets CLI defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fuale/meaning/internal/parser"
	"github.com/fuale/meaning/internal/printer"
)

// DefaultFile is looked for in the working directory when no -config is given.
const DefaultFile = "denote.yaml"

type Config struct {
	// Targets to emit, by name or alias.
	Targets []string `yaml:"targets"`

	// Root is "statement" or "expression".
	Root string `yaml:"root"`

	// OutDir receives emitted files. Empty means next to the source.
	OutDir string `yaml:"out_dir"`

	// Debug dumps tokens, the AST and emitted text to stdout.
	Debug bool `yaml:"debug"`

	// Run executes statement programs after compiling them.
	Run RunConfig `yaml:"run"`

	// BaseDir is the directory the config was loaded from.
	BaseDir string `yaml:"-"`
}

type RunConfig struct {
	// Env is the initial environment, integers and booleans only.
	Env map[string]any `yaml:"env"`

	// MaxRounds caps loop rounds in the in-process evaluator.
	MaxRounds int `yaml:"max_rounds"`

	// Interpreters overrides interpreter binaries per target.
	Interpreters map[string]string `yaml:"interpreters"`
}

func Defaults() *Config {
	return &Config{
		Targets: []string{string(printer.JavaScript)},
		Root:    parser.RootStatement.String(),
		Run: RunConfig{
			MaxRounds: 1_000_000,
		},
	}
}

// Load reads path over Defaults. A missing DefaultFile is not an error;
// a missing explicitly named file is.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.BaseDir = filepath.Dir(absPath)

	if cfg.OutDir != "" && !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(cfg.BaseDir, cfg.OutDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every problem with the config into one error.
func (c *Config) Validate() error {
	var problems []string

	if len(c.Targets) == 0 {
		problems = append(problems, "targets: at least one target is required")
	}
	for _, t := range c.Targets {
		if _, err := printer.ParseTarget(t); err != nil {
			problems = append(problems, fmt.Sprintf("targets: %v", err))
		}
	}

	if _, err := c.ParsedRoot(); err != nil {
		problems = append(problems, fmt.Sprintf("root: %v", err))
	}

	if c.Run.MaxRounds < 0 {
		problems = append(problems, "run.max_rounds: must not be negative")
	}
	for name, v := range c.Run.Env {
		switch v.(type) {
		case int, int64, bool:
		default:
			problems = append(problems, fmt.Sprintf("run.env.%s: %T is neither integer nor boolean", name, v))
		}
	}
	for t := range c.Run.Interpreters {
		if _, err := printer.ParseTarget(t); err != nil {
			problems = append(problems, fmt.Sprintf("run.interpreters: %v", err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// ParsedTargets resolves Targets, dropping duplicates.
func (c *Config) ParsedTargets() ([]printer.Target, error) {
	seen := make(map[printer.Target]bool)
	targets := make([]printer.Target, 0, len(c.Targets))
	for _, name := range c.Targets {
		t, err := printer.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			targets = append(targets, t)
		}
	}
	return targets, nil
}

func (c *Config) ParsedRoot() (parser.Root, error) {
	switch strings.ToLower(c.Root) {
	case "", "statement":
		return parser.RootStatement, nil
	case "expression":
		return parser.RootExpression, nil
	}
	return parser.RootStatement, fmt.Errorf("unknown root %q, want statement or expression", c.Root)
}

// InitialEnv converts Run.Env to the int64/bool values executors expect.
func (c *Config) InitialEnv() map[string]any {
	env := make(map[string]any, len(c.Run.Env))
	for k, v := range c.Run.Env {
		if n, ok := v.(int); ok {
			env[k] = int64(n)
			continue
		}
		env[k] = v
	}
	return env
}
