package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flynn/json5"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Config holds the settings which may come from a config file. Fields not
// present in the file keep their defaults.
type Config struct {
	// Format is the fmt verb used to print results.
	Format string `json:"format"`
	// Parallel is the number of expressions evaluated at once in line mode.
	// Zero means one per CPU.
	Parallel int `json:"parallel"`
	// MaxDepth limits parenthesis nesting. Zero means unlimited.
	MaxDepth int `json:"max_depth"`
	// Prompt is the REPL prompt.
	Prompt string `json:"prompt"`
	// History is the REPL history file. A leading ~/ is the home directory.
	// "none" disables history.
	History string `json:"history"`
	// Color enables colored error output.
	Color bool `json:"color"`
}

func defaultConfig() Config {
	return Config{
		Format:   "%g",
		MaxDepth: 256,
		Prompt:   "calc> ",
		History:  "~/.calc_history",
		Color:    true,
	}
}

// loadConfig reads a JSON5 config file over the defaults. An empty path
// gives the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "opening config %s", path)
	}
	defer f.Close()
	if err := json5.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "decoding config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Parallel < 0 {
		return errors.Errorf("parallel must not be negative, got %d", cfg.Parallel)
	}
	if cfg.MaxDepth < 0 {
		return errors.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	if !strings.Contains(cfg.Format, "%") {
		return errors.Errorf("format %q has no verb", cfg.Format)
	}
	return nil
}

// historyPath resolves the history file name, or returns "" if history is
// disabled or the home directory is unknown.
func (cfg *Config) historyPath() string {
	switch {
	case cfg.History == "" || cfg.History == "none":
		return ""
	case strings.HasPrefix(cfg.History, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, cfg.History[2:])
	default:
		return cfg.History
	}
}

// globalFlags are the flags shared by every command.
type globalFlags struct {
	config   string
	verbose  bool
	noColor  bool
	maxDepth int
	parallel int
}

// Register adds the flags to fs.
func (f *globalFlags) Register(fs *pflag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "JSON5 config file")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug messages")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored errors")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum parenthesis nesting, 0 for unlimited (default from config)")
	fs.IntVar(&f.parallel, "parallel", 0, "expressions evaluated at once with --lines, 0 for one per CPU")
}

// apply overrides cfg with each flag set explicitly in fs.
func (f *globalFlags) apply(fs *pflag.FlagSet, cfg *Config) error {
	if fs.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if fs.Changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if f.noColor {
		cfg.Color = false
	}
	return cfg.validate()
}
