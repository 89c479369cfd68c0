package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/darmiel/gatecheck/internal/audit"
	"github.com/darmiel/gatecheck/internal/buildinfo"
	"github.com/darmiel/gatecheck/internal/engine"
	"github.com/darmiel/gatecheck/internal/validation"
)

const (
	RunMatricesKey = "run.matrices"
	RunOutKey      = "run.out"
	RunCSVKey      = "run.csv"
)

// f is shared by all commands
var f = NewFactory()

type Factory struct {
	// OutDir is the output directory for commands that read an existing run.
	OutDir string
	// LogPath overrides the audit log location inside OutDir.
	LogPath string

	versionOnce sync.Once
	version     string
}

func NewFactory() *Factory {
	return &Factory{}
}

// Version returns the harness version, resolved once per process.
func (f *Factory) Version() string {
	f.versionOnce.Do(func() {
		f.version = buildinfo.ResolveVersion()
	})
	return f.version
}

// GetEngine validates the built-in policy and returns a gate for it.
func (f *Factory) GetEngine() (*engine.Engine, error) {
	policy, err := validation.ValidatePolicy(engine.DefaultPolicy())
	if err != nil {
		return nil, fmt.Errorf("validating policy: %w", err)
	}
	return engine.New(policy), nil
}

// ResolveOutDir returns --out, falling back to the configured run output directory.
func (f *Factory) ResolveOutDir() (string, error) {
	out := f.OutDir // prio 1: command-line flag
	if out == "" {
		out = viper.GetString(RunOutKey) // prio 2: config/env
	}
	if out == "" {
		return "", fmt.Errorf("output directory not specified (use --out or set GATECHECK_RUN_OUT)")
	}
	return out, nil
}

// ResolveLogPath returns --log or the audit log inside the output directory.
func (f *Factory) ResolveLogPath() (string, error) {
	if f.LogPath != "" {
		return f.LogPath, nil
	}
	out, err := f.ResolveOutDir()
	if err != nil {
		return "", err
	}
	return audit.LogPath(out), nil
}

func (f *Factory) bindOutFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.OutDir, "out", "o", "", "Output directory of a previous run")
}

func (f *Factory) bindLogFlag(flags *pflag.FlagSet) {
	flags.StringVar(&f.LogPath, "log", "", "Audit log to read (default is audit.jsonl inside --out)")
}
