package app

import (
	"errors"
	"fmt"
)

// Commands understood by Run.
const (
	CommandList     = "list"
	CommandParams   = "params"
	CommandGenerate = "generate"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SettingsPath        string // settings profile .hcl file
	GeneratorsPath      string // directory of operation manifest .hcl files
	ExtraGeneratorsPath string // optional second manifest directory, overrides built-ins
	OutputDir           string // JSON record dump target, empty disables dumping

	LogFormat string
	LogLevel  string

	Command   string
	Operation string            // operation name for params and generate
	OpArgs    map[string]string // raw key=value arguments for generate
}

// NewConfig validates a configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SettingsPath == "" {
		return nil, errors.New("SettingsPath is a required configuration field and cannot be empty")
	}
	switch cfg.Command {
	case CommandList:
	case CommandParams, CommandGenerate:
		if cfg.Operation == "" {
			return nil, fmt.Errorf("command %q needs an operation name", cfg.Command)
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}
	return &cfg, nil
}
