package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/byavkin/pulsegen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pulsegen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Pulsegen - a declarative pulse sequence generation tool.

Usage:
  pulsegen [options] list
  pulsegen [options] params <operation>
  pulsegen [options] generate <operation> [key=value ...]

Commands:
  list
    List every registered generate operation.
  params <operation>
    Show the parameter table of a single operation.
  generate <operation> [key=value ...]
    Run an operation and store the entities it produces. Parameters not
    given on the command line fall back to their manifest defaults.

Options:
`)
		flagSet.PrintDefaults()
	}

	settingsFlag := flagSet.String("settings", "", "Path to the hardware settings file.")
	sFlag := flagSet.String("s", "", "Path to the hardware settings file (shorthand).")
	generatorsFlag := flagSet.String("generators-path", "generators", "Path to the directory containing operation manifests.")
	extraGeneratorsFlag := flagSet.String("extra-generators-path", "", "Additional manifest directory overriding the built-in definitions.")
	outFlag := flagSet.String("out", "", "Directory for JSON records of generated entities. Empty disables saving.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	settingsPath := ""
	if *settingsFlag != "" {
		settingsPath = *settingsFlag
	} else if *sFlag != "" {
		settingsPath = *sFlag
	}
	slog.Debug("Settings path determined.", "path", settingsPath)

	rest := flagSet.Args()
	if len(rest) == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	command := rest[0]
	operation := ""
	if len(rest) > 1 {
		operation = rest[1]
	}

	opArgs := map[string]string{}
	if len(rest) > 2 {
		if command != app.CommandGenerate {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("command %q takes no parameter arguments", command)}
		}
		for _, raw := range rest[2:] {
			key, value, found := strings.Cut(raw, "=")
			if !found || key == "" {
				return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid parameter %q: expected key=value", raw)}
			}
			opArgs[key] = value
		}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SettingsPath:        settingsPath,
		GeneratorsPath:      *generatorsFlag,
		ExtraGeneratorsPath: *extraGeneratorsFlag,
		OutputDir:           *outFlag,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		Command:             command,
		Operation:           operation,
		OpArgs:              opArgs,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
