package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/callplan/internal/app"
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

// pathList collects a repeatable path flag.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ",")
}

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("callplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
callplan - Plans which proposed operations can run in parallel and which must wait.

Usage:
  callplan [options] [CALLS_PATH]

Arguments:
  CALLS_PATH
    Path to an .hcl file with call blocks or a .json array of calls.

Options:
`)
		flagSet.PrintDefaults()
	}

	var catalogPaths pathList
	callsFlag := flagSet.String("calls", "", "Path to the calls file.")
	cFlag := flagSet.String("c", "", "Path to the calls file (shorthand).")
	flagSet.Var(&catalogPaths, "catalog", "HCL file or directory with operation blocks. Repeatable.")
	noDefaultsFlag := flagSet.Bool("no-defaults", false, "Start from an empty operation catalog instead of the built-in table.")
	outputFlag := flagSet.String("output", "text", "Plan output format. Options: 'text' or 'json'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io endpoint to publish the plan to. Empty disables publishing.")
	publishNSFlag := flagSet.String("publish-namespace", "/", "socket.io namespace used for publishing.")
	publishEventFlag := flagSet.String("publish-event", "plan", "Event name the plan is emitted under.")
	publishAckFlag := flagSet.String("publish-ack-event", "", "Event to wait for after publishing. Empty means fire-and-forget.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", 0, "Timeout for connecting and acknowledgement. 0 selects the default.")
	publishInsecureFlag := flagSet.Bool("publish-insecure", false, "Skip TLS certificate verification for the publish endpoint.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *callsFlag != "" {
		path = *callsFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Calls path determined.", "path", path)

	if path == "" {
		slog.Debug("No calls path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
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
		CallsPath:        path,
		CatalogPaths:     catalogPaths,
		NoDefaults:       *noDefaultsFlag,
		OutputFormat:     strings.ToLower(*outputFlag),
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		PublishEvent:     *publishEventFlag,
		PublishAckEvent:  *publishAckFlag,
		PublishTimeout:   *publishTimeoutFlag,

		PublishInsecureSkipVerify: *publishInsecureFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
