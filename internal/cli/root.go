// Package cli implements the specflow command line.
//
// The default entry point for MCP clients is "specflow serve", which speaks
// MCP on stdin/stdout. The remaining commands are offline helpers for
// people writing agent prompts against the workflow: "simulate" replays a
// script of tool calls and "guidance" prints the text for one stage.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"specflow/internal/config"
	"specflow/internal/logging"
	"specflow/internal/output"
)

// App holds the dependencies shared by all commands.
type App struct {
	// Config is the loaded configuration.
	Config *config.Config

	// Printer writes command output (stdout).
	Printer *output.Printer

	// Diagnostics writes the guidance echo (stderr).
	Diagnostics *output.Printer

	// Logger is the structured logger (stderr).
	Logger *zap.Logger
}

// NewApp wires an [App] from cfg writing to stdout and stderr.
func NewApp(cfg *config.Config, stdout, stderr io.Writer) (*App, error) {
	logger, err := logging.NewWithWriter(cfg.Logging, stderr)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:      cfg,
		Printer:     output.NewPrinterWithWriter(stdout),
		Diagnostics: output.NewPrinterWithWriter(stderr),
		Logger:      logger,
	}, nil
}

// NewRootCommand builds the command tree for app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "specflow",
		Short: "Spec workflow MCP server",
		Long: `specflow guides a coding agent through a gated documentation workflow:
requirements → design → implementation → complete.

Each stage must be approved by the user before the next one can be entered.
Run "specflow serve" from your MCP client configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by loadConfig before the tree is built; declared so cobra accepts it.
	root.PersistentFlags().String("config", "", "config file (default: $SPECFLOW_CONFIG_PATH, user config dir, ./specflow.yaml)")

	root.AddCommand(
		newServeCommand(app),
		newSimulateCommand(app),
		newGuidanceCommand(app),
		newVersionCommand(app),
	)
	return root
}

// ExecuteResult is the outcome of [RunWithConfig].
type ExecuteResult struct {
	ExitCode int
	Err      error
}

// RunWithConfig runs the command line with args against cfg.
func RunWithConfig(cfg *config.Config, args []string, stdout, stderr io.Writer) ExecuteResult {
	app, err := NewApp(cfg, stdout, stderr)
	if err != nil {
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	defer app.Logger.Sync() //nolint:errcheck

	cmd := NewRootCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if code, ok := IsExitError(err); ok {
			return ExecuteResult{ExitCode: code, Err: err}
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExecuteResult{ExitCode: 1, Err: err}
	}
	return ExecuteResult{ExitCode: 0}
}

// Execute loads configuration, runs the command line and exits the process.
func Execute() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := RunWithConfig(cfg, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(result.ExitCode)
}

// loadConfig honours a --config flag ahead of cobra parsing, since the
// configuration is needed to build the command tree's dependencies.
func loadConfig(args []string) (*config.Config, error) {
	loader := config.NewLoader()
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return loader.LoadFromFile(args[i+1])
		}
		if path, ok := strings.CutPrefix(arg, "--config="); ok && path != "" {
			return loader.LoadFromFile(path)
		}
	}
	return loader.Load()
}
