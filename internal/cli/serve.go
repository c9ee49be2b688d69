package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"specflow/internal/mcpserver"
	"specflow/internal/workflow"
)

func newServeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the spec_workflow tool over MCP stdio",
		Long: `Serve the spec_workflow tool over MCP on stdin/stdout.

The workflow state lives for as long as the process does. Stage guidance is
echoed to stderr after each successful transition unless
DISABLE_WORKFLOW_LOGGING is set to a true value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server, err := newMCPServer(app)
			if err != nil {
				return err
			}
			if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// newMCPServer builds the MCP server and its workflow machine from app.
func newMCPServer(app *App) (*mcpserver.Server, error) {
	machine := workflow.NewMachine(app.Logger.Named("workflow"))
	if !app.Config.Guidance.DisableLogging {
		machine.SetGuidanceSink(app.Diagnostics)
	}

	return mcpserver.NewServer(&mcpserver.Config{
		Name:    app.Config.Server.Name,
		Version: app.Config.Server.Version,
		Logger:  app.Logger.Named("mcp"),
	}, machine)
}
