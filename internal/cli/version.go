package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server name and version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.Printer.Text(fmt.Sprintf("%s %s", app.Config.Server.Name, app.Config.Server.Version))
		},
	}
}
