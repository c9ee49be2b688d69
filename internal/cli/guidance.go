package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"specflow/internal/workflow"
)

func newGuidanceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "guidance <stage>",
		Short: "Print the guidance text for a stage",
		Long: fmt.Sprintf(`Print the guidance text the agent receives in a stage, followed by the
instructions for leaving it.

Stages: %s`, strings.Join(stageList(), ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: stageList(),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, ok := workflow.ParseStage(args[0])
			if !ok {
				return fmt.Errorf("unknown stage %q: must be one of %s", args[0], strings.Join(stageList(), ", "))
			}

			app.Printer.ShowGuidance(stage, workflow.Guidance(stage))
			app.Printer.Text("")
			app.Printer.Text("Next: " + workflow.NextInstructions(stage))
			return nil
		},
	}
}

func stageList() []string {
	names := make([]string, len(workflow.Stages))
	for i, s := range workflow.Stages {
		names[i] = s.String()
	}
	return names
}
