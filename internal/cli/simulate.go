package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"specflow/internal/workflow"
)

// Script is a recorded sequence of spec_workflow calls.
//
// Steps are kept untyped so that malformed calls replay exactly as an MCP
// client would send them.
type Script struct {
	Steps []map[string]any `yaml:"steps"`
}

// LoadScript reads a YAML or JSON script. Besides the {steps: [...]} form,
// a bare top-level list of steps is accepted.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		var steps []map[string]any
		if listErr := yaml.Unmarshal(data, &steps); listErr != nil {
			return nil, fmt.Errorf("failed to parse script: %w", err)
		}
		script.Steps = steps
	}

	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("script %s has no steps", path)
	}
	return &script, nil
}

func newSimulateCommand(app *App) *cobra.Command {
	var (
		stopOnError bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "simulate <script>",
		Short: "Replay a script of spec_workflow calls",
		Long: `Replay a YAML or JSON script of spec_workflow calls against a fresh
workflow and print every result, exactly as an MCP client would receive it.

Script format:
  steps:
    - stage: requirements
      featureName: user-auth
      action: approve
    - stage: design

Exits with status 1 if any step failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "json" && format != "yaml" {
				return fmt.Errorf("invalid --format %q: must be json or yaml", format)
			}

			script, err := LoadScript(args[0])
			if err != nil {
				return err
			}

			machine := workflow.NewMachine(app.Logger.Named("workflow"))
			if !app.Config.Guidance.DisableLogging {
				machine.SetGuidanceSink(app.Diagnostics)
			}

			succeeded, failed := 0, 0
			total := len(script.Steps)
			for i, step := range script.Steps {
				if req, err := workflow.ParseArguments(step); err == nil {
					app.Printer.StepStart(i+1, total, req)
				} else {
					app.Printer.StepRaw(i+1, total, step)
				}

				result := machine.Apply(step)
				payload, err := renderResult(result, format)
				if err != nil {
					return err
				}
				app.Printer.Result(payload, result.IsError())

				if result.IsError() {
					failed++
					if stopOnError {
						break
					}
					continue
				}
				succeeded++
			}

			app.Printer.History(machine.State().StageHistory)
			app.Printer.Summary(succeeded, failed, total-succeeded-failed)

			if failed > 0 {
				return NewExitError(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first failed step")
	cmd.Flags().StringVar(&format, "format", "json", "payload format: json or yaml")
	return cmd
}

// renderResult encodes a result payload in the requested format.
func renderResult(result workflow.Result, format string) (string, error) {
	if format == "yaml" {
		b, err := yaml.Marshal(result.Payload())
		if err != nil {
			return "", fmt.Errorf("encode result: %w", err)
		}
		return strings.TrimRight(string(b), "\n"), nil
	}
	return result.JSON()
}
