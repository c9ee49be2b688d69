package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specflow/internal/config"
	"specflow/internal/workflow"
)

// run executes the command line against the default config and captures
// both streams.
func run(t *testing.T, cfg *config.Config, args ...string) (ExecuteResult, string, string) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	var stdout, stderr bytes.Buffer
	result := RunWithConfig(cfg, args, &stdout, &stderr)
	return result, stdout.String(), stderr.String()
}

// writeScript writes a simulate script to a temp file and returns its path.
func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const happyScript = `steps:
  - stage: requirements
    featureName: user-auth
    action: start
  - stage: requirements
    action: approve
  - stage: design
  - stage: design
    action: approve
  - stage: implementation
`

func TestVersionCommand(t *testing.T) {
	result, stdout, _ := run(t, nil, "version")

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "spec-workflow-server 1.0.0\n", stdout)
}

func TestVersionCommand_UsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Name = "my-workflow"
	cfg.Server.Version = "2.3.4"

	_, stdout, _ := run(t, cfg, "version")

	assert.Equal(t, "my-workflow 2.3.4\n", stdout)
}

func TestGuidanceCommand(t *testing.T) {
	tests := []struct {
		stage    workflow.Stage
		contains string
	}{
		{workflow.StageRequirements, "REQUIREMENTS GATHERING STAGE"},
		{workflow.StageDesign, "DESIGN DOCUMENT CREATION STAGE"},
		{workflow.StageImplementation, "IMPLEMENTATION PLANNING STAGE"},
		{workflow.StageComplete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			result, stdout, _ := run(t, nil, "guidance", tt.stage.String())

			require.Equal(t, 0, result.ExitCode)
			assert.Contains(t, stdout, tt.contains)
			assert.Contains(t, stdout, "Next: "+workflow.NextInstructions(tt.stage))
		})
	}
}

func TestGuidanceCommand_UnknownStage(t *testing.T) {
	result, stdout, stderr := run(t, nil, "guidance", "deploy")

	assert.Equal(t, 1, result.ExitCode)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `Error: unknown stage "deploy"`)
	assert.Contains(t, stderr, "requirements, design, implementation, complete")
}

func TestSimulateCommand_HappyPath(t *testing.T) {
	path := writeScript(t, "happy.yaml", happyScript)

	result, stdout, stderr := run(t, nil, "simulate", path)

	require.Equal(t, 0, result.ExitCode, "stderr: %s", stderr)
	assert.NoError(t, result.Err)
	assert.Contains(t, stdout, "[1/5] stage=requirements action=start feature=user-auth")
	assert.Contains(t, stdout, "[5/5] stage=implementation")
	assert.Contains(t, stdout, `"currentStage": "implementation"`)
	assert.Contains(t, stdout, `"featureName": "user-auth"`)
	assert.Contains(t, stdout, "Stage history: requirements → design")
	assert.Contains(t, stdout, "Succeeded: 5 | Failed: 0 | Skipped: 0")

	// Guidance goes to the diagnostic stream, not stdout.
	assert.Contains(t, stderr, "IMPLEMENTATION PLANNING STAGE")
}

func TestSimulateCommand_DisableLogging(t *testing.T) {
	path := writeScript(t, "happy.yaml", happyScript)
	cfg := config.DefaultConfig()
	cfg.Guidance.DisableLogging = true

	result, _, stderr := run(t, cfg, "simulate", path)

	require.Equal(t, 0, result.ExitCode)
	assert.NotContains(t, stderr, "PLANNING STAGE")
}

func TestSimulateCommand_FailedStep(t *testing.T) {
	path := writeScript(t, "gate.yaml", `steps:
  - stage: design
  - stage: requirements
    action: approve
  - stage: design
`)

	result, stdout, stderr := run(t, nil, "simulate", path)

	assert.Equal(t, 1, result.ExitCode)
	code, ok := IsExitError(result.Err)
	assert.True(t, ok)
	assert.Equal(t, 1, code)
	assert.NotContains(t, stderr, "Error: exit status")

	assert.Contains(t, stdout, "✗")
	assert.Contains(t, stdout, `"error": "Requirements must be approved before proceeding to design"`)
	assert.Contains(t, stdout, `"status": "failed"`)
	assert.Contains(t, stdout, "Stage history: requirements")
	assert.Contains(t, stdout, "Succeeded: 2 | Failed: 1 | Skipped: 0")
}

func TestSimulateCommand_StopOnError(t *testing.T) {
	path := writeScript(t, "gate.yaml", `steps:
  - stage: requirements
    featureName: billing
  - stage: implementation
  - stage: requirements
    action: approve
`)

	result, stdout, _ := run(t, nil, "simulate", "--stop-on-error", path)

	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, stdout, "Design must be approved before proceeding to implementation")
	assert.NotContains(t, stdout, "[3/3]")
	assert.Contains(t, stdout, "Stage history: (none)")
	assert.Contains(t, stdout, "Succeeded: 1 | Failed: 1 | Skipped: 1")
}

func TestSimulateCommand_InvalidStep(t *testing.T) {
	path := writeScript(t, "bad.yaml", `steps:
  - stage: deploy
  - featureName: missing-stage
`)

	result, stdout, _ := run(t, nil, "simulate", path)

	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, stdout, "Invalid stage: must be one of requirements, design, implementation, complete")
	assert.Contains(t, stdout, "Invalid stage: must be a string")
	assert.Contains(t, stdout, "[1/2] map[stage:deploy]")
	assert.Contains(t, stdout, "Succeeded: 0 | Failed: 2 | Skipped: 0")
}

func TestSimulateCommand_YAMLFormat(t *testing.T) {
	path := writeScript(t, "happy.yaml", happyScript)

	result, stdout, _ := run(t, nil, "simulate", "--format", "yaml", path)

	require.Equal(t, 0, result.ExitCode)
	assert.Contains(t, stdout, "currentStage: implementation")
	assert.Contains(t, stdout, "featureName: user-auth")
	assert.NotContains(t, stdout, `"currentStage"`)
}

func TestSimulateCommand_InvalidFormat(t *testing.T) {
	path := writeScript(t, "happy.yaml", happyScript)

	result, _, stderr := run(t, nil, "simulate", "--format", "xml", path)

	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, stderr, `invalid --format "xml"`)
}

func TestSimulateCommand_MissingScript(t *testing.T) {
	result, _, stderr := run(t, nil, "simulate", filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, stderr, "failed to read script")
}

func TestLoadScript(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantSteps int
		wantErr   string
	}{
		{
			name:      "steps mapping",
			file:      "s.yaml",
			content:   happyScript,
			wantSteps: 5,
		},
		{
			name:      "bare list",
			file:      "s.yaml",
			content:   "- stage: requirements\n- stage: design\n",
			wantSteps: 2,
		},
		{
			name:      "json",
			file:      "s.json",
			content:   `{"steps": [{"stage": "requirements", "action": "approve"}]}`,
			wantSteps: 1,
		},
		{
			name:    "empty",
			file:    "s.yaml",
			content: "steps: []\n",
			wantErr: "has no steps",
		},
		{
			name:    "not a script",
			file:    "s.yaml",
			content: "just a string",
			wantErr: "failed to parse script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := LoadScript(writeScript(t, tt.file, tt.content))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, script.Steps, tt.wantSteps)
		})
	}
}

func TestRunWithConfig_InvalidLogging(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = "loud"

	result, _, _ := run(t, cfg, "version")

	assert.Equal(t, 1, result.ExitCode)
	assert.Error(t, result.Err)
}

func TestRunWithConfig_UnknownCommand(t *testing.T) {
	result, _, stderr := run(t, nil, "deploy")

	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, stderr, "Error: unknown command")
}

func TestIsExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOK   bool
	}{
		{"nil", nil, 0, false},
		{"plain error", errors.New("boom"), 0, false},
		{"exit error", NewExitError(3), 3, true},
		{"wrapped exit error", fmt.Errorf("step: %w", NewExitError(1)), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := IsExitError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestExitError_Error(t *testing.T) {
	assert.Equal(t, "exit status 2", NewExitError(2).Error())
}

func TestNewMCPServer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app, err := NewApp(config.DefaultConfig(), &stdout, &stderr)
	require.NoError(t, err)

	server, err := newMCPServer(app)
	require.NoError(t, err)

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport)
	require.NoError(t, err)
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "spec_workflow",
		Arguments: map[string]any{"stage": "requirements", "featureName": "search"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	// Guidance echo goes to stderr; stdout stays reserved for the protocol.
	assert.Contains(t, stderr.String(), "REQUIREMENTS GATHERING STAGE")
	assert.Empty(t, stdout.String())
}

func TestLoadConfig_Flag(t *testing.T) {
	path := writeScript(t, "config.yaml", "server:\n  name: from-flag\n")

	for _, args := range [][]string{
		{"--config", path, "version"},
		{"--config=" + path, "version"},
	} {
		cfg, err := loadConfig(args)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Server.Name)
	}
}

func TestRunWithConfig_ConfigFlagAccepted(t *testing.T) {
	path := writeScript(t, "config.yaml", "server:\n  name: from-flag\n")
	cfg, err := loadConfig([]string{"--config", path})
	require.NoError(t, err)

	result, stdout, _ := run(t, cfg, "--config", path, "version")

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "from-flag 1.0.0\n", stdout)
}
