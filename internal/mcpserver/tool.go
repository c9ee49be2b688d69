package mcpserver

import (
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"specflow/internal/workflow"
)

// ToolName is the name the workflow tool is registered under.
const ToolName = "spec_workflow"

const toolDescription = `A comprehensive tool for guiding development workflow through three structured stages:
1. Requirements Gathering - Generate EARS format requirements
2. Design Document Creation - Create detailed technical design
3. Implementation Planning - Generate actionable coding tasks

This tool enforces a strict workflow where each stage must be completed and approved before proceeding to the next.

Key Features:
- Enforces sequential workflow progression
- Tracks approval status for each stage
- Provides detailed guidance for each stage
- Prevents skipping stages without proper approval
- Creates structured documentation in .specs/{feature_name}/ directory

Workflow Stages:

REQUIREMENTS STAGE:
- Create requirements.md with EARS format
- Include user stories and acceptance criteria
- Must get explicit user approval before proceeding
- Use 'userInput' tool with reason 'spec-requirements-review'

DESIGN STAGE:
- Create design.md with comprehensive technical design
- Include architecture, components, data models, error handling
- Conduct research and include findings
- Must get explicit user approval before proceeding
- Use 'userInput' tool with reason 'spec-design-review'

IMPLEMENTATION STAGE:
- Create tasks.md with actionable coding tasks
- Focus ONLY on code-related tasks (no deployment, user testing)
- Format as numbered checkbox list
- Reference specific requirements
- Must get explicit user approval to complete workflow
- Use 'userInput' tool with reason 'spec-tasks-review'

Parameters:
- stage: Current workflow stage ('requirements', 'design', 'implementation', 'complete')
- featureName: Name of the feature being developed (optional, for tracking)
- action: Action to take ('start', 'approve', 'revise')
- feedback: User feedback for revisions (optional)

The tool will provide detailed guidance for the current stage and prevent invalid transitions.`

// inputSchema describes the tool arguments to clients. It is advertised
// only; the handler does its own validation so that bad input produces a
// workflow failure payload instead of a protocol error.
func inputSchema() *jsonschema.Schema {
	stages := make([]any, len(workflow.Stages))
	for i, s := range workflow.Stages {
		stages[i] = string(s)
	}
	actions := make([]any, len(workflow.Actions))
	for i, a := range workflow.Actions {
		actions[i] = string(a)
	}

	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"stage": {
				Type:        "string",
				Enum:        stages,
				Description: "The workflow stage to transition to or work on",
			},
			"featureName": {
				Type:        "string",
				Description: "Name of the feature being developed (used for file organization)",
			},
			"action": {
				Type:        "string",
				Enum:        actions,
				Description: "Action to take in the current stage",
			},
			"feedback": {
				Type:        "string",
				Description: "User feedback for revisions or additional context",
			},
		},
		Required: []string{"stage"},
	}
}

// newTool returns the spec_workflow tool definition.
func newTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        ToolName,
		Description: toolDescription,
		InputSchema: inputSchema(),
	}
}
