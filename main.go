// Command specflow serves the spec_workflow MCP tool.
//
// Usage:
//
//	specflow serve                  # MCP over stdin/stdout
//	specflow simulate script.yaml   # replay recorded tool calls
//	specflow guidance design        # print one stage's guidance
package main

import "specflow/internal/cli"

func main() {
	cli.Execute()
}
