package workflow

import "fmt"

// UnknownStage is returned by the lookups for values outside [Stages].
const UnknownStage = "Unknown stage"

// specsDir is the directory the calling agent writes artifacts under.
// The {feature_name} placeholder is filled in by the agent, not by us.
const specsDir = ".specs/{feature_name}/"

var (
	requirementsGuidance = fmt.Sprintf(`
📋 REQUIREMENTS GATHERING STAGE

Current Objective: Generate requirements in EARS format based on the feature idea

Key Actions Required:
1. Create '%s%s' file
2. Generate initial requirements WITHOUT asking sequential questions first
3. Format with:
   - Clear introduction summarizing the feature
   - Hierarchical numbered list of requirements
   - User stories: "As a [role], I want [feature], so that [benefit]"
   - Acceptance criteria in EARS format
4. Consider edge cases, UX, technical constraints, success criteria
5. Ask user for approval using 'userInput' tool with reason '%s'
6. Continue feedback-revision cycle until explicit approval

CRITICAL: Do NOT proceed to design until user explicitly approves requirements!`,
		specsDir, Artifact(StageRequirements), ReviewReason(StageRequirements))

	designGuidance = fmt.Sprintf(`
🎨 DESIGN DOCUMENT CREATION STAGE

Current Objective: Develop comprehensive design based on approved requirements

Key Actions Required:
1. Create '%s%s' file
2. Conduct necessary research and build context
3. Include required sections:
   - Overview
   - Architecture
   - Components and Interfaces
   - Data Models
   - Error Handling
   - Testing Strategy
4. Include Mermaid diagrams when appropriate
5. Highlight design decisions and rationales
6. Ask user for approval using 'userInput' tool with reason '%s'
7. Continue feedback-revision cycle until explicit approval

CRITICAL: Do NOT proceed to implementation planning until user explicitly approves design!`,
		specsDir, Artifact(StageDesign), ReviewReason(StageDesign))

	implementationGuidance = fmt.Sprintf(`
⚡ IMPLEMENTATION PLANNING STAGE

Current Objective: Create actionable implementation plan with coding tasks

Key Actions Required:
1. Create '%s%s' file
2. Convert design into series of prompts for code-generation LLM
3. Format as numbered checkbox list (max 2 levels)
4. Each task must:
   - Have clear objective involving writing/modifying/testing code
   - Reference specific requirements
   - Build incrementally on previous steps
   - Be actionable by coding agent
5. Focus ONLY on coding tasks (no deployment, user testing, etc.)
6. Ask user for approval using 'userInput' tool with reason '%s'
7. Continue feedback-revision cycle until explicit approval

CRITICAL: This workflow is ONLY for creating artifacts, not implementing!`,
		specsDir, Artifact(StageImplementation), ReviewReason(StageImplementation))

	completeGuidance = fmt.Sprintf(`
✅ WORKFLOW COMPLETE

All specification artifacts have been created and approved:
- Requirements document
- Design document
- Implementation tasks

Next Steps:
- Open the %s file
- Click "Start task" next to task items to begin implementation
- This workflow is complete - actual implementation is a separate process`,
		Artifact(StageImplementation))
)

// Guidance returns the instructional text for a stage.
//
// The text is static per stage and has no effect on state.
func Guidance(s Stage) string {
	switch s {
	case StageRequirements:
		return requirementsGuidance
	case StageDesign:
		return designGuidance
	case StageImplementation:
		return implementationGuidance
	case StageComplete:
		return completeGuidance
	}
	return UnknownStage
}

// NextInstructions returns a one-line description of what must happen
// before the workflow can leave the stage.
func NextInstructions(s Stage) string {
	switch s {
	case StageRequirements:
		return "After user approves requirements, transition to 'design' stage"
	case StageDesign:
		return "After user approves design, transition to 'implementation' stage"
	case StageImplementation:
		return "After user approves tasks, transition to 'complete' stage"
	case StageComplete:
		return "Workflow is complete"
	}
	return UnknownStage
}
