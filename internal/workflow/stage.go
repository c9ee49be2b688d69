package workflow

import "strings"

// Stage is one of the four fixed workflow phases.
type Stage string

// Workflow stages in their natural order.
const (
	StageRequirements   Stage = "requirements"
	StageDesign         Stage = "design"
	StageImplementation Stage = "implementation"
	StageComplete       Stage = "complete"
)

// Stages lists every valid [Stage] in workflow order.
var Stages = []Stage{
	StageRequirements,
	StageDesign,
	StageImplementation,
	StageComplete,
}

// IsValid reports whether s is a member of the closed stage set.
func (s Stage) IsValid() bool {
	switch s {
	case StageRequirements, StageDesign, StageImplementation, StageComplete:
		return true
	}
	return false
}

// String returns the wire name of the stage.
func (s Stage) String() string {
	return string(s)
}

// ParseStage converts a wire name into a [Stage].
// The match is exact; "Design" is not a valid stage.
func ParseStage(name string) (Stage, bool) {
	s := Stage(name)
	return s, s.IsValid()
}

// stageNames renders the valid stages as a comma-separated list.
func stageNames() string {
	names := make([]string, len(Stages))
	for i, s := range Stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Artifact returns the document file the calling agent writes during the
// stage, or "" for [StageComplete].
func Artifact(s Stage) string {
	switch s {
	case StageRequirements:
		return "requirements.md"
	case StageDesign:
		return "design.md"
	case StageImplementation:
		return "tasks.md"
	}
	return ""
}

// ReviewReason returns the tag the calling agent passes to the human
// approval channel when asking for sign-off on the stage's artifact, or ""
// for [StageComplete].
func ReviewReason(s Stage) string {
	switch s {
	case StageRequirements:
		return "spec-requirements-review"
	case StageDesign:
		return "spec-design-review"
	case StageImplementation:
		return "spec-tasks-review"
	}
	return ""
}

// Action is the optional verb bundled with a transition request.
//
// Values outside the known set are carried through unchanged and behave
// like no action at all.
type Action string

// Known actions. Only [ActionApprove] changes state.
const (
	ActionStart   Action = "start"
	ActionApprove Action = "approve"
	ActionRevise  Action = "revise"
)

// Actions lists the documented actions.
var Actions = []Action{ActionStart, ActionApprove, ActionRevise}
