package workflow

import "fmt"

// gate is the approval precondition for entering a stage.
type gate struct {
	// Requires is the stage whose approval flag must be set.
	Requires Stage

	// Reason is reported when the flag is not set.
	Reason string
}

// gates maps a target stage to its precondition. Stages without an entry
// (requirements) may always be entered.
var gates = map[Stage]gate{
	StageDesign: {
		Requires: StageRequirements,
		Reason:   "Requirements must be approved before proceeding to design",
	},
	StageImplementation: {
		Requires: StageDesign,
		Reason:   "Design must be approved before proceeding to implementation planning",
	},
	StageComplete: {
		Requires: StageImplementation,
		Reason:   "Tasks must be approved before completing workflow",
	},
}

// CheckGate reports whether s may move to target.
//
// Only the approval flags at call time are consulted, not the stage being
// left, so a workflow may jump forward over stages whose gates are already
// open (requirements straight to complete once tasks are approved).
// Returns a [*TransitionError] when the gate is closed.
func CheckGate(s State, target Stage) error {
	if !target.IsValid() {
		return &ValidationError{
			Field:   "stage",
			Message: fmt.Sprintf("Invalid stage: must be one of %s", stageNames()),
		}
	}

	g, gated := gates[target]
	if !gated || s.Approved(g.Requires) {
		return nil
	}
	return &TransitionError{
		From:   s.CurrentStage,
		To:     target,
		Reason: g.Reason,
	}
}
