package workflow

// State is the position of one workflow instance.
//
// The zero value is not a valid state; use [NewState].
// Approval flags only ever go from false to true, and StageHistory only
// grows: both are append-only for the lifetime of a state.
type State struct {
	// CurrentStage is always a member of [Stages].
	CurrentStage Stage `json:"currentStage" yaml:"currentStage"`

	// FeatureName is the free-text feature identifier, "" until provided.
	FeatureName string `json:"featureName,omitempty" yaml:"featureName,omitempty"`

	RequirementsApproved bool `json:"requirementsApproved" yaml:"requirementsApproved"`
	DesignApproved       bool `json:"designApproved" yaml:"designApproved"`
	TasksApproved        bool `json:"tasksApproved" yaml:"tasksApproved"`

	// StageHistory records every stage the workflow has left, oldest first.
	// Same-stage calls do not add entries.
	StageHistory []Stage `json:"stageHistory" yaml:"stageHistory"`
}

// NewState returns the initial state: requirements stage, nothing approved,
// empty history.
func NewState() State {
	return State{
		CurrentStage: StageRequirements,
		StageHistory: []Stage{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	clone := s
	clone.StageHistory = make([]Stage, len(s.StageHistory))
	copy(clone.StageHistory, s.StageHistory)
	return clone
}

// Approved reports the approval flag associated with a stage.
// [StageComplete] has no flag and always reports true.
func (s State) Approved(stage Stage) bool {
	switch stage {
	case StageRequirements:
		return s.RequirementsApproved
	case StageDesign:
		return s.DesignApproved
	case StageImplementation:
		return s.TasksApproved
	case StageComplete:
		return true
	}
	return false
}

// CanProceed reports whether the current stage's artifact has been approved.
//
// It is informational only; [CheckGate] is the authoritative gate.
func (s State) CanProceed() bool {
	return s.Approved(s.CurrentStage)
}

// approve sets the flag for the given stage. Approving complete is a no-op.
func (s *State) approve(stage Stage) {
	switch stage {
	case StageRequirements:
		s.RequirementsApproved = true
	case StageDesign:
		s.DesignApproved = true
	case StageImplementation:
		s.TasksApproved = true
	}
}
