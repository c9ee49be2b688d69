package workflow

// Transition applies req to s and returns the resulting state.
//
// The steps run in a fixed order:
//  1. A non-empty FeatureName overwrites the stored one.
//  2. When req.Stage differs from the current stage, the gate is checked and,
//     if open, the current stage is pushed onto the history and replaced.
//  3. An approve action sets the flag of the (now current) stage.
//
// When the gate is closed, Transition returns a [*TransitionError] together
// with a state that still carries the step 1 feature name update; stage,
// history and flags are those of s. The input state is never modified.
func Transition(s State, req Request) (State, error) {
	next := s.Clone()

	if req.FeatureName != "" {
		next.FeatureName = req.FeatureName
	}

	if req.Stage != next.CurrentStage {
		if err := CheckGate(next, req.Stage); err != nil {
			return next, err
		}
		next.StageHistory = append(next.StageHistory, next.CurrentStage)
		next.CurrentStage = req.Stage
	}

	if req.Action == ActionApprove {
		next.approve(next.CurrentStage)
	}

	return next, nil
}
