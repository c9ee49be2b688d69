package workflow

import (
	"encoding/json"
	"errors"
)

// StatusFailed is the status value of every [Failure] payload.
const StatusFailed = "failed"

// Response is the payload of a successful transition.
// Every field is derived from the post-transition state.
type Response struct {
	CurrentStage         Stage  `json:"currentStage" yaml:"currentStage"`
	FeatureName          string `json:"featureName,omitempty" yaml:"featureName,omitempty"`
	RequirementsApproved bool   `json:"requirementsApproved" yaml:"requirementsApproved"`
	DesignApproved       bool   `json:"designApproved" yaml:"designApproved"`
	TasksApproved        bool   `json:"tasksApproved" yaml:"tasksApproved"`
	NextInstructions     string `json:"nextInstructions" yaml:"nextInstructions"`
	StageGuidance        string `json:"stageGuidance" yaml:"stageGuidance"`
	CanProceed           bool   `json:"canProceed" yaml:"canProceed"`
}

// NewResponse derives the success payload from s.
func NewResponse(s State) *Response {
	return &Response{
		CurrentStage:         s.CurrentStage,
		FeatureName:          s.FeatureName,
		RequirementsApproved: s.RequirementsApproved,
		DesignApproved:       s.DesignApproved,
		TasksApproved:        s.TasksApproved,
		NextInstructions:     NextInstructions(s.CurrentStage),
		StageGuidance:        Guidance(s.CurrentStage),
		CanProceed:           s.CanProceed(),
	}
}

// Failure is the payload of a rejected transition.
//
// CurrentStage is the stage as of before the call; failed calls never move
// the workflow.
type Failure struct {
	Error        string `json:"error" yaml:"error"`
	Status       string `json:"status" yaml:"status"`
	CurrentStage Stage  `json:"currentStage" yaml:"currentStage"`
}

// NewFailure builds the failure payload for err at the given stage.
func NewFailure(err error, current Stage) *Failure {
	return &Failure{
		Error:        err.Error(),
		Status:       StatusFailed,
		CurrentStage: current,
	}
}

// Result is the outcome of one [Machine.Apply] call.
// Exactly one of Response and Failure is set.
type Result struct {
	Response *Response
	Failure  *Failure

	// Err is the underlying *ValidationError or *TransitionError on failure.
	Err error
}

// IsError reports whether the call failed.
func (r Result) IsError() bool {
	return r.Failure != nil
}

// Payload returns the value that is serialised back to the caller.
func (r Result) Payload() any {
	if r.Failure != nil {
		return r.Failure
	}
	return r.Response
}

// JSON renders the payload as two-space indented JSON.
func (r Result) JSON() (string, error) {
	if r.Failure == nil && r.Response == nil {
		return "", errors.New("empty result")
	}
	b, err := json.MarshalIndent(r.Payload(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
