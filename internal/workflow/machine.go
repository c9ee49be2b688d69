package workflow

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// GuidanceSink receives the guidance text after every successful transition.
//
// It exists for human observability only; the machine never reads anything
// back from it. The output.Printer type implements this interface.
type GuidanceSink interface {
	ShowGuidance(stage Stage, text string)
}

// Machine owns the [State] of one workflow instance for the lifetime of its
// host.
//
// Apply calls are serialised so each one runs to completion before the next
// starts, regardless of how the transport dispatches requests.
// Use [NewMachine] to create an instance.
type Machine struct {
	mu     sync.Mutex
	state  State
	sink   GuidanceSink
	logger *zap.Logger
}

// NewMachine creates a [Machine] in the initial state.
//
// A nil logger is replaced by a no-op logger. Guidance output is off until
// [Machine.SetGuidanceSink] is called.
func NewMachine(logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		state:  NewState(),
		logger: logger,
	}
}

// SetGuidanceSink configures where guidance text is echoed after successful
// transitions. Pass nil to disable.
func (m *Machine) SetGuidanceSink(sink GuidanceSink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sink = sink
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Apply validates an untyped request and, when valid, applies it.
//
// Validation failures leave the state untouched. Gate failures keep only
// the feature name update. Both are reported through [Result.Failure]
// carrying the stage as of before the call; Apply itself never panics or
// returns a Go error for bad input.
func (m *Machine) Apply(args map[string]any) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	req, err := ParseArguments(args)
	if err != nil {
		m.logger.Warn("rejected workflow request",
			zap.String("current_stage", m.state.CurrentStage.String()),
			zap.Error(err))
		return Result{Failure: NewFailure(err, m.state.CurrentStage), Err: err}
	}
	return m.apply(req)
}

// ApplyRequest applies an already-parsed request.
func (m *Machine) ApplyRequest(req Request) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !req.Stage.IsValid() {
		err := CheckGate(m.state, req.Stage)
		return Result{Failure: NewFailure(err, m.state.CurrentStage), Err: err}
	}
	return m.apply(req)
}

// apply runs the transition with m.mu held.
func (m *Machine) apply(req Request) Result {
	previous := m.state.CurrentStage

	next, err := Transition(m.state, req)
	if err != nil {
		var te *TransitionError
		if errors.As(err, &te) {
			// The feature name update survives a closed gate.
			m.state = next
		}
		m.logger.Warn("workflow transition refused",
			zap.String("from", previous.String()),
			zap.String("to", req.Stage.String()),
			zap.Error(err))
		return Result{Failure: NewFailure(err, previous), Err: err}
	}
	m.state = next

	m.logger.Info("workflow transition",
		zap.String("from", previous.String()),
		zap.String("to", next.CurrentStage.String()),
		zap.String("action", string(req.Action)),
		zap.String("feature", next.FeatureName),
		zap.Bool("can_proceed", next.CanProceed()))
	if req.Feedback != "" {
		m.logger.Debug("workflow feedback", zap.String("feedback", req.Feedback))
	}

	if m.sink != nil {
		m.sink.ShowGuidance(next.CurrentStage, Guidance(next.CurrentStage))
	}
	return Result{Response: NewResponse(next)}
}
