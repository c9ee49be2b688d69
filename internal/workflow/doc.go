// Package workflow implements the spec workflow state machine.
//
// A workflow walks one feature through four documentation stages:
// requirements, design, implementation and complete. Each stage produces an
// artifact that a human must approve before the next stage may be entered.
// The package never touches those artifacts; it only tracks where the
// workflow is, validates requested transitions against the approval gates,
// and derives guidance text for the calling agent.
//
// Key types:
//   - [Stage] and [Action] - the closed sets a request is drawn from
//   - [State] - the explicit workflow state value
//   - [Request] - a parsed, already-valid transition request
//   - [Machine] - host-owned holder that serialises transitions on one [State]
//   - [Result] - the success [Response] or [Failure] payload of one call
//
// [Transition] is the pure core: given a state and a request it returns the
// next state or a [*TransitionError]. Input shape problems are reported by
// [ParseArguments] as a [*ValidationError] before any state is touched.
package workflow
