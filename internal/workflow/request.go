package workflow

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Request is a parsed transition request.
//
// Stage is guaranteed valid once a Request comes out of [ParseArguments].
// The other fields are loosely typed on the wire and are accepted as-is.
type Request struct {
	Stage       Stage  `json:"stage" yaml:"stage"`
	FeatureName string `json:"featureName,omitempty" yaml:"featureName,omitempty"`
	Action      Action `json:"action,omitempty" yaml:"action,omitempty"`

	// Feedback is passed through for the caller and never interpreted.
	Feedback string `json:"feedback,omitempty" yaml:"feedback,omitempty"`
}

// DecodeRequest parses raw JSON tool arguments into a [Request].
//
// Anything that is not a JSON object is treated as an object without a
// stage and fails with a [*ValidationError].
func DecodeRequest(raw []byte) (Request, error) {
	return ParseArguments(DecodeArguments(raw))
}

// DecodeArguments unmarshals raw JSON tool arguments into a map. Anything
// that is not a JSON object yields nil, which [ParseArguments] rejects.
func DecodeArguments(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil
	}
	return args
}

// ParseArguments validates an untyped argument map and returns a typed
// [Request].
//
// Only "stage" is checked strictly: it must be a non-empty string naming one
// of [Stages]. A missing or falsy featureName is treated as absent; other
// scalar values are stringified. Unknown action values are kept verbatim.
func ParseArguments(args map[string]any) (Request, error) {
	name, ok := args["stage"].(string)
	if !ok || name == "" {
		return Request{}, &ValidationError{
			Field:   "stage",
			Message: "Invalid stage: must be a string",
		}
	}

	stage, ok := ParseStage(name)
	if !ok {
		return Request{}, &ValidationError{
			Field:   "stage",
			Message: fmt.Sprintf("Invalid stage: must be one of %s", stageNames()),
		}
	}

	req := Request{
		Stage:       stage,
		FeatureName: looseString(args["featureName"]),
		Feedback:    looseString(args["feedback"]),
	}
	if action, ok := args["action"].(string); ok {
		req.Action = Action(action)
	}
	return req, nil
}

// looseString renders a loosely typed argument as text. Falsy values
// (nil, false, 0, "") render as "".
func looseString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		if val == 0 {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		if val == 0 {
			return ""
		}
		return strconv.Itoa(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
