package combat

import (
	"errors"
	"fmt"
	"strings"
)

// EndPolicy decides what happens when combat ends with an invalid legacy
// record.
type EndPolicy string

const (
	// EndPolicyFailOpen logs the problems and ends combat anyway.
	EndPolicyFailOpen EndPolicy = "fail-open"
	// EndPolicyFailClosed rejects the transition with an *EndStateError.
	EndPolicyFailClosed EndPolicy = "fail-closed"
)

// ErrInvalidEndState is wrapped by EndStateError.
var ErrInvalidEndState = errors.New("invalid combat end state")

// EndStateError carries the failed validation that blocked combat from ending.
type EndStateError struct {
	Result ValidationResult
}

func (e *EndStateError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidEndState, e.Result.Summary())
}

func (e *EndStateError) Unwrap() error {
	return ErrInvalidEndState
}

// ParseEndPolicy parses a policy name. The empty string selects fail-open.
func ParseEndPolicy(value string) (EndPolicy, error) {
	switch EndPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", EndPolicyFailOpen:
		return EndPolicyFailOpen, nil
	case EndPolicyFailClosed:
		return EndPolicyFailClosed, nil
	default:
		return "", fmt.Errorf("unknown combat end policy %q", value)
	}
}

// UnmarshalText lets env and flag parsing accept policy names.
func (p *EndPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseEndPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// String returns the policy name.
func (p EndPolicy) String() string {
	if p == "" {
		return string(EndPolicyFailOpen)
	}
	return string(p)
}

// Set implements flag.Value.
func (p *EndPolicy) Set(value string) error {
	return p.UnmarshalText([]byte(value))
}
