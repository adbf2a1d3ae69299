// Package result defines the uniform {status, response} envelope every
// transport role and the Router exchange instead of raising errors across
// a wire boundary.
package result

import "fmt"

// Result is the uniform transport envelope. Status 0 means success;
// anything else is an error code from the 450-471 reserved space or a
// manager's own domain-specific status.
type Result struct {
	Status   int
	Response any
}

// OK builds a successful Result.
func OK(response any) Result {
	return Result{Status: 0, Response: response}
}

// Err builds an error Result with the given status and a string message.
func Err(status int, message string) Result {
	return Result{Status: status, Response: message}
}

// IsSuccess reports whether the Result's status is 0.
func (r Result) IsSuccess() bool {
	return r.Status == 0
}

// IsError reports whether the Result's status is non-zero.
func (r Result) IsError() bool {
	return r.Status != 0
}

// ToWire converts the Result to its wire mapping form, {status, response}.
func (r Result) ToWire() map[string]any {
	return map[string]any{
		"status":   r.Status,
		"response": r.Response,
	}
}

// FromWire reconstructs a Result from its wire mapping form. The status
// key must decode to an integer type (YAML decodes small integers as int);
// a missing status key is treated as an error rather than silently
// defaulting, since every valid Result carries both fields.
func FromWire(wire map[string]any) (Result, error) {
	rawStatus, ok := wire["status"]
	if !ok {
		return Result{}, fmt.Errorf("result: wire map missing %q key", "status")
	}

	status, err := toInt(rawStatus)
	if err != nil {
		return Result{}, fmt.Errorf("result: status field: %w", err)
	}

	return Result{Status: status, Response: wire["response"]}, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected status type %T", v)
	}
}
