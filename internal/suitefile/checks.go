package suitefile

import (
	"fmt"

	"github.com/attestkit/attest/internal/expect"
)

// CheckFunc evaluates one declarative check against its arguments.
// A nil return is a pass; a *suite.FailureDetail is an assertion
// failure; any other error is an unexpected check error.
type CheckFunc func(args map[string]any) error

// Checks is the lookup table of named check functions a suite file may
// reference. Like the suite registry it is built once and read-only
// during execution.
type Checks struct {
	funcs map[string]CheckFunc
}

// NewChecks creates an empty check table.
func NewChecks() *Checks {
	return &Checks{funcs: make(map[string]CheckFunc)}
}

// Register adds a named check. Duplicate names are an error.
func (c *Checks) Register(name string, fn CheckFunc) error {
	if name == "" {
		return fmt.Errorf("check name must not be empty")
	}
	if _, ok := c.funcs[name]; ok {
		return fmt.Errorf("check %q is already registered", name)
	}
	c.funcs[name] = fn
	return nil
}

// lookup returns the check registered under name.
func (c *Checks) lookup(name string) (CheckFunc, bool) {
	fn, ok := c.funcs[name]
	return fn, ok
}

// BuiltinChecks returns the check table shipped with the runner.
//
//   - equal: args {actual, expected}, deep equality
//   - contains: args {haystack, needle}, string containment
//   - true: args {value}, boolean truth
func BuiltinChecks() *Checks {
	c := NewChecks()
	c.Register("equal", checkEqual)
	c.Register("contains", checkContains)
	c.Register("true", checkTrue)
	return c
}

func checkEqual(args map[string]any) error {
	actual, err := requireArg(args, "actual")
	if err != nil {
		return err
	}
	expected, err := requireArg(args, "expected")
	if err != nil {
		return err
	}
	return expect.Equal(actual, expected)
}

func checkContains(args map[string]any) error {
	haystack, err := requireStringArg(args, "haystack")
	if err != nil {
		return err
	}
	needle, err := requireStringArg(args, "needle")
	if err != nil {
		return err
	}
	return expect.Contains(haystack, needle)
}

func checkTrue(args map[string]any) error {
	v, err := requireArg(args, "value")
	if err != nil {
		return err
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("arg %q: expected bool, got %T", "value", v)
	}
	return expect.True(b)
}

func requireArg(args map[string]any, key string) (any, error) {
	v, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("missing required arg %q", key)
	}
	return v, nil
}

func requireStringArg(args map[string]any, key string) (string, error) {
	v, err := requireArg(args, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q: expected string, got %T", key, v)
	}
	return s, nil
}
