// Package expect provides the value-expectation helpers used inside
// test bodies. The execution engine only consumes the pass/fail outcome
// and the renderable failure payload, so embedders are free to swap in
// any other assertion library that returns *suite.FailureDetail.
package expect

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/attestkit/attest/internal/suite"
)

// Equal checks that actual equals expected.
// Comparison uses reflect.DeepEqual so nested maps and slices work.
func Equal(actual, expected any) error {
	if reflect.DeepEqual(actual, expected) {
		return nil
	}
	return &suite.FailureDetail{
		Description: "actual value did not satisfy expected predicate",
		Expected:    fmt.Sprintf("equals(%v)", expected),
		Actual:      fmt.Sprintf("%v", actual),
		HasValues:   true,
	}
}

// True checks that the condition holds.
func True(condition bool) error {
	if condition {
		return nil
	}
	return &suite.FailureDetail{
		Description: "actual value did not satisfy expected predicate",
		Expected:    "equals(true)",
		Actual:      "false",
		HasValues:   true,
	}
}

// Contains checks that s contains substr.
func Contains(s, substr string) error {
	if strings.Contains(s, substr) {
		return nil
	}
	return &suite.FailureDetail{
		Description: "actual value did not satisfy expected predicate",
		Expected:    fmt.Sprintf("contains(%q)", substr),
		Actual:      fmt.Sprintf("%q", s),
		HasValues:   true,
	}
}

// NoError checks that err is nil.
func NoError(err error) error {
	if err == nil {
		return nil
	}
	return &suite.FailureDetail{
		Description: fmt.Sprintf("unexpected error: %v", err),
	}
}

// Fail unconditionally produces a failure with the given description.
func Fail(description string) error {
	return &suite.FailureDetail{Description: description}
}
