package engine

import (
	"time"

	"github.com/attestkit/attest/internal/suite"
)

// Status is the outcome of a single leaf test.
type Status int

const (
	// StatusPassed means the body returned without a failure.
	StatusPassed Status = iota
	// StatusFailed means an assertion inside the body did not hold.
	StatusFailed
	// StatusErrored means the body raised an unexpected non-fatal
	// error (including a panic recovered at the isolation boundary).
	StatusErrored
	// StatusIgnored means the test was tagged ignore; its body was
	// never invoked.
	StatusIgnored
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusErrored:
		return "errored"
	case StatusIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Result is one node of a result tree. The tree is structurally
// isomorphic to the executed suite: groups keep their children in
// declaration order, leaves carry an outcome. A result tree is built
// completely before any projection reads it and is exclusively owned
// by the execution that produced it.
type Result struct {
	// Name is the node's declared name.
	Name string

	// Children holds group children in declaration order; nil for leaves.
	Children []*Result

	// Status is the leaf outcome. Groups have no outcome of their own;
	// for a group node the field is left at its zero value and the
	// derived Failed aggregate is what rendering consults.
	Status Status

	// Detail carries the failure payload for failed and errored leaves.
	Detail *suite.FailureDetail

	// Duration is the wall time spent in the leaf body.
	Duration time.Duration

	group bool
}

// IsGroup reports whether the node is a group rather than a leaf test.
func (r *Result) IsGroup() bool { return r.group }

// Failed reports whether this node, or any descendant, failed or errored.
func (r *Result) Failed() bool {
	if !r.group {
		return r.Status == StatusFailed || r.Status == StatusErrored
	}
	for _, c := range r.Children {
		if c.Failed() {
			return true
		}
	}
	return false
}

// Leaves appends every leaf result under r to dst, depth first in
// declaration order, and returns the extended slice.
func (r *Result) Leaves(dst []*Result) []*Result {
	if !r.group {
		return append(dst, r)
	}
	for _, c := range r.Children {
		dst = c.Leaves(dst)
	}
	return dst
}
