// Package adapter implements the host-facing test-execution protocol:
// it turns resolved suites into executable tasks, and projects each
// execution's result tree into structured per-leaf events and streamed
// log lines.
package adapter

import (
	"time"

	"github.com/attestkit/attest/internal/engine"
	"github.com/attestkit/attest/internal/suite"
)

// EventStatus is the wire-level status of a per-leaf event.
type EventStatus string

const (
	// StatusSuccess reports a passing test.
	StatusSuccess EventStatus = "success"
	// StatusFailure reports an assertion that did not hold.
	StatusFailure EventStatus = "failure"
	// StatusError reports an unexpected non-fatal error inside a body.
	StatusError EventStatus = "error"
	// StatusIgnored reports a test whose body was never invoked.
	StatusIgnored EventStatus = "ignored"
)

// Failed reports whether the status counts against the task.
func (s EventStatus) Failed() bool {
	return s == StatusFailure || s == StatusError
}

// Event is one independent, order-insensitive per-leaf-test report.
//
// Selector is the leaf's own name, not its full path. Sibling leaves in
// different groups that share a name therefore produce events that are
// indistinguishable by selector alone; hosts disambiguate only via the
// fully-qualified suite identifier. Changing this unilaterally would
// break the event-consumption contract, so the behavior is kept.
type Event struct {
	// FullyQualifiedName identifies the suite the leaf belongs to.
	FullyQualifiedName string

	// Selector is the leaf test's own name.
	Selector string

	// Status is the leaf outcome.
	Status EventStatus

	// Detail is present only for failure and error statuses.
	Detail *suite.FailureDetail

	// Duration is the time spent in the leaf body; may be zero.
	Duration time.Duration

	// Fingerprint is the descriptor the suite was discovered under.
	Fingerprint suite.Fingerprint
}

// EventHandler consumes events. Handlers shared across concurrently
// executing tasks must tolerate interleaved calls.
type EventHandler func(Event)

// projectEvents emits exactly one event per leaf of the result tree.
// Group nodes never produce events.
func projectEvents(fqn string, fp suite.Fingerprint, res *engine.Result, handler EventHandler) {
	for _, leaf := range res.Leaves(nil) {
		handler(Event{
			FullyQualifiedName: fqn,
			Selector:           leaf.Name,
			Status:             eventStatus(leaf.Status),
			Detail:             leaf.Detail,
			Duration:           leaf.Duration,
			Fingerprint:        fp,
		})
	}
}

func eventStatus(s engine.Status) EventStatus {
	switch s {
	case engine.StatusPassed:
		return StatusSuccess
	case engine.StatusFailed:
		return StatusFailure
	case engine.StatusErrored:
		return StatusError
	default:
		return StatusIgnored
	}
}
