package adapter

import (
	"github.com/attestkit/attest/internal/engine"
	"github.com/attestkit/attest/internal/render"
	"github.com/attestkit/attest/internal/suite"
)

// Task is one resolved, executable suite. A Task owns the result tree
// it produces for the duration of one Execute call and must not be
// shared across concurrent Execute calls; distinct Tasks may execute
// concurrently.
type Task struct {
	fqn         string
	suite       *suite.Suite
	fingerprint suite.Fingerprint
	engine      *engine.Engine
	renderer    *render.Renderer
}

// FullyQualifiedName returns the identifier the task was resolved from.
func (t *Task) FullyQualifiedName() string { return t.fqn }

// Fingerprint returns the descriptor the suite was discovered under.
func (t *Task) Fingerprint() suite.Fingerprint { return t.fingerprint }

// Execute runs the wrapped suite exactly once, synchronously, then
// projects the result tree twice: one event per leaf test to handler
// (order-insensitive), and the full rendered line sequence, in
// traversal order, to every logger at info severity. Every logger
// receives an identical, complete copy of the sequence.
//
// The returned slice lists nested subtasks for hosts that discover at
// finer grain; this adapter treats a suite as one atomic task, so the
// slice is always empty.
//
// Calling Execute again re-runs the suite: bodies may have side
// effects, so outcomes are only memoized within a single call.
func (t *Task) Execute(handler EventHandler, loggers []Logger) []*Task {
	res := t.engine.Run(t.suite)

	projectEvents(t.fqn, t.fingerprint, res, handler)

	lines := t.renderer.Lines(res)
	for _, logger := range loggers {
		for _, line := range lines {
			logger.Info(line)
		}
	}
	return nil
}
