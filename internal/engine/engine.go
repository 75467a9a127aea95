// Package engine executes a suite tree and produces a result tree.
//
// The walk is a single depth-first pass in declaration order. Every
// leaf body runs inside an isolation boundary: assertion failures,
// unexpected errors, and panics are all converted to leaf outcomes so
// that sibling and subsequent tests always run. The engine never
// reorders or merges nodes; full path identity is preserved by
// construction because the result tree mirrors the suite tree.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/attestkit/attest/internal/suite"
)

// Engine runs suites sequentially. A single Engine may be shared by
// concurrently-executing tasks: it holds no per-run state.
type Engine struct {
	clock  Clock
	logger *slog.Logger
}

// New creates an engine. A nil clock defaults to SystemClock; a nil
// logger discards diagnostics.
func New(clock Clock, logger *slog.Logger) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{clock: clock, logger: logger}
}

// Run executes every runnable leaf of the suite and returns the fully
// materialized result tree. The root result is a group node carrying
// the suite's name. Run never returns an error: per-leaf failures are
// recorded in the tree, and nothing outside the per-leaf isolation
// boundary can fail.
func (e *Engine) Run(s *suite.Suite) *Result {
	root := &Result{Name: s.Name(), group: true}
	for _, n := range s.Nodes() {
		root.Children = append(root.Children, e.runNode(n))
	}
	return root
}

func (e *Engine) runNode(n suite.Node) *Result {
	switch node := n.(type) {
	case *suite.Group:
		r := &Result{Name: node.Name(), group: true}
		for _, c := range node.Children() {
			r.Children = append(r.Children, e.runNode(c))
		}
		return r
	case *suite.Test:
		return e.runTest(node)
	default:
		// The Node interface is sealed; this cannot happen.
		panic(fmt.Sprintf("unknown suite node type %T", n))
	}
}

func (e *Engine) runTest(t *suite.Test) *Result {
	if t.Ignored() {
		e.logger.Debug("test ignored", "test", t.Name())
		return &Result{Name: t.Name(), Status: StatusIgnored}
	}

	start := e.clock.Now()
	err := invokeBody(t.Body())
	r := &Result{Name: t.Name(), Duration: e.clock.Now().Sub(start)}

	switch {
	case err == nil:
		r.Status = StatusPassed
	default:
		var detail *suite.FailureDetail
		if errors.As(err, &detail) {
			r.Status = StatusFailed
			r.Detail = detail
		} else {
			r.Status = StatusErrored
			r.Detail = &suite.FailureDetail{Description: err.Error()}
		}
		e.logger.Debug("test failed", "test", t.Name(), "status", r.Status.String(), "detail", r.Detail.Description)
	}
	return r
}

// invokeBody is the single isolation boundary around a test body.
// A panic inside the body becomes an ordinary error here, so the
// traversal of the remaining nodes is never aborted.
func invokeBody(body suite.Body) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("test body panicked: %v", rec)
		}
	}()
	if body == nil {
		return nil
	}
	return body()
}
