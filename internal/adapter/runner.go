package adapter

import (
	"log/slog"
	"path/filepath"

	"github.com/attestkit/attest/internal/engine"
	"github.com/attestkit/attest/internal/render"
	"github.com/attestkit/attest/internal/suite"
)

// Runner builds executable tasks from fully-qualified suite
// identifiers. The registry is the resolution context: it is
// constructed by the host at startup and read-only afterwards.
type Runner struct {
	registry *suite.Registry
	clock    engine.Clock
	logger   *slog.Logger
	theme    render.Theme
	filters  []string
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock sets the time source for leaf durations.
func WithClock(c engine.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTheme sets the log-renderer theme.
func WithTheme(t render.Theme) Option {
	return func(r *Runner) { r.theme = t }
}

// WithFilters restricts execution to leaf tests whose name matches at
// least one of the given glob patterns. Filtered-out leaves produce
// neither events nor log lines.
func WithFilters(globs ...string) Option {
	return func(r *Runner) { r.filters = globs }
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *suite.Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		theme:    render.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tasks resolves each identifier against the supported fingerprint and
// returns one task per identifier. An identifier that does not resolve
// aborts construction of the whole batch with a ResolutionError before
// any task has produced events or log lines.
func (r *Runner) Tasks(fqns []string) ([]*Task, error) {
	fp := suite.RunnableFingerprint()
	eng := engine.New(r.clock, r.logger)
	renderer := render.NewRenderer(r.theme)

	tasks := make([]*Task, 0, len(fqns))
	for _, fqn := range fqns {
		s, err := r.registry.Resolve(fqn, fp)
		if err != nil {
			return nil, err
		}
		if len(r.filters) > 0 {
			s = filterSuite(s, r.filters)
		}
		tasks = append(tasks, &Task{
			fqn:         s.Name(),
			suite:       s,
			fingerprint: fp,
			engine:      eng,
			renderer:    renderer,
		})
	}
	return tasks, nil
}

// filterSuite prunes leaves whose name matches none of the globs.
// Groups left without children are dropped as well.
func filterSuite(s *suite.Suite, globs []string) *suite.Suite {
	var nodes []suite.Node
	for _, n := range s.Nodes() {
		if kept, ok := filterNode(n, globs); ok {
			nodes = append(nodes, kept)
		}
	}
	return suite.New(s.Name(), nodes...)
}

func filterNode(n suite.Node, globs []string) (suite.Node, bool) {
	switch node := n.(type) {
	case *suite.Group:
		var kept []suite.Node
		for _, c := range node.Children() {
			if k, ok := filterNode(c, globs); ok {
				kept = append(kept, k)
			}
		}
		if len(kept) == 0 {
			return nil, false
		}
		return suite.NewGroup(node.Name(), kept...), true
	case *suite.Test:
		for _, glob := range globs {
			if ok, err := filepath.Match(glob, node.Name()); err == nil && ok {
				return node, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
