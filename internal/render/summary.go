package render

import "fmt"

// AggregateTestFailure signals overall failure after a batch of task
// executions. It is the only error in the system that is allowed to
// terminate the process.
type AggregateTestFailure struct {
	Failed int
}

// Error implements the error interface.
func (e *AggregateTestFailure) Error() string {
	return fmt.Sprintf("%d test task(s) failed", e.Failed)
}

// Summary aggregates pass/fail counts across a batch of task
// executions. A task counts as failed when any of its leaves failed.
type Summary struct {
	Failed     int
	Successful int
}

// Record adds one task outcome to the summary.
func (s *Summary) Record(failed bool) {
	if failed {
		s.Failed++
	} else {
		s.Successful++
	}
}

// Line renders the one-line colored summary. Counts are highlighted
// only when nonzero: the failed count in the fail color, the
// successful count in the pass color.
func (s Summary) Line(theme Theme) string {
	failed := fmt.Sprintf("failed: %d", s.Failed)
	if s.Failed > 0 {
		failed = theme.Fail.Render(failed)
	}
	successful := fmt.Sprintf("successful: %d", s.Successful)
	if s.Successful > 0 {
		successful = theme.Pass.Render(successful)
	}
	return fmt.Sprintf("Summary: %s, %s", failed, successful)
}

// Err returns an AggregateTestFailure when any task failed, nil otherwise.
func (s Summary) Err() error {
	if s.Failed > 0 {
		return &AggregateTestFailure{Failed: s.Failed}
	}
	return nil
}
