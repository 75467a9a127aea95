package adapter

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attestkit/attest/internal/expect"
	"github.com/attestkit/attest/internal/render"
	"github.com/attestkit/attest/internal/suite"
	"github.com/attestkit/attest/internal/testutil"
)

// exampleSuite is the canonical three-test suite: one failing, one
// passing, one ignored.
func exampleSuite() *suite.Suite {
	return suite.New("some suite",
		suite.NewTest("failing test", func() error { return expect.Equal(1, 2) }),
		suite.NewTest("passing test", func() error { return expect.Equal(1, 1) }),
		suite.NewTest("ignored test", func() error { return expect.Equal(1, 2) }).Ignore(),
	)
}

func newTestRunner(t *testing.T, suites ...*suite.Suite) *Runner {
	t.Helper()
	reg := suite.NewRegistry()
	for _, s := range suites {
		require.NoError(t, reg.Register(s))
	}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewRunner(reg,
		WithClock(testutil.NewDeterministicClock(start, time.Millisecond)),
		WithTheme(render.PlainTheme()),
	)
}

func collectEvents(t *testing.T, task *Task, loggers ...Logger) []Event {
	t.Helper()
	var mu sync.Mutex
	var events []Event
	subtasks := task.Execute(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}, loggers)
	assert.Empty(t, subtasks, "adapter treats a suite as one atomic task")
	return events
}

func TestExecute_OneEventPerLeaf(t *testing.T) {
	runner := newTestRunner(t, exampleSuite())
	tasks, err := runner.Tasks([]string{"some suite"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	events := collectEvents(t, tasks[0])
	require.Len(t, events, 3)

	// Events are order-insensitive; index them by selector.
	bySelector := map[string]Event{}
	for _, ev := range events {
		_, dup := bySelector[ev.Selector]
		require.False(t, dup, "duplicate event for %s", ev.Selector)
		bySelector[ev.Selector] = ev
	}

	assert.Equal(t, StatusFailure, bySelector["failing test"].Status)
	require.NotNil(t, bySelector["failing test"].Detail)
	assert.Equal(t, "equals(2)", bySelector["failing test"].Detail.Expected)

	assert.Equal(t, StatusSuccess, bySelector["passing test"].Status)
	assert.Nil(t, bySelector["passing test"].Detail)

	assert.Equal(t, StatusIgnored, bySelector["ignored test"].Status)

	for _, ev := range events {
		assert.Equal(t, "some suite", ev.FullyQualifiedName)
		assert.Equal(t, suite.RunnableFingerprint(), ev.Fingerprint)
	}
}

func TestExecute_GroupsProduceNoEvents(t *testing.T) {
	s := suite.New("grouped",
		suite.NewGroup("outer",
			suite.NewGroup("inner",
				suite.NewTest("leaf", func() error { return nil }),
			),
		),
	)
	runner := newTestRunner(t, s)
	tasks, err := runner.Tasks([]string{"grouped"})
	require.NoError(t, err)

	events := collectEvents(t, tasks[0])
	require.Len(t, events, 1)
	assert.Equal(t, "leaf", events[0].Selector)
}

func TestExecute_SelectorIsLeafOwnName(t *testing.T) {
	// Sibling leaves in different groups sharing a name produce events
	// distinguishable only via the suite identifier. Deliberate.
	s := suite.New("ambiguous",
		suite.NewGroup("a", suite.NewTest("shared", func() error { return nil })),
		suite.NewGroup("b", suite.NewTest("shared", func() error { return nil })),
	)
	runner := newTestRunner(t, s)
	tasks, err := runner.Tasks([]string{"ambiguous"})
	require.NoError(t, err)

	events := collectEvents(t, tasks[0])
	require.Len(t, events, 2)
	assert.Equal(t, "shared", events[0].Selector)
	assert.Equal(t, "shared", events[1].Selector)
}

func TestExecute_EveryLoggerGetsIdenticalSequence(t *testing.T) {
	runner := newTestRunner(t, exampleSuite())
	tasks, err := runner.Tasks([]string{"some suite"})
	require.NoError(t, err)

	first := NewBufferLogger()
	second := NewBufferLogger()
	collectEvents(t, tasks[0], first, second)

	require.NotEmpty(t, first.Snapshot())
	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestExecute_LogLinesFollowDeclarationOrder(t *testing.T) {
	runner := newTestRunner(t, exampleSuite())
	tasks, err := runner.Tasks([]string{"some suite"})
	require.NoError(t, err)

	buf := NewBufferLogger()
	collectEvents(t, tasks[0], buf)

	assert.Equal(t, []string{
		"- some suite",
		"  - failing test",
		"    1 did not satisfy equals(2)",
		"  + passing test",
	}, buf.Snapshot())
}

func TestExecute_RerunProducesIdenticalOutput(t *testing.T) {
	runner := newTestRunner(t, exampleSuite())
	tasks, err := runner.Tasks([]string{"some suite"})
	require.NoError(t, err)
	task := tasks[0]

	firstLog := NewBufferLogger()
	firstEvents := collectEvents(t, task, firstLog)

	secondLog := NewBufferLogger()
	secondEvents := collectEvents(t, task, secondLog)

	assert.Equal(t, firstLog.Snapshot(), secondLog.Snapshot())

	key := func(ev Event) string {
		return fmt.Sprintf("%s/%s/%s", ev.FullyQualifiedName, ev.Selector, ev.Status)
	}
	firstSet := map[string]bool{}
	for _, ev := range firstEvents {
		firstSet[key(ev)] = true
	}
	secondSet := map[string]bool{}
	for _, ev := range secondEvents {
		secondSet[key(ev)] = true
	}
	assert.Equal(t, firstSet, secondSet)
}

func TestExecute_DurationsFromClock(t *testing.T) {
	runner := newTestRunner(t, exampleSuite())
	tasks, err := runner.Tasks([]string{"some suite"})
	require.NoError(t, err)

	for _, ev := range collectEvents(t, tasks[0]) {
		switch ev.Status {
		case StatusIgnored:
			assert.Zero(t, ev.Duration)
		default:
			assert.Equal(t, time.Millisecond, ev.Duration)
		}
	}
}

func TestTasks_ResolutionErrorAbortsBatch(t *testing.T) {
	runner := newTestRunner(t, exampleSuite())

	_, err := runner.Tasks([]string{"some suite", "missing suite"})
	require.Error(t, err)

	var resErr *suite.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "missing suite", resErr.Name)
}

func TestTasks_FilterSelectsLeavesByGlob(t *testing.T) {
	s := suite.New("filtered",
		suite.NewTest("unit add", func() error { return nil }),
		suite.NewGroup("integration",
			suite.NewTest("integration fetch", func() error { return expect.Fail("down") }),
		),
		suite.NewTest("unit remove", func() error { return nil }),
	)
	reg := suite.NewRegistry()
	require.NoError(t, reg.Register(s))
	runner := NewRunner(reg, WithTheme(render.PlainTheme()), WithFilters("unit *"))

	tasks, err := runner.Tasks([]string{"filtered"})
	require.NoError(t, err)

	events := collectEvents(t, tasks[0])
	require.Len(t, events, 2)
	selectors := []string{events[0].Selector, events[1].Selector}
	assert.ElementsMatch(t, []string{"unit add", "unit remove"}, selectors)
}

func TestExecute_ConcurrentTasksDoNotInterfere(t *testing.T) {
	first := exampleSuite()
	second := suite.New("other suite",
		suite.NewTest("also passing", func() error { return nil }),
	)
	runner := newTestRunner(t, first, second)
	tasks, err := runner.Tasks([]string{"some suite", "other suite"})
	require.NoError(t, err)

	shared := NewBufferLogger()
	var wg sync.WaitGroup
	counts := make([]int, len(tasks))
	for i, task := range tasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts[i] = len(collectEvents(t, task, shared))
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, counts[0])
	assert.Equal(t, 1, counts[1])
	// The shared sink saw every line from both tasks, without loss.
	assert.Len(t, shared.Snapshot(), 4+2)
}
