package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/attestkit/attest/internal/adapter"
	"github.com/attestkit/attest/internal/render"
	"github.com/attestkit/attest/internal/store"
	"github.com/attestkit/attest/internal/suite"
	"github.com/attestkit/attest/internal/suitefile"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Filters  []string // leaf-test selector globs
	Parallel bool     // execute suites concurrently
	Record   string   // run-history database path
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <suite-file-or-dir>...",
		Short: "Run declarative test suites",
		Long: `Run the test suites defined in the given YAML files or directories.

Each suite executes as one task: every leaf test runs in isolation,
results stream as colored log lines, and a summary line reports the
batch outcome.

Exit codes:
  0 - All tests passed
  1 - One or more tests failed
  2 - Command error (invalid paths, malformed suite files, etc.)

Examples:
  attest run ./suites
  attest run ./suites --filter "cart-*"
  attest run ./suites --parallel --record history.db
  attest run ./suites/checkout.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuites(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Filters, "filter", nil, "run only leaf tests matching these glob patterns")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "execute suites concurrently")
	cmd.Flags().StringVar(&opts.Record, "record", "", "record run history to this SQLite database")

	return cmd
}

func runSuites(opts *RunOptions, paths []string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	jsonMode := opts.Format == "json"

	suites, err := loadSuites(paths, suitefile.BuiltinChecks())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suites", err)
	}
	if len(suites) == 0 {
		if jsonMode {
			return writeJSON(w, CLIResponse{Status: "ok", Data: RunReport{Events: []EventReport{}}})
		}
		fmt.Fprintln(w, "No suites found.")
		return nil
	}

	registry := suite.NewRegistry()
	names := make([]string, 0, len(suites))
	for _, s := range suites {
		if err := registry.Register(s); err != nil {
			return WrapExitError(ExitCommandError, "failed to register suites", err)
		}
		names = append(names, s.Name())
	}

	theme := render.DefaultTheme()
	if opts.NoColor || jsonMode {
		theme = render.PlainTheme()
	}

	runnerOpts := []adapter.Option{adapter.WithTheme(theme)}
	if len(opts.Filters) > 0 {
		runnerOpts = append(runnerOpts, adapter.WithFilters(opts.Filters...))
	}
	if opts.Verbose {
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
		runnerOpts = append(runnerOpts, adapter.WithLogger(slog.New(handler)))
	}

	tasks, err := adapter.NewRunner(registry, runnerOpts...).Tasks(names)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build tasks", err)
	}

	var (
		st       *store.Store
		recorder *store.Recorder
		runID    string
	)
	if opts.Record != "" {
		st, err = store.Open(opts.Record)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open run-history database", err)
		}
		defer st.Close()
		runID = store.UUIDv7Generator{}.Generate()
		if err := st.CreateRun(cmd.Context(), runID, time.Now()); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		recorder = store.NewRecorder(st, runID)
	}

	collector := &eventCollector{}
	runTask := func(t *adapter.Task, loggers []adapter.Logger) bool {
		failed := false
		handler := func(ev adapter.Event) {
			if ev.Status.Failed() {
				failed = true
			}
			collector.add(ev)
			if recorder != nil {
				recorder.Handle(ev)
			}
		}
		t.Execute(handler, loggers)
		return failed
	}

	summary := render.Summary{}
	if opts.Parallel {
		// Each task logs into its own buffer; buffers are flushed in
		// task order afterwards so every per-task line sequence stays
		// internally ordered regardless of execution interleaving.
		buffers := make([]*adapter.BufferLogger, len(tasks))
		failures := make([]bool, len(tasks))
		g := new(errgroup.Group)
		for i, t := range tasks {
			buffers[i] = adapter.NewBufferLogger()
			g.Go(func() error {
				failures[i] = runTask(t, []adapter.Logger{buffers[i]})
				return nil
			})
		}
		g.Wait()
		for i := range tasks {
			if !jsonMode {
				for _, line := range buffers[i].Snapshot() {
					fmt.Fprintln(w, line)
				}
			}
			summary.Record(failures[i])
		}
	} else {
		for _, t := range tasks {
			var loggers []adapter.Logger
			if !jsonMode {
				loggers = []adapter.Logger{adapter.WriterLogger{W: w}}
			}
			summary.Record(runTask(t, loggers))
		}
	}

	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return WrapExitError(ExitCommandError, "failed to record events", err)
		}
		if err := st.FinishRun(cmd.Context(), runID, summary.Failed, summary.Successful); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	if jsonMode {
		return outputRunJSON(w, runID, collector.snapshot(), summary)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summary.Line(theme))
	if err := summary.Err(); err != nil {
		return NewExitError(ExitFailure, err.Error())
	}
	return nil
}

// loadSuites loads every suite named by the given files and directories.
func loadSuites(paths []string, checks *suitefile.Checks) ([]*suite.Suite, error) {
	var suites []*suite.Suite
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("suite path not found: %s", path)
		}
		if info.IsDir() {
			loaded, err := suitefile.LoadDir(path, "", checks)
			if err != nil {
				return nil, err
			}
			suites = append(suites, loaded...)
			continue
		}
		s, err := suitefile.Load(path, checks)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// eventCollector accumulates events from possibly-concurrent tasks.
type eventCollector struct {
	mu     sync.Mutex
	events []adapter.Event
}

func (c *eventCollector) add(ev adapter.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *eventCollector) snapshot() []adapter.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]adapter.Event, len(c.events))
	copy(out, c.events)
	return out
}

// EventReport is the JSON shape of one per-test event.
type EventReport struct {
	Suite      string `json:"suite"`
	Selector   string `json:"selector"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// RunReport is the JSON payload of a run command.
type RunReport struct {
	RunID      string        `json:"run_id,omitempty"`
	Events     []EventReport `json:"events"`
	Failed     int           `json:"failed"`
	Successful int           `json:"successful"`
}

// outputRunJSON writes the run result as JSON.
func outputRunJSON(w io.Writer, runID string, events []adapter.Event, summary render.Summary) error {
	report := RunReport{
		RunID:      runID,
		Events:     make([]EventReport, 0, len(events)),
		Failed:     summary.Failed,
		Successful: summary.Successful,
	}
	for _, ev := range events {
		er := EventReport{
			Suite:      ev.FullyQualifiedName,
			Selector:   ev.Selector,
			Status:     string(ev.Status),
			DurationMs: ev.Duration.Milliseconds(),
		}
		if ev.Detail != nil {
			er.Detail = ev.Detail.Error()
		}
		report.Events = append(report.Events, er)
	}

	resp := CLIResponse{Status: "ok", Data: report}
	if summary.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    "E_TESTS_FAILED",
			Message: fmt.Sprintf("%d test task(s) failed", summary.Failed),
		}
	}
	if err := writeJSON(w, resp); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d test task(s) failed", summary.Failed))
	}
	return nil
}
