package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/attestkit/attest/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history <db>",
		Short: "List recorded runs",
		Long: `List runs recorded with "attest run --record", most recent first.

Exit codes:
  0 - History listed
  2 - Command error (database not found, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")

	return cmd
}

// RunInfo is the JSON shape of one recorded run.
type RunInfo struct {
	ID         string `json:"id"`
	StartedAt  string `json:"started_at"`
	Failed     int    `json:"failed"`
	Successful int    `json:"successful"`
}

func listHistory(opts *HistoryOptions, dbPath string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open run-history database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		infos := make([]RunInfo, 0, len(runs))
		for _, r := range runs {
			infos = append(infos, RunInfo{
				ID:         r.ID,
				StartedAt:  r.StartedAt.Format(time.RFC3339),
				Failed:     r.Failed,
				Successful: r.Successful,
			})
		}
		return writeJSON(w, CLIResponse{Status: "ok", Data: infos})
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  failed: %d, successful: %d\n",
			r.ID, r.StartedAt.Format(time.RFC3339), r.Failed, r.Successful)
	}
	return nil
}
