package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/attestkit/attest/internal/suite"
	"github.com/attestkit/attest/internal/suitefile"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <suite-file-or-dir>...",
		Short:         "List discovered suites",
		Long:          "Load the given suite files and print each suite's name and test count without running anything.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSuites(rootOpts, args, cmd)
		},
	}
	return cmd
}

// SuiteInfo is the JSON shape of one discovered suite.
type SuiteInfo struct {
	Name  string `json:"name"`
	Tests int    `json:"tests"`
}

func listSuites(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	suites, err := loadSuites(paths, suitefile.BuiltinChecks())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suites", err)
	}

	infos := make([]SuiteInfo, 0, len(suites))
	for _, s := range suites {
		infos = append(infos, SuiteInfo{Name: s.Name(), Tests: countTests(s.Nodes())})
	}

	if opts.Format == "json" {
		return writeJSON(w, CLIResponse{Status: "ok", Data: infos})
	}

	if len(infos) == 0 {
		fmt.Fprintln(w, "No suites found.")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%s (%d tests)\n", info.Name, info.Tests)
	}
	return nil
}

func countTests(nodes []suite.Node) int {
	count := 0
	for _, n := range nodes {
		switch node := n.(type) {
		case *suite.Group:
			count += countTests(node.Children())
		case *suite.Test:
			count++
		}
	}
	return count
}
