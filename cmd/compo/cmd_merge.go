package main

import (
	"github.com/spf13/cobra"

	"github.com/compo-vcs/compo/pkg/merge"
	"github.com/compo-vcs/compo/pkg/workspace"
)

func newMergeCmd() *cobra.Command {
	var oursFlag, theirsFlag, manualFlag bool

	cmd := &cobra.Command{
		Use:   "merge <version> <component>...",
		Short: "Merge tracked components to a stored version",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy, err := merge.StrategyFromFlags(oursFlag, theirsFlag, manualFlag)
			if err != nil {
				return err
			}

			ws, err := workspace.Open(".")
			if err != nil {
				return err
			}

			m := &merge.Merger{
				Loader:   ws,
				Store:    ws.Store,
				Track:    ws.Track,
				Oracle:   merge.LineMerger{},
				Selector: &merge.Selector{Prompt: huhPrompter{}},
				WorkDir:  ws.Root,
			}

			results, err := m.MergeVersion(cmd.Context(), args[1:], args[0], strategy)
			if results != nil {
				printApplyResults(cmd.OutOrStdout(), results)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&oursFlag, "ours", false, "resolve conflicts by keeping the working copies")
	cmd.Flags().BoolVar(&theirsFlag, "theirs", false, "resolve conflicts by taking the target version")
	cmd.Flags().BoolVar(&manualFlag, "manual", false, "write conflict markers for manual resolution")

	return cmd
}
