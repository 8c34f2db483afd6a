package main

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/compo-vcs/compo/pkg/workspace"
)

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <component> [version]",
		Short: "Show changes between the working component and a stored version",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			ws, err := workspace.Open(".")
			if err != nil {
				return err
			}

			comps, err := ws.LoadComponents([]string{name})
			if err != nil {
				return err
			}
			comp := comps[0]

			version := comp.ID.Version
			if len(args) == 2 {
				version = args[1]
			}
			if version == "" {
				return fmt.Errorf("component %q has no recorded version to diff against", name)
			}

			stored, err := ws.Store.LoadVersion(name, version)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			dmp := diffmatchpatch.New()

			working := make(map[string][]byte, len(comp.Files))
			for _, f := range comp.Files {
				working[f.Path] = f.Contents
			}

			paths := make(map[string]bool, len(stored.Files))
			for _, vf := range stored.Files {
				paths[vf.Path] = true
			}
			for path := range working {
				paths[path] = true
			}

			sorted := make([]string, 0, len(paths))
			for path := range paths {
				sorted = append(sorted, path)
			}
			sort.Strings(sorted)

			for _, path := range sorted {
				var old []byte
				if vf, ok := stored.File(path); ok {
					old, err = ws.Store.LoadContent(vf.BlobHash)
					if err != nil {
						return fmt.Errorf("load %s: %w", path, err)
					}
				}
				cur := working[path]
				if bytes.Equal(old, cur) {
					continue
				}

				fmt.Fprintf(out, "--- %s@%s/%s\n", name, version, path)
				fmt.Fprintf(out, "+++ %s\n", path)
				diffs := dmp.DiffMain(string(old), string(cur), true)
				diffs = dmp.DiffCleanupSemantic(diffs)
				fmt.Fprint(out, dmp.DiffPrettyText(diffs))
			}
			return nil
		},
	}
}
