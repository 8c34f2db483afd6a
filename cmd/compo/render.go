package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/compo-vcs/compo/pkg/merge"
)

var (
	cleanColor    = color.New(color.FgGreen)
	touchedColor  = color.New(color.FgYellow)
	conflictColor = color.New(color.FgRed, color.Bold)
	dimColor      = color.New(color.FgHiBlack)
)

// statusColor maps a merge status to its display color. Presentation
// only; the engine never sees colors.
func statusColor(s merge.FileStatus) *color.Color {
	switch s {
	case merge.StatusMerged, merge.StatusAdded:
		return cleanColor
	case merge.StatusUpdated, merge.StatusOverridden:
		return touchedColor
	case merge.StatusManualConflict:
		return conflictColor
	}
	return dimColor
}

func printApplyResults(out io.Writer, results *merge.ApplyVersionResults) {
	fmt.Fprintf(out, "merged to version %s\n", results.Version)

	for _, res := range results.Components {
		fmt.Fprintf(out, "%s\n", res.ID)

		paths := make([]string, 0, len(res.FilesStatus))
		for path := range res.FilesStatus {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		for _, path := range paths {
			status := res.FilesStatus[path]
			fmt.Fprintf(out, "  %s: %s\n", path, statusColor(status).Sprint(status))
		}
	}
}
