package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/compo-vcs/compo/pkg/merge"
)

// huhPrompter asks the user for a merge strategy with a select form.
// Aborting the form (ctrl-c, esc) surfaces as ErrSelectionCanceled.
type huhPrompter struct{}

func (huhPrompter) AskStrategy(ctx context.Context) (merge.Strategy, error) {
	var choice string

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Merge conflicts found. How should they be resolved?").
			Options(
				huh.NewOption("ours - keep the working copies", "ours"),
				huh.NewOption("theirs - take the target version", "theirs"),
				huh.NewOption("manual - write conflict markers", "manual"),
			).
			Value(&choice),
	))

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return merge.StrategyNone, merge.ErrSelectionCanceled
		}
		return merge.StrategyNone, fmt.Errorf("strategy prompt: %w", err)
	}

	switch choice {
	case "ours":
		return merge.StrategyOurs, nil
	case "theirs":
		return merge.StrategyTheirs, nil
	case "manual":
		return merge.StrategyManual, nil
	}
	return merge.StrategyNone, merge.ErrSelectionCanceled
}
