package merge

import (
	"context"
	"errors"
	"fmt"
)

// Strategy is the conflict-resolution policy for a merge batch.
type Strategy int

const (
	// StrategyNone means no strategy was chosen; downstream logic takes
	// the merged/added output as-is. Only valid when nothing conflicts.
	StrategyNone Strategy = iota
	StrategyOurs
	StrategyTheirs
	StrategyManual
)

// String returns the flag-level strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyOurs:
		return "ours"
	case StrategyTheirs:
		return "theirs"
	case StrategyManual:
		return "manual"
	}
	return "none"
}

// StrategyFromFlags converts the mutually exclusive CLI flags into a
// Strategy. Requesting more than one at a time is an error.
func StrategyFromFlags(ours, theirs, manual bool) (Strategy, error) {
	set := 0
	for _, b := range []bool{ours, theirs, manual} {
		if b {
			set++
		}
	}
	if set > 1 {
		return StrategyNone, fmt.Errorf("at most one of ours/theirs/manual may be given: %w", ErrConflictingStrategyFlags)
	}
	switch {
	case ours:
		return StrategyOurs, nil
	case theirs:
		return StrategyTheirs, nil
	case manual:
		return StrategyManual, nil
	}
	return StrategyNone, nil
}

// StrategyPrompter asks a human to choose a resolution strategy. A
// canceled prompt returns ErrSelectionCanceled.
type StrategyPrompter interface {
	AskStrategy(ctx context.Context) (Strategy, error)
}

// Selector determines the strategy for a batch exactly once.
type Selector struct {
	Prompt StrategyPrompter
}

// Select returns the explicit strategy unchanged when one was given. With
// no explicit strategy it returns StrategyNone unless the batch has
// conflicts, in which case the prompt runs exactly once.
func (s *Selector) Select(ctx context.Context, explicit Strategy, anyConflicts bool) (Strategy, error) {
	if explicit != StrategyNone {
		return explicit, nil
	}
	if !anyConflicts {
		return StrategyNone, nil
	}
	if s.Prompt == nil {
		return StrategyNone, fmt.Errorf("conflicts present and no interactive prompt available: %w", ErrSelectionCanceled)
	}

	chosen, err := s.Prompt.AskStrategy(ctx)
	if err != nil {
		if errors.Is(err, ErrSelectionCanceled) {
			return StrategyNone, err
		}
		return StrategyNone, fmt.Errorf("select strategy: %w", err)
	}
	if chosen == StrategyNone {
		return StrategyNone, fmt.Errorf("prompt returned no strategy: %w", ErrSelectionCanceled)
	}
	return chosen, nil
}
