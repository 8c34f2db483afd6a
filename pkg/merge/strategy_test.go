package merge

import (
	"context"
	"errors"
	"testing"
)

func TestStrategyFromFlags(t *testing.T) {
	tests := []struct {
		name                string
		ours, theirs, manual bool
		want                Strategy
		wantErr             bool
	}{
		{"none", false, false, false, StrategyNone, false},
		{"ours", true, false, false, StrategyOurs, false},
		{"theirs", false, true, false, StrategyTheirs, false},
		{"manual", false, false, true, StrategyManual, false},
		{"ours+theirs", true, true, false, StrategyNone, true},
		{"all three", true, true, true, StrategyNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StrategyFromFlags(tt.ours, tt.theirs, tt.manual)
			if tt.wantErr {
				if !errors.Is(err, ErrConflictingStrategyFlags) {
					t.Fatalf("err = %v, want ErrConflictingStrategyFlags", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StrategyFromFlags: %v", err)
			}
			if got != tt.want {
				t.Fatalf("StrategyFromFlags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectExplicitWins(t *testing.T) {
	prompt := &scriptedPrompt{strategy: StrategyManual}
	sel := &Selector{Prompt: prompt}

	// Explicit strategy is used even without conflicts.
	got, err := sel.Select(context.Background(), StrategyOurs, false)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != StrategyOurs {
		t.Fatalf("Select = %v, want ours", got)
	}
	if prompt.calls != 0 {
		t.Fatalf("prompt called %d times, want 0", prompt.calls)
	}
}

func TestSelectNoConflictsNeedsNoStrategy(t *testing.T) {
	prompt := &scriptedPrompt{strategy: StrategyManual}
	sel := &Selector{Prompt: prompt}

	got, err := sel.Select(context.Background(), StrategyNone, false)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != StrategyNone {
		t.Fatalf("Select = %v, want none", got)
	}
	if prompt.calls != 0 {
		t.Fatalf("prompt called %d times, want 0", prompt.calls)
	}
}

func TestSelectPromptsExactlyOnce(t *testing.T) {
	prompt := &scriptedPrompt{strategy: StrategyTheirs}
	sel := &Selector{Prompt: prompt}

	got, err := sel.Select(context.Background(), StrategyNone, true)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got != StrategyTheirs {
		t.Fatalf("Select = %v, want theirs", got)
	}
	if prompt.calls != 1 {
		t.Fatalf("prompt called %d times, want 1", prompt.calls)
	}
}

func TestSelectCanceledPrompt(t *testing.T) {
	prompt := &scriptedPrompt{err: ErrSelectionCanceled}
	sel := &Selector{Prompt: prompt}

	_, err := sel.Select(context.Background(), StrategyNone, true)
	if !errors.Is(err, ErrSelectionCanceled) {
		t.Fatalf("err = %v, want ErrSelectionCanceled", err)
	}
}

func TestSelectNilPromptWithConflicts(t *testing.T) {
	sel := &Selector{}

	_, err := sel.Select(context.Background(), StrategyNone, true)
	if !errors.Is(err, ErrSelectionCanceled) {
		t.Fatalf("err = %v, want ErrSelectionCanceled", err)
	}
}
