package merge

import "errors"

var (
	// ErrNotVersioned indicates the component has no recorded version
	// history at all.
	ErrNotVersioned = errors.New("component is not versioned")

	// ErrVersionNotFound indicates the target version is absent from the
	// component's history.
	ErrVersionNotFound = errors.New("version not found")

	// ErrAlreadyAtVersion indicates the component is already checked out
	// at the target version.
	ErrAlreadyAtVersion = errors.New("component already at version")

	// ErrConflictingStrategyFlags indicates more than one strategy flag
	// was requested at once.
	ErrConflictingStrategyFlags = errors.New("conflicting merge strategy flags")

	// ErrSelectionCanceled indicates the interactive strategy prompt was
	// aborted. Fatal for the whole batch.
	ErrSelectionCanceled = errors.New("merge strategy selection canceled")

	// ErrModelNotFound indicates the component has no stored model in
	// the object store.
	ErrModelNotFound = errors.New("component model not found")

	// ErrMappingNotFound indicates the component has no working-tree
	// mapping entry.
	ErrMappingNotFound = errors.New("component mapping not found")

	// ErrMalformedMergeOutcome indicates a modified file carried neither
	// a conflict payload nor merged output.
	ErrMalformedMergeOutcome = errors.New("malformed merge outcome")

	// ErrFileNotFoundInWorkingSet indicates a merge outcome named a file
	// that is not among the component's current files.
	ErrFileNotFoundInWorkingSet = errors.New("file not found in working set")
)
