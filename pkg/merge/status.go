// Package merge reconciles tracked components against stored target
// versions: it classifies every file into a merge outcome, applies a
// conflict-resolution strategy uniformly across the batch, and writes
// the merged result back to the working tree and the tracking map.
package merge

// FileStatus classifies one file's merge outcome.
type FileStatus int

const (
	StatusUnchanged FileStatus = iota
	StatusMerged
	StatusManualConflict
	StatusUpdated
	StatusAdded
	StatusOverridden
)

// String returns the user-facing status label.
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusMerged:
		return "merged"
	case StatusManualConflict:
		return "manual-conflict"
	case StatusUpdated:
		return "updated"
	case StatusAdded:
		return "added"
	case StatusOverridden:
		return "overridden"
	}
	return "unknown"
}

// FileStatusMap maps normalized relative file paths to their merge
// status. One entry per file of the merged component; keys are unique.
type FileStatusMap map[string]FileStatus
