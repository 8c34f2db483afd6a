package merge

import (
	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/object"
)

// FileMergeOutcome is the oracle's verdict for one file that exists in
// both the working copy and the target version with differing content.
// Exactly one of ConflictPayload and MergedOutput is set.
type FileMergeOutcome struct {
	Path            string
	ConflictPayload []byte
	MergedOutput    []byte
	// OtherRef is the blob reference of the file in the target version.
	OtherRef object.Hash
}

// FileAddOutcome is the oracle's verdict for a file that exists only in
// the target version.
type FileAddOutcome struct {
	Path     string
	OtherRef object.Hash
}

// MergeResult is the per-component output of the two-way file merge.
// Files absent from both slices are unchanged.
type MergeResult struct {
	HasConflicts  bool
	ModifiedFiles []FileMergeOutcome
	AddFiles      []FileAddOutcome
}

// BlobLoader loads raw file contents by blob reference.
type BlobLoader interface {
	LoadContent(ref object.Hash) ([]byte, error)
}

// TwoWayMerger classifies every file of a (current, target) pair. It is
// a two-way merge: no common ancestor, added files have an implicit
// empty base.
type TwoWayMerger interface {
	TwoWayMerge(current []*component.File, target *object.Version, blobs BlobLoader) (*MergeResult, error)
}
