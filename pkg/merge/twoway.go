package merge

import (
	"bytes"
	"fmt"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/object"
)

// LineMerger is the default TwoWayMerger. It classifies files by path
// and content, merges cleanly when the target only extends the working
// copy, and renders conflict markers otherwise.
type LineMerger struct{}

// TwoWayMerge implements TwoWayMerger.
//
// Per target file:
//   - absent from the working copy: added
//   - byte-identical: unchanged (omitted from the result)
//   - differing: clean merge if the incoming side only inserts relative
//     to the working copy, conflict payload otherwise
//
// Files present only in the working copy are local additions and stay
// untouched.
func (LineMerger) TwoWayMerge(current []*component.File, target *object.Version, blobs BlobLoader) (*MergeResult, error) {
	byPath := make(map[string]*component.File, len(current))
	for _, f := range current {
		byPath[f.Path] = f
	}

	res := &MergeResult{}
	for _, tf := range target.Files {
		cur, ok := byPath[tf.Path]
		if !ok {
			res.AddFiles = append(res.AddFiles, FileAddOutcome{Path: tf.Path, OtherRef: tf.BlobHash})
			continue
		}

		incoming, err := blobs.LoadContent(tf.BlobHash)
		if err != nil {
			return nil, fmt.Errorf("two-way merge %q: %w", tf.Path, err)
		}
		if bytes.Equal(cur.Contents, incoming) {
			continue
		}

		outcome := FileMergeOutcome{Path: tf.Path, OtherRef: tf.BlobHash}
		if merged, clean := mergeContents(cur.Contents, incoming); clean {
			outcome.MergedOutput = merged
		} else {
			outcome.ConflictPayload = renderConflict(cur.Contents, incoming)
			res.HasConflicts = true
		}
		res.ModifiedFiles = append(res.ModifiedFiles, outcome)
	}

	return res, nil
}

// mergeContents reports whether incoming can be taken wholesale. The
// merge is clean only when the diff contains no deletions, i.e. the
// incoming side strictly extends the working copy. Any removal of local
// content needs a human decision.
func mergeContents(current, incoming []byte) ([]byte, bool) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(current), string(incoming), true)
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffDelete {
			return nil, false
		}
	}
	return incoming, true
}

// renderConflict produces human-readable conflict markers.
func renderConflict(current, incoming []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< current\n")
	buf.Write(current)
	if len(current) > 0 && current[len(current)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("=======\n")
	buf.Write(incoming)
	if len(incoming) > 0 && incoming[len(incoming)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(">>>>>>> incoming\n")
	return buf.Bytes()
}

var _ TwoWayMerger = LineMerger{}
