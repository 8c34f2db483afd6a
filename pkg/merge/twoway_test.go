package merge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/object"
)

func storeWithBlobs(t *testing.T, contents ...string) (*object.Store, []object.Hash) {
	t.Helper()
	s := object.NewStore(t.TempDir())
	hashes := make([]object.Hash, len(contents))
	for i, c := range contents {
		h, err := s.WriteBlob(&object.Blob{Data: []byte(c)})
		if err != nil {
			t.Fatalf("WriteBlob: %v", err)
		}
		hashes[i] = h
	}
	return s, hashes
}

func TestTwoWayMergeClassification(t *testing.T) {
	s, hashes := storeWithBlobs(t, "same\n", "theirs version\n", "brand new\n")

	current := []*component.File{
		{Path: "same.txt", Contents: []byte("same\n")},
		{Path: "diverged.txt", Contents: []byte("ours version\n")},
		{Path: "local-only.txt", Contents: []byte("local\n")},
	}
	target := &object.Version{
		Label: "0.0.2",
		Files: []object.VersionFile{
			{Path: "same.txt", BlobHash: hashes[0]},
			{Path: "diverged.txt", BlobHash: hashes[1]},
			{Path: "new.txt", BlobHash: hashes[2]},
		},
	}

	res, err := LineMerger{}.TwoWayMerge(current, target, s)
	if err != nil {
		t.Fatalf("TwoWayMerge: %v", err)
	}

	if !res.HasConflicts {
		t.Fatal("HasConflicts = false, want true")
	}
	if len(res.ModifiedFiles) != 1 || res.ModifiedFiles[0].Path != "diverged.txt" {
		t.Fatalf("ModifiedFiles = %+v", res.ModifiedFiles)
	}
	if len(res.AddFiles) != 1 || res.AddFiles[0].Path != "new.txt" {
		t.Fatalf("AddFiles = %+v", res.AddFiles)
	}

	m := res.ModifiedFiles[0]
	if m.MergedOutput != nil {
		t.Fatalf("diverged file has merged output: %q", m.MergedOutput)
	}
	payload := string(m.ConflictPayload)
	if !strings.Contains(payload, "<<<<<<< current") ||
		!strings.Contains(payload, "ours version") ||
		!strings.Contains(payload, "theirs version") ||
		!strings.Contains(payload, ">>>>>>> incoming") {
		t.Fatalf("conflict payload missing markers:\n%s", payload)
	}
}

func TestTwoWayMergeCleanExtension(t *testing.T) {
	incoming := "line1\nline2\n"
	s, hashes := storeWithBlobs(t, incoming)

	current := []*component.File{{Path: "a.txt", Contents: []byte("line1\n")}}
	target := &object.Version{
		Label: "0.0.2",
		Files: []object.VersionFile{{Path: "a.txt", BlobHash: hashes[0]}},
	}

	res, err := LineMerger{}.TwoWayMerge(current, target, s)
	if err != nil {
		t.Fatalf("TwoWayMerge: %v", err)
	}

	if res.HasConflicts {
		t.Fatal("HasConflicts = true for pure extension")
	}
	if len(res.ModifiedFiles) != 1 {
		t.Fatalf("ModifiedFiles = %+v", res.ModifiedFiles)
	}
	if got := string(res.ModifiedFiles[0].MergedOutput); got != incoming {
		t.Fatalf("MergedOutput = %q, want %q", got, incoming)
	}
}

func TestTwoWayMergeIdenticalIsOmitted(t *testing.T) {
	s, hashes := storeWithBlobs(t, "same\n")

	current := []*component.File{{Path: "a.txt", Contents: []byte("same\n")}}
	target := &object.Version{
		Label: "0.0.2",
		Files: []object.VersionFile{{Path: "a.txt", BlobHash: hashes[0]}},
	}

	res, err := LineMerger{}.TwoWayMerge(current, target, s)
	if err != nil {
		t.Fatalf("TwoWayMerge: %v", err)
	}
	if len(res.ModifiedFiles) != 0 || len(res.AddFiles) != 0 || res.HasConflicts {
		t.Fatalf("result not empty for identical content: %+v", res)
	}
}

func TestRenderConflictAddsTrailingNewlines(t *testing.T) {
	payload := renderConflict([]byte("no newline"), []byte("also none"))
	want := "<<<<<<< current\nno newline\n=======\nalso none\n>>>>>>> incoming\n"
	if !bytes.Equal(payload, []byte(want)) {
		t.Fatalf("renderConflict = %q, want %q", payload, want)
	}
}
