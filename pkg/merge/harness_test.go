package merge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/object"
	"github.com/compo-vcs/compo/pkg/track"
	"github.com/compo-vcs/compo/pkg/workspace"
)

// setupWorkspace initializes an empty workspace in a temp directory.
func setupWorkspace(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init workspace: %v", err)
	}
	return ws
}

// writeTree writes files under the workspace-relative rootDir.
func writeTree(t *testing.T, ws *workspace.Workspace, rootDir string, files map[string]string) {
	t.Helper()
	for rel, contents := range files {
		abs := filepath.Join(ws.Root, filepath.FromSlash(rootDir), filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatalf("mkdir for %q: %v", rel, err)
		}
		if err := os.WriteFile(abs, []byte(contents), 0o644); err != nil {
			t.Fatalf("write %q: %v", rel, err)
		}
	}
}

// readTree reads one workspace file back.
func readTree(t *testing.T, ws *workspace.Workspace, rootDir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ws.Root, filepath.FromSlash(rootDir), filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %q: %v", rel, err)
	}
	return string(data)
}

// trackAt adds a tracking entry pinned at the given version and persists
// the map.
func trackAt(t *testing.T, ws *workspace.Workspace, name, rootDir, version string, origin component.Origin) {
	t.Helper()
	ws.Track.Add(component.ID{Name: name, Version: version}, rootDir, origin)
	if err := ws.Track.Write(); err != nil {
		t.Fatalf("Track.Write: %v", err)
	}
}

// recordVersion stores a version snapshot directly, without touching the
// working tree.
func recordVersion(t *testing.T, ws *workspace.Workspace, name, version string, files map[string]string) {
	t.Helper()
	v := &object.Version{Label: version, Log: "test snapshot"}
	for rel, contents := range files {
		h, err := ws.Store.WriteBlob(&object.Blob{Data: []byte(contents)})
		if err != nil {
			t.Fatalf("WriteBlob %q: %v", rel, err)
		}
		v.Files = append(v.Files, object.VersionFile{Path: rel, BlobHash: h})
	}
	vh, err := ws.Store.WriteVersion(v)
	if err != nil {
		t.Fatalf("WriteVersion %s@%s: %v", name, version, err)
	}
	if err := ws.Store.RecordVersion(name, version, vh); err != nil {
		t.Fatalf("RecordVersion %s@%s: %v", name, version, err)
	}
}

// loadComponent loads one tracked component from the working tree.
func loadComponent(t *testing.T, ws *workspace.Workspace, name string) *component.Component {
	t.Helper()
	comps, err := ws.LoadComponents([]string{name})
	if err != nil {
		t.Fatalf("LoadComponents(%s): %v", name, err)
	}
	return comps[0]
}

// scriptedPrompt is a StrategyPrompter returning a fixed answer.
type scriptedPrompt struct {
	strategy Strategy
	err      error
	calls    int
}

func (p *scriptedPrompt) AskStrategy(ctx context.Context) (Strategy, error) {
	p.calls++
	if p.err != nil {
		return StrategyNone, p.err
	}
	return p.strategy, nil
}

// oracleFunc adapts a function to the TwoWayMerger interface so tests
// can script per-component results.
type oracleFunc func(current []*component.File, target *object.Version, blobs BlobLoader) (*MergeResult, error)

func (f oracleFunc) TwoWayMerge(current []*component.File, target *object.Version, blobs BlobLoader) (*MergeResult, error) {
	return f(current, target, blobs)
}

// newMerger wires a Merger over the workspace with the given oracle and
// prompt.
func newMerger(ws *workspace.Workspace, oracle TwoWayMerger, prompt StrategyPrompter) *Merger {
	if oracle == nil {
		oracle = LineMerger{}
	}
	return &Merger{
		Loader:   ws,
		Store:    ws.Store,
		Track:    ws.Track,
		Oracle:   oracle,
		Selector: &Selector{Prompt: prompt},
		WorkDir:  ws.Root,
	}
}

// reloadTrack re-reads the persisted tracking map from disk.
func reloadTrack(t *testing.T, ws *workspace.Workspace) *track.Map {
	t.Helper()
	m, err := track.Load(ws.Root)
	if err != nil {
		t.Fatalf("reload tracking map: %v", err)
	}
	return m
}
