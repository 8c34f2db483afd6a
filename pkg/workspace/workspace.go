// Package workspace opens a compo working tree and wires its object
// store and tracking map together.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/object"
	"github.com/compo-vcs/compo/pkg/track"
)

// Workspace represents an opened compo working tree.
type Workspace struct {
	Root  string        // working tree root
	Dir   string        // .compo/ directory
	Store *object.Store // content-addressed object store
	Track *track.Map    // tracking map
}

// Open opens the workspace rooted at path, walking up to the nearest
// directory containing .compo/.
func Open(path string) (*Workspace, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}

	root := abs
	for {
		if info, err := os.Stat(filepath.Join(root, ".compo")); err == nil && info.IsDir() {
			break
		}
		parent := filepath.Dir(root)
		if parent == root {
			return nil, fmt.Errorf("open workspace: no .compo directory in %q or any parent", abs)
		}
		root = parent
	}

	return openAt(root)
}

// Init creates a workspace at path. Returns an error if one exists.
func Init(path string) (*Workspace, error) {
	dir := filepath.Join(path, ".compo")
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("init workspace: %q already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("init workspace: %w", err)
	}
	return openAt(path)
}

func openAt(root string) (*Workspace, error) {
	dir := filepath.Join(root, ".compo")
	tr, err := track.Load(root)
	if err != nil {
		return nil, fmt.Errorf("open workspace: %w", err)
	}
	return &Workspace{
		Root:  root,
		Dir:   dir,
		Store: object.NewStore(dir),
		Track: tr,
	}, nil
}

// LoadComponents resolves the given component names through the
// tracking map and loads each component's working-tree file set.
func (w *Workspace) LoadComponents(names []string) ([]*component.Component, error) {
	comps := make([]*component.Component, 0, len(names))
	for _, name := range names {
		id, ok := w.Track.GetExisting(name)
		if !ok {
			return nil, fmt.Errorf("component %q is not tracked", name)
		}
		entry, _ := w.Track.Get(name)

		dir := filepath.Join(w.Root, filepath.FromSlash(entry.RootDir))
		c, err := component.Load(dir, id.Name, id.Version, entry.Origin)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	return comps, nil
}

// Snapshot records the current working-tree state of a tracked
// component as a new immutable version.
func (w *Workspace) Snapshot(name, version, log string) (object.Hash, error) {
	entry, ok := w.Track.Get(name)
	if !ok {
		return "", fmt.Errorf("snapshot %s: component is not tracked", name)
	}
	if w.Store.HasVersion(name, version) {
		return "", fmt.Errorf("snapshot %s: version %q already recorded", name, version)
	}

	dir := filepath.Join(w.Root, filepath.FromSlash(entry.RootDir))
	c, err := component.Load(dir, name, version, entry.Origin)
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", name, err)
	}

	v := &object.Version{Label: version, Log: log}
	for _, f := range c.Files {
		blobHash, err := w.Store.WriteBlob(&object.Blob{Data: f.Contents})
		if err != nil {
			return "", fmt.Errorf("snapshot %s: %w", name, err)
		}
		v.Files = append(v.Files, object.VersionFile{Path: f.Path, BlobHash: blobHash})
	}

	h, err := w.Store.WriteVersion(v)
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", name, err)
	}
	if err := w.Store.RecordVersion(name, version, h); err != nil {
		return "", err
	}

	// Advance the tracking entry to the snapshotted version.
	w.Track.Remove(component.ID{Name: name, Version: entry.Version})
	w.Track.Add(component.ID{Name: name, Version: version}, entry.RootDir, entry.Origin)
	if err := w.Track.Write(); err != nil {
		return "", fmt.Errorf("snapshot %s: %w", name, err)
	}

	return h, nil
}
