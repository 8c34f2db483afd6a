// Package track maintains the persistent record mapping each tracked
// component to its working-tree location, origin and checked-out version.
package track

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/compo-vcs/compo/pkg/component"
)

// Entry is one component's record in the tracking map.
type Entry struct {
	RootDir string           `toml:"root_dir"`
	Origin  component.Origin `toml:"origin"`
	Version string           `toml:"version"`
}

type mapFile struct {
	Components map[string]Entry `toml:"components"`
}

// Map is the in-memory tracking map. It is mutated freely and persisted
// with Write; nothing reaches disk before that. Safe for concurrent use.
type Map struct {
	path string

	mu      sync.RWMutex
	entries map[string]Entry
}

// Load reads .compo/track.toml under workRoot. A missing file yields an
// empty map.
func Load(workRoot string) (*Map, error) {
	m := &Map{
		path:    filepath.Join(workRoot, ".compo", "track.toml"),
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tracking map: %w", err)
	}

	var f mapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("read tracking map: unmarshal: %w", err)
	}
	for name, e := range f.Components {
		if _, err := component.ParseOrigin(string(e.Origin)); err != nil {
			return nil, fmt.Errorf("read tracking map: component %q: %w", name, err)
		}
		m.entries[name] = e
	}
	return m, nil
}

// Get returns the entry for a component name.
func (m *Map) Get(name string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	return e, ok
}

// GetExisting resolves a component name (without version) to the
// currently tracked versioned id.
func (m *Map) GetExisting(name string) (component.ID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[name]
	if !ok {
		return component.ID{}, false
	}
	return component.ID{Name: name, Version: e.Version}, true
}

// Remove drops a component's entry. Removing an untracked component is
// a no-op.
func (m *Map) Remove(id component.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id.Name)
}

// Add records a component under its versioned id with the given root
// directory and origin, replacing any previous entry for the same name.
func (m *Map) Add(id component.ID, rootDir string, origin component.Origin) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id.Name] = Entry{RootDir: rootDir, Origin: origin, Version: id.Version}
}

// Names returns the tracked component names, sorted.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write atomically persists the map to .compo/track.toml.
func (m *Map) Write() error {
	m.mu.RLock()
	var buf bytes.Buffer
	err := toml.NewEncoder(&buf).Encode(mapFile{Components: m.entries})
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("write tracking map: marshal: %w", err)
	}

	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write tracking map: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".track-tmp-*")
	if err != nil {
		return fmt.Errorf("write tracking map: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write tracking map: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write tracking map: close: %w", err)
	}
	if err := os.Rename(tmpName, m.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write tracking map: rename: %w", err)
	}
	return nil
}
