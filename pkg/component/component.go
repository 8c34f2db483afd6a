package component

import (
	"fmt"
	"strings"
)

// ID identifies a component and, when Version is set, a specific version
// of it. Immutable once constructed.
type ID struct {
	Name    string
	Version string
}

// String renders "name" or "name@version".
func (id ID) String() string {
	if id.Version == "" {
		return id.Name
	}
	return id.Name + "@" + id.Version
}

// ParseID parses "name" or "name@version". Component names may contain
// slashes but never "@".
func ParseID(s string) (ID, error) {
	name, version, found := strings.Cut(s, "@")
	if name == "" {
		return ID{}, fmt.Errorf("parse component id %q: empty name", s)
	}
	if found && version == "" {
		return ID{}, fmt.Errorf("parse component id %q: empty version", s)
	}
	return ID{Name: name, Version: version}, nil
}

// File is one file of a component's working-tree file set. Path is
// forward-slash, relative to the component root.
type File struct {
	Path     string
	Contents []byte
}

// Component is a component's currently checked-out state as seen in the
// working tree.
type Component struct {
	ID     ID
	Origin Origin
	Files  []*File
}

// Clone deep-copies the component's file set. Mutations on the clone
// never reach the original working-tree objects.
func (c *Component) Clone() *Component {
	files := make([]*File, len(c.Files))
	for i, f := range c.Files {
		contents := make([]byte, len(f.Contents))
		copy(contents, f.Contents)
		files[i] = &File{Path: f.Path, Contents: contents}
	}
	return &Component{ID: c.ID, Origin: c.Origin, Files: files}
}

// SharedDir returns the longest directory prefix common to all file
// paths, or "" if any file sits at the component root.
func SharedDir(files []*File) string {
	if len(files) == 0 {
		return ""
	}

	var shared []string
	for i, f := range files {
		dir, ok := parentDir(f.Path)
		if !ok {
			return ""
		}
		segs := strings.Split(dir, "/")
		if i == 0 {
			shared = segs
			continue
		}
		n := len(shared)
		if len(segs) < n {
			n = len(segs)
		}
		j := 0
		for j < n && shared[j] == segs[j] {
			j++
		}
		shared = shared[:j]
		if len(shared) == 0 {
			return ""
		}
	}
	return strings.Join(shared, "/")
}

func parentDir(path string) (string, bool) {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "", false
	}
	return path[:idx], true
}
