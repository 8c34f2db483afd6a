package component

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Names of files the tool itself owns. The loader never reports them as
// component content and the writer never touches them.
const (
	ConfigFile      = "component.toml"
	PackageMetaFile = "package.json"
)

// Load reads a component's file set from its working-tree directory.
// Tool metadata (component.toml, the .compo dir) is skipped; everything
// else under dir belongs to the component.
func Load(dir, name, version string, origin Origin) (*Component, error) {
	c := &Component{
		ID:     ID{Name: name, Version: version},
		Origin: origin,
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == ".compo" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == ConfigFile || strings.HasPrefix(rel, ".compo/") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		c.Files = append(c.Files, &File{Path: rel, Contents: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load component %q from %q: %w", name, dir, err)
	}

	sort.Slice(c.Files, func(i, j int) bool { return c.Files[i].Path < c.Files[j].Path })
	return c, nil
}
