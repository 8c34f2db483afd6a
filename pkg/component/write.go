package component

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WriteOptions controls how a component is written to the working tree.
type WriteOptions struct {
	// Force overwrites files that already exist on disk. Without it an
	// existing file is an error.
	Force bool
	// SkipConfig leaves the component's config file untouched.
	SkipConfig bool
	// SkipPackageMeta leaves package metadata (package.json) untouched.
	SkipPackageMeta bool
	// PreserveUnrelated keeps existing directory contents that are not
	// part of the component's file set. When false the directory is
	// cleared first.
	PreserveUnrelated bool
	// StripSharedDir removes the file set's shared directory prefix
	// before writing, restoring the layout of imported components.
	StripSharedDir bool
}

// Write materializes a component's file set under dir.
func Write(dir string, c *Component, opts WriteOptions) error {
	if !opts.PreserveUnrelated {
		if err := clearDir(dir); err != nil {
			return fmt.Errorf("write component %s: clear %q: %w", c.ID, dir, err)
		}
	}

	shared := ""
	if opts.StripSharedDir {
		shared = SharedDir(c.Files)
	}

	for _, f := range c.Files {
		rel := f.Path
		if shared != "" {
			rel = strings.TrimPrefix(rel, shared+"/")
		}
		if opts.SkipConfig && rel == ConfigFile {
			continue
		}
		if opts.SkipPackageMeta && rel == PackageMetaFile {
			continue
		}

		absPath := filepath.Join(dir, filepath.FromSlash(rel))
		if !opts.Force {
			_, err := os.Stat(absPath)
			if err == nil {
				return fmt.Errorf("write component %s: %q already exists", c.ID, rel)
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("write component %s: stat %q: %w", c.ID, rel, err)
			}
		}

		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return fmt.Errorf("write component %s: mkdir for %q: %w", c.ID, rel, err)
		}
		if err := os.WriteFile(absPath, f.Contents, 0o644); err != nil {
			return fmt.Errorf("write component %s: write %q: %w", c.ID, rel, err)
		}
	}
	return nil
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == ".compo" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
