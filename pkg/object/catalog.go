package object

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// The version catalog records, per component, which version labels exist
// and which version object each resolves to. Layout mirrors ref files:
// versions/<component>/<label> contains the version object's hash.

func (s *Store) versionRefPath(name, label string) string {
	return filepath.Join(s.root, "versions", filepath.FromSlash(name), label)
}

// Versions returns the recorded version labels for a component, sorted.
// A component with no history yields an empty slice, not an error.
func (s *Store) Versions(name string) ([]string, error) {
	dir := filepath.Join(s.root, "versions", filepath.FromSlash(name))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list versions %q: %w", name, err)
	}

	var labels []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		labels = append(labels, e.Name())
	}
	sort.Strings(labels)
	return labels, nil
}

// HasVersion reports whether the component has the given version recorded.
func (s *Store) HasVersion(name, label string) bool {
	_, err := os.Stat(s.versionRefPath(name, label))
	return err == nil
}

// RecordVersion points a component's version label at a version object.
// Labels are immutable: re-recording an existing label fails.
func (s *Store) RecordVersion(name, label string, h Hash) error {
	if !s.Has(h) {
		return fmt.Errorf("record version %s@%s: object %s not in store", name, label, h)
	}
	if s.HasVersion(name, label) {
		return fmt.Errorf("record version %s@%s: label already recorded", name, label)
	}

	dir := filepath.Join(s.root, "versions", filepath.FromSlash(name))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("record version %s@%s: mkdir: %w", name, label, err)
	}
	if err := os.WriteFile(s.versionRefPath(name, label), []byte(h+"\n"), 0o644); err != nil {
		return fmt.Errorf("record version %s@%s: %w", name, label, err)
	}
	return nil
}

// LoadVersion resolves a component's version label and reads the snapshot.
func (s *Store) LoadVersion(name, label string) (*Version, error) {
	data, err := os.ReadFile(s.versionRefPath(name, label))
	if err != nil {
		return nil, fmt.Errorf("load version %s@%s: %w", name, label, err)
	}
	h := Hash(strings.TrimSpace(string(data)))
	v, err := s.ReadVersion(h)
	if err != nil {
		return nil, fmt.Errorf("load version %s@%s: %w", name, label, err)
	}
	return v, nil
}
