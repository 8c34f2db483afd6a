package merge

import (
	"context"
	"fmt"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/object"
)

// VersionStore is the slice of the object store this engine consumes.
type VersionStore interface {
	Versions(name string) ([]string, error)
	HasVersion(name, version string) bool
	LoadVersion(name, version string) (*object.Version, error)
	LoadContent(ref object.Hash) ([]byte, error)
}

// ComponentStatus bundles one component's working-tree state with its
// merge result against the target version.
type ComponentStatus struct {
	Component *component.Component
	// ID is the component's currently checked-out identity.
	ID component.ID
	// TargetID is the identity at the target version.
	TargetID component.ID
	Result   *MergeResult
}

// Resolver computes a ComponentStatus per component. It never mutates
// the working tree or the store.
type Resolver struct {
	Store  VersionStore
	Oracle TwoWayMerger
}

// Resolve validates the target version against the component's history
// and runs the file merge oracle.
func (r *Resolver) Resolve(ctx context.Context, comp *component.Component, targetVersion string) (*ComponentStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := comp.ID.Name
	history, err := r.Store.Versions(name)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("component %q: %w", name, ErrNotVersioned)
	}
	if !r.Store.HasVersion(name, targetVersion) {
		return nil, fmt.Errorf("component %q has no version %q: %w", name, targetVersion, ErrVersionNotFound)
	}
	if comp.ID.Version == targetVersion {
		return nil, fmt.Errorf("component %q: %w %q", name, ErrAlreadyAtVersion, targetVersion)
	}

	target, err := r.Store.LoadVersion(name, targetVersion)
	if err != nil {
		return nil, fmt.Errorf("resolve %s@%s: %w", name, targetVersion, err)
	}

	result, err := r.Oracle.TwoWayMerge(comp.Files, target, r.Store)
	if err != nil {
		return nil, fmt.Errorf("resolve %s@%s: %w", name, targetVersion, err)
	}

	return &ComponentStatus{
		Component: comp,
		ID:        comp.ID,
		TargetID:  component.ID{Name: name, Version: targetVersion},
		Result:    result,
	}, nil
}
