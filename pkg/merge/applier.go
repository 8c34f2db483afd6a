package merge

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/compo-vcs/compo/pkg/component"
	"github.com/compo-vcs/compo/pkg/track"
)

// TrackMap is the slice of the tracking map the apply phase consumes.
type TrackMap interface {
	Get(name string) (track.Entry, bool)
	Remove(id component.ID)
	Add(id component.ID, rootDir string, origin component.Origin)
}

// ApplyResult reports one component's merge outcome per file.
type ApplyResult struct {
	ID          component.ID
	FilesStatus FileStatusMap
}

// Applier mutates one component according to the chosen strategy and
// writes it back to the working tree. The tracking map is updated in
// memory only; persisting it is the orchestrator's job.
type Applier struct {
	Store   VersionStore
	Track   TrackMap
	WorkDir string
}

// Apply executes the merge for one component.
//
// Algorithm:
//  1. Ours short-circuit: conflicts resolved by keeping the working
//     copy mean nothing is written at all.
//  2. Validate the stored model and the working-tree mapping entry.
//  3. Clone the file set; all mutation happens on the clone.
//  4. Start every file at unchanged, then fold in the per-file
//     modification statuses.
//  5. Write the clone to the working tree (force, keep tool metadata
//     and unrelated directory contents; imported components get their
//     shared directory prefix stripped).
//  6. Remove and re-insert the tracking entry under the target id.
func (a *Applier) Apply(ctx context.Context, st *ComponentStatus, strategy Strategy) (*ApplyResult, error) {
	name := st.ID.Name
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("apply %s: %w", name, err)
	}

	if st.Result.HasConflicts && strategy == StrategyOurs {
		statuses := make(FileStatusMap, len(st.Component.Files))
		for _, f := range st.Component.Files {
			statuses[f.Path] = StatusUnchanged
		}
		return &ApplyResult{ID: st.ID, FilesStatus: statuses}, nil
	}

	history, err := a.Store.Versions(name)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", name, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("component %q: %w", name, ErrModelNotFound)
	}

	entry, ok := a.Track.Get(name)
	if !ok {
		return nil, fmt.Errorf("component %q: %w", name, ErrMappingNotFound)
	}

	clone := st.Component.Clone()
	clone.ID = st.TargetID

	statuses := make(FileStatusMap, len(clone.Files))
	for _, f := range clone.Files {
		statuses[f.Path] = StatusUnchanged
	}

	overrides, err := a.applyModified(clone, st.Result, strategy)
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", name, err)
	}
	for path, status := range overrides {
		statuses[path] = status
	}

	opts := component.WriteOptions{
		Force:             true,
		SkipConfig:        true,
		SkipPackageMeta:   true,
		PreserveUnrelated: true,
		StripSharedDir:    clone.Origin == component.OriginImported,
	}
	dir := filepath.Join(a.WorkDir, filepath.FromSlash(entry.RootDir))
	if err := component.Write(dir, clone, opts); err != nil {
		return nil, fmt.Errorf("apply %s: %w", name, err)
	}

	// Remove-then-reinsert refreshes the map's record without trusting
	// the prior entry.
	a.Track.Remove(st.ID)
	a.Track.Add(st.TargetID, entry.RootDir, entry.Origin)

	return &ApplyResult{ID: st.TargetID, FilesStatus: statuses}, nil
}

// applyModified mutates the cloned file set per the merge result and
// strategy, fanning out over modified and added files. It returns the
// per-path status overrides.
func (a *Applier) applyModified(clone *component.Component, res *MergeResult, strategy Strategy) (FileStatusMap, error) {
	byPath := make(map[string]*component.File, len(clone.Files))
	for _, f := range clone.Files {
		byPath[f.Path] = f
	}

	// Resolve modified-file pointers up front: the add goroutines below
	// are then the only byPath accessors inside the fan-out.
	modified := make([]*component.File, len(res.ModifiedFiles))
	for i, m := range res.ModifiedFiles {
		f, ok := byPath[m.Path]
		if !ok {
			return nil, fmt.Errorf("modified file %q: %w", m.Path, ErrFileNotFoundInWorkingSet)
		}
		modified[i] = f
	}

	overrides := make(FileStatusMap, len(res.ModifiedFiles)+len(res.AddFiles))
	var mu sync.Mutex
	var g errgroup.Group

	for i, m := range res.ModifiedFiles {
		f := modified[i]
		g.Go(func() error {
			var status FileStatus
			switch {
			case res.HasConflicts && strategy == StrategyTheirs:
				data, err := a.Store.LoadContent(m.OtherRef)
				if err != nil {
					return fmt.Errorf("modified file %q: %w", m.Path, err)
				}
				f.Contents = data
				status = StatusUpdated
			case m.ConflictPayload != nil:
				f.Contents = m.ConflictPayload
				status = StatusManualConflict
			case m.MergedOutput != nil:
				f.Contents = m.MergedOutput
				status = StatusMerged
			default:
				return fmt.Errorf("modified file %q has neither conflict payload nor merged output: %w", m.Path, ErrMalformedMergeOutcome)
			}

			mu.Lock()
			overrides[m.Path] = status
			mu.Unlock()
			return nil
		})
	}

	for _, add := range res.AddFiles {
		g.Go(func() error {
			data, err := a.Store.LoadContent(add.OtherRef)
			if err != nil {
				return fmt.Errorf("added file %q: %w", add.Path, err)
			}

			mu.Lock()
			defer mu.Unlock()
			if existing, ok := byPath[add.Path]; ok {
				// The working tree already had an untracked file at this
				// path; its content is replaced wholesale.
				existing.Contents = data
				overrides[add.Path] = StatusOverridden
				return nil
			}
			f := &component.File{Path: add.Path, Contents: data}
			byPath[add.Path] = f
			clone.Files = append(clone.Files, f)
			overrides[add.Path] = StatusAdded
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overrides, nil
}
