package merge

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/compo-vcs/compo/pkg/component"
)

// ComponentLoader loads the requested components from the working tree.
type ComponentLoader interface {
	LoadComponents(names []string) ([]*component.Component, error)
}

// TrackStore extends TrackMap with name resolution and persistence.
type TrackStore interface {
	TrackMap
	GetExisting(name string) (component.ID, bool)
	Write() error
}

// ApplyVersionResults aggregates a merge batch's per-component outcomes.
type ApplyVersionResults struct {
	Components []*ApplyResult
	Version    string
}

// Merger is the merge entry point wiring the engine's collaborators.
type Merger struct {
	Loader   ComponentLoader
	Store    VersionStore
	Track    TrackStore
	Oracle   TwoWayMerger
	Selector *Selector
	WorkDir  string
}

// MergeVersion reconciles every named component against targetVersion.
//
// Phases:
//  1. Load all components; any load failure aborts the batch.
//  2. Resolve all statuses concurrently; any failure aborts the batch
//     before anything is written.
//  3. Choose the strategy exactly once for the whole batch.
//  4. Apply all components concurrently; failures here are scoped to
//     their component.
//  5. Persist the tracking map exactly once, even when some applies
//     failed, so successful applies stay recorded.
//
// On a partial apply failure the returned results cover the components
// that succeeded and the error aggregates the rest.
func (m *Merger) MergeVersion(ctx context.Context, names []string, targetVersion string, explicit Strategy) (*ApplyVersionResults, error) {
	comps, err := m.Loader.LoadComponents(names)
	if err != nil {
		return nil, fmt.Errorf("merge version %s: %w", targetVersion, err)
	}

	resolver := &Resolver{Store: m.Store, Oracle: m.Oracle}
	statuses := make([]*ComponentStatus, len(comps))

	g, gctx := errgroup.WithContext(ctx)
	for i, comp := range comps {
		g.Go(func() error {
			st, err := resolver.Resolve(gctx, comp, targetVersion)
			if err != nil {
				return err
			}
			statuses[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("merge version %s: %w", targetVersion, err)
	}

	anyConflicts := false
	for _, st := range statuses {
		if st.Result.HasConflicts {
			anyConflicts = true
			break
		}
	}

	strategy, err := m.Selector.Select(ctx, explicit, anyConflicts)
	if err != nil {
		return nil, fmt.Errorf("merge version %s: %w", targetVersion, err)
	}

	applier := &Applier{Store: m.Store, Track: m.Track, WorkDir: m.WorkDir}
	applied := make([]*ApplyResult, len(statuses))
	applyErrs := make([]error, len(statuses))

	var wg sync.WaitGroup
	for i, st := range statuses {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied[i], applyErrs[i] = applier.Apply(ctx, st, strategy)
		}()
	}
	wg.Wait()

	var batchErr *multierror.Error
	results := &ApplyVersionResults{Version: targetVersion}
	for i, res := range applied {
		if applyErrs[i] != nil {
			// Apply errors already name their component.
			batchErr = multierror.Append(batchErr, applyErrs[i])
			continue
		}
		results.Components = append(results.Components, res)
	}

	// Persist once, after all applies. The map only reflects components
	// whose apply succeeded.
	if err := m.Track.Write(); err != nil {
		batchErr = multierror.Append(batchErr, fmt.Errorf("persist tracking map: %w", err))
	}

	return results, batchErr.ErrorOrNil()
}
