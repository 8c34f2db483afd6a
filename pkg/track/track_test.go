package track

import (
	"fmt"
	"sync"
	"testing"

	"github.com/compo-vcs/compo/pkg/component"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Names()) != 0 {
		t.Fatalf("Names = %v, want none", m.Names())
	}
}

func TestAddRemoveRoundtrip(t *testing.T) {
	root := t.TempDir()

	m, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	id := component.ID{Name: "ui/button", Version: "0.0.1"}
	m.Add(id, "components/button", component.OriginImported)
	m.Add(component.ID{Name: "utils", Version: "0.0.3"}, "utils", component.OriginAuthored)

	if err := m.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}

	reloaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load (reloaded): %v", err)
	}

	got, ok := reloaded.GetExisting("ui/button")
	if !ok {
		t.Fatal("GetExisting(ui/button) not found")
	}
	if got != id {
		t.Fatalf("GetExisting = %v, want %v", got, id)
	}

	e, ok := reloaded.Get("ui/button")
	if !ok {
		t.Fatal("Get(ui/button) not found")
	}
	if e.RootDir != "components/button" || e.Origin != component.OriginImported {
		t.Fatalf("entry = %+v", e)
	}

	reloaded.Remove(id)
	if _, ok := reloaded.GetExisting("ui/button"); ok {
		t.Fatal("entry still present after Remove")
	}
	if _, ok := reloaded.GetExisting("utils"); !ok {
		t.Fatal("unrelated entry lost after Remove")
	}
}

func TestConcurrentRefresh(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	const n = 16
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("comp-%d", i)
		m.Add(component.ID{Name: names[i], Version: "0.0.1"}, names[i], component.OriginAuthored)
	}

	// One goroutine per component doing the apply-phase refresh
	// (Get, Remove, Add) against the shared map.
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e, ok := m.Get(name)
			if !ok {
				t.Errorf("Get(%s) not found", name)
				return
			}
			m.Remove(component.ID{Name: name, Version: "0.0.1"})
			m.Add(component.ID{Name: name, Version: "0.0.2"}, e.RootDir, e.Origin)
		}()
	}
	wg.Wait()

	for _, name := range names {
		id, ok := m.GetExisting(name)
		if !ok || id.Version != "0.0.2" {
			t.Fatalf("%s = %v, want 0.0.2", name, id)
		}
	}
}

func TestRemoveThenAddRefreshesVersion(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	old := component.ID{Name: "utils", Version: "0.0.1"}
	m.Add(old, "utils", component.OriginAuthored)
	m.Remove(old)
	m.Add(component.ID{Name: "utils", Version: "0.0.2"}, "utils", component.OriginAuthored)

	got, ok := m.GetExisting("utils")
	if !ok {
		t.Fatal("GetExisting(utils) not found")
	}
	if got.Version != "0.0.2" {
		t.Fatalf("Version = %q, want 0.0.2", got.Version)
	}
}
