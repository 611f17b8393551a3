package atlas_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxel-engine/pkg/atlas"
)

func TestGridResolve(t *testing.T) {
	g := atlas.NewGrid(4, 4, map[string]int{"stone": 0, "dirt": 5})

	r, ok := g.Resolve("dirt")
	if !ok {
		t.Fatal("dirt did not resolve")
	}
	if r.Index != 5 {
		t.Errorf("dirt index = %d, want 5", r.Index)
	}
	// Tile 5 is column 1, row 1 of a 4x4 grid.
	if r.U0 != 0.25 || r.V0 != 0.25 || r.U1 != 0.5 || r.V1 != 0.5 {
		t.Errorf("dirt region = %+v, want quarter tile at (0.25,0.25)", r)
	}

	if _, ok := g.Resolve("unknown"); ok {
		t.Error("unknown name resolved")
	}
	if fb := g.Fallback(); fb.Index != 0 {
		t.Errorf("fallback index = %d, want 0", fb.Index)
	}
}

func TestGridRejectsOutOfRangeIndex(t *testing.T) {
	g := atlas.NewGrid(2, 2, map[string]int{"bad": 9})
	if _, ok := g.Resolve("bad"); ok {
		t.Error("out-of-range tile index resolved")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.json")
	content := `{
		"width": 64, "height": 64, "fallback": "missing",
		"entries": {
			"stone":   {"index": 0, "x": 0,  "y": 0, "w": 16, "h": 16},
			"missing": {"index": 1, "x": 16, "y": 0, "w": 16, "h": 16}
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := atlas.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	r, ok := m.Resolve("stone")
	if !ok {
		t.Fatal("stone did not resolve")
	}
	if r.U1 != 0.25 || r.V1 != 0.25 {
		t.Errorf("stone region = %+v, want 16/64 extents", r)
	}
	if fb := m.Fallback(); fb.Index != 1 {
		t.Errorf("fallback index = %d, want 1", fb.Index)
	}
}

func TestLoadFileInvalidDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.json")
	if err := os.WriteFile(path, []byte(`{"width":0,"height":64}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := atlas.LoadFile(path); err == nil {
		t.Error("LoadFile with zero width succeeded")
	}
}
