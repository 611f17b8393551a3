package blockdef_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

func TestDefaultRegistry(t *testing.T) {
	r := blockdef.Default()

	if r.IsOpaque(blockdef.Air) {
		t.Error("air reported opaque")
	}
	if !r.IsOpaque(blockdef.Stone) {
		t.Error("stone reported transparent")
	}
	if r.IsOpaque(blockdef.Leaves) {
		t.Error("leaves reported opaque")
	}
	if r.IsOpaque(200) {
		t.Error("unregistered ID reported opaque")
	}

	b, ok := r.ByName("grass")
	if !ok {
		t.Fatal("grass not registered")
	}
	if b.ID != blockdef.Grass {
		t.Errorf("grass ID = %d, want %d", b.ID, blockdef.Grass)
	}
}

func TestTextureFor(t *testing.T) {
	r := blockdef.Default()

	if got := r.TextureFor(blockdef.Grass, 2); got != "grass_top" {
		t.Errorf("grass top texture = %q, want %q", got, "grass_top")
	}
	if got := r.TextureFor(blockdef.Grass, 3); got != "dirt" {
		t.Errorf("grass bottom texture = %q, want %q", got, "dirt")
	}
	if got := r.TextureFor(blockdef.Grass, 0); got != "grass_side" {
		t.Errorf("grass east texture = %q, want %q", got, "grass_side")
	}
	if got := r.TextureFor(blockdef.Grass, 6); got != "" {
		t.Errorf("out-of-range face texture = %q, want empty", got)
	}
	if got := r.TextureFor(250, 0); got != "" {
		t.Errorf("unregistered block texture = %q, want empty", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.json")
	content := `{"blocks":[
		{"id":1,"name":"marble","opaque":true,"texture":"marble"},
		{"id":2,"name":"pillar","opaque":true,"texture":"pillar_side","faces":{"top":"pillar_cap","bottom":"pillar_cap"}}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := blockdef.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !r.IsOpaque(1) {
		t.Error("marble reported transparent")
	}
	if got := r.TextureFor(2, 2); got != "pillar_cap" {
		t.Errorf("pillar top texture = %q, want %q", got, "pillar_cap")
	}
	if got := r.TextureFor(2, 0); got != "pillar_side" {
		t.Errorf("pillar east texture = %q, want %q", got, "pillar_side")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := blockdef.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile on missing file succeeded")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"blocks":[{"id":1,"name":"x","faces":{"inside":"y"}}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := blockdef.LoadFile(bad); err == nil {
		t.Error("LoadFile with unknown face key succeeded")
	}
}
