package gen

import (
	"testing"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

func TestDefaultGeneratorDeterministic(t *testing.T) {
	coord := world.ChunkCoord{X: 3, Y: 1, Z: -2}

	a, err := NewDefaultGenerator(42).Generate(coord)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := NewDefaultGenerator(42).Generate(coord)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at index %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestDefaultGeneratorSeedMatters(t *testing.T) {
	coord := world.ChunkCoord{X: 0, Y: 1, Z: 0}
	a, _ := NewDefaultGenerator(1).Generate(coord)
	b, _ := NewDefaultGenerator(2).Generate(coord)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical chunks")
	}
}

func TestDefaultGeneratorBedrockFloor(t *testing.T) {
	g := NewDefaultGenerator(7)
	blocks, err := g.Generate(world.ChunkCoord{X: 0, Y: 0, Z: 0})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for z := 0; z < world.ChunkSize; z++ {
		for x := 0; x < world.ChunkSize; x++ {
			if got := blocks[(0*world.ChunkSize+z)*world.ChunkSize+x]; got != blockdef.Bedrock {
				t.Fatalf("block at (%d,0,%d) = %d, want bedrock", x, z, got)
			}
		}
	}
}

func TestDefaultGeneratorBelowWorldIsAir(t *testing.T) {
	g := NewDefaultGenerator(7)
	blocks, err := g.Generate(world.ChunkCoord{X: 0, Y: -1, Z: 0})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, b := range blocks {
		if b != blockdef.Air {
			t.Fatalf("block below y=0 at index %d = %d, want air", i, b)
		}
	}
}

func TestFlatGeneratorLayers(t *testing.T) {
	g := NewFlatGenerator(8)
	blocks, err := g.Generate(world.ChunkCoord{})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	at := func(y int) uint8 {
		return blocks[(y*world.ChunkSize)*world.ChunkSize]
	}
	tests := []struct {
		y    int
		want uint8
	}{
		{0, blockdef.Bedrock},
		{1, blockdef.Stone},
		{4, blockdef.Stone},
		{5, blockdef.Dirt},
		{7, blockdef.Dirt},
		{8, blockdef.Grass},
		{9, blockdef.Air},
		{15, blockdef.Air},
	}
	for _, tt := range tests {
		if got := at(tt.y); got != tt.want {
			t.Errorf("layer at y=%d = %d, want %d", tt.y, got, tt.want)
		}
	}
	if got := g.HeightAt(100, -100); got != 8 {
		t.Errorf("HeightAt = %d, want 8", got)
	}
}

func TestFlatGeneratorUpperChunkEmpty(t *testing.T) {
	g := NewFlatGenerator(8)
	blocks, err := g.Generate(world.ChunkCoord{Y: 1})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for i, b := range blocks {
		if b != blockdef.Air {
			t.Fatalf("block in empty chunk at index %d = %d, want air", i, b)
		}
	}
}
