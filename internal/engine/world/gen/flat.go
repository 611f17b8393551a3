package gen

import (
	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

// FlatGenerator produces a flat world: bedrock at y=0, stone up to three
// blocks below the surface, then dirt and a grass top. Useful for tests and
// predictable soak runs.
type FlatGenerator struct {
	surface int
}

// NewFlatGenerator creates a flat world with the surface at the given height.
func NewFlatGenerator(surface int) *FlatGenerator {
	if surface < 1 {
		surface = 1
	}
	return &FlatGenerator{surface: surface}
}

func (g *FlatGenerator) Generate(coord world.ChunkCoord) ([]uint8, error) {
	blocks := make([]uint8, world.ChunkVolume)
	for y := 0; y < world.ChunkSize; y++ {
		wy := coord.Y*world.ChunkSize + y
		id := g.layerBlock(wy)
		if id == blockdef.Air {
			continue
		}
		for z := 0; z < world.ChunkSize; z++ {
			for x := 0; x < world.ChunkSize; x++ {
				blocks[(y*world.ChunkSize+z)*world.ChunkSize+x] = id
			}
		}
	}
	return blocks, nil
}

func (g *FlatGenerator) HeightAt(wx, wz int) int {
	return g.surface
}

func (g *FlatGenerator) layerBlock(wy int) uint8 {
	switch {
	case wy < 0 || wy > g.surface:
		return blockdef.Air
	case wy == 0:
		return blockdef.Bedrock
	case wy == g.surface:
		return blockdef.Grass
	case wy >= g.surface-3:
		return blockdef.Dirt
	default:
		return blockdef.Stone
	}
}
