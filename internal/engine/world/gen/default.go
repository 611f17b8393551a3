package gen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

const seaLevel = 24

// DefaultGenerator produces rolling terrain with beaches, water and caves
// from layered opensimplex noise.
type DefaultGenerator struct {
	terrain opensimplex.Noise
	detail  opensimplex.Noise
	caves   opensimplex.Noise
}

// NewDefaultGenerator creates a DefaultGenerator from a seed.
func NewDefaultGenerator(seed int64) *DefaultGenerator {
	return &DefaultGenerator{
		terrain: opensimplex.New(seed),
		detail:  opensimplex.New(seed + 1),
		caves:   opensimplex.New(seed + 2),
	}
}

func (g *DefaultGenerator) Generate(coord world.ChunkCoord) ([]uint8, error) {
	blocks := make([]uint8, world.ChunkVolume)

	var heights [world.ChunkSize][world.ChunkSize]int
	for x := 0; x < world.ChunkSize; x++ {
		for z := 0; z < world.ChunkSize; z++ {
			wx := coord.X*world.ChunkSize + x
			wz := coord.Z*world.ChunkSize + z
			heights[x][z] = g.HeightAt(wx, wz)
		}
	}

	for y := 0; y < world.ChunkSize; y++ {
		wy := coord.Y*world.ChunkSize + y
		for z := 0; z < world.ChunkSize; z++ {
			for x := 0; x < world.ChunkSize; x++ {
				wx := coord.X*world.ChunkSize + x
				wz := coord.Z*world.ChunkSize + z
				id := g.blockAt(wx, wy, wz, heights[x][z])
				blocks[(y*world.ChunkSize+z)*world.ChunkSize+x] = id
			}
		}
	}
	return blocks, nil
}

// HeightAt returns the terrain surface height at a world column. Base noise
// shapes the large features, a second layer adds small-scale variation.
func (g *DefaultGenerator) HeightAt(wx, wz int) int {
	base := octave2(g.terrain, float64(wx)/128.0, float64(wz)/128.0, 4, 0.5)
	detail := octave2(g.detail, float64(wx)/32.0, float64(wz)/32.0, 2, 0.5)

	h := int(float64(seaLevel) + base*16.0 + detail*4.0)
	if h < 1 {
		h = 1
	}
	return h
}

func (g *DefaultGenerator) blockAt(wx, wy, wz, height int) uint8 {
	if wy < 0 {
		return blockdef.Air
	}
	if wy == 0 {
		return blockdef.Bedrock
	}

	if wy <= height {
		if g.isCave(wx, wy, wz, height) {
			return blockdef.Air
		}
		switch {
		case wy < height-3:
			return blockdef.Stone
		case wy < height:
			if height <= seaLevel+1 {
				return blockdef.Sand
			}
			return blockdef.Dirt
		default:
			if height <= seaLevel+1 {
				return blockdef.Sand
			}
			return blockdef.Grass
		}
	}

	if wy <= seaLevel {
		return blockdef.Water
	}
	return blockdef.Air
}

// isCave carves air where the 3D noise exceeds a threshold. Caves stay away
// from bedrock and never break the surface under water.
func (g *DefaultGenerator) isCave(wx, wy, wz, height int) bool {
	if wy < 4 || wy > height-2 {
		return false
	}
	n := g.caves.Eval3(float64(wx)/48.0, float64(wy)/24.0, float64(wz)/48.0)
	return n > 0.62
}

// octave2 layers 2D noise octaves, roughly in [-1, 1].
func octave2(n opensimplex.Noise, x, z float64, octaves int, persistence float64) float64 {
	var total, maxVal float64
	amplitude := 1.0
	frequency := 1.0
	for range octaves {
		total += n.Eval2(x*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2.0
	}
	return total / maxVal
}
