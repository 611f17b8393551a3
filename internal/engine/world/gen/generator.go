// Package gen produces chunk block data. Generators are deterministic: the
// same seed and coordinate always yield the same blocks, so a regenerated
// chunk is indistinguishable from the evicted one.
package gen

import (
	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
)

// Generator fills chunks with terrain. Implementations must be safe for
// concurrent use; the streaming worker pool calls Generate from several
// goroutines.
type Generator interface {
	// Generate returns world.ChunkVolume block IDs for the chunk at coord,
	// indexed (y*ChunkSize+z)*ChunkSize+x.
	Generate(coord world.ChunkCoord) ([]uint8, error)

	// HeightAt returns the terrain surface height at a world column.
	HeightAt(wx, wz int) int
}
