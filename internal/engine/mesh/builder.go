package mesh

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/pkg/atlas"
)

// Registry answers the two block questions meshing needs: whether a block
// hides the face behind it, and which texture a face carries.
type Registry interface {
	IsOpaque(id uint8) bool
	TextureFor(id uint8, face int) string
}

// Builder turns chunk snapshots into geometry buffers. A face is emitted
// only when the adjacent block does not fully hide it; adjacency crosses
// chunk borders through the snapshot, and a missing neighbor chunk counts
// as air so the boundary stays visible until the neighbor loads.
//
// Safe for concurrent use; the worker pool shares one Builder.
type Builder struct {
	registry    Registry
	atlas       atlas.Resolver
	directional bool
	logger      *slog.Logger

	mu      sync.Mutex
	unknown map[string]bool
}

// NewBuilder creates a Builder. With directional set, Build returns up to
// six buffers per chunk, one per face direction, so a renderer can skip
// whole buffers facing away from the camera.
func NewBuilder(registry Registry, resolver atlas.Resolver, directional bool, logger *slog.Logger) *Builder {
	return &Builder{
		registry:    registry,
		atlas:       resolver,
		directional: directional,
		logger:      logger,
		unknown:     make(map[string]bool),
	}
}

// quad is one emitted face before buffer assembly.
type quad struct {
	x, y, z int
	face    int
	region  atlas.Region
}

// Build produces the geometry buffers for a snapshot. An all-air chunk
// yields no buffers. Directions with no visible faces yield no buffer in
// directional mode.
func (b *Builder) Build(n *world.Neighborhood) []Buffer {
	byDir := [world.FaceCount][]quad{}
	total := 0

	for y := 0; y < world.ChunkSize; y++ {
		for z := 0; z < world.ChunkSize; z++ {
			for x := 0; x < world.ChunkSize; x++ {
				id := n.Block(x, y, z)
				if id == world.Air {
					continue
				}
				for face := 0; face < world.FaceCount; face++ {
					o := world.FaceOffsets[face]
					if b.registry.IsOpaque(n.Block(x+o[0], y+o[1], z+o[2])) {
						continue
					}
					byDir[face] = append(byDir[face], quad{
						x: x, y: y, z: z,
						face:   face,
						region: b.resolveRegion(id, face),
					})
					total++
				}
			}
		}
	}
	if total == 0 {
		return nil
	}

	if b.directional {
		buffers := make([]Buffer, 0, world.FaceCount)
		for face := 0; face < world.FaceCount; face++ {
			if len(byDir[face]) == 0 {
				continue
			}
			buffers = append(buffers, assemble(n.Coord, face, byDir[face]))
		}
		return buffers
	}

	all := make([]quad, 0, total)
	for face := 0; face < world.FaceCount; face++ {
		all = append(all, byDir[face]...)
	}
	return []Buffer{assemble(n.Coord, DirectionNone, all)}
}

// resolveRegion maps a block face to its atlas region, substituting the
// fallback for unknown names. Each unknown name is logged once.
func (b *Builder) resolveRegion(id uint8, face int) atlas.Region {
	name := b.registry.TextureFor(id, face)
	if name != "" {
		if r, ok := b.atlas.Resolve(name); ok {
			return r
		}
	}

	b.mu.Lock()
	if !b.unknown[name] {
		b.unknown[name] = true
		b.mu.Unlock()
		b.logger.Warn("texture not in atlas, using fallback", "texture", name, "block", id)
	} else {
		b.mu.Unlock()
	}
	return b.atlas.Fallback()
}

// assemble packs quads into one buffer, indices grouped per material.
func assemble(coord world.ChunkCoord, direction int, quads []quad) Buffer {
	sort.SliceStable(quads, func(i, j int) bool {
		return quads[i].region.Index < quads[j].region.Index
	})

	buf := Buffer{
		Coord:     coord,
		Direction: direction,
		Vertices:  make([]Vertex, 0, len(quads)*4),
		Indices:   make([]uint32, 0, len(quads)*6),
	}
	for _, q := range quads {
		base := uint32(len(buf.Vertices))
		r := q.region
		uvs := [4][2]uint16{
			{uvFixed(r.U0), uvFixed(r.V1)},
			{uvFixed(r.U0), uvFixed(r.V0)},
			{uvFixed(r.U1), uvFixed(r.V0)},
			{uvFixed(r.U1), uvFixed(r.V1)},
		}
		for i, c := range faceCorners[q.face] {
			buf.Vertices = append(buf.Vertices, Vertex{
				X:      int16(q.x) + c[0],
				Y:      int16(q.y) + c[1],
				Z:      int16(q.z) + c[2],
				Normal: uint8(q.face),
				U:      uvs[i][0],
				V:      uvs[i][1],
			})
		}
		buf.Indices = append(buf.Indices,
			base, base+1, base+2,
			base, base+2, base+3)

		if len(buf.Groups) == 0 || buf.Groups[len(buf.Groups)-1].Material != r.Index {
			buf.Groups = append(buf.Groups, MaterialGroup{Material: r.Index, Start: uint32(len(buf.Indices)) - 6})
		}
		buf.Groups[len(buf.Groups)-1].Count += 6
	}
	return buf
}
