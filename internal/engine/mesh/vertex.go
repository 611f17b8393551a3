package mesh

import "github.com/OCharnyshevich/voxel-engine/internal/engine/world"

// Vertex is the compact GPU layout for chunk geometry: quantized corner
// position in chunk-local block units, a face index standing in for the
// normal vector, and UVs as 16-bit normalized fixed point. 12 bytes per
// vertex once packed.
type Vertex struct {
	X, Y, Z int16
	Normal  uint8
	U, V    uint16
}

// DirectionNone marks a buffer holding faces of every direction, when the
// builder runs with the directional split disabled.
const DirectionNone = -1

// MaterialGroup is a contiguous run of indices drawn with one atlas
// material.
type MaterialGroup struct {
	Material int
	Start    uint32
	Count    uint32
}

// Buffer is the finished geometry for one chunk, or for one face direction
// of a chunk in directional mode. Indices are grouped per material so a
// renderer can bind each atlas page once.
type Buffer struct {
	Coord     world.ChunkCoord
	Direction int
	Vertices  []Vertex
	Indices   []uint32
	Groups    []MaterialGroup
}

// uvFixed converts a normalized texture coordinate to 16-bit fixed point.
func uvFixed(f float32) uint16 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 65535
	}
	return uint16(f * 65535)
}

// faceCorners lists the four quad corners of each block face, as offsets
// from the block position, wound counter-clockwise seen from outside.
var faceCorners = [world.FaceCount][4][3]int16{
	{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}, // east
	{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}}, // west
	{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}, // up
	{{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {1, 0, 1}}, // down
	{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}}, // north
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}, // south
}
