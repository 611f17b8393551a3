package world

// ChunkSize is the edge length of a chunk in blocks. Chunks are cubic.
const (
	ChunkSize   = 16
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// Air is the block ID used for empty space and for any query that falls
// outside the resident world.
const Air uint8 = 0

// ChunkCoord identifies a chunk by its X, Y and Z coordinates in chunk space.
type ChunkCoord struct{ X, Y, Z int }

// Face indices for the six axis-aligned directions. The encoding pairs each
// axis with its negative so OppositeFace is a single bit flip.
const (
	FaceEast  = iota // +X
	FaceWest         // -X
	FaceUp           // +Y
	FaceDown         // -Y
	FaceNorth        // +Z
	FaceSouth        // -Z
	FaceCount = 6
)

// FaceOffsets maps a face index to the unit step toward the adjacent block.
var FaceOffsets = [FaceCount][3]int{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// OppositeFace returns the face pointing the other way along the same axis.
func OppositeFace(face int) int {
	return face ^ 1
}

// Neighbor returns the coordinate of the chunk adjacent across the given face.
func (c ChunkCoord) Neighbor(face int) ChunkCoord {
	o := FaceOffsets[face]
	return ChunkCoord{X: c.X + o[0], Y: c.Y + o[1], Z: c.Z + o[2]}
}

// WorldToChunk converts a world block coordinate to a chunk coordinate using
// floor division, so negative coordinates map correctly:
// WorldToChunk(-1) == -1, WorldToChunk(-ChunkSize) == -1.
func WorldToChunk(w int) int {
	return floorDiv(w, ChunkSize)
}

// WorldToLocal converts a world block coordinate to a local coordinate,
// always in [0, ChunkSize).
func WorldToLocal(w int) int {
	return mod(w, ChunkSize)
}

// Split resolves a world block position into its owning chunk coordinate and
// local coordinates within that chunk.
func Split(wx, wy, wz int) (coord ChunkCoord, lx, ly, lz int) {
	coord = ChunkCoord{X: WorldToChunk(wx), Y: WorldToChunk(wy), Z: WorldToChunk(wz)}
	return coord, WorldToLocal(wx), WorldToLocal(wy), WorldToLocal(wz)
}

// ChebyshevXZ returns the horizontal Chebyshev distance between two chunk
// coordinates, ignoring the vertical axis. Streaming radii are horizontal.
func ChebyshevXZ(a, b ChunkCoord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	if dx > dz {
		return dx
	}
	return dz
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

func mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
