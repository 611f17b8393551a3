package world

// Neighborhood is an immutable snapshot of a chunk and the block data of its
// six face neighbors, taken while holding the store lock. Mesh builds read
// from the snapshot on worker goroutines while the live chunks keep taking
// edits; a build is only accepted if the center revision is unchanged.
type Neighborhood struct {
	Coord    ChunkCoord
	Revision uint64

	center    []uint8
	neighbors [FaceCount][]uint8
}

// Snapshot captures the chunk at coord and its resident face neighbors.
// Returns false if coord itself is not resident. Missing neighbors stay nil
// and read as Air.
func (s *Store) Snapshot(coord ChunkCoord) (*Neighborhood, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.chunks[coord]
	if !ok {
		return nil, false
	}
	n := &Neighborhood{
		Coord:    coord,
		Revision: c.rev,
		center:   c.BlocksCopy(),
	}
	for face := 0; face < FaceCount; face++ {
		if nb, ok := s.chunks[coord.Neighbor(face)]; ok {
			n.neighbors[face] = nb.BlocksCopy()
		}
	}
	return n, true
}

// Block returns the block at local coordinates relative to the center chunk.
// Coordinates may step one block past any face into the corresponding
// neighbor; a missing neighbor or a farther query reads as Air.
func (n *Neighborhood) Block(x, y, z int) uint8 {
	if x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize {
		return n.center[blockIndex(x, y, z)]
	}

	face, ok := spillFace(x, y, z)
	if !ok {
		return Air
	}
	blocks := n.neighbors[face]
	if blocks == nil {
		return Air
	}
	return blocks[blockIndex(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))]
}

// spillFace maps a coordinate one step outside the chunk to the face it
// crossed. Diagonal spills (two axes out at once) are rejected; face culling
// only ever looks straight across a face.
func spillFace(x, y, z int) (int, bool) {
	out := -1
	count := 0
	switch {
	case x == ChunkSize:
		out, count = FaceEast, count+1
	case x == -1:
		out, count = FaceWest, count+1
	}
	switch {
	case y == ChunkSize:
		out, count = FaceUp, count+1
	case y == -1:
		out, count = FaceDown, count+1
	}
	switch {
	case z == ChunkSize:
		out, count = FaceNorth, count+1
	case z == -1:
		out, count = FaceSouth, count+1
	}
	if count != 1 {
		return 0, false
	}
	return out, true
}
