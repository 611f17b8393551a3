package world

// Chunk is a dense ChunkSize³ grid of block IDs plus lifecycle flags.
// A chunk never references its neighbors directly; adjacency is resolved
// through the Store so eviction cannot leave dangling links.
type Chunk struct {
	Coord ChunkCoord

	blocks [ChunkVolume]uint8
	nonAir int

	dirty bool
	// rev increases on every content change. Mesh snapshots record the
	// revision they were taken at so stale build results are detectable.
	rev uint64
}

// NewChunk creates an all-air chunk at the given coordinate, marked dirty.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord, dirty: true}
}

// NewChunkFromBlocks creates a chunk from generated block data. The slice
// must hold ChunkVolume entries, indexed (y*ChunkSize+z)*ChunkSize+x.
func NewChunkFromBlocks(coord ChunkCoord, blocks []uint8) *Chunk {
	c := NewChunk(coord)
	copy(c.blocks[:], blocks)
	for _, b := range c.blocks {
		if b != Air {
			c.nonAir++
		}
	}
	return c
}

func blockIndex(x, y, z int) int {
	return (y*ChunkSize+z)*ChunkSize + x
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// Block returns the block at local coordinates. Out-of-range coordinates
// yield Air rather than an error.
func (c *Chunk) Block(x, y, z int) uint8 {
	if !inBounds(x, y, z) {
		return Air
	}
	return c.blocks[blockIndex(x, y, z)]
}

// SetBlock writes a block at local coordinates and reports whether the
// content changed. Writing the current value is a no-op and does not mark
// the chunk dirty. Out-of-range coordinates are ignored.
func (c *Chunk) SetBlock(x, y, z int, id uint8) bool {
	if !inBounds(x, y, z) {
		return false
	}
	i := blockIndex(x, y, z)
	old := c.blocks[i]
	if old == id {
		return false
	}
	c.blocks[i] = id
	if old == Air {
		c.nonAir++
	} else if id == Air {
		c.nonAir--
	}
	c.dirty = true
	c.rev++
	return true
}

// Fill sets every block in the chunk to id.
func (c *Chunk) Fill(id uint8) {
	for i := range c.blocks {
		c.blocks[i] = id
	}
	if id == Air {
		c.nonAir = 0
	} else {
		c.nonAir = ChunkVolume
	}
	c.dirty = true
	c.rev++
}

// Empty reports whether the chunk is entirely air. O(1).
func (c *Chunk) Empty() bool {
	return c.nonAir == 0
}

// Dirty reports whether the chunk's geometry is stale relative to its content.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// MarkDirty flags the chunk for re-meshing.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

// MarkClean clears the dirty flag. Callers must only do this after geometry
// reflecting the current content has been produced.
func (c *Chunk) MarkClean() {
	c.dirty = false
}

// Revision returns the chunk's content revision counter.
func (c *Chunk) Revision() uint64 {
	return c.rev
}

// BlocksCopy returns a copy of the block array, for archival or handoff.
func (c *Chunk) BlocksCopy() []uint8 {
	out := make([]uint8, ChunkVolume)
	copy(out, c.blocks[:])
	return out
}
