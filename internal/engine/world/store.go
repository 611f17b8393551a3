package world

import (
	"errors"
	"sync"
)

// ErrDuplicateChunk is returned by Insert when the coordinate is already
// occupied. At most one chunk may exist per coordinate.
var ErrDuplicateChunk = errors.New("world: duplicate chunk")

// EventKind classifies chunk lifecycle notifications.
type EventKind int

const (
	EventLoaded EventKind = iota
	EventUnloaded
	EventUpdated
)

// Event is a chunk lifecycle notification. Events are queued and drained
// once per tick rather than delivered through callbacks, so subscribers see
// a deterministic order and teardown is explicit.
type Event struct {
	Kind  EventKind
	Coord ChunkCoord
}

// Store owns all resident chunks, keyed by chunk coordinate. One goroutine
// drives all writes; the lock makes concurrent reads (debug stream, stats)
// safe.
type Store struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
	events []Event
}

// NewStore creates an empty chunk store.
func NewStore() *Store {
	return &Store{chunks: make(map[ChunkCoord]*Chunk)}
}

// Get returns the chunk at coord, or false if it is not resident. O(1).
func (s *Store) Get(coord ChunkCoord) (*Chunk, bool) {
	s.mu.RLock()
	c, ok := s.chunks[coord]
	s.mu.RUnlock()
	return c, ok
}

// Neighbor returns the resident chunk adjacent to coord across the given
// face. The relation is a coordinate lookup, not a stored reference.
func (s *Store) Neighbor(coord ChunkCoord, face int) (*Chunk, bool) {
	return s.Get(coord.Neighbor(face))
}

// Insert installs a chunk at coord. Any already-resident adjacent chunk is
// marked dirty so the shared boundary is re-evaluated with full information;
// the inserted chunk is dirty from construction. Returns ErrDuplicateChunk
// if the coordinate is occupied.
func (s *Store) Insert(coord ChunkCoord, c *Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chunks[coord]; ok {
		return ErrDuplicateChunk
	}
	c.Coord = coord
	s.chunks[coord] = c

	for face := 0; face < FaceCount; face++ {
		if nb, ok := s.chunks[coord.Neighbor(face)]; ok {
			nb.MarkDirty()
		}
	}

	s.events = append(s.events, Event{Kind: EventLoaded, Coord: coord})
	return nil
}

// Remove evicts the chunk at coord and reports whether one was resident.
// Resident neighbors are marked dirty: their boundary faces just became
// exposed and must be re-meshed.
func (s *Store) Remove(coord ChunkCoord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chunks[coord]; !ok {
		return false
	}
	delete(s.chunks, coord)

	for face := 0; face < FaceCount; face++ {
		if nb, ok := s.chunks[coord.Neighbor(face)]; ok {
			nb.MarkDirty()
		}
	}

	s.events = append(s.events, Event{Kind: EventUnloaded, Coord: coord})
	return true
}

// GetBlock returns the block at a world position. Queries into unloaded
// chunks return Air; the call never fails for any integer coordinate.
func (s *Store) GetBlock(wx, wy, wz int) uint8 {
	coord, lx, ly, lz := Split(wx, wy, wz)
	s.mu.RLock()
	c, ok := s.chunks[coord]
	s.mu.RUnlock()
	if !ok {
		return Air
	}
	return c.Block(lx, ly, lz)
}

// SetBlock writes a block at a world position. It is a no-op when the owning
// chunk is not resident. Writing the current value does not dirty the chunk.
// A write on a chunk face additionally marks the facing neighbor dirty,
// synchronously, so a mesh pass later in the same tick sees the full dirty
// set. Reports whether the world changed.
func (s *Store) SetBlock(wx, wy, wz int, id uint8) bool {
	coord, lx, ly, lz := Split(wx, wy, wz)

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.chunks[coord]
	if !ok {
		return false
	}
	if !c.SetBlock(lx, ly, lz, id) {
		return false
	}

	for _, face := range boundaryFaces(lx, ly, lz) {
		if nb, ok := s.chunks[coord.Neighbor(face)]; ok {
			nb.MarkDirty()
		}
	}

	s.events = append(s.events, Event{Kind: EventUpdated, Coord: coord})
	return true
}

// boundaryFaces returns the faces whose neighbor chunk shares the block at
// the given local coordinates. A corner block touches up to three.
func boundaryFaces(lx, ly, lz int) []int {
	faces := make([]int, 0, 3)
	if lx == 0 {
		faces = append(faces, FaceWest)
	} else if lx == ChunkSize-1 {
		faces = append(faces, FaceEast)
	}
	if ly == 0 {
		faces = append(faces, FaceDown)
	} else if ly == ChunkSize-1 {
		faces = append(faces, FaceUp)
	}
	if lz == 0 {
		faces = append(faces, FaceSouth)
	} else if lz == ChunkSize-1 {
		faces = append(faces, FaceNorth)
	}
	return faces
}

// Len returns the number of resident chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Coords returns the coordinates of all resident chunks in map order.
func (s *Store) Coords() []ChunkCoord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChunkCoord, 0, len(s.chunks))
	for coord := range s.chunks {
		out = append(out, coord)
	}
	return out
}

// DirtyCoords returns the coordinates of all resident chunks whose geometry
// is stale.
func (s *Store) DirtyCoords() []ChunkCoord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ChunkCoord
	for coord, c := range s.chunks {
		if c.Dirty() {
			out = append(out, coord)
		}
	}
	return out
}

// DrainEvents returns all queued events and clears the queue. Called once
// per tick by the owning loop.
func (s *Store) DrainEvents() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.events
	s.events = nil
	return ev
}
