package world

import (
	"errors"
	"testing"
)

func TestStoreGetBlockNonResident(t *testing.T) {
	s := NewStore()
	if got := s.GetBlock(100, -3, 50); got != Air {
		t.Errorf("GetBlock on empty store = %d, want air", got)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore()
	coord := ChunkCoord{X: -1, Y: 0, Z: 2}
	if err := s.Insert(coord, NewChunk(coord)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	// World block (-1, 5, 37) lands in chunk (-1, 0, 2) at local (15, 5, 5).
	if !s.SetBlock(-1, 5, 37, 8) {
		t.Fatal("SetBlock reported no change")
	}
	if got := s.GetBlock(-1, 5, 37); got != 8 {
		t.Errorf("GetBlock = %d, want 8", got)
	}
}

func TestStoreDuplicateInsert(t *testing.T) {
	s := NewStore()
	coord := ChunkCoord{}
	if err := s.Insert(coord, NewChunk(coord)); err != nil {
		t.Fatalf("first Insert() error = %v", err)
	}
	err := s.Insert(coord, NewChunk(coord))
	if !errors.Is(err, ErrDuplicateChunk) {
		t.Errorf("second Insert() error = %v, want ErrDuplicateChunk", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreSetBlockNonResident(t *testing.T) {
	s := NewStore()
	if s.SetBlock(0, 0, 0, 5) {
		t.Error("SetBlock on non-resident chunk reported a change")
	}
	if got := s.GetBlock(0, 0, 0); got != Air {
		t.Errorf("GetBlock = %d, want air", got)
	}
}

func TestStoreInsertDirtiesNeighbors(t *testing.T) {
	s := NewStore()
	center := ChunkCoord{}
	east := center.Neighbor(FaceEast)
	far := ChunkCoord{X: 5, Y: 0, Z: 0}
	for _, coord := range []ChunkCoord{east, far} {
		if err := s.Insert(coord, NewChunk(coord)); err != nil {
			t.Fatalf("Insert(%v) error = %v", coord, err)
		}
	}
	mustClean(t, s, east, far)

	if err := s.Insert(center, NewChunk(center)); err != nil {
		t.Fatalf("Insert(center) error = %v", err)
	}
	if c, _ := s.Get(east); !c.Dirty() {
		t.Error("adjacent chunk not dirtied by insert")
	}
	if c, _ := s.Get(far); c.Dirty() {
		t.Error("distant chunk dirtied by insert")
	}
}

func TestStoreRemoveDirtiesNeighbors(t *testing.T) {
	s := NewStore()
	center := ChunkCoord{}
	up := center.Neighbor(FaceUp)
	for _, coord := range []ChunkCoord{center, up} {
		if err := s.Insert(coord, NewChunk(coord)); err != nil {
			t.Fatalf("Insert(%v) error = %v", coord, err)
		}
	}
	mustClean(t, s, up)

	if !s.Remove(center) {
		t.Fatal("Remove reported no chunk")
	}
	if _, ok := s.Get(center); ok {
		t.Error("chunk still resident after Remove")
	}
	if c, _ := s.Get(up); !c.Dirty() {
		t.Error("neighbor not dirtied by Remove")
	}
	if s.Remove(center) {
		t.Error("second Remove reported a chunk")
	}
}

func TestStoreBoundaryEditDirtiesFacingNeighbors(t *testing.T) {
	s := NewStore()
	center := ChunkCoord{}
	coords := []ChunkCoord{center}
	for face := 0; face < FaceCount; face++ {
		coords = append(coords, center.Neighbor(face))
	}
	for _, coord := range coords {
		if err := s.Insert(coord, NewChunk(coord)); err != nil {
			t.Fatalf("Insert(%v) error = %v", coord, err)
		}
	}
	mustClean(t, s, coords...)

	// Corner block (0,0,0) shares faces with the west, down and south
	// neighbors only.
	if !s.SetBlock(0, 0, 0, 4) {
		t.Fatal("SetBlock reported no change")
	}
	wantDirty := map[ChunkCoord]bool{
		center:                     true,
		center.Neighbor(FaceWest):  true,
		center.Neighbor(FaceDown):  true,
		center.Neighbor(FaceSouth): true,
		center.Neighbor(FaceEast):  false,
		center.Neighbor(FaceUp):    false,
		center.Neighbor(FaceNorth): false,
	}
	for coord, want := range wantDirty {
		c, _ := s.Get(coord)
		if c.Dirty() != want {
			t.Errorf("chunk %v dirty = %v, want %v", coord, c.Dirty(), want)
		}
	}
}

func TestStoreInteriorEditDirtiesOnlyOwner(t *testing.T) {
	s := NewStore()
	center := ChunkCoord{}
	east := center.Neighbor(FaceEast)
	for _, coord := range []ChunkCoord{center, east} {
		if err := s.Insert(coord, NewChunk(coord)); err != nil {
			t.Fatalf("Insert(%v) error = %v", coord, err)
		}
	}
	mustClean(t, s, center, east)

	s.SetBlock(8, 8, 8, 3)
	if c, _ := s.Get(center); !c.Dirty() {
		t.Error("owner not dirtied by interior edit")
	}
	if c, _ := s.Get(east); c.Dirty() {
		t.Error("neighbor dirtied by interior edit")
	}
}

func TestStoreEvents(t *testing.T) {
	s := NewStore()
	coord := ChunkCoord{X: 1}
	if err := s.Insert(coord, NewChunk(coord)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	s.SetBlock(16, 0, 0, 2)
	s.Remove(coord)

	events := s.DrainEvents()
	want := []Event{
		{Kind: EventLoaded, Coord: coord},
		{Kind: EventUpdated, Coord: coord},
		{Kind: EventUnloaded, Coord: coord},
	}
	if len(events) != len(want) {
		t.Fatalf("DrainEvents() returned %d events, want %d", len(events), len(want))
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, events[i], want[i])
		}
	}
	if left := s.DrainEvents(); len(left) != 0 {
		t.Errorf("second DrainEvents() returned %d events, want 0", len(left))
	}
}

func mustClean(t *testing.T, s *Store, coords ...ChunkCoord) {
	t.Helper()
	for _, coord := range coords {
		c, ok := s.Get(coord)
		if !ok {
			t.Fatalf("chunk %v not resident", coord)
		}
		c.MarkClean()
	}
}
