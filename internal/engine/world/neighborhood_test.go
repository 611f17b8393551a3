package world

import "testing"

func TestSnapshotMissingCenter(t *testing.T) {
	s := NewStore()
	if _, ok := s.Snapshot(ChunkCoord{}); ok {
		t.Error("Snapshot of non-resident chunk succeeded")
	}
}

func TestSnapshotReadsAcrossFaces(t *testing.T) {
	s := NewStore()
	center := ChunkCoord{}
	east := center.Neighbor(FaceEast)

	cc := NewChunk(center)
	cc.SetBlock(15, 4, 4, 2)
	ec := NewChunk(east)
	ec.SetBlock(0, 4, 4, 3)
	if err := s.Insert(center, cc); err != nil {
		t.Fatalf("Insert(center) error = %v", err)
	}
	if err := s.Insert(east, ec); err != nil {
		t.Fatalf("Insert(east) error = %v", err)
	}

	n, ok := s.Snapshot(center)
	if !ok {
		t.Fatal("Snapshot failed")
	}
	if got := n.Block(15, 4, 4); got != 2 {
		t.Errorf("center read = %d, want 2", got)
	}
	if got := n.Block(16, 4, 4); got != 3 {
		t.Errorf("east spill read = %d, want 3", got)
	}
	// West neighbor is not resident.
	if got := n.Block(-1, 4, 4); got != Air {
		t.Errorf("missing-neighbor read = %d, want air", got)
	}
	// Diagonal spill is out of snapshot scope.
	if got := n.Block(16, -1, 4); got != Air {
		t.Errorf("diagonal read = %d, want air", got)
	}
}

func TestSnapshotImmutable(t *testing.T) {
	s := NewStore()
	coord := ChunkCoord{}
	c := NewChunk(coord)
	if err := s.Insert(coord, c); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	n, _ := s.Snapshot(coord)
	rev := n.Revision

	c.SetBlock(1, 1, 1, 9)
	if got := n.Block(1, 1, 1); got != Air {
		t.Errorf("snapshot saw a later edit: got %d, want air", got)
	}
	if c.Revision() == rev {
		t.Error("edit did not advance the chunk revision")
	}
}
