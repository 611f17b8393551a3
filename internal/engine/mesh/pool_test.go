package mesh

import (
	"testing"
	"time"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

func TestPoolBuildsSubmittedSnapshots(t *testing.T) {
	p := NewPool(testBuilder(false), 2, 4)
	defer p.Close()

	n := snapshotWith(t, func(s *world.Store) {
		s.SetBlock(8, 8, 8, blockdef.Stone)
	})
	if !p.Submit(n) {
		t.Fatal("Submit refused with an empty queue")
	}

	select {
	case res := <-p.Results():
		if res.Coord != n.Coord {
			t.Errorf("result coord = %v, want %v", res.Coord, n.Coord)
		}
		if res.Revision != n.Revision {
			t.Errorf("result revision = %d, want %d", res.Revision, n.Revision)
		}
		if countFaces(res.Buffers) != 6 {
			t.Errorf("face count = %d, want 6", countFaces(res.Buffers))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no result within 5s")
	}
}

func TestPoolSubmitBackpressure(t *testing.T) {
	// No workers: the queue fills and Submit must refuse instead of block.
	p := NewPool(testBuilder(false), 0, 1)

	n := snapshotWith(t, func(s *world.Store) {})
	if !p.Submit(n) {
		t.Fatal("first Submit refused")
	}
	if p.Submit(n) {
		t.Error("Submit accepted past the queue bound")
	}
}

func TestPoolCloseDrains(t *testing.T) {
	p := NewPool(testBuilder(false), 1, 4)
	n := snapshotWith(t, func(s *world.Store) {
		s.SetBlock(0, 0, 0, blockdef.Stone)
	})
	p.Submit(n)
	p.Close()

	got := 0
	for range p.Results() {
		got++
	}
	if got != 1 {
		t.Errorf("drained %d results, want 1", got)
	}
}
