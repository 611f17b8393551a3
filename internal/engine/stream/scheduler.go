// Package stream keeps the resident chunk set tracking a moving viewpoint.
// Generation runs on a worker pool; the owning tick goroutine submits
// requests, merges finished chunks under a per-tick budget and evicts
// chunks that fall outside the retention radius.
package stream

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/world/gen"
)

// State is the streaming lifecycle of one coordinate.
type State int

const (
	StateUnloaded State = iota
	StatePending        // generation requested, result not merged yet
	StateResident
	StateFailed // generation gave up for this session
)

// Options tune the scheduler. Zero values are replaced by defaults.
type Options struct {
	// RenderDistance is the horizontal Chebyshev radius of chunks kept
	// loaded around the viewpoint.
	RenderDistance int
	// EvictDistance is the radius beyond which resident chunks unload.
	// Always larger than RenderDistance so small viewpoint movements do
	// not thrash load/unload cycles.
	EvictDistance int
	// WorldChunks is the vertical extent of the world in chunks.
	WorldChunks int
	// MaxLoadsPerTick bounds new generation requests and merged results
	// per tick.
	MaxLoadsPerTick int
	// MaxRetries bounds generation attempts per coordinate before the
	// coordinate is marked failed for the session.
	MaxRetries int
	// PreloadMargin is the distance in blocks from a chunk border at
	// which the neighboring ring starts loading early.
	PreloadMargin int
	// Workers and Queue size the generation pool.
	Workers int
	Queue   int
}

func (o Options) withDefaults() Options {
	if o.RenderDistance <= 0 {
		o.RenderDistance = 8
	}
	if o.EvictDistance <= o.RenderDistance {
		o.EvictDistance = o.RenderDistance + 2
	}
	if o.WorldChunks <= 0 {
		o.WorldChunks = 8
	}
	if o.MaxLoadsPerTick <= 0 {
		o.MaxLoadsPerTick = 16
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.Queue <= 0 {
		o.Queue = o.Workers * 4
	}
	return o
}

type genResult struct {
	coord  world.ChunkCoord
	blocks []uint8
	err    error
}

// Scheduler drives chunk streaming. All methods must be called from the
// goroutine that owns the store; only the generation workers run
// elsewhere. The exception is StatsSnapshot, which is safe from any
// goroutine.
type Scheduler struct {
	store   *world.Store
	archive *world.Archive
	gen     gen.Generator
	opts    Options
	logger  *slog.Logger

	jobs    chan world.ChunkCoord
	results chan genResult
	done    chan struct{}

	viewpoint [3]int
	hasView   bool

	pending map[world.ChunkCoord]bool
	retries map[world.ChunkCoord]int
	failed  map[world.ChunkCoord]bool

	// stats is published at the end of each tick and read concurrently
	// by the debug surfaces; the tick-owned maps above are never touched
	// off the owning goroutine.
	statsMu sync.Mutex
	stats   Stats
}

// NewScheduler creates a scheduler streaming into store. archive may be nil
// to disable retained snapshots.
func NewScheduler(store *world.Store, archive *world.Archive, generator gen.Generator, opts Options, logger *slog.Logger) *Scheduler {
	opts = opts.withDefaults()
	s := &Scheduler{
		store:   store,
		archive: archive,
		gen:     generator,
		opts:    opts,
		logger:  logger,
		jobs:    make(chan world.ChunkCoord, opts.Queue),
		results: make(chan genResult, opts.Queue),
		done:    make(chan struct{}),
		pending: make(map[world.ChunkCoord]bool),
		retries: make(map[world.ChunkCoord]int),
		failed:  make(map[world.ChunkCoord]bool),
	}
	for i := 0; i < opts.Workers; i++ {
		go s.worker()
	}
	return s
}

func (s *Scheduler) worker() {
	for {
		select {
		case <-s.done:
			return
		case coord := <-s.jobs:
			blocks, err := s.gen.Generate(coord)
			select {
			case s.results <- genResult{coord: coord, blocks: blocks, err: err}:
			case <-s.done:
				return
			}
		}
	}
}

// Close stops the workers. Pending results are abandoned.
func (s *Scheduler) Close() {
	close(s.done)
}

// SetViewpoint moves the streamed-around position, in world block
// coordinates. Requests for coordinates pulled out of range by the move are
// coalesced: their results are discarded at merge time.
func (s *Scheduler) SetViewpoint(wx, wy, wz int) {
	s.viewpoint = [3]int{wx, wy, wz}
	s.hasView = true
}

// Tick advances streaming one step: merge finished generations under the
// budget, request missing chunks closest-first, then evict out-of-range
// chunks. Eviction runs strictly after the merge so a result landing on the
// tick the viewpoint moved away is still evicted, never leaked.
func (s *Scheduler) Tick() {
	if s.hasView {
		s.merge()
		s.load()
		s.evict()
	}
	s.publishStats()
}

func (s *Scheduler) merge() {
	center := s.centerChunk()
	for merged := 0; merged < s.opts.MaxLoadsPerTick; merged++ {
		select {
		case res := <-s.results:
			delete(s.pending, res.coord)
			if res.err != nil {
				s.noteFailure(res.coord, res.err)
				continue
			}
			delete(s.retries, res.coord)
			if world.ChebyshevXZ(res.coord, center) > s.opts.EvictDistance {
				// The viewpoint moved on while this chunk generated.
				continue
			}
			if err := s.store.Insert(res.coord, world.NewChunkFromBlocks(res.coord, res.blocks)); err != nil {
				s.logger.Warn("discarding duplicate generated chunk", "coord", res.coord, "err", err)
			}
		default:
			return
		}
	}
}

func (s *Scheduler) noteFailure(coord world.ChunkCoord, err error) {
	s.retries[coord]++
	if s.retries[coord] < s.opts.MaxRetries {
		s.logger.Debug("chunk generation failed, will retry", "coord", coord, "attempt", s.retries[coord], "err", err)
		return
	}
	s.failed[coord] = true
	delete(s.retries, coord)
	s.logger.Warn("chunk generation failed, giving up for this session", "coord", coord, "attempts", s.opts.MaxRetries, "err", err)
}

func (s *Scheduler) load() {
	budget := s.opts.MaxLoadsPerTick
	for _, coord := range s.requiredCoords() {
		if budget == 0 {
			return
		}
		if s.pending[coord] || s.failed[coord] {
			continue
		}
		if _, ok := s.store.Get(coord); ok {
			continue
		}

		if s.archive != nil {
			if blocks, ok := s.archive.Take(coord); ok {
				if err := s.store.Insert(coord, world.NewChunkFromBlocks(coord, blocks)); err != nil {
					s.logger.Warn("discarding archived chunk", "coord", coord, "err", err)
				}
				budget--
				continue
			}
		}

		select {
		case s.jobs <- coord:
			s.pending[coord] = true
			budget--
		default:
			// Worker queue full; remaining coordinates wait a tick.
			return
		}
	}
}

func (s *Scheduler) evict() {
	center := s.centerChunk()
	for _, coord := range s.store.Coords() {
		if world.ChebyshevXZ(coord, center) <= s.opts.EvictDistance {
			continue
		}
		if c, ok := s.store.Get(coord); ok {
			if s.archive != nil && !c.Empty() {
				s.archive.Put(coord, c.BlocksCopy())
			}
			s.store.Remove(coord)
		}
	}
}

func (s *Scheduler) centerChunk() world.ChunkCoord {
	return world.ChunkCoord{
		X: world.WorldToChunk(s.viewpoint[0]),
		Y: world.WorldToChunk(s.viewpoint[1]),
		Z: world.WorldToChunk(s.viewpoint[2]),
	}
}

// preloadCenters returns the chunk columns streaming is centered on: the
// viewpoint's own column, plus the adjacent column for any border the
// viewpoint stands within PreloadMargin blocks of.
func (s *Scheduler) preloadCenters() []world.ChunkCoord {
	center := s.centerChunk()
	centers := []world.ChunkCoord{center}
	if s.opts.PreloadMargin <= 0 {
		return centers
	}

	var dxs, dzs []int
	if lx := world.WorldToLocal(s.viewpoint[0]); lx < s.opts.PreloadMargin {
		dxs = append(dxs, -1)
	} else if lx >= world.ChunkSize-s.opts.PreloadMargin {
		dxs = append(dxs, 1)
	}
	if lz := world.WorldToLocal(s.viewpoint[2]); lz < s.opts.PreloadMargin {
		dzs = append(dzs, -1)
	} else if lz >= world.ChunkSize-s.opts.PreloadMargin {
		dzs = append(dzs, 1)
	}

	for _, dx := range dxs {
		centers = append(centers, world.ChunkCoord{X: center.X + dx, Z: center.Z})
	}
	for _, dz := range dzs {
		centers = append(centers, world.ChunkCoord{X: center.X, Z: center.Z + dz})
	}
	for _, dx := range dxs {
		for _, dz := range dzs {
			centers = append(centers, world.ChunkCoord{X: center.X + dx, Z: center.Z + dz})
		}
	}
	return centers
}

// requiredCoords lists every coordinate that should be resident, ordered
// closest-first from the viewpoint column.
func (s *Scheduler) requiredCoords() []world.ChunkCoord {
	center := s.centerChunk()
	seen := make(map[world.ChunkCoord]bool)
	var coords []world.ChunkCoord

	for _, c := range s.preloadCenters() {
		for dx := -s.opts.RenderDistance; dx <= s.opts.RenderDistance; dx++ {
			for dz := -s.opts.RenderDistance; dz <= s.opts.RenderDistance; dz++ {
				for cy := 0; cy < s.opts.WorldChunks; cy++ {
					coord := world.ChunkCoord{X: c.X + dx, Y: cy, Z: c.Z + dz}
					if !seen[coord] {
						seen[coord] = true
						coords = append(coords, coord)
					}
				}
			}
		}
	}

	sort.SliceStable(coords, func(i, j int) bool {
		return world.ChebyshevXZ(coords[i], center) < world.ChebyshevXZ(coords[j], center)
	})
	return coords
}

// StateOf reports the streaming state of a coordinate.
func (s *Scheduler) StateOf(coord world.ChunkCoord) State {
	switch {
	case s.failed[coord]:
		return StateFailed
	case s.pending[coord]:
		return StatePending
	default:
		if _, ok := s.store.Get(coord); ok {
			return StateResident
		}
		return StateUnloaded
	}
}

// Invalidate clears the failed mark of a coordinate so a later tick retries
// its generation.
func (s *Scheduler) Invalidate(coord world.ChunkCoord) {
	delete(s.failed, coord)
	delete(s.retries, coord)
}

// Stats summarizes scheduler state for the debug stream.
type Stats struct {
	Resident int `json:"resident"`
	Pending  int `json:"pending"`
	Failed   int `json:"failed"`
	Archived int `json:"archived"`
}

// publishStats refreshes the snapshot served to other goroutines. Runs on
// the owning goroutine, so reading the maps here is safe.
func (s *Scheduler) publishStats() {
	st := Stats{
		Resident: s.store.Len(),
		Pending:  len(s.pending),
		Failed:   len(s.failed),
	}
	if s.archive != nil {
		st.Archived = s.archive.Len()
	}
	s.statsMu.Lock()
	s.stats = st
	s.statsMu.Unlock()
}

// StatsSnapshot returns the counters as of the end of the last tick. Safe
// to call from any goroutine.
func (s *Scheduler) StatsSnapshot() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}
