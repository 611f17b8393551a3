// Package engine wires the world store, streaming scheduler, mesh pipeline
// and culler together and drives them from a single tick loop. One
// goroutine owns all world mutation; callers interact through queued edits
// and read-side snapshots.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/config"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/cull"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/mesh"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/stream"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/world/gen"
	"github.com/OCharnyshevich/voxel-engine/pkg/atlas"
	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

type meshKey struct {
	coord     world.ChunkCoord
	direction int
}

type edit struct {
	wx, wy, wz int
	id         uint8
}

// Engine owns the streamed world and its geometry. Construct with New,
// drive with Run or manual Tick calls, and stop with Close.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger

	store     *world.Store
	archive   *world.Archive
	scheduler *stream.Scheduler
	meshPool  *mesh.Pool
	registry  *blockdef.Registry

	edits chan edit

	mu        sync.RWMutex
	viewpoint [3]int
	meshes    map[meshKey]mesh.Buffer
	inFlight  map[world.ChunkCoord]bool
	culler    *cull.Culler
	subs      []chan world.Event
	tick      uint64
	meshFaces int
}

// New builds an engine from configuration. The registry and atlas default
// to the built-in block set and a uniform grid when nil.
func New(cfg *config.Config, registry *blockdef.Registry, resolver atlas.Resolver, logger *slog.Logger) (*Engine, error) {
	if registry == nil {
		registry = blockdef.Default()
	}
	if resolver == nil {
		resolver = defaultAtlas(registry)
	}

	var generator gen.Generator
	switch cfg.GeneratorType {
	case "default", "":
		generator = gen.NewDefaultGenerator(cfg.Seed)
	case "flat":
		generator = gen.NewFlatGenerator(8)
	default:
		return nil, fmt.Errorf("unknown generator type %q", cfg.GeneratorType)
	}

	store := world.NewStore()

	var archive *world.Archive
	if cfg.RetainBudgetMB > 0 {
		var err error
		archive, err = world.NewArchive(cfg.RetainBudgetMB << 20)
		if err != nil {
			return nil, fmt.Errorf("create chunk archive: %w", err)
		}
	}

	scheduler := stream.NewScheduler(store, archive, generator, stream.Options{
		RenderDistance:  cfg.RenderDistance,
		EvictDistance:   cfg.EvictDistance,
		WorldChunks:     cfg.WorldHeight,
		MaxLoadsPerTick: cfg.MaxLoadsPerTick,
		MaxRetries:      cfg.MaxRetries,
		PreloadMargin:   cfg.PreloadMargin,
		Workers:         cfg.GenWorkers,
		Queue:           cfg.GenQueue,
	}, logger)

	builder := mesh.NewBuilder(registry, resolver, cfg.Directional, logger)
	meshWorkers := cfg.MeshWorkers
	if meshWorkers <= 0 {
		meshWorkers = 1
	}

	return &Engine{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		archive:   archive,
		scheduler: scheduler,
		meshPool:  mesh.NewPool(builder, meshWorkers, meshWorkers*4),
		registry:  registry,
		edits:     make(chan edit, 256),
		meshes:    make(map[meshKey]mesh.Buffer),
		inFlight:  make(map[world.ChunkCoord]bool),
		culler:    cull.NewCuller(),
	}, nil
}

// defaultAtlas builds a uniform-grid resolver covering every texture the
// registry names, in sorted-insertion order.
func defaultAtlas(registry *blockdef.Registry) atlas.Resolver {
	names := make(map[string]int)
	for _, b := range registry.All() {
		for _, tex := range b.Textures {
			if tex == "" {
				continue
			}
			if _, ok := names[tex]; !ok {
				names[tex] = len(names)
			}
		}
	}
	side := 1
	for side*side < len(names) {
		side++
	}
	if side < 1 {
		side = 1
	}
	return atlas.NewGrid(side, side, names)
}

// SetViewpoint moves the position streaming follows, in world block
// coordinates. Safe to call from any goroutine.
func (e *Engine) SetViewpoint(wx, wy, wz int) {
	e.mu.Lock()
	e.viewpoint = [3]int{wx, wy, wz}
	e.mu.Unlock()
}

// GetBlock reads a block; air for anything not resident.
func (e *Engine) GetBlock(wx, wy, wz int) uint8 {
	return e.store.GetBlock(wx, wy, wz)
}

// SetBlock queues a block edit for the next tick. Edits against chunks that
// are not resident by then are dropped. Returns false when the edit queue
// is full.
func (e *Engine) SetBlock(wx, wy, wz int, id uint8) bool {
	select {
	case e.edits <- edit{wx: wx, wy: wy, wz: wz, id: id}:
		return true
	default:
		return false
	}
}

// Subscribe returns a channel receiving chunk events drained each tick.
// Slow subscribers lose events rather than stalling the tick.
func (e *Engine) Subscribe(buffer int) <-chan world.Event {
	ch := make(chan world.Event, buffer)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

// Tick advances the engine one step: stream chunks, apply queued edits,
// rebuild dirty meshes under the budget, merge finished geometry, then fan
// out events.
func (e *Engine) Tick() {
	e.mu.RLock()
	vp := e.viewpoint
	e.mu.RUnlock()

	e.scheduler.SetViewpoint(vp[0], vp[1], vp[2])
	e.scheduler.Tick()

	e.applyEdits()
	e.submitRebuilds()
	e.mergeMeshes()
	e.dispatchEvents()

	e.mu.Lock()
	e.tick++
	e.mu.Unlock()
}

func (e *Engine) applyEdits() {
	for {
		select {
		case ed := <-e.edits:
			e.store.SetBlock(ed.wx, ed.wy, ed.wz, ed.id)
		default:
			return
		}
	}
}

// submitRebuilds snapshots dirty chunks and hands them to the mesh pool,
// up to the per-tick budget. A chunk with a build in flight is skipped;
// edits landing mid-build keep it dirty, so it is resubmitted once the
// stale result merges.
func (e *Engine) submitRebuilds() {
	budget := e.cfg.MaxRebuildsPerTick
	if budget <= 0 {
		budget = 16
	}
	for _, coord := range e.store.DirtyCoords() {
		if budget == 0 {
			return
		}
		e.mu.RLock()
		busy := e.inFlight[coord]
		e.mu.RUnlock()
		if busy {
			continue
		}
		n, ok := e.store.Snapshot(coord)
		if !ok {
			continue
		}
		if !e.meshPool.Submit(n) {
			return
		}
		e.mu.Lock()
		e.inFlight[coord] = true
		e.mu.Unlock()
		budget--
	}
}

// mergeMeshes folds finished builds into the mesh table. A result is only
// accepted, and the chunk only marked clean, when the chunk is still
// resident at the same revision the snapshot was taken at.
func (e *Engine) mergeMeshes() {
	for {
		select {
		case res := <-e.meshPool.Results():
			e.mu.Lock()
			delete(e.inFlight, res.Coord)
			e.mu.Unlock()

			c, ok := e.store.Get(res.Coord)
			if !ok {
				e.dropBuffers(res.Coord)
				continue
			}
			if c.Revision() != res.Revision {
				// Edited during the build; the chunk is still dirty and
				// will be resubmitted.
				continue
			}
			e.storeBuffers(res)
			c.MarkClean()
		default:
			return
		}
	}
}

func (e *Engine) storeBuffers(res mesh.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeBuffersLocked(res.Coord)
	for _, buf := range res.Buffers {
		e.meshes[meshKey{coord: buf.Coord, direction: buf.Direction}] = buf
		e.meshFaces += len(buf.Indices) / 6
	}
}

func (e *Engine) dropBuffers(coord world.ChunkCoord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeBuffersLocked(coord)
}

func (e *Engine) removeBuffersLocked(coord world.ChunkCoord) {
	for key, buf := range e.meshes {
		if key.coord == coord {
			e.meshFaces -= len(buf.Indices) / 6
			delete(e.meshes, key)
		}
	}
}

func (e *Engine) dispatchEvents() {
	events := e.store.DrainEvents()
	if len(events) == 0 {
		return
	}

	// Unloaded chunks take their geometry with them.
	for _, ev := range events {
		if ev.Kind == world.EventUnloaded {
			e.dropBuffers(ev.Coord)
		}
	}

	e.mu.RLock()
	subs := e.subs
	e.mu.RUnlock()
	for _, ch := range subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// VisibleBuffers updates the culler from the camera and returns the
// geometry that survives frustum and directional tests.
func (e *Engine) VisibleBuffers(view, proj mgl32.Mat4, camera mgl32.Vec3) []mesh.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.culler.Update(view, proj, camera)
	e.culler.ResetStats()

	var out []mesh.Buffer
	for key, buf := range e.meshes {
		if !e.culler.ChunkVisible(key.coord) {
			continue
		}
		if key.direction != mesh.DirectionNone && !e.culler.FaceVisible(key.coord, key.direction) {
			continue
		}
		out = append(out, buf)
	}
	return out
}

// Stats is a point-in-time summary for logging and the debug stream.
type Stats struct {
	Tick      uint64       `json:"tick"`
	Stream    stream.Stats `json:"stream"`
	Meshes    int          `json:"meshes"`
	MeshFaces int          `json:"mesh_faces"`
	Cull      cull.Stats   `json:"cull"`
}

// StatsSnapshot returns current counters.
func (e *Engine) StatsSnapshot() Stats {
	st := e.scheduler.StatsSnapshot()
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Tick:      e.tick,
		Stream:    st,
		Meshes:    len(e.meshes),
		MeshFaces: e.meshFaces,
		Cull:      e.culler.Stats(),
	}
}

// Run ticks the engine at the configured rate until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	rate := e.cfg.TickRate
	if rate <= 0 {
		rate = 20
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	e.logger.Info("engine running", "tick_rate", rate, "render_distance", e.cfg.RenderDistance)
	for {
		select {
		case <-ctx.Done():
			e.Close()
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Close stops the worker pools.
func (e *Engine) Close() {
	e.scheduler.Close()
	e.meshPool.Close()
}
