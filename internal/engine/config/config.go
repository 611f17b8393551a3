package config

// Config holds the engine configuration.
type Config struct {
	Seed          int64  `json:"seed"`
	GeneratorType string `json:"generator_type"` // "default" or "flat"

	RenderDistance int `json:"render_distance"` // load radius in chunks
	EvictDistance  int `json:"evict_distance"`  // unload radius, larger than render
	WorldHeight    int `json:"world_height"`    // vertical world extent in chunks
	PreloadMargin  int `json:"preload_margin"`  // blocks from a border that trigger preload

	MaxLoadsPerTick    int `json:"max_loads_per_tick"`
	MaxRebuildsPerTick int `json:"max_rebuilds_per_tick"`
	MaxRetries         int `json:"max_retries"` // generation attempts per chunk before giving up
	GenWorkers         int `json:"gen_workers"`
	GenQueue           int `json:"gen_queue"` // generation queue depth, 0 sizes from workers
	MeshWorkers        int `json:"mesh_workers"`

	Directional    bool `json:"directional"`      // split meshes per face direction
	RetainBudgetMB int  `json:"retain_budget_mb"` // compressed cache of evicted chunks, 0 disables

	TickRate  int    `json:"tick_rate"`  // ticks per second
	DebugAddr string `json:"debug_addr"` // websocket stats listener, "" disables
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GeneratorType:      "default",
		RenderDistance:     8,
		EvictDistance:      10,
		WorldHeight:        8,
		PreloadMargin:      4,
		MaxLoadsPerTick:    16,
		MaxRebuildsPerTick: 16,
		MaxRetries:         3,
		GenWorkers:         4,
		MeshWorkers:        4,
		RetainBudgetMB:     32,
		TickRate:           20,
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["render-distance"] {
		cfg.RenderDistance = fromFile.RenderDistance
	}
	if !explicitFlags["evict-distance"] {
		cfg.EvictDistance = fromFile.EvictDistance
	}
	if !explicitFlags["world-height"] {
		cfg.WorldHeight = fromFile.WorldHeight
	}
	if !explicitFlags["preload-margin"] {
		cfg.PreloadMargin = fromFile.PreloadMargin
	}
	if !explicitFlags["max-loads"] {
		cfg.MaxLoadsPerTick = fromFile.MaxLoadsPerTick
	}
	if !explicitFlags["max-rebuilds"] {
		cfg.MaxRebuildsPerTick = fromFile.MaxRebuildsPerTick
	}
	if !explicitFlags["max-retries"] {
		cfg.MaxRetries = fromFile.MaxRetries
	}
	if !explicitFlags["gen-workers"] {
		cfg.GenWorkers = fromFile.GenWorkers
	}
	if !explicitFlags["gen-queue"] {
		cfg.GenQueue = fromFile.GenQueue
	}
	if !explicitFlags["mesh-workers"] {
		cfg.MeshWorkers = fromFile.MeshWorkers
	}
	if !explicitFlags["directional"] {
		cfg.Directional = fromFile.Directional
	}
	if !explicitFlags["retain-budget"] {
		cfg.RetainBudgetMB = fromFile.RetainBudgetMB
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["debug-addr"] {
		cfg.DebugAddr = fromFile.DebugAddr
	}
}
