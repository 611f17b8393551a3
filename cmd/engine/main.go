package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OCharnyshevich/voxel-engine/internal/engine"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/config"
	"github.com/OCharnyshevich/voxel-engine/internal/engine/debug"
	"github.com/OCharnyshevich/voxel-engine/pkg/atlas"
	"github.com/OCharnyshevich/voxel-engine/pkg/blockdef"
)

func main() {
	cfg := config.DefaultConfig()

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: default or flat")
	flag.IntVar(&cfg.RenderDistance, "render-distance", cfg.RenderDistance, "load radius in chunks")
	flag.IntVar(&cfg.EvictDistance, "evict-distance", cfg.EvictDistance, "unload radius in chunks")
	flag.IntVar(&cfg.WorldHeight, "world-height", cfg.WorldHeight, "vertical world extent in chunks")
	flag.IntVar(&cfg.PreloadMargin, "preload-margin", cfg.PreloadMargin, "border distance in blocks that triggers preload")
	flag.IntVar(&cfg.MaxLoadsPerTick, "max-loads", cfg.MaxLoadsPerTick, "chunk loads merged per tick")
	flag.IntVar(&cfg.MaxRebuildsPerTick, "max-rebuilds", cfg.MaxRebuildsPerTick, "mesh rebuilds started per tick")
	flag.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "generation attempts per chunk before giving up")
	flag.IntVar(&cfg.GenWorkers, "gen-workers", cfg.GenWorkers, "generation worker count")
	flag.IntVar(&cfg.GenQueue, "gen-queue", cfg.GenQueue, "generation queue depth, 0 sizes from workers")
	flag.IntVar(&cfg.MeshWorkers, "mesh-workers", cfg.MeshWorkers, "mesh worker count")
	flag.BoolVar(&cfg.Directional, "directional", cfg.Directional, "split meshes per face direction")
	flag.IntVar(&cfg.RetainBudgetMB, "retain-budget", cfg.RetainBudgetMB, "compressed cache of evicted chunks in MB, 0 disables")
	flag.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "ticks per second")
	flag.StringVar(&cfg.DebugAddr, "debug-addr", cfg.DebugAddr, "debug websocket listen address, empty disables")
	configPath := flag.String("config", "", "JSON config file; flags set explicitly win over the file")
	blocksPath := flag.String("blocks", "", "block definition pack (blocks.json), empty uses built-ins")
	atlasPath := flag.String("atlas", "", "atlas metadata file, empty uses a uniform grid")
	walkSpeed := flag.Float64("walk-speed", 4, "viewpoint drift in blocks per second, for soak runs")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *configPath != "" {
		fromFile := config.DefaultConfig()
		if err := config.LoadFile(*configPath, fromFile); err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}

	var registry *blockdef.Registry
	if *blocksPath != "" {
		var err error
		registry, err = blockdef.LoadFile(*blocksPath)
		if err != nil {
			log.Error("load block pack", "error", err)
			os.Exit(1)
		}
		log.Info("loaded block pack", "path", *blocksPath)
	}

	var resolver atlas.Resolver
	if *atlasPath != "" {
		var err error
		resolver, err = atlas.LoadFile(*atlasPath)
		if err != nil {
			log.Error("load atlas metadata", "error", err)
			os.Exit(1)
		}
		log.Info("loaded atlas metadata", "path", *atlasPath)
	}

	eng, err := engine.New(cfg, registry, resolver, log)
	if err != nil {
		log.Error("create engine", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.DebugAddr != "" {
		dbg := debug.New(cfg.DebugAddr, func() any { return eng.StatsSnapshot() }, eng.Subscribe(1024), time.Second, log)
		go func() {
			if err := dbg.Start(ctx); err != nil {
				log.Error("debug stream", "error", err)
			}
		}()
	}

	// Drift the viewpoint east so streaming, eviction and the archive all
	// stay exercised during a soak run.
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		x := 0.0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				x += *walkSpeed
				eng.SetViewpoint(int(x), 40, 0)
				st := eng.StatsSnapshot()
				log.Info("soak",
					"x", int(x),
					"resident", st.Stream.Resident,
					"pending", st.Stream.Pending,
					"archived", st.Stream.Archived,
					"meshes", st.Meshes,
					"faces", st.MeshFaces)
			}
		}
	}()

	eng.SetViewpoint(0, 40, 0)
	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("engine error", "error", err)
		os.Exit(1)
	}
}
