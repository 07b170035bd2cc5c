package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/logging"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML settings file (default $"+config.EnvConfigPath+")")
		strategy   = flag.String("strategy", "", "naive, culled or greedy")
		generator  = flag.String("generator", "", "random, heightmap, caves or flat")
		size       = flag.Int("size", 0, "chunk edge length")
		radius     = flag.Int("radius", -1, "chunk radius around the origin")
		workers    = flag.Int("workers", 0, "meshing workers")
		seed       = flag.Int64("seed", 0, "generation seed")
		compare    = flag.Bool("compare", false, "mesh with every strategy and print a comparison")
		verbose    = flag.Bool("v", false, "log every chunk")
	)
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *strategy != "" {
		settings.Strategy = *strategy
	}
	if *generator != "" {
		settings.Generator = *generator
	}
	if *size > 0 {
		settings.ChunkSize = *size
	}
	if *radius >= 0 {
		settings.ChunksRadius = *radius
	}
	if *workers > 0 {
		settings.Workers = *workers
	}
	if *seed != 0 {
		settings.Seed = *seed
	}
	config.Apply(*settings)

	if lvl, err := logging.ParseLevel(settings.LogLevel); err == nil {
		logging.SetLevel(lvl)
	}
	if *verbose {
		logging.SetLevel(logging.DEBUG)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config.Current(), *compare); err != nil {
		logging.LogError("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, s config.Settings, compare bool) error {
	strategies := []meshing.Strategy{}
	if compare {
		strategies = append(strategies, meshing.StrategyNaive, meshing.StrategyCulled, meshing.StrategyGreedy)
	} else {
		st, err := meshing.ParseStrategy(s.Strategy)
		if err != nil {
			return err
		}
		strategies = append(strategies, st)
	}

	chunks, err := generateChunks(s)
	if err != nil {
		return err
	}

	for _, st := range strategies {
		mesher, err := meshing.New(st)
		if err != nil {
			return err
		}
		start := time.Now()
		results, err := meshing.MeshAll(ctx, mesher, chunks, s.Workers)
		if err != nil {
			return fmt.Errorf("meshing with %s: %w", st, err)
		}
		report(st, results, time.Since(start))
	}

	logging.LogInfo("profile: %s", profiling.TopN(5))
	return nil
}

// generateChunks populates every chunk in the configured radius. All
// generation finishes before meshing starts.
func generateChunks(s config.Settings) ([]*world.Chunk, error) {
	gen, err := world.NewGenerator(s.Generator, s.Seed, s.Density)
	if err != nil {
		return nil, err
	}
	coords := world.CoordsInRadius(s.ChunksRadius)
	chunks := make([]*world.Chunk, len(coords))
	errs := make([]error, len(coords))

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.Workers)
	for i, coord := range coords {
		i, coord := i, coord
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			chunks[i], errs[i] = world.Generate(coord, s.ChunkSize, gen)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	logging.LogInfo("generated %d chunks of D=%d with %q (seed %d)", len(chunks), s.ChunkSize, s.Generator, s.Seed)
	return chunks, nil
}

func report(st meshing.Strategy, results []meshing.MeshResult, elapsed time.Duration) {
	var vertices, indices, quads int
	for _, r := range results {
		if r.Err != nil {
			logging.LogWarn("chunk %v: %v", r.Coord, r.Err)
			continue
		}
		if err := r.Mesh.Validate(); err != nil {
			logging.LogWarn("chunk %v: %v", r.Coord, err)
		}
		vertices += r.Mesh.VertexCount()
		indices += r.Mesh.IndexCount()
		quads += r.Mesh.QuadCount()
		logging.LogDebug("%s chunk %v: %d vertices, %d indices in %v", st, r.Coord, r.Mesh.VertexCount(), r.Mesh.IndexCount(), r.Duration)
	}
	logging.LogInfo("%-6s %d chunks: %d vertices, %d indices, %d triangles, %d quads in %v",
		st, len(results), vertices, indices, indices/3, quads, elapsed.Round(time.Microsecond))
}
