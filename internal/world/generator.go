package world

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// TerrainGenerator fills a freshly created chunk. Implementations must be
// deterministic for a given seed and chunk coordinate and safe for
// concurrent use on different chunks.
type TerrainGenerator interface {
	PopulateChunk(c *Chunk)
}

// Generate creates a chunk at coord and populates it. The returned grid is
// complete; it is safe to hand to a mesher.
func Generate(coord ChunkCoord, size int, gen TerrainGenerator) (*Chunk, error) {
	defer profiling.Track("world.Generate")()

	c, err := NewChunk(coord, size)
	if err != nil {
		return nil, err
	}
	gen.PopulateChunk(c)
	return c, nil
}

// NewGenerator returns a generator by name: random, heightmap, caves or flat.
func NewGenerator(name string, seed int64, density float64) (TerrainGenerator, error) {
	switch strings.ToLower(name) {
	case "random":
		return NewRandomGenerator(seed, density), nil
	case "heightmap", "":
		return NewHeightmapGenerator(seed), nil
	case "caves":
		return NewCaveGenerator(NewHeightmapGenerator(seed), seed, density), nil
	case "flat":
		return NewFlatGenerator(4), nil
	}
	return nil, fmt.Errorf("unknown generator %q", name)
}

// chunkSeed mixes a chunk coordinate into a seed (SplitMix64 finalizer).
func chunkSeed(coord ChunkCoord, seed int64) int64 {
	v := uint64(coord.X)*0x9E3779B97F4A7C15 ^ uint64(coord.Y)*0xC2B2AE3D27D4EB4F ^ uint64(coord.Z)*0x165667B19E3779F9
	v += uint64(seed)
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v ^= v >> 31
	return int64(v)
}

// RandomGenerator sets each voxel independently with probability Density.
type RandomGenerator struct {
	Seed    int64
	Density float64
}

func NewRandomGenerator(seed int64, density float64) *RandomGenerator {
	return &RandomGenerator{Seed: seed, Density: clamp01(density)}
}

func (g *RandomGenerator) PopulateChunk(c *Chunk) {
	rng := rand.New(rand.NewSource(chunkSeed(c.Coord, g.Seed)))
	for i := 0; i < c.Grid.Len(); i++ {
		if rng.Float64() < g.Density {
			x, y, z := c.Grid.Delinearize(i)
			c.Grid.Set(x, y, z, voxel.BlockTypeSolid)
		}
	}
}

// FlatGenerator fills everything below a fixed world height.
type FlatGenerator struct {
	Height int
}

func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: height}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.Height
}

func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	fillColumns(c, g.HeightAt)
}

// HeightmapGenerator builds rolling terrain from octave simplex noise.
type HeightmapGenerator struct {
	noise       opensimplex.Noise
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
}

// NewHeightmapGenerator creates a generator with default terrain settings.
func NewHeightmapGenerator(seed int64) *HeightmapGenerator {
	return &HeightmapGenerator{
		noise:       opensimplex.New(seed),
		scale:       1.0 / 48.0,
		baseHeight:  8,
		amp:         6,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

// HeightAt computes the surface height (block Y) at world X,Z.
func (g *HeightmapGenerator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	amplitude, frequency, sum, norm := 1.0, 1.0, 0.0, 0.0
	for i := 0; i < g.octaves; i++ {
		sum += g.noise.Eval2(x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= g.persistence
		frequency *= g.lacunarity
	}
	height := float64(g.baseHeight) + sum/norm*g.amp
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

func (g *HeightmapGenerator) PopulateChunk(c *Chunk) {
	fillColumns(c, g.HeightAt)
}

// fillColumns fills every column of c up to height(x,z): grass on top,
// three layers of dirt, stone below.
func fillColumns(c *Chunk, height func(worldX, worldZ int) int) {
	size := c.Size()
	for lz := 0; lz < size; lz++ {
		for lx := 0; lx < size; lx++ {
			wx, baseY, wz := c.WorldPos(lx, 0, lz)
			top := height(wx, wz)
			for ly := 0; ly < size; ly++ {
				wy := baseY + ly
				switch {
				case wy > top:
				case wy == top:
					c.Grid.Set(lx, ly, lz, voxel.BlockTypeGrass)
				case wy >= top-3:
					c.Grid.Set(lx, ly, lz, voxel.BlockTypeDirt)
				default:
					c.Grid.Set(lx, ly, lz, voxel.BlockTypeStone)
				}
			}
		}
	}
}

// CaveGenerator carves a base generator's output with 3-D Perlin noise.
type CaveGenerator struct {
	base      TerrainGenerator
	noise     *perlin.Perlin
	scale     float64
	threshold float64
}

// NewCaveGenerator wraps base. density in [0,1] is roughly the share of
// solid voxels that survive carving.
func NewCaveGenerator(base TerrainGenerator, seed int64, density float64) *CaveGenerator {
	return &CaveGenerator{
		base:      base,
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		scale:     1.0 / 12.0,
		threshold: 2*clamp01(density) - 1,
	}
}

func (g *CaveGenerator) PopulateChunk(c *Chunk) {
	g.base.PopulateChunk(c)
	for i := 0; i < c.Grid.Len(); i++ {
		if c.Grid.At(i) == voxel.BlockTypeAir {
			continue
		}
		lx, ly, lz := c.Grid.Delinearize(i)
		wx, wy, wz := c.WorldPos(lx, ly, lz)
		// Perlin is zero on integer lattice points; sample off-lattice.
		n := g.noise.Noise3D(float64(wx)*g.scale+0.5, float64(wy)*g.scale+0.5, float64(wz)*g.scale+0.5)
		if n > g.threshold {
			c.Grid.Set(lx, ly, lz, voxel.BlockTypeAir)
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
