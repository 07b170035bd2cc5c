package world

import (
	"fmt"

	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Chunk pairs a grid with its position in the world.
type Chunk struct {
	Coord ChunkCoord
	Grid  *voxel.Grid
}

// NewChunk creates an empty chunk of edge size at coord.
func NewChunk(coord ChunkCoord, size int) (*Chunk, error) {
	g, err := voxel.NewEmpty(size)
	if err != nil {
		return nil, err
	}
	return &Chunk{Coord: coord, Grid: g}, nil
}

// Size returns the chunk edge length.
func (c *Chunk) Size() int {
	return c.Grid.Size()
}

// Origin returns the world-space position of local (0,0,0). Meshes are
// built in chunk-local space; callers translate by this.
func (c *Chunk) Origin() mgl32.Vec3 {
	s := float32(c.Size())
	return mgl32.Vec3{float32(c.Coord.X) * s, float32(c.Coord.Y) * s, float32(c.Coord.Z) * s}
}

// WorldPos converts local block coordinates to world block coordinates.
func (c *Chunk) WorldPos(lx, ly, lz int) (int, int, int) {
	s := c.Size()
	return c.Coord.X*s + lx, c.Coord.Y*s + ly, c.Coord.Z*s + lz
}

// CoordsInRadius lists the chunk coordinates of a square of horizontal
// radius r around the origin at chunk height 0, in row-major order.
func CoordsInRadius(r int) []ChunkCoord {
	if r < 0 {
		return nil
	}
	out := make([]ChunkCoord, 0, (2*r+1)*(2*r+1))
	for z := -r; z <= r; z++ {
		for x := -r; x <= r; x++ {
			out = append(out, ChunkCoord{X: x, Y: 0, Z: z})
		}
	}
	return out
}
