package voxel

import (
	"errors"
	"fmt"
)

// BlockType is the per-voxel value. Zero means empty; any other value is
// occupied and doubles as the merge value used by the greedy mesher.
type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeSolid
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
)

// MaxSize bounds the edge length so D³ fits comfortably in an int and the
// index buffer stays within uint32.
const MaxSize = 1024

var (
	// ErrDimensionMismatch is returned when the supplied data does not hold exactly D³ voxels.
	ErrDimensionMismatch = errors.New("voxel: dimension mismatch")
	// ErrInvalidDimension is returned for an edge length outside [1, MaxSize].
	ErrInvalidDimension = errors.New("voxel: invalid dimension")
)

// OccupancyFunc reports whether the voxel at local (x,y,z) is present.
type OccupancyFunc func(x, y, z int) bool

// ValueFunc returns the block at local (x,y,z).
type ValueFunc func(x, y, z int) BlockType

// Grid is a cube chunk of edge D stored as one flat slice addressed by
// index = z*D*D + y*D + x.
type Grid struct {
	size   int
	blocks []BlockType
}

// New builds a grid of edge d from data, which must contain exactly d³ entries.
// The slice is copied; the grid never aliases caller memory.
func New(d int, data []BlockType) (*Grid, error) {
	if err := checkSize(d); err != nil {
		return nil, err
	}
	if len(data) != d*d*d {
		return nil, fmt.Errorf("%w: got %d entries, want %d for D=%d", ErrDimensionMismatch, len(data), d*d*d, d)
	}
	blocks := make([]BlockType, len(data))
	copy(blocks, data)
	return &Grid{size: d, blocks: blocks}, nil
}

// NewEmpty returns an all-air grid of edge d.
func NewEmpty(d int) (*Grid, error) {
	if err := checkSize(d); err != nil {
		return nil, err
	}
	return &Grid{size: d, blocks: make([]BlockType, d*d*d)}, nil
}

// NewFromFunc samples an occupancy source over [0,d)³. Occupied voxels get BlockTypeSolid.
func NewFromFunc(d int, occupied OccupancyFunc) (*Grid, error) {
	return NewFromValues(d, func(x, y, z int) BlockType {
		if occupied(x, y, z) {
			return BlockTypeSolid
		}
		return BlockTypeAir
	})
}

// NewFromValues samples a value source over [0,d)³.
func NewFromValues(d int, value ValueFunc) (*Grid, error) {
	g, err := NewEmpty(d)
	if err != nil {
		return nil, err
	}
	for i := range g.blocks {
		x, y, z := g.Delinearize(i)
		g.blocks[i] = value(x, y, z)
	}
	return g, nil
}

func checkSize(d int) error {
	if d < 1 || d > MaxSize {
		return fmt.Errorf("%w: D=%d", ErrInvalidDimension, d)
	}
	return nil
}

// Size returns the edge length D.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the voxel count D³.
func (g *Grid) Len() int {
	return len(g.blocks)
}

// Linearize maps local coordinates to a flat index. Coordinates must be in range.
func (g *Grid) Linearize(x, y, z int) int {
	return z*g.size*g.size + y*g.size + x
}

// Delinearize is the inverse of Linearize.
func (g *Grid) Delinearize(i int) (x, y, z int) {
	x = i % g.size
	i /= g.size
	y = i % g.size
	z = i / g.size
	return x, y, z
}

// InBounds reports whether (x,y,z) lies inside [0,D)³.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size && z >= 0 && z < g.size
}

// Value returns the block at (x,y,z); anything outside the chunk is air.
func (g *Grid) Value(x, y, z int) BlockType {
	if !g.InBounds(x, y, z) {
		return BlockTypeAir
	}
	return g.blocks[g.Linearize(x, y, z)]
}

// Occupied reports whether (x,y,z) holds a non-air block. Out-of-range
// coordinates are empty, which is what exposes faces on the chunk border.
func (g *Grid) Occupied(x, y, z int) bool {
	return g.Value(x, y, z) != BlockTypeAir
}

// At returns the block stored at flat index i.
func (g *Grid) At(i int) BlockType {
	return g.blocks[i]
}

// Set writes a block. Only generators should call this, and only before
// the grid is handed to a mesher. Out-of-range writes are ignored.
func (g *Grid) Set(x, y, z int, b BlockType) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.blocks[g.Linearize(x, y, z)] = b
}

// Count returns the number of occupied voxels.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.blocks {
		if b != BlockTypeAir {
			n++
		}
	}
	return n
}
