package meshing

import (
	"errors"
	"fmt"
	"strings"

	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesher turns a populated grid into triangles. Implementations are
// stateless and safe to share between goroutines; every call returns a
// fresh buffer that the caller owns.
type Mesher interface {
	Mesh(g *voxel.Grid) *MeshBuffer
	Strategy() Strategy
}

// Strategy selects a Mesher implementation.
type Strategy int

const (
	StrategyNaive Strategy = iota
	StrategyCulled
	StrategyGreedy
)

// ErrUnknownStrategy is returned for a strategy name or value with no mesher.
var ErrUnknownStrategy = errors.New("meshing: unknown strategy")

func (s Strategy) String() string {
	switch s {
	case StrategyNaive:
		return "naive"
	case StrategyCulled:
		return "culled"
	case StrategyGreedy:
		return "greedy"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts the names produced by Strategy.String, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "naive":
		return StrategyNaive, nil
	case "culled", "culling":
		return StrategyCulled, nil
	case "greedy":
		return StrategyGreedy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// New returns the mesher for s.
func New(s Strategy) (Mesher, error) {
	switch s {
	case StrategyNaive:
		return NaiveMesher{}, nil
	case StrategyCulled:
		return CulledMesher{}, nil
	case StrategyGreedy:
		return GreedyMesher{}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, s)
}

// placeholderUV is used by the per-voxel meshers, which carry no texture mapping.
var placeholderUV = [4]mgl32.Vec2{}

// appendUnitFace emits one unit face of the voxel at (x,y,z).
func appendUnitFace(m *MeshBuffer, f Face, x, y, z int) {
	d := &FaceTable[f]
	base := mgl32.Vec3{float32(x), float32(y), float32(z)}
	m.AppendQuad(d.corners(base, 1, 1), d.Normal, placeholderUV)
}
