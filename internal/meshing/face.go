package meshing

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Face identifies one of the six cube faces.
type Face int

const (
	FaceUp    Face = iota // +Y
	FaceDown              // -Y
	FaceNorth             // +Z
	FaceSouth             // -Z
	FaceEast              // +X
	FaceWest              // -X
)

// NumFaces is the number of cube faces.
const NumFaces = 6

// Faces lists every face in table order.
var Faces = [NumFaces]Face{FaceUp, FaceDown, FaceNorth, FaceSouth, FaceEast, FaceWest}

func (f Face) String() string {
	switch f {
	case FaceUp:
		return "up"
	case FaceDown:
		return "down"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	default:
		return "unknown"
	}
}

// FaceData is the static geometry of one face of the unit cube at the origin.
//
// Vertices are ordered so (v1-v0)×(v2-v0) points along Normal; together
// with QuadIndices every face winds counter-clockwise seen from outside.
// Axis is the normal axis, U and V the in-plane axes with e_U×e_V = Normal.
// Vertex k sits at Vertices[k] = plane + e_U*uv[k].X() + e_V*uv[k].Y().
type FaceData struct {
	Vertices [4]mgl32.Vec3
	Normal   mgl32.Vec3
	Offset   [3]int
	Axis     int
	U, V     int
}

// QuadIndices triangulates the four face corners.
var QuadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// quadUV are the in-plane (U,V) unit coordinates of the four corners.
var quadUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// FaceTable holds the geometry for every face, indexed by Face.
var FaceTable = [NumFaces]FaceData{
	FaceUp: {
		Vertices: [4]mgl32.Vec3{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
		Normal:   mgl32.Vec3{0, 1, 0},
		Offset:   [3]int{0, 1, 0},
		Axis:     1, U: 2, V: 0,
	},
	FaceDown: {
		Vertices: [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		Normal:   mgl32.Vec3{0, -1, 0},
		Offset:   [3]int{0, -1, 0},
		Axis:     1, U: 0, V: 2,
	},
	FaceNorth: {
		Vertices: [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
		Normal:   mgl32.Vec3{0, 0, 1},
		Offset:   [3]int{0, 0, 1},
		Axis:     2, U: 0, V: 1,
	},
	FaceSouth: {
		Vertices: [4]mgl32.Vec3{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
		Normal:   mgl32.Vec3{0, 0, -1},
		Offset:   [3]int{0, 0, -1},
		Axis:     2, U: 1, V: 0,
	},
	FaceEast: {
		Vertices: [4]mgl32.Vec3{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
		Normal:   mgl32.Vec3{1, 0, 0},
		Offset:   [3]int{1, 0, 0},
		Axis:     0, U: 1, V: 2,
	},
	FaceWest: {
		Vertices: [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
		Normal:   mgl32.Vec3{-1, 0, 0},
		Offset:   [3]int{-1, 0, 0},
		Axis:     0, U: 2, V: 1,
	},
}

// Positive reports whether the face normal points along +Axis.
func (f Face) Positive() bool {
	d := FaceTable[f]
	return d.Offset[d.Axis] > 0
}

// corners returns the face's four corners for a width×height quad whose
// minimum voxel sits at base. A 1×1 quad reproduces the unit face.
func (d *FaceData) corners(base mgl32.Vec3, width, height float32) [4]mgl32.Vec3 {
	var out [4]mgl32.Vec3
	for k, v := range d.Vertices {
		v[d.U] *= width
		v[d.V] *= height
		out[k] = base.Add(v)
	}
	return out
}
