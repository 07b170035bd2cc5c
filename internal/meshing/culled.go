package meshing

import (
	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
)

// CulledMesher emits a voxel face only when the neighbor across it is
// empty. Faces on the chunk border always count as exposed.
type CulledMesher struct{}

func (CulledMesher) Strategy() Strategy { return StrategyCulled }

func (CulledMesher) Mesh(g *voxel.Grid) *MeshBuffer {
	defer profiling.Track("meshing.Culled")()

	m := NewMeshBuffer(0)
	forEachExposedFace(g, func(f Face, x, y, z int) {
		appendUnitFace(m, f, x, y, z)
	})
	return m
}

// ExposedFaces counts the unit faces the culled mesher would emit.
func (CulledMesher) ExposedFaces(g *voxel.Grid) int {
	n := 0
	forEachExposedFace(g, func(Face, int, int, int) { n++ })
	return n
}

// exposed reports whether face f of the voxel at (x,y,z) borders an empty cell.
func exposed(g *voxel.Grid, f Face, x, y, z int) bool {
	o := FaceTable[f].Offset
	return !g.Occupied(x+o[0], y+o[1], z+o[2])
}

func forEachExposedFace(g *voxel.Grid, fn func(f Face, x, y, z int)) {
	for i := 0; i < g.Len(); i++ {
		if g.At(i) == voxel.BlockTypeAir {
			continue
		}
		x, y, z := g.Delinearize(i)
		for _, f := range Faces {
			if exposed(g, f, x, y, z) {
				fn(f, x, y, z)
			}
		}
	}
}
