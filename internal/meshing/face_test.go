package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func unitAxis(a int) mgl32.Vec3 {
	var v mgl32.Vec3
	v[a] = 1
	return v
}

func TestFaceTableWindingMatchesNormal(t *testing.T) {
	for _, f := range Faces {
		d := FaceTable[f]
		for tri := 0; tri < 2; tri++ {
			i0, i1, i2 := QuadIndices[tri*3], QuadIndices[tri*3+1], QuadIndices[tri*3+2]
			a, b, c := d.Vertices[i0], d.Vertices[i1], d.Vertices[i2]
			n := b.Sub(a).Cross(c.Sub(a)).Normalize()
			if !n.ApproxEqual(d.Normal) {
				t.Errorf("%v triangle %d: winding normal %v, want %v", f, tri, n, d.Normal)
			}
		}
	}
}

func TestFaceTableAxes(t *testing.T) {
	for _, f := range Faces {
		d := FaceTable[f]
		if d.Axis == d.U || d.Axis == d.V || d.U == d.V {
			t.Fatalf("%v: axes %d/%d/%d are not distinct", f, d.Axis, d.U, d.V)
		}
		if got := unitAxis(d.U).Cross(unitAxis(d.V)); !got.ApproxEqual(d.Normal) {
			t.Errorf("%v: e_U x e_V = %v, want %v", f, got, d.Normal)
		}
		off := mgl32.Vec3{float32(d.Offset[0]), float32(d.Offset[1]), float32(d.Offset[2])}
		if off != d.Normal {
			t.Errorf("%v: offset %v does not match normal %v", f, d.Offset, d.Normal)
		}
		plane := float32(0)
		if f.Positive() {
			plane = 1
		}
		for k, v := range d.Vertices {
			if v[d.Axis] != plane {
				t.Errorf("%v vertex %d: %v not on plane %v", f, k, v, plane)
			}
			if v[d.U] != quadUV[k][0] || v[d.V] != quadUV[k][1] {
				t.Errorf("%v vertex %d: in-plane coords (%v,%v), want %v", f, k, v[d.U], v[d.V], quadUV[k])
			}
		}
	}
}

func TestFaceCornersScale(t *testing.T) {
	d := FaceTable[FaceUp]
	got := d.corners(mgl32.Vec3{1, 1, 1}, 2, 3)
	// U is Z (width), V is X (height).
	want := [4]mgl32.Vec3{{1, 2, 1}, {1, 2, 3}, {4, 2, 3}, {4, 2, 1}}
	if got != want {
		t.Errorf("corners = %v, want %v", got, want)
	}
	if unit := d.corners(mgl32.Vec3{}, 1, 1); unit != d.Vertices {
		t.Errorf("1x1 corners %v differ from table %v", unit, d.Vertices)
	}
}

func TestFaceString(t *testing.T) {
	names := map[string]bool{}
	for _, f := range Faces {
		names[f.String()] = true
	}
	if len(names) != NumFaces {
		t.Errorf("face names are not unique: %v", names)
	}
	if Face(42).String() != "unknown" {
		t.Errorf("out of range face should be unknown")
	}
}
