package meshing

import (
	"errors"
	"math/rand"
	"testing"

	"voxmesh/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allMeshers() []Mesher {
	return []Mesher{NaiveMesher{}, CulledMesher{}, GreedyMesher{}}
}

func gridWith(t testing.TB, d int, blocks map[[3]int]voxel.BlockType) *voxel.Grid {
	t.Helper()
	g, err := voxel.NewEmpty(d)
	require.NoError(t, err)
	for p, b := range blocks {
		g.Set(p[0], p[1], p[2], b)
	}
	return g
}

func randomGrid(t testing.TB, seed int64, d int, density float64, materials int) *voxel.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	g, err := voxel.NewFromValues(d, func(x, y, z int) voxel.BlockType {
		if rng.Float64() >= density {
			return voxel.BlockTypeAir
		}
		return voxel.BlockType(1 + rng.Intn(materials))
	})
	require.NoError(t, err)
	return g
}

func TestEmptyGridYieldsEmptyBuffer(t *testing.T) {
	g, err := voxel.NewEmpty(8)
	require.NoError(t, err)
	for _, m := range allMeshers() {
		buf := m.Mesh(g)
		require.NotNil(t, buf, m.Strategy().String())
		assert.True(t, buf.Empty(), "%v: expected empty buffer", m.Strategy())
		assert.Zero(t, buf.VertexCount())
		assert.Zero(t, buf.IndexCount())
	}
	assert.Empty(t, GreedyMesher{}.Quads(g))
}

func TestSingleVoxelAllStrategies(t *testing.T) {
	g := gridWith(t, 4, map[[3]int]voxel.BlockType{{1, 1, 1}: voxel.BlockTypeSolid})
	for _, m := range allMeshers() {
		buf := m.Mesh(g)
		require.NoError(t, buf.Validate())
		assert.Equal(t, 24, buf.VertexCount(), m.Strategy().String())
		assert.Equal(t, 36, buf.IndexCount(), m.Strategy().String())

		perNormal := map[mgl32.Vec3]int{}
		for _, n := range buf.Normals {
			perNormal[n]++
		}
		require.Len(t, perNormal, 6, "%v: distinct normals", m.Strategy())
		for _, f := range Faces {
			assert.Equal(t, 4, perNormal[FaceTable[f].Normal], "%v: %v normal should cover one face", m.Strategy(), f)
		}

		// Every vertex lies on the voxel's [1,2]³ cube.
		for _, p := range buf.Positions {
			for a := 0; a < 3; a++ {
				assert.True(t, p[a] == 1 || p[a] == 2, "%v: vertex %v off the cube", m.Strategy(), p)
			}
		}
	}
}

func TestTwoAdjacentVoxels(t *testing.T) {
	g := gridWith(t, 4, map[[3]int]voxel.BlockType{
		{1, 1, 1}: voxel.BlockTypeSolid,
		{2, 1, 1}: voxel.BlockTypeSolid,
	})
	assert.Equal(t, 12, NaiveMesher{}.Mesh(g).QuadCount())
	assert.Equal(t, 10, CulledMesher{}.Mesh(g).QuadCount())
	assert.Equal(t, 10, CulledMesher{}.ExposedFaces(g))
	// The 2x1x1 box is one quad per side.
	assert.Equal(t, 6, GreedyMesher{}.Mesh(g).QuadCount())
}

func TestNaiveIgnoresAdjacency(t *testing.T) {
	g := gridWith(t, 4, map[[3]int]voxel.BlockType{
		{0, 0, 0}: voxel.BlockTypeSolid,
		{1, 0, 0}: voxel.BlockTypeSolid,
		{3, 3, 3}: voxel.BlockTypeStone,
	})
	buf := NaiveMesher{}.Mesh(g)
	assert.Equal(t, 24*3, buf.VertexCount())
	assert.Equal(t, 36*3, buf.IndexCount())
	assert.Equal(t, 6*3, buf.QuadCount())
	for _, uv := range buf.UVs {
		assert.Equal(t, mgl32.Vec2{}, uv)
	}
}

func TestCulledFullChunkOnlyShell(t *testing.T) {
	g, err := voxel.NewFromFunc(3, func(x, y, z int) bool { return true })
	require.NoError(t, err)
	// 6 sides of 3x3 unit faces.
	assert.Equal(t, 54, CulledMesher{}.ExposedFaces(g))
	buf := CulledMesher{}.Mesh(g)
	assert.Equal(t, 54*4, buf.VertexCount())
	assert.Equal(t, 54*6, buf.IndexCount())

	greedy := GreedyMesher{}.Mesh(g)
	assert.Equal(t, 6, greedy.QuadCount())
}

func TestGreedySlabTopMergesToOneQuad(t *testing.T) {
	slab := map[[3]int]voxel.BlockType{}
	for x := 1; x <= 2; x++ {
		for z := 1; z <= 2; z++ {
			slab[[3]int{x, 1, z}] = voxel.BlockTypeGrass
		}
	}
	g := gridWith(t, 4, slab)

	var up []GreedyQuad
	for _, q := range (GreedyMesher{}).Quads(g) {
		if q.Face == FaceUp {
			up = append(up, q)
		}
	}
	require.Len(t, up, 1)
	assert.Equal(t, 4, up[0].Area())
	assert.Equal(t, voxel.BlockTypeGrass, up[0].Value)

	buf := NewMeshBuffer(1)
	appendGreedyQuad(buf, up[0])
	assert.Equal(t, 4, buf.VertexCount())
	assert.Equal(t, 6, buf.IndexCount())
	for _, p := range buf.Positions {
		assert.Equal(t, float32(2), p[1], "top quad must sit on y=2")
		assert.True(t, (p[0] == 1 || p[0] == 3) && (p[2] == 1 || p[2] == 3), "corner %v", p)
	}
	for _, uv := range buf.UVs {
		assert.True(t, (uv[0] == 0 || uv[0] == 2) && (uv[1] == 0 || uv[1] == 2), "uv %v not scaled by quad size", uv)
	}

	// Bottom merges too; each side is a 2x1 strip.
	full := GreedyMesher{}.Mesh(g)
	assert.Equal(t, 6, full.QuadCount())
	assert.Equal(t, 16, CulledMesher{}.ExposedFaces(g))
}

func TestGreedyDoesNotMergeDifferentValues(t *testing.T) {
	g := gridWith(t, 4, map[[3]int]voxel.BlockType{
		{1, 1, 1}: voxel.BlockTypeGrass,
		{2, 1, 1}: voxel.BlockTypeDirt,
	})
	quads := GreedyMesher{}.Quads(g)
	assert.Len(t, quads, 10)
	for _, q := range quads {
		assert.Equal(t, 1, q.Area())
	}
}

func TestGreedyWidthBeforeHeight(t *testing.T) {
	// An L shape in the y=0 layer seen from above: row x=0 has z=0..2, row x=1 has z=0.
	g := gridWith(t, 3, map[[3]int]voxel.BlockType{
		{0, 0, 0}: voxel.BlockTypeSolid,
		{0, 0, 1}: voxel.BlockTypeSolid,
		{0, 0, 2}: voxel.BlockTypeSolid,
		{1, 0, 0}: voxel.BlockTypeSolid,
	})
	var up []GreedyQuad
	for _, q := range (GreedyMesher{}).Quads(g) {
		if q.Face == FaceUp {
			up = append(up, q)
		}
	}
	require.Len(t, up, 2)
	assert.Equal(t, GreedyQuad{Face: FaceUp, Layer: 0, U: 0, V: 0, Width: 3, Height: 1, Value: voxel.BlockTypeSolid}, up[0])
	assert.Equal(t, GreedyQuad{Face: FaceUp, Layer: 0, U: 0, V: 1, Width: 1, Height: 1, Value: voxel.BlockTypeSolid}, up[1])
}

type unitFace struct {
	face    Face
	x, y, z int
}

func TestGreedyPartitionsExposedFaces(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		g := randomGrid(t, seed, 7, 0.55, 2)

		exposedSet := map[unitFace]bool{}
		forEachExposedFace(g, func(f Face, x, y, z int) {
			exposedSet[unitFace{f, x, y, z}] = true
		})

		covered := map[unitFace]int{}
		area := 0
		for _, q := range (GreedyMesher{}).Quads(g) {
			require.GreaterOrEqual(t, q.Width, 1)
			require.GreaterOrEqual(t, q.Height, 1)
			area += q.Area()
			d := FaceTable[q.Face]
			for du := 0; du < q.Width; du++ {
				for dv := 0; dv < q.Height; dv++ {
					var p [3]int
					p[d.Axis] = q.Layer
					p[d.U] = q.U + du
					p[d.V] = q.V + dv
					covered[unitFace{q.Face, p[0], p[1], p[2]}]++
					assert.Equal(t, q.Value, g.Value(p[0], p[1], p[2]), "seed %d: quad %+v covers a different value", seed, q)
				}
			}
		}

		assert.Equal(t, CulledMesher{}.ExposedFaces(g), area, "seed %d: area conservation", seed)
		assert.Len(t, covered, len(exposedSet), "seed %d", seed)
		for uf, n := range covered {
			assert.True(t, exposedSet[uf], "seed %d: %+v covered but not exposed", seed, uf)
			assert.Equal(t, 1, n, "seed %d: %+v covered %d times", seed, uf, n)
		}
	}
}

func TestGreedyNeverExceedsCulled(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		g := randomGrid(t, seed, 8, 0.4, 3)
		culled := CulledMesher{}.Mesh(g)
		greedy := GreedyMesher{}.Mesh(g)
		assert.LessOrEqual(t, greedy.VertexCount(), culled.VertexCount())
		assert.LessOrEqual(t, greedy.IndexCount(), culled.IndexCount())
		assert.LessOrEqual(t, culled.VertexCount(), NaiveMesher{}.Mesh(g).VertexCount())
	}
}

func TestMeshersDeterministic(t *testing.T) {
	g := randomGrid(t, 99, 9, 0.5, 3)
	for _, m := range allMeshers() {
		a := m.Mesh(g)
		b := m.Mesh(g)
		require.NoError(t, a.Validate())
		assert.Equal(t, a, b, "%v: output differs between runs", m.Strategy())
	}
}

func TestMeshersDoNotMutateGrid(t *testing.T) {
	g := randomGrid(t, 5, 6, 0.5, 2)
	before := make([]voxel.BlockType, g.Len())
	for i := range before {
		before[i] = g.At(i)
	}
	for _, m := range allMeshers() {
		_ = m.Mesh(g)
	}
	for i := range before {
		require.Equal(t, before[i], g.At(i), "voxel %d changed", i)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategyNaive, StrategyCulled, StrategyGreedy} {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)

		m, err := New(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.Strategy())
	}
	got, err := ParseStrategy(" Greedy ")
	require.NoError(t, err)
	assert.Equal(t, StrategyGreedy, got)

	_, err = ParseStrategy("marching-cubes")
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	_, err = New(Strategy(7))
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func BenchmarkMeshers(b *testing.B) {
	g := randomGrid(b, 1, 32, 0.5, 1)
	for _, m := range allMeshers() {
		b.Run(m.Strategy().String(), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = m.Mesh(g)
			}
		})
	}
}

func BenchmarkGreedyFullSurface(b *testing.B) {
	// Fill a full top surface
	g, _ := voxel.NewEmpty(32)
	for x := 0; x < 32; x++ {
		for z := 0; z < 32; z++ {
			g.Set(x, 31, z, voxel.BlockTypeGrass)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GreedyMesher{}.Mesh(g)
	}
}
