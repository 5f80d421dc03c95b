package meshing

import (
	"testing"

	"github.com/lunavoxel/voxelcore/internal/grid"
)

func benchGrid(n int) *grid.Grid {
	g := grid.New(n, n, n)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			h := (x*31+z*17)%n + 1
			for y := 0; y < h; y++ {
				g.Set(x, y, z, byte(1+(x+y+z)%4))
			}
		}
	}
	return g
}

func BenchmarkMesherSweep(b *testing.B) {
	const n = 32
	g := benchGrid(n)
	sel := grid.New(n, n, n)
	atlas := newTestAtlas(4)
	buf := NewBuffers(24*n*n*n, 36*n*n*n)
	m := NewMesher(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		m.Sweep(g, sel, true, atlas, Targets{Solid: buf}, false, false)
	}
}

func BenchmarkMesherSweepPerFace(b *testing.B) {
	const n = 16
	g := benchGrid(n)
	sel := grid.New(n, n, n)
	atlas := newTestAtlas(4)
	buf := NewBuffers(24*n*n*n, 36*n*n*n)
	m := NewMesher(n)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		m.Sweep(g, sel, true, atlas, Targets{Solid: buf}, false, true)
	}
}
