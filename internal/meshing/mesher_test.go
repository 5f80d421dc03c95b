package meshing

import (
	"testing"

	"github.com/lunavoxel/voxelcore/internal/grid"
)

func newTestAtlas(blockTypes int) *Atlas {
	a := NewAtlas()
	// Distinct texture index per (block type, face) so faces of different
	// block types never compare equal in the merge test.
	mapping := make([]int32, blockTypes*6)
	for i := range mapping {
		mapping[i] = int32(i)
	}
	a.Update(mapping, 8)
	return a
}

func sweepSolid(g *grid.Grid, atlas *Atlas, disableGreedy bool) *Buffers {
	sel := grid.New(g.Dx, g.Dy, g.Dz)
	buf := NewBuffers(6*g.Dx*g.Dy*g.Dz, 9*g.Dx*g.Dy*g.Dz)
	m := NewMesher(8)
	m.Sweep(g, sel, true, atlas, Targets{Solid: buf}, false, disableGreedy)
	return buf
}

func TestMesherSingleVoxel(t *testing.T) {
	g := grid.New(1, 1, 1)
	g.Set(0, 0, 0, 1)
	buf := sweepSolid(g, newTestAtlas(1), false)

	if buf.VertexCount != 24 || buf.IndexCount != 36 {
		t.Fatalf("got V=%d I=%d, want V=24 I=36", buf.VertexCount, buf.IndexCount)
	}
}

func TestMesherCubeMergesToSixFaces(t *testing.T) {
	g := grid.New(2, 2, 2)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				g.Set(x, y, z, 1)
			}
		}
	}
	buf := sweepSolid(g, newTestAtlas(1), false)
	if buf.VertexCount != 24 || buf.IndexCount != 36 {
		t.Fatalf("got V=%d I=%d, want V=24 I=36", buf.VertexCount, buf.IndexCount)
	}
}

func TestMesherCubeDisableGreedyPerFace(t *testing.T) {
	g := grid.New(2, 2, 2)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				g.Set(x, y, z, 1)
			}
		}
	}
	buf := sweepSolid(g, newTestAtlas(1), true)
	// 6 cube faces * 2x2 cells each = 24 quads -> 96 vertices, 144 indices.
	if buf.VertexCount != 24*4 || buf.IndexCount != 24*6 {
		t.Fatalf("got V=%d I=%d, want V=%d I=%d", buf.VertexCount, buf.IndexCount, 24*4, 24*6)
	}
}

func TestMesherHollowShellWithHole(t *testing.T) {
	g := grid.New(3, 3, 3)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				if x == 1 && y == 1 && z == 1 {
					continue // hollow interior
				}
				g.Set(x, y, z, 1)
			}
		}
	}
	// Punch a hole through one face's center cell.
	g.Set(1, 1, 0, 0)

	buf := sweepSolid(g, newTestAtlas(1), false)
	if buf.VertexCount != 72 || buf.IndexCount != 108 {
		t.Fatalf("got V=%d I=%d, want V=72 I=108", buf.VertexCount, buf.IndexCount)
	}
}

func TestMesherAdjacentDifferentTypesDontMerge(t *testing.T) {
	g := grid.New(2, 1, 1)
	g.Set(0, 0, 0, 1)
	g.Set(1, 0, 0, 2)
	buf := sweepSolid(g, newTestAtlas(2), false)
	if buf.VertexCount != 40 || buf.IndexCount != 60 {
		t.Fatalf("got V=%d I=%d, want V=40 I=60", buf.VertexCount, buf.IndexCount)
	}
}

func TestMesherSelectionOnlyCell(t *testing.T) {
	g := grid.New(2, 1, 1)
	sel := grid.New(2, 1, 1)
	sel.Set(0, 0, 0, 1)

	atlas := newTestAtlas(1)
	buf := NewBuffers(24, 36)
	m := NewMesher(8)
	m.Sweep(g, sel, false, atlas, Targets{Selection: buf}, false, false)

	if buf.VertexCount != 24 || buf.IndexCount != 36 {
		t.Fatalf("got V=%d I=%d, want V=24 I=36", buf.VertexCount, buf.IndexCount)
	}
	for i, s := range buf.Selected {
		if s != 1 {
			t.Fatalf("vertex %d: is_selected=%v, want 1", i, s)
		}
	}
}

func TestMesherRaycastMarkerOnlyCell(t *testing.T) {
	// A cell carrying only the marker bit (block type 0) renders nothing
	// in any category and does not occlude a real neighbour's face.
	g := grid.New(2, 1, 1)
	g.Set(0, 0, 0, 1)
	g.Set(1, 0, 0, 0x80)
	sel := grid.New(2, 1, 1)

	solid := NewBuffers(24, 36)
	preview := NewBuffers(24, 36)
	selection := NewBuffers(24, 36)
	m := NewMesher(8)
	m.Sweep(g, sel, true, newTestAtlas(1), Targets{Solid: solid, Preview: preview, Selection: selection}, false, false)

	// The real block keeps all six faces: its +X neighbour is marker-only
	// and therefore not visible.
	if solid.VertexCount != 24 || solid.IndexCount != 36 {
		t.Fatalf("solid: got V=%d I=%d, want 24,36", solid.VertexCount, solid.IndexCount)
	}
	if preview.VertexCount != 0 || selection.VertexCount != 0 {
		t.Fatalf("marker-only cell emitted faces: preview V=%d selection V=%d",
			preview.VertexCount, selection.VertexCount)
	}
}

func TestMesherEmptyGridProducesNothing(t *testing.T) {
	g := grid.New(4, 4, 4)
	buf := sweepSolid(g, newTestAtlas(1), false)
	if buf.VertexCount != 0 || buf.IndexCount != 0 {
		t.Fatalf("got V=%d I=%d, want 0,0", buf.VertexCount, buf.IndexCount)
	}
}

func TestMesherPreviewHiddenSuppressesPreviewBuffer(t *testing.T) {
	g := grid.New(1, 1, 1)
	g.Set(0, 0, 0, 1|0x80) // preview marker set
	sel := grid.New(1, 1, 1)

	previewBuf := NewBuffers(24, 36)
	atlas := newTestAtlas(1)
	m := NewMesher(8)

	m.Sweep(g, sel, true, atlas, Targets{Preview: previewBuf}, true, false)
	if previewBuf.VertexCount != 0 {
		t.Fatalf("previewHidden=true: got V=%d, want 0", previewBuf.VertexCount)
	}

	previewBuf.Reset()
	m.Sweep(g, sel, true, atlas, Targets{Preview: previewBuf}, false, false)
	if previewBuf.VertexCount != 24 || previewBuf.IndexCount != 36 {
		t.Fatalf("previewHidden=false: got V=%d I=%d, want 24,36", previewBuf.VertexCount, previewBuf.IndexCount)
	}
}
