// Package grid implements the dense voxel grid that backs a single layer
// and the composite buffer the render pipeline sweeps.
package grid

import (
	"fmt"

	"github.com/lunavoxel/voxelcore/internal/config"
)

// Grid is a dense Dx*Dy*Dz array of 8-bit voxel cells, indexed
// x*Dy*Dz + y*Dz + z. Bits 0-6 of a cell hold the block type (0 = empty);
// bit 7 marks a raycastable-but-invisible preview/erase cell.
type Grid struct {
	Dx, Dy, Dz int
	Cells      []byte
}

// clampDim bounds a requested dimension to
// [1, config.GetMaxGridDimension()].
func clampDim(d int) int {
	if d < 1 {
		return 1
	}
	if max := config.GetMaxGridDimension(); d > max {
		return max
	}
	return d
}

// New allocates an all-empty grid of the given dimensions, clamped to
// [1, config.GetMaxGridDimension()] per axis.
func New(dx, dy, dz int) *Grid {
	dx, dy, dz = clampDim(dx), clampDim(dy), clampDim(dz)
	return &Grid{
		Dx:    dx,
		Dy:    dy,
		Dz:    dz,
		Cells: make([]byte, dx*dy*dz),
	}
}

// Resize reshapes the grid to new dimensions, discarding old contents:
// callers rebuild layers after resizing, they don't expect old cells to
// survive. Each dimension is clamped to [1, config.GetMaxGridDimension()]
// per axis, same as New.
func (g *Grid) Resize(dx, dy, dz int) {
	dx, dy, dz = clampDim(dx), clampDim(dy), clampDim(dz)
	g.Dx, g.Dy, g.Dz = dx, dy, dz
	n := dx * dy * dz
	if cap(g.Cells) >= n {
		g.Cells = g.Cells[:n]
		for i := range g.Cells {
			g.Cells[i] = 0
		}
		return
	}
	g.Cells = make([]byte, n)
}

// Index converts a 3D coordinate to a flat cell index. Callers must only
// use this with in-bounds coordinates; see At/InBounds for checked access.
func (g *Grid) Index(x, y, z int) int {
	return x*g.Dy*g.Dz + y*g.Dz + z
}

// InBounds reports whether (x,y,z) addresses a real cell.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.Dx && y >= 0 && y < g.Dy && z >= 0 && z < g.Dz
}

// At returns the raw cell byte at (x,y,z), or 0 (empty/non-occluder) when
// the coordinate is out of bounds: out-of-range access reads as air.
func (g *Grid) At(x, y, z int) byte {
	if !g.InBounds(x, y, z) {
		return 0
	}
	return g.Cells[g.Index(x, y, z)]
}

// Set writes a raw cell byte at (x,y,z). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y, z int, v byte) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.Cells[g.Index(x, y, z)] = v
}

// BlockType returns a cell's low 7 bits (0 = empty).
func BlockType(v byte) byte { return v & 0x7F }

// IsPreview reports whether the preview/erase marker bit (bit 7) is set.
func IsPreview(v byte) bool { return v&0x80 != 0 }

// IsVisible reports whether a raw cell value represents a solid voxel,
// ignoring the preview marker bit: visible iff value & 0x7F != 0.
func IsVisible(v byte) bool { return BlockType(v) != 0 }

// Visible reports whether the cell at (x,y,z) is visible; out-of-bounds
// coordinates are treated as empty.
func (g *Grid) Visible(x, y, z int) bool { return IsVisible(g.At(x, y, z)) }

// SameShape reports whether two grids share dimensions, the contract
// invariant assumed across a project's layers. A mismatch is a caller
// contract violation and is fatal.
func SameShape(a, b *Grid) bool {
	return a.Dx == b.Dx && a.Dy == b.Dy && a.Dz == b.Dz
}

// MustSameShape panics if a and b differ in shape. The core never
// recovers from a contract violation by a caller.
func MustSameShape(a, b *Grid) {
	if !SameShape(a, b) {
		panic(fmt.Sprintf("voxelcore: grid shape mismatch: (%d,%d,%d) vs (%d,%d,%d)",
			a.Dx, a.Dy, a.Dz, b.Dx, b.Dy, b.Dz))
	}
}
