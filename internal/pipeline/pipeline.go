// Package pipeline implements RenderPipeline, the component that owns a
// project's layers, composites them into a working grid, detects
// whether anything changed since the last render, and drives the
// meshing sweep into three owned buffer sets.
package pipeline

import (
	"bytes"

	"github.com/lunavoxel/voxelcore/internal/codec"
	"github.com/lunavoxel/voxelcore/internal/config"
	"github.com/lunavoxel/voxelcore/internal/grid"
	"github.com/lunavoxel/voxelcore/internal/meshing"
	"github.com/lunavoxel/voxelcore/internal/profiling"
)

// MeshTriple is the move-out result of a successful Render call: the
// caller takes ownership of all three buffers until the next Render.
type MeshTriple struct {
	Solid     *meshing.Buffers
	Preview   *meshing.Buffers
	Selection *meshing.Buffers
}

// RenderPipeline holds up to config.GetMaxLayers() layers sharing one
// (Dx,Dy,Dz) shape, a parallel selection grid, and the mesher/atlas used
// to sweep them into mesh buffers.
type RenderPipeline struct {
	dx, dy, dz int

	layers    [10]*grid.Layer
	composite *grid.Grid
	snapshot  *grid.Grid
	hasSnap   bool

	selection      *grid.Grid
	selectionEmpty bool

	atlas  *meshing.Atlas
	mesher *meshing.Mesher

	solid     *meshing.Buffers
	preview   *meshing.Buffers
	selectBuf *meshing.Buffers
}

// New creates a pipeline for a project of the given dimensions, with
// empty mesh buffers pre-sized to the worst case 6*Dx*Dy*Dz faces per
// category.
func New(dx, dy, dz int) *RenderPipeline {
	p := &RenderPipeline{
		atlas:          meshing.NewAtlas(),
		selectionEmpty: true,
	}
	p.UpdateDimensions(dx, dy, dz)
	return p
}

func maxDim(dx, dy, dz int) int {
	m := dx
	if dy > m {
		m = dy
	}
	if dz > m {
		m = dz
	}
	return m
}

// UpdateDimensions reshapes the pipeline to a new project size,
// discarding all layers, the composite, the snapshot, and the selection
// grid: callers rebuild layers after resizing. Dimensions are clamped to
// [1, config.GetMaxGridDimension()] per axis, the same bound grid.New
// enforces; p.dx/p.dy/p.dz always reflect the clamped value so buffer
// sizing matches the grid actually allocated.
func (p *RenderPipeline) UpdateDimensions(dx, dy, dz int) {
	for i := range p.layers {
		p.layers[i] = nil
	}
	p.composite = grid.New(dx, dy, dz)
	p.dx, p.dy, p.dz = p.composite.Dx, p.composite.Dy, p.composite.Dz
	p.snapshot = nil
	p.hasSnap = false
	p.selection = grid.New(p.dx, p.dy, p.dz)
	p.selectionEmpty = true

	cellCount := p.dx * p.dy * p.dz
	maxVerts := 24 * cellCount
	maxIdx := 36 * cellCount
	p.solid = meshing.NewBuffers(maxVerts, maxIdx)
	p.preview = meshing.NewBuffers(maxVerts, maxIdx)
	p.selectBuf = meshing.NewBuffers(maxVerts, maxIdx)

	p.mesher = meshing.NewMesher(maxDim(p.dx, p.dy, p.dz))
}

// UpdateAtlas replaces the (block type, face) -> texture index mapping
// used by all subsequent renders.
func (p *RenderPipeline) UpdateAtlas(mapping []int32, textureWidth int) {
	p.atlas.Update(mapping, textureWidth)
}

// AddLayer decompresses compressedBlob into layer index i and marks it
// visible/hidden. A layer index outside [0, GetMaxLayers()-1] is
// silently ignored: out-of-range layer operations are a no-op, not an
// error, since the surrounding collaborator layer is responsible for
// keeping indices in range.
func (p *RenderPipeline) AddLayer(i int, name string, compressedBlob []byte, visible bool) {
	if i < 0 || i >= config.GetMaxLayers() || i >= len(p.layers) {
		return
	}
	g := grid.New(p.dx, p.dy, p.dz)
	cells := codec.Decompress(compressedBlob)
	copy(g.Cells, cells)

	layer := grid.NewLayer(i, name, g)
	layer.Visible = visible
	p.layers[i] = layer
}

// UpdateLayer replaces an existing layer's contents and visibility. It
// is a no-op for an out-of-range or absent layer index.
func (p *RenderPipeline) UpdateLayer(i int, compressedBlob []byte, visible bool) {
	if i < 0 || i >= config.GetMaxLayers() || i >= len(p.layers) {
		return
	}
	layer := p.layers[i]
	if layer == nil {
		return
	}
	cells := codec.Decompress(compressedBlob)
	copy(layer.Grid.Cells, cells)
	layer.Visible = visible
}

// SetLayerLocked sets a layer's lock flag. Locked layers still
// participate in compositing; lock only gates whether the surrounding
// collaborator layer allows edits.
func (p *RenderPipeline) SetLayerLocked(i int, locked bool) {
	if i < 0 || i >= len(p.layers) || p.layers[i] == nil {
		return
	}
	p.layers[i].Locked = locked
}

// UpdateSelection replaces the selection grid from a flat byte grid.
// An empty slice clears the selection entirely.
func (p *RenderPipeline) UpdateSelection(cells []byte) {
	if len(cells) == 0 {
		for i := range p.selection.Cells {
			p.selection.Cells[i] = 0
		}
		p.selectionEmpty = true
		return
	}
	copy(p.selection.Cells, cells)
	p.selectionEmpty = allZero(cells)
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// Render composites visible layers, and if the composite differs from the
// one the last render swept, resets and resweeps the three mesh buffers,
// handing ownership to the caller until the next Render. It returns
// (nil, false) when no visible layer and no selection exists, or the
// composite is unchanged. Only the composite is compared: a change made
// by UpdateSelection alone, or different previewHidden/disableGreedy
// flags, does not trigger a resweep.
func (p *RenderPipeline) Render(previewHidden, disableGreedy bool) (*MeshTriple, bool) {
	if config.GetProfileRender() {
		profiling.ResetFrame()
		defer profiling.Track("pipeline.Render")()
	}

	if !p.anyVisibleLayer() && p.selectionEmpty {
		return nil, false
	}

	stopComposite := trackIf("pipeline.Composite")
	p.compositeLayers()
	stopComposite()

	if p.hasSnap && bytes.Equal(p.composite.Cells, p.snapshot.Cells) {
		return nil, false
	}
	p.commitSnapshot()

	p.solid.Reset()
	p.preview.Reset()
	p.selectBuf.Reset()

	stopSweep := trackIf("pipeline.Sweep")
	p.mesher.Sweep(
		p.composite, p.selection, p.selectionEmpty, p.atlas,
		meshing.Targets{Solid: p.solid, Preview: p.preview, Selection: p.selectBuf},
		previewHidden, disableGreedy,
	)
	stopSweep()

	return &MeshTriple{Solid: p.solid, Preview: p.preview, Selection: p.selectBuf}, true
}

// trackIf starts a named profiling timer only when render profiling is
// enabled; the returned stop func is always safe to call.
func trackIf(name string) func() {
	if !config.GetProfileRender() {
		return func() {}
	}
	return profiling.Track(name)
}

func (p *RenderPipeline) anyVisibleLayer() bool {
	for _, l := range p.layers {
		if l != nil && l.Visible {
			return true
		}
	}
	return false
}

func (p *RenderPipeline) compositeLayers() {
	ordered := make([]*grid.Layer, 0, len(p.layers))
	for _, l := range p.layers {
		if l != nil {
			ordered = append(ordered, l)
		}
	}
	grid.Composite(ordered, p.composite)
}

func (p *RenderPipeline) commitSnapshot() {
	if p.snapshot == nil {
		p.snapshot = grid.New(p.dx, p.dy, p.dz)
	}
	copy(p.snapshot.Cells, p.composite.Cells)
	p.hasSnap = true
}
