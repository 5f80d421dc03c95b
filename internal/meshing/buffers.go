// Package meshing implements the exterior-face greedy meshing pipeline:
// mesh output buffers, the texture atlas UV mapper, the ambient-occlusion
// kernel, the per-slice face mask builder, and the greedy rectangle
// merger.
package meshing

import "github.com/lunavoxel/voxelcore/internal/config"

// Buffers holds the six parallel output arrays for one mesh category
// (solid, preview, or selection), pre-sized to an upper bound and grown
// by config.GetBufferGrowthFactor() rather than reallocated per render
// when a sweep exceeds that bound.
type Buffers struct {
	Vertices []float32 // 3 per vertex
	Normals  []float32 // 3 per vertex
	UVs      []float32 // 2 per vertex
	AO       []float32 // 1 per vertex
	Selected []float32 // 1 per vertex, 0.0 or 1.0
	Indices  []uint32

	VertexCount int
	IndexCount  int
}

// NewBuffers allocates buffers sized for maxVertices vertices and
// maxIndices indices. A caller that wants the every-cell-a-separate-face
// worst case should pass 24*cellCount vertices and 36*cellCount indices
// (6 faces per cell, 4 vertices and 6 indices per face).
func NewBuffers(maxVertices, maxIndices int) *Buffers {
	if maxVertices < 1 {
		maxVertices = 1
	}
	if maxIndices < 1 {
		maxIndices = 1
	}
	return &Buffers{
		Vertices: make([]float32, maxVertices*3),
		Normals:  make([]float32, maxVertices*3),
		UVs:      make([]float32, maxVertices*2),
		AO:       make([]float32, maxVertices),
		Selected: make([]float32, maxVertices),
		Indices:  make([]uint32, maxIndices),
	}
}

// Reset sets both counters to 0 without deallocating the backing arrays.
func (b *Buffers) Reset() {
	b.VertexCount = 0
	b.IndexCount = 0
}

// growFactor returns the capacity reached by applying the configured
// growth multiplier, always at least capacity+1.
func growFactor(capacity int) int {
	grown := float64(capacity) * config.GetBufferGrowthFactor()
	n := int(grown)
	if n <= capacity {
		n = capacity + 1
	}
	return n
}

func (b *Buffers) ensureVertexCapacity(n int) {
	maxVertices := len(b.AO)
	if n <= maxVertices {
		return
	}
	newMax := growFactor(maxVertices)
	if newMax < n {
		newMax = n
	}

	grow := func(s []float32, per int) []float32 {
		grown := make([]float32, newMax*per)
		copy(grown, s)
		return grown
	}
	b.Vertices = grow(b.Vertices, 3)
	b.Normals = grow(b.Normals, 3)
	b.UVs = grow(b.UVs, 2)
	b.AO = grow(b.AO, 1)
	b.Selected = grow(b.Selected, 1)
}

func (b *Buffers) ensureIndexCapacity(n int) {
	if n <= len(b.Indices) {
		return
	}
	newMax := growFactor(len(b.Indices))
	if newMax < n {
		newMax = n
	}
	grown := make([]uint32, newMax)
	copy(grown, b.Indices)
	b.Indices = grown
}

// pushVertexData writes one full vertex across all five per-vertex
// streams at VertexCount and advances it, growing the backing arrays
// first if needed.
func (b *Buffers) pushVertexData(pos, normal [3]float32, uv [2]float32, ao, selected float32) {
	b.ensureVertexCapacity(b.VertexCount + 1)

	vo, no, uo := b.VertexCount*3, b.VertexCount*3, b.VertexCount*2
	copy(b.Vertices[vo:vo+3], pos[:])
	copy(b.Normals[no:no+3], normal[:])
	copy(b.UVs[uo:uo+2], uv[:])
	b.AO[b.VertexCount] = ao
	b.Selected[b.VertexCount] = selected
	b.VertexCount++
}

// pushTriangle writes one triangle (three indices) at IndexCount and
// advances it, growing the backing array first if needed.
func (b *Buffers) pushTriangle(i0, i1, i2 uint32) {
	b.ensureIndexCapacity(b.IndexCount + 3)
	b.Indices[b.IndexCount] = i0
	b.Indices[b.IndexCount+1] = i1
	b.Indices[b.IndexCount+2] = i2
	b.IndexCount += 3
}
