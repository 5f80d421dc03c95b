package meshing

import "github.com/lunavoxel/voxelcore/internal/grid"

// Mesher wires a FaceMaskBuilder, GreedyMesher and AOKernel into the full
// three-axis exterior-face sweep. The slice loop runs once per output
// category, so the render pipeline can own three independent buffer sets
// rather than one combined stream with a highlight channel.
type Mesher struct {
	mask   *FaceMaskBuilder
	greedy GreedyMesher
	ao     AOKernel
}

// NewMesher allocates scratch mask buffers sized for the largest
// dimension likely to be swept; FaceMaskBuilder grows them on demand if
// a later grid exceeds it.
func NewMesher(maxDim int) *Mesher {
	return &Mesher{mask: NewFaceMaskBuilder(maxDim)}
}

// Targets bundles the three category buffers a sweep writes into. A nil
// entry skips that category entirely (e.g. a selection-less render can
// pass nil for Selection).
type Targets struct {
	Solid     *Buffers
	Preview   *Buffers
	Selection *Buffers
}

// Sweep runs the full axis/direction/depth loop over composite, filling
// each non-nil target's buffer. selection and selectionEmpty describe
// the parallel selection grid; previewHidden and disableGreedy are
// per-render flags passed through from the pipeline.
func (m *Mesher) Sweep(
	composite, selection *grid.Grid,
	selectionEmpty bool,
	atlas *Atlas,
	targets Targets,
	previewHidden, disableGreedy bool,
) {
	dims := [3]int{composite.Dx, composite.Dy, composite.Dz}
	maxDim := dims[0]
	if dims[1] > maxDim {
		maxDim = dims[1]
	}
	if dims[2] > maxDim {
		maxDim = dims[2]
	}
	m.mask.EnsureCapacity(maxDim)

	categories := []struct {
		cat Category
		buf *Buffers
	}{
		{CategorySolid, targets.Solid},
		{CategoryPreview, targets.Preview},
		{CategorySelection, targets.Selection},
	}

	for axis := 0; axis < 3; axis++ {
		u := (axis + 1) % 3
		v := (axis + 2) % 3
		axisSize := dims[axis]
		uSize := dims[u]
		vSize := dims[v]

		for dirIdx := 0; dirIdx < 2; dirIdx++ {
			dir := -1
			if dirIdx == 1 {
				dir = 1
			}
			faceDir := axis*2
			if dir < 0 {
				faceDir++
			}

			for depth := 0; depth < axisSize; depth++ {
				for _, t := range categories {
					if t.buf == nil {
						continue
					}
					hasFaces := m.mask.Build(
						composite, selection, selectionEmpty, atlas, m.ao,
						axis, u, v, uSize, vSize, depth, dir, faceDir,
						t.cat, previewHidden,
					)
					if !hasFaces {
						continue
					}
					m.greedy.Sweep(m.mask, t.buf, uSize, vSize, depth, axis, u, v, dir, faceDir, atlas, disableGreedy)
				}
			}
		}
	}
}
