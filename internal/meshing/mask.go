package meshing

import "github.com/lunavoxel/voxelcore/internal/grid"

// Packed mask cell bit layout: bit 19 present, bit 18 selected,
// bits 10-17 packed AO, bits 0-9 texture index. Two cells merge iff their
// full 32-bit values are equal.
const (
	maskPresentBit  = 1 << 19
	maskSelectedBit = 1 << 18
	maskAOShift     = 10
	maskAOMask      = 0xFF
	maskTexMask     = 0x3FF
)

// Category selects which of the three output mesh streams a slice sweep
// fills: ordinary solid voxels, preview/planned-change voxels, or the
// selection highlight overlay.
type Category int

const (
	CategorySolid Category = iota
	CategoryPreview
	CategorySelection
)

// FaceMaskBuilder holds the reusable per-slice scratch mask and
// processed-flag arrays, sized maxDim*maxDim with a fixed stride of
// maxDim regardless of the current slice's actual width/height, so a
// render never reallocates once the largest dimension seen has been
// grown into.
type FaceMaskBuilder struct {
	mask      []uint32
	processed []bool
	maxDim    int
}

// NewFaceMaskBuilder allocates scratch buffers for slices up to
// maxDim x maxDim.
func NewFaceMaskBuilder(maxDim int) *FaceMaskBuilder {
	if maxDim < 1 {
		maxDim = 1
	}
	size := maxDim * maxDim
	return &FaceMaskBuilder{
		mask:      make([]uint32, size),
		processed: make([]bool, size),
		maxDim:    maxDim,
	}
}

// EnsureCapacity grows the scratch buffers to fit a maxDim x maxDim
// slice, reallocating only when the current buffers are too small.
func (b *FaceMaskBuilder) EnsureCapacity(maxDim int) {
	if maxDim <= b.maxDim {
		return
	}
	b.maxDim = maxDim
	size := maxDim * maxDim
	b.mask = make([]uint32, size)
	b.processed = make([]bool, size)
}

// Build fills the mask for one (axis, dir, depth) slice and category. It
// reports whether any face was emitted, so the caller can skip the
// greedy sweep entirely for an empty slice.
func (b *FaceMaskBuilder) Build(
	composite, selection *grid.Grid,
	selectionEmpty bool,
	atlas *Atlas,
	ao AOKernel,
	axis, u, v, uSize, vSize, depth, dir, faceDir int,
	category Category,
	previewHidden bool,
) bool {
	stride := b.maxDim
	for iv := 0; iv < vSize; iv++ {
		row := iv * stride
		for iu := 0; iu < uSize; iu++ {
			b.mask[row+iu] = 0
		}
	}

	if category == CategoryPreview && previewHidden {
		return false
	}

	hasFaces := false

	for iu := 0; iu < uSize; iu++ {
		for iv := 0; iv < vSize; iv++ {
			x, y, z := sliceCoord(axis, u, v, iu, iv, depth)

			cellVal := composite.At(x, y, z)
			blockType := grid.BlockType(cellVal)
			visible := blockType != 0
			isPreview := grid.IsPreview(cellVal)

			// Any nonzero selection entry counts, unlike voxel
			// visibility which masks out the marker bit.
			var selected bool
			if !selectionEmpty {
				selected = selection.At(x, y, z) != 0
			}

			if !visible && !selected {
				continue
			}

			switch category {
			case CategorySolid:
				if !visible || isPreview {
					continue
				}
			case CategoryPreview:
				if !visible || !isPreview {
					continue
				}
			case CategorySelection:
				if visible || !selected {
					continue
				}
			}

			nx, ny, nz := x, y, z
			switch axis {
			case 0:
				nx += dir
			case 1:
				ny += dir
			default:
				nz += dir
			}

			maskIdx := iv*stride + iu

			if category == CategorySelection {
				if selection.At(nx, ny, nz) != 0 {
					continue
				}
				selVal := grid.BlockType(selection.At(x, y, z))
				if selVal == 0 {
					selVal = 1
				}
				texIdx, ok := atlas.TextureIndex(selVal, faceDir)
				if !ok {
					continue
				}
				aoByte := ao.Pack(composite, nx, ny, nz, faceDir)
				b.mask[maskIdx] = maskPresentBit |
					(uint32(texIdx) & maskTexMask) |
					(uint32(aoByte) << maskAOShift) |
					maskSelectedBit
				hasFaces = true
				continue
			}

			if grid.IsVisible(composite.At(nx, ny, nz)) {
				continue
			}

			texIdx, ok := atlas.TextureIndex(blockType, faceDir)
			if !ok {
				continue
			}
			aoByte := ao.Pack(composite, nx, ny, nz, faceDir)

			var selBit uint32
			if selected {
				selBit = maskSelectedBit
			}

			b.mask[maskIdx] = maskPresentBit |
				(uint32(texIdx) & maskTexMask) |
				(uint32(aoByte) << maskAOShift) |
				selBit
			hasFaces = true
		}
	}

	return hasFaces
}

// sliceCoord maps a (depth, iu, iv) slice coordinate to a 3D cell
// coordinate: u and v are themselves axis indices (0,1,2), so this is
// just a scatter into a 3-element array rather than a per-axis branch.
func sliceCoord(axis, u, v, iu, iv, depth int) (x, y, z int) {
	var c [3]int
	c[axis] = depth
	c[u] = iu
	c[v] = iv
	return c[0], c[1], c[2]
}
