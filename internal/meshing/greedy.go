package meshing

import "github.com/go-gl/mathgl/mgl32"

// axisUnit gives the unit vector along world axis 0/1/2 (x/y/z), used to
// compose a quad corner's world position from its depth and tangent-
// plane offsets without a per-axis branch (see emitQuad).
var axisUnit = [3]mgl32.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// GreedyMesher walks a FaceMaskBuilder's filled mask for one slice and
// emits merged quads into a Buffers.
type GreedyMesher struct{}

// Sweep scans the uSize x vSize mask in row-major (j, i) order, merging
// adjacent cells with identical 32-bit mask values into maximal
// rectangles, and appends one quad (4 vertices, 2 triangles) per
// rectangle to buf. depth/axis/u/v/dir/faceDir describe the slice being
// swept (the same parameters used to fill the mask); atlas resolves a
// mask cell's texture index to a UV coordinate. When disableGreedy is
// true every present cell becomes its own 1x1 quad.
func (GreedyMesher) Sweep(
	b *FaceMaskBuilder,
	buf *Buffers,
	uSize, vSize, depth, axis, u, v, dir, faceDir int,
	atlas *Atlas,
	disableGreedy bool,
) {
	stride := b.maxDim
	for iv := 0; iv < vSize; iv++ {
		row := iv * stride
		for iu := 0; iu < uSize; iu++ {
			b.processed[row+iu] = false
		}
	}

	normal := faceNormals[faceDir]
	faceOffset := float32(0)
	if dir > 0 {
		faceOffset = 1
	}

	j := 0
	for j < vSize {
		jOffset := j * stride
		i := 0
		for i < uSize {
			ji := jOffset + i
			if b.processed[ji] || b.mask[ji]&maskPresentBit == 0 {
				i++
				continue
			}

			packed := b.mask[ji]
			texIdx := int(packed & maskTexMask)
			aoByte := uint8((packed >> maskAOShift) & maskAOMask)
			isSelected := float32(0)
			if packed&maskSelectedBit != 0 {
				isSelected = 1
			}

			quadW := 1
			if !disableGreedy {
				for i+quadW < uSize {
					idx := jOffset + i + quadW
					if b.processed[idx] || b.mask[idx] != packed {
						break
					}
					quadW++
				}
			}

			quadH := 1
			if !disableGreedy {
			heightLoop:
				for j+quadH < vSize {
					rowOff := (j + quadH) * stride
					for w := 0; w < quadW; w++ {
						idx := rowOff + i + w
						if b.processed[idx] || b.mask[idx] != packed {
							break heightLoop
						}
					}
					quadH++
				}
			}

			endI, endJ := i+quadW, j+quadH
			for jj := j; jj < endJ; jj++ {
				rowOff := jj * stride
				for ii := i; ii < endI; ii++ {
					b.processed[rowOff+ii] = true
				}
			}

			emitQuad(buf, atlas, normal, faceOffset, texIdx, aoByte, isSelected,
				axis, u, v, depth, i, j, quadW, quadH, dir, faceDir)

			i += quadW
		}
		j++
	}
}

// corner offsets in (u,v) tangent-plane units for vertex indices 0..3 of
// a standard CCW-from-origin quad.
var quadCorners = [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func emitQuad(
	buf *Buffers,
	atlas *Atlas,
	normal mgl32.Vec3,
	faceOffset float32,
	texIdx int,
	aoByte uint8,
	isSelected float32,
	axis, u, v, depth, i, j, quadW, quadH, dir, faceDir int,
) {
	uv := atlas.UV(texIdx)
	start := uint32(buf.VertexCount)
	origin := axisUnit[axis].Mul(float32(depth) + faceOffset).
		Add(axisUnit[u].Mul(float32(i))).
		Add(axisUnit[v].Mul(float32(j)))

	for vi := 0; vi < 4; vi++ {
		actualVi := vi
		if dir < 0 && (vi == 1 || vi == 3) {
			if vi == 1 {
				actualVi = 3
			} else {
				actualVi = 1
			}
		}

		cu := quadCorners[actualVi][0] * quadW
		cv := quadCorners[actualVi][1] * quadH

		pos := origin.Add(axisUnit[u].Mul(float32(cu))).Add(axisUnit[v].Mul(float32(cv)))

		aoCorner := aoCornerRemap(faceDir, vi)
		occlusion := UnpackCorner(aoByte, aoCorner)
		aoFactor := OcclusionLevels[occlusion]

		buf.pushVertexData([3]float32(pos), [3]float32(normal), uv, aoFactor, isSelected)
	}

	buf.pushTriangle(start, start+1, start+2)
	buf.pushTriangle(start, start+2, start+3)
}
