package meshing

import "github.com/lunavoxel/voxelcore/internal/grid"

// OcclusionLevels maps a packed 2-bit corner occlusion value (0..3) to a
// shading multiplier.
var OcclusionLevels = [4]float32{1.0, 0.9, 0.85, 0.75}

// aoTangentAxes gives, per face direction, the (u, v, n) axis triple used
// to sample ambient occlusion. This diverges from the generic
// u=(axis+1)%3, v=(axis+2)%3 formula the mask builder uses for mesh
// geometry: for the Y faces the AO u/v axes are swapped relative to the
// mesh tangent axes. The two tables are independent; don't unify them.
var aoTangentAxes = [6][3]int{
	{1, 2, 0}, // face 0 (+X)
	{1, 2, 0}, // face 1 (-X)
	{0, 2, 1}, // face 2 (+Y)
	{0, 2, 1}, // face 3 (-Y)
	{0, 1, 2}, // face 4 (+Z)
	{0, 1, 2}, // face 5 (-Z)
}

// AOKernel computes packed per-face ambient occlusion bytes for a grid.
// It carries no state beyond the fixed tangent-axis table; a value
// receiver would do equally well but a named type keeps call sites
// self-documenting next to FaceMaskBuilder and GreedyMesher.
type AOKernel struct{}

func solid(g *grid.Grid, x, y, z int) bool {
	return grid.IsVisible(g.At(x, y, z))
}

// Pack computes the four-corner AO byte for the face whose exterior
// neighbour cell is (nx,ny,nz) and whose direction is faceDir. The byte
// is occ00 | occ10<<2 | occ11<<4 | occ01<<6. When both side neighbours of
// a corner occlude, the corner darkens fully regardless of the diagonal.
func (AOKernel) Pack(g *grid.Grid, nx, ny, nz, faceDir int) uint8 {
	axes := aoTangentAxes[faceDir]
	uAxis, vAxis, nAxis := axes[0], axes[1], axes[2]

	n := [3]int{nx, ny, nz}
	dim := [3]int{g.Dx, g.Dy, g.Dz}

	nn := n[nAxis]
	if nn < 0 || nn >= dim[nAxis] {
		return 0
	}

	nu, nv := n[uAxis], n[vAxis]
	dimU, dimV := dim[uAxis], dim[vAxis]

	uNegOK := nu > 0
	uPosOK := nu < dimU-1
	vNegOK := nv > 0
	vPosOK := nv < dimV-1

	at := func(du, dv int) bool {
		c := n
		c[uAxis] += du
		c[vAxis] += dv
		return solid(g, c[0], c[1], c[2])
	}

	side1Neg := uNegOK && at(-1, 0)
	side1Pos := uPosOK && at(1, 0)
	side2Neg := vNegOK && at(0, -1)
	side2Pos := vPosOK && at(0, 1)

	corner := func(du, dv int, uOK, vOK bool) uint8 {
		if !uOK || !vOK || !at(du, dv) {
			return 0
		}
		return 1
	}

	var occ00, occ10, occ11, occ01 uint8
	if side1Neg && side2Neg {
		occ00 = 3
	} else {
		occ00 = b2u(side1Neg) + b2u(side2Neg) + corner(-1, -1, uNegOK, vNegOK)
	}
	if side1Pos && side2Neg {
		occ10 = 3
	} else {
		occ10 = b2u(side1Pos) + b2u(side2Neg) + corner(1, -1, uPosOK, vNegOK)
	}
	if side1Pos && side2Pos {
		occ11 = 3
	} else {
		occ11 = b2u(side1Pos) + b2u(side2Pos) + corner(1, 1, uPosOK, vPosOK)
	}
	if side1Neg && side2Pos {
		occ01 = 3
	} else {
		occ01 = b2u(side1Neg) + b2u(side2Pos) + corner(-1, 1, uNegOK, vPosOK)
	}

	return occ00 | occ10<<2 | occ11<<4 | occ01<<6
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// UnpackCorner extracts one of the four packed 2-bit corner values
// (corner 0 = occ00 ... corner 3 = occ01, matching the bit layout above).
func UnpackCorner(packed uint8, corner int) uint8 {
	return (packed >> (uint(corner) * 2)) & 0x3
}
