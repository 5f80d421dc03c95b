package meshing

import "github.com/go-gl/mathgl/mgl32"

// faceNormals gives the outward unit normal for each of the six face
// directions (0:+X, 1:-X, 2:+Y, 3:-Y, 4:+Z, 5:-Z).
var faceNormals = [6]mgl32.Vec3{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// aoCornerRemap maps a vertex index to the AO corner it samples. For
// faces 1 (-X), 2 (+Y) and 5 (-Z) the corner index is swapped (1<->3) so
// AO shading stays oriented to the same world corner regardless of which
// winding was chosen. On -X and -Z the swap compensates for the
// winding-index swap applied when dir < 0. On the Y faces the AO tangent
// axes (aoTangentAxes) are swapped relative to the mesh tangent axes:
// on -Y the winding swap already cancels that, on +Y this remap does.
func aoCornerRemap(faceDir int, vi int) int {
	switch faceDir {
	case 1, 2, 5:
		switch vi {
		case 1:
			return 3
		case 3:
			return 1
		default:
			return vi
		}
	default:
		return vi
	}
}
