package meshing

import "log"

// Atlas maps (block type, face direction) to a texture index in a square
// grid atlas, and converts a texture index into the shared UV coordinate
// sampled by all four corners of a quad.
type Atlas struct {
	// TextureWidth is the atlas's side length in tiles.
	TextureWidth int

	// mapping is flat, 6 entries per block type: mapping[(blockType-1)*6+faceDir].
	mapping []int32
}

// NewAtlas builds an empty atlas; Update must be called before
// TextureIndex resolves anything.
func NewAtlas() *Atlas {
	return &Atlas{TextureWidth: 1}
}

// Update replaces the atlas mapping wholesale: mapping holds 6
// consecutive texture indices per block type, ordered by the package's
// face direction convention (+X,-X,+Y,-Y,+Z,-Z).
func (a *Atlas) Update(mapping []int32, textureWidth int) {
	if textureWidth < 1 {
		textureWidth = 1
	}
	a.TextureWidth = textureWidth
	a.mapping = mapping
}

// TextureIndex resolves the texture index for blockType's face faceDir.
// blockType is the raw 1..127 cell value; the mapping is keyed by
// blockType-1. A block type beyond the configured mapping's range is
// treated as having no face rather than defaulting to texture 0:
// returning ok=false lets the mask builder skip the cell as if it were
// air, and the log line tells the caller why.
func (a *Atlas) TextureIndex(blockType uint8, faceDir int) (int, bool) {
	if blockType == 0 || faceDir < 0 || faceDir > 5 {
		return 0, false
	}
	base := (int(blockType) - 1) * 6
	i := base + faceDir
	if i < 0 || i >= len(a.mapping) {
		log.Printf("voxelcore: atlas: block type %d has no texture mapping (faceDir %d)", blockType, faceDir)
		return 0, false
	}
	return int(a.mapping[i]), true
}

// UV returns the single (u, v') texel-centered coordinate shared by all
// four corners of a quad for textureIndex: per-face sampling, not
// per-corner interpolation. u = (t mod W)/W + 0.5/W,
// v = (t div W)/W + 0.5/W, then V-flipped to v' = 1 - v. The half-pixel
// inset keeps sampling off tile borders.
func (a *Atlas) UV(textureIndex int) [2]float32 {
	w := float32(a.TextureWidth)
	half := 0.5 / w

	u := float32(textureIndex%a.TextureWidth)/w + half
	v := float32(textureIndex/a.TextureWidth)/w + half

	return [2]float32{u, 1 - v}
}
