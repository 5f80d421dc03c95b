package grid

// Layer is a named, ordered, visibility/lock-flagged voxel grid sharing a
// project's dimensions. Layers are mutated only by edits made through the
// owning pipeline; they carry no reference back to it.
type Layer struct {
	Name    string
	Index   int
	Visible bool
	Locked  bool
	Grid    *Grid
}

// NewLayer wraps a grid as layer Index, visible by default and unlocked.
func NewLayer(index int, name string, g *Grid) *Layer {
	return &Layer{
		Name:    name,
		Index:   index,
		Visible: true,
		Grid:    g,
	}
}

// Composite flattens src (ordered low-to-high index, as stored by the
// caller) into dst: for each cell, the highest-index visible layer with a
// non-zero value wins; cells untouched by any visible layer stay zero.
// Locked layers still participate: lock only gates mutation.
func Composite(layers []*Layer, dst *Grid) {
	for i := range dst.Cells {
		dst.Cells[i] = 0
	}
	for _, l := range layers {
		if l == nil || !l.Visible || l.Grid == nil {
			continue
		}
		src := l.Grid.Cells
		for i, v := range src {
			if v != 0 {
				dst.Cells[i] = v
			}
		}
	}
}
