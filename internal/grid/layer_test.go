package grid

import "testing"

func TestCompositeHighestIndexWins(t *testing.T) {
	base := New(1, 1, 1)
	base.Set(0, 0, 0, 1)
	top := New(1, 1, 1)
	top.Set(0, 0, 0, 2)

	layers := []*Layer{
		NewLayer(0, "base", base),
		NewLayer(1, "top", top),
	}
	dst := New(1, 1, 1)
	Composite(layers, dst)

	if got := dst.At(0, 0, 0); got != 2 {
		t.Fatalf("composite = %d, want 2 (top layer wins)", got)
	}
}

func TestCompositeSkipsHiddenLayers(t *testing.T) {
	base := New(1, 1, 1)
	base.Set(0, 0, 0, 1)
	top := New(1, 1, 1)
	top.Set(0, 0, 0, 2)
	topLayer := NewLayer(1, "top", top)
	topLayer.Visible = false

	dst := New(1, 1, 1)
	Composite([]*Layer{NewLayer(0, "base", base), topLayer}, dst)

	if got := dst.At(0, 0, 0); got != 1 {
		t.Fatalf("composite = %d, want 1 (hidden top layer skipped)", got)
	}
}

func TestCompositeLockedLayerStillParticipates(t *testing.T) {
	base := New(1, 1, 1)
	base.Set(0, 0, 0, 3)
	layer := NewLayer(0, "base", base)
	layer.Locked = true

	dst := New(1, 1, 1)
	Composite([]*Layer{layer}, dst)

	if got := dst.At(0, 0, 0); got != 3 {
		t.Fatalf("composite = %d, want 3 (locked layer still composites)", got)
	}
}

func TestCompositeZeroCellsDoNotOverwrite(t *testing.T) {
	base := New(2, 1, 1)
	base.Set(0, 0, 0, 5)
	base.Set(1, 0, 0, 6)
	top := New(2, 1, 1)
	top.Set(0, 0, 0, 9) // leaves (1,0,0) as 0, must not erase base's 6

	dst := New(2, 1, 1)
	Composite([]*Layer{NewLayer(0, "base", base), NewLayer(1, "top", top)}, dst)

	if got := dst.At(0, 0, 0); got != 9 {
		t.Fatalf("composite(0,0,0) = %d, want 9", got)
	}
	if got := dst.At(1, 0, 0); got != 6 {
		t.Fatalf("composite(1,0,0) = %d, want 6 (zero cell in top doesn't erase)", got)
	}
}
