package meshing

import "testing"

func TestAtlasTextureIndex(t *testing.T) {
	a := NewAtlas()
	// block type 1, faces [+X -X +Y -Y +Z -Z] = [10 11 12 13 14 15]
	a.Update([]int32{10, 11, 12, 13, 14, 15}, 4)

	for faceDir, want := range []int32{10, 11, 12, 13, 14, 15} {
		got, ok := a.TextureIndex(1, faceDir)
		if !ok || int32(got) != want {
			t.Fatalf("faceDir %d: got (%d,%v), want %d", faceDir, got, ok, want)
		}
	}

	if _, ok := a.TextureIndex(0, 0); ok {
		t.Fatal("block type 0 should never resolve")
	}
	if _, ok := a.TextureIndex(2, 0); ok {
		t.Fatal("unmapped block type should resolve to ok=false")
	}
	if _, ok := a.TextureIndex(1, 6); ok {
		t.Fatal("out of range face dir should resolve to ok=false")
	}
}

func TestAtlasUV(t *testing.T) {
	a := NewAtlas()
	a.Update(make([]int32, 6), 4)

	uv := a.UV(0)
	wantU := float32(0.125)
	wantV := float32(1 - 0.125)
	if uv[0] != wantU || uv[1] != wantV {
		t.Fatalf("UV(0) = %v, want (%v,%v)", uv, wantU, wantV)
	}

	// texture index 5 on a 4-wide atlas: col=1, row=1.
	uv2 := a.UV(5)
	wantU2 := float32(1)/4 + 0.125
	wantV2 := 1 - (float32(1)/4 + 0.125)
	if uv2[0] != wantU2 || uv2[1] != wantV2 {
		t.Fatalf("UV(5) = %v, want (%v,%v)", uv2, wantU2, wantV2)
	}
}
