package meshing

import "testing"

func TestBuffersGrowOnDemand(t *testing.T) {
	buf := NewBuffers(1, 3)
	for i := 0; i < 5; i++ {
		buf.pushVertexData([3]float32{float32(i), 0, 0}, [3]float32{0, 1, 0}, [2]float32{0, 0}, 1.0, 0)
	}
	if buf.VertexCount != 5 {
		t.Fatalf("VertexCount = %d, want 5", buf.VertexCount)
	}
	for i := 0; i < 5; i++ {
		if got := buf.Vertices[i*3]; got != float32(i) {
			t.Fatalf("vertex %d x = %v, want %v", i, got, i)
		}
	}
}

func TestBuffersResetKeepsCapacity(t *testing.T) {
	buf := NewBuffers(4, 6)
	buf.pushVertexData([3]float32{1, 2, 3}, [3]float32{0, 1, 0}, [2]float32{0, 0}, 1.0, 0)
	buf.pushTriangle(0, 0, 0)
	beforeCap := len(buf.Vertices)

	buf.Reset()
	if buf.VertexCount != 0 || buf.IndexCount != 0 {
		t.Fatalf("Reset did not zero counters: V=%d I=%d", buf.VertexCount, buf.IndexCount)
	}
	if len(buf.Vertices) != beforeCap {
		t.Fatalf("Reset deallocated backing array: len=%d, want %d", len(buf.Vertices), beforeCap)
	}
}
