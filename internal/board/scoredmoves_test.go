package board

import "testing"

func TestScoredMoveBufferDescendingOrder(t *testing.T) {
	var buf ScoredMoveBuffer
	buf.Add(Move(1), 0, 2)
	buf.Add(Move(2), 1, 5)
	buf.Add(Move(3), 2, 0)
	buf.Add(Move(4), 3, 3)

	if buf.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", buf.Len())
	}
	wantCols := []int{1, 3, 0, 2}
	for i, want := range wantCols {
		_, col := buf.Get(i)
		if col != want {
			t.Fatalf("Get(%d) column = %d, want %d", i, col, want)
		}
	}
}

func TestScoredMoveBufferTiesPreserveInsertionOrder(t *testing.T) {
	var buf ScoredMoveBuffer
	buf.Add(Move(1), 0, 4)
	buf.Add(Move(2), 1, 4)
	buf.Add(Move(3), 2, 4)

	for i, want := range []int{0, 1, 2} {
		_, col := buf.Get(i)
		if col != want {
			t.Fatalf("Get(%d) column = %d, want %d (ties should preserve insertion order)", i, col, want)
		}
	}
}

func TestScoredMoveBufferFullCapacity(t *testing.T) {
	var buf ScoredMoveBuffer
	for col := 0; col < Width; col++ {
		buf.Add(Move(1<<uint(col)), col, int8(col))
	}
	if buf.Len() != Width {
		t.Fatalf("Len() = %d, want %d", buf.Len(), Width)
	}
	_, topCol := buf.Get(0)
	if topCol != Width-1 {
		t.Fatalf("top column = %d, want %d", topCol, Width-1)
	}
}
