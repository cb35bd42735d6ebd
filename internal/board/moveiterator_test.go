package board

import "testing"

func TestMoveIteratorCentreOutOrder(t *testing.T) {
	it := NewMoveIterator(playable)
	var cols []int
	for {
		_, col, ok := it.Next()
		if !ok {
			break
		}
		cols = append(cols, col)
	}
	want := []int{3, 2, 4, 1, 5, 0, 6}
	if len(cols) != len(want) {
		t.Fatalf("got %d columns, want %d", len(cols), len(want))
	}
	for i, c := range want {
		if cols[i] != c {
			t.Fatalf("column order[%d] = %d, want %d", i, cols[i], c)
		}
	}
}

func TestMoveIteratorSkipsFullColumns(t *testing.T) {
	mask := playable &^ columnMask(3) &^ columnMask(0)
	it := NewMoveIterator(mask)
	seen := map[int]bool{}
	for {
		_, col, ok := it.Next()
		if !ok {
			break
		}
		seen[col] = true
	}
	if seen[3] || seen[0] {
		t.Fatal("iterator yielded a column excluded from the mask")
	}
	if len(seen) != Width-2 {
		t.Fatalf("expected %d columns, got %d", Width-2, len(seen))
	}
}

func TestMoveIteratorRestartable(t *testing.T) {
	it := NewMoveIterator(playable)
	_, firstCol, _ := it.Next()
	fresh := NewMoveIterator(playable)
	_, freshCol, _ := fresh.Next()
	if firstCol != freshCol {
		t.Fatal("constructing a new iterator over the same mask should reproduce the first column")
	}
}

func TestMoveIteratorEmptyMask(t *testing.T) {
	it := NewMoveIterator(0)
	if _, _, ok := it.Next(); ok {
		t.Fatal("expected no moves from an empty mask")
	}
}
