package board

// ScoredMoveBuffer is a small, fixed-capacity, stack-resident buffer of
// candidate moves kept in descending-score order. It never allocates: the
// backing array has capacity Width (the worst case, one candidate per
// column), so it is safe to hold by value in a recursion frame.
type ScoredMoveBuffer struct {
	moves  [Width]Move
	cols   [Width]int
	scores [Width]int8
	n      int
}

// Add inserts move/col at the position that keeps scores descending, using
// insertion sort from the tail. Ties preserve insertion order (the new
// entry is placed after any existing entry with an equal score).
func (b *ScoredMoveBuffer) Add(m Move, col int, score int8) {
	i := b.n
	b.n++
	for i > 0 && b.scores[i-1] < score {
		b.moves[i] = b.moves[i-1]
		b.cols[i] = b.cols[i-1]
		b.scores[i] = b.scores[i-1]
		i--
	}
	b.moves[i] = m
	b.cols[i] = col
	b.scores[i] = score
}

// Len returns the number of moves currently buffered.
func (b *ScoredMoveBuffer) Len() int {
	return b.n
}

// Get returns the i-th move in score-descending order.
func (b *ScoredMoveBuffer) Get(i int) (Move, int) {
	return b.moves[i], b.cols[i]
}
