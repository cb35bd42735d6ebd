package engine

import "github.com/lukemarsh/c4solver/internal/board"

// refutationScore is the distinguished score given to a move recovered from
// a transposition entry at this node: a move that previously proved
// strongest here is tried before any heuristically-scored move.
const refutationScore int8 = 16

// orderMoves builds a ScoredMoveBuffer over every column set in safe,
// visited centre-out, scoring each by the number of winning threats it
// creates for the side to move, except refutationCol (if it is a column set
// in safe), which is forced to the front with refutationScore.
func orderMoves(pos *board.Position, safe board.Bitboard, refutationCol int8) board.ScoredMoveBuffer {
	var buf board.ScoredMoveBuffer
	it := board.NewMoveIterator(safe)
	for {
		m, col, ok := it.Next()
		if !ok {
			break
		}
		var score int8
		if int8(col) == refutationCol {
			score = refutationScore
		} else {
			score = int8(pos.MoveOrderScore(m))
		}
		buf.Add(m, col, score)
	}
	return buf
}
