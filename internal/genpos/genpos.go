// Package genpos generates random legal Connect Four positions, for
// populating the position database or for ad hoc benchmarking.
package genpos

import (
	"math/rand"
	"strings"
	"time"

	"github.com/lukemarsh/c4solver/internal/board"
)

// Generator produces random legal positions whose move count falls within
// [MinMoves, MaxMoves].
type Generator struct {
	rng      *rand.Rand
	minMoves int
	maxMoves int
}

// New returns a Generator targeting position depths between minMoves and
// maxMoves inclusive.
func New(minMoves, maxMoves int) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		minMoves: minMoves,
		maxMoves: maxMoves,
	}
}

// Next plays a random sequence of legal moves to a randomly chosen target
// depth and returns the resulting history string and position. ok is false
// if the game ended (a win or a full board) before reaching that depth; the
// caller should simply try again.
func (g *Generator) Next() (history string, pos *board.Position, ok bool) {
	target := g.minMoves
	if g.maxMoves > g.minMoves {
		target += g.rng.Intn(g.maxMoves - g.minMoves + 1)
	}

	pos = board.New()
	var sb strings.Builder

	var cols [board.Width]int
	for i := 0; i < target; i++ {
		mask := pos.PlayableMask()
		n := 0
		for c := 0; c < board.Width; c++ {
			if board.ColumnToMove(mask, c) != 0 {
				cols[n] = c
				n++
			}
		}
		if n == 0 {
			return "", nil, false
		}

		col := cols[g.rng.Intn(n)]
		bit := board.ColumnToMove(mask, col)
		pos.Play(board.Move(bit))
		sb.WriteByte(byte('1' + col))

		if pos.LastMoverWon() {
			return "", nil, false
		}
	}

	if pos.IsFull() {
		return "", nil, false
	}
	return sb.String(), pos, true
}
