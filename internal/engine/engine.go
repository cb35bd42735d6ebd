package engine

import "github.com/lukemarsh/c4solver/internal/board"

// Solver is the public entry point: it owns an Evaluator and its
// transposition table, and turns a raw position value into a move
// recommendation plus a reconstructed principal variation.
type Solver struct {
	eval *Evaluator
}

// NewSolver returns a Solver with a fresh, default-sized transposition
// table.
func NewSolver() *Solver {
	return &Solver{eval: NewEvaluator(NewTable())}
}

// NewSolverWithTableSize returns a Solver whose transposition table has the
// given number of buckets, primarily useful for tests that want a small
// table to exercise collisions.
func NewSolverWithTableSize(size uint64) *Solver {
	return &Solver{eval: NewEvaluator(NewTableWithSize(size))}
}

// Nodes returns the number of search calls made while resolving the most
// recent Solve.
func (s *Solver) Nodes() uint64 {
	return s.eval.Nodes()
}

// Solve returns the value of pos and, unless the game is already decided,
// the 0-based column of an optimal move. If pos is already won (the side
// that just moved has connected four) or full, it returns (-1, value) with
// no move to recommend.
func (s *Solver) Solve(pos *board.Position) (col int, value int) {
	value = s.eval.Evaluate(pos)

	if pos.LastMoverWon() || pos.IsFull() {
		return -1, value
	}

	pv := s.principalVariation(pos)
	if len(pv) == 0 {
		// principalVariation appends at least one move for any position that
		// is neither won nor full, and terminal positions were handled above,
		// so an empty line here is an internal error.
		panic("engine: Solve found no principal variation for a non-terminal position")
	}
	return pv[0], value
}

// principalVariation walks the transposition table from pos, following
// exact entries as far as they reach, then completes the line with one
// more move: an immediate win if available, the single forced reply to an
// opponent threat, or else any legal move (the position is a draw or
// already lost).
func (s *Solver) principalVariation(pos *board.Position) []int {
	working := pos.Copy()
	var pv []int

	for {
		entry, ok := s.eval.tt.LookupExact(working.UniqueKey())
		if !ok || entry.Move < 0 {
			break
		}
		mask := working.PlayableMask()
		bit := board.ColumnToMove(mask, int(entry.Move))
		if bit == 0 {
			break
		}
		pv = append(pv, int(entry.Move))
		working.Play(board.Move(bit))
	}

	if working.IsFull() || working.LastMoverWon() {
		return pv
	}

	possible := working.PlayableMask()
	if wins := board.WinningMoves(working.Player, working.Occupied, possible); wins != 0 {
		return append(pv, wins.FirstMove().Column())
	}

	safe := working.NonLosingMoves(possible)
	if safe != 0 && !safe.HasMoreThanOne() {
		return append(pv, safe.FirstMove().Column())
	}

	it := board.NewMoveIterator(possible)
	if m, _, ok := it.Next(); ok {
		return append(pv, m.Column())
	}
	return pv
}
