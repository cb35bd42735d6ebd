// Package engine implements the strong Connect Four solver: exhaustive
// negamax search with alpha-beta pruning, principal variation search,
// aspiration windows, and a two-slot-per-bucket transposition table.
package engine

import "github.com/lukemarsh/c4solver/internal/board"

// MaxScore is the base of the value scale: a win completed by the k-th stone
// placed on the board scores MaxScore-k for the winner (and the negation for
// the loser), so the fastest possible win, on the 7th stone, scores
// MaxScore-7.
const MaxScore = board.Size + 2

// Evaluator runs the exhaustive search over a shared transposition table.
// It is not safe for concurrent use: Evaluate mutates its own private copy
// of the position, but a single Evaluator's Table and node counter are not
// guarded against concurrent calls.
type Evaluator struct {
	tt    *Table
	nodes uint64
}

// NewEvaluator returns an Evaluator backed by tt. The table is cleared at
// the start of every Evaluate call, so it may be reused across calls purely
// to amortize its allocation.
func NewEvaluator(tt *Table) *Evaluator {
	return &Evaluator{tt: tt}
}

// Nodes returns the number of recursive search calls made during the most
// recent Evaluate.
func (e *Evaluator) Nodes() uint64 {
	return e.nodes
}

// Evaluate returns the game-theoretic value of pos from the perspective of
// the side to move: positive means that side forces a win, negative a
// loss, zero a draw with best play. The magnitude is MaxScore minus the
// number of the stone that decides the game: a win in fewer moves scores
// higher, a loss in more moves scores less negative.
func (e *Evaluator) Evaluate(pos *board.Position) int {
	e.nodes = 0
	working := pos.Copy()

	played := working.MovesPlayed()
	if working.LastMoverWon() {
		return -(MaxScore - played)
	}
	if working.IsFull() {
		return 0
	}

	hi := min(MaxScore-(played+1), MaxScore-7)
	lo := max(-(MaxScore-(played+2)), -(MaxScore-8))

	e.tt.Clear()
	if played <= 15 {
		return e.aspirate(working, lo, hi)
	}
	return e.search(working, lo, hi)
}

// aspirate narrows in on the true value of pos by repeatedly re-searching a
// shifted narrow window, starting with the null window just above lo and
// moving by up to lowStep/highStep on each fail-low/fail-high. A return value that falls
// strictly inside the probed window is exact; a return at either extreme of
// the full [lo, hi] range is exact by construction, since no tighter bound
// is reachable.
func (e *Evaluator) aspirate(pos *board.Position, lo, hi int) int {
	const lowStep, highStep = 6, 6

	a, b := lo, lo+1
	if b > hi {
		b = hi
	}
	for {
		e.tt.Clear()
		v := e.search(pos, a, b)
		switch {
		case v <= a:
			if a <= lo {
				return v
			}
			b = a
			a -= lowStep
			if a < lo {
				a = lo
			}
		case v >= b:
			if b >= hi {
				return v
			}
			a = b
			b += highStep
			if b > hi {
				b = hi
			}
		default:
			return v
		}
	}
}

// search returns the negamax value of pos, bounded to lie in [a, b] (fail-soft:
// the return value may lie outside [a, b] to report which side it failed
// on). pos is mutated via Play/Revert and is restored to its original state
// before returning.
func (e *Evaluator) search(pos *board.Position, a, b int) int {
	e.nodes++

	if pos.IsFull() {
		return 0
	}

	played := pos.MovesPlayed()
	possible := pos.PlayableMask()

	if wins := board.WinningMoves(pos.Player, pos.Occupied, possible); wins != 0 {
		return MaxScore - (played + 1)
	}

	safe := pos.NonLosingMoves(possible)
	if safe == 0 {
		return -(MaxScore - (played + 2))
	}

	if v := -(MaxScore - (played + 3)); a < v {
		a = v
	}
	if v := MaxScore - (played + 2); b > v {
		b = v
	}
	if a >= b {
		return a
	}

	key := pos.UniqueKey()
	refutation := int8(-1)
	if entry, ok := e.tt.Lookup(key); ok {
		refutation = entry.Move
		switch entry.Bound {
		case BoundExact:
			return int(entry.Value)
		case BoundLower:
			if int(entry.Value) > a {
				a = int(entry.Value)
			}
		case BoundUpper:
			if int(entry.Value) < b {
				b = int(entry.Value)
			}
		}
		if a >= b {
			return int(entry.Value)
		}
	}

	moves := orderMoves(pos, safe, refutation)

	best := -MaxScore - 1 // below any real score, so the first move always records a bestCol
	bestCol := int8(-1)
	aOrig := a

	for i := 0; i < moves.Len(); i++ {
		m, col := moves.Get(i)
		pos.Play(m)

		var v int
		if i == 0 {
			v = -e.search(pos, -b, -a)
		} else {
			v = -e.search(pos, -a-1, -a)
			if v > a && v < b {
				v = -e.search(pos, -b, -v)
			}
		}

		if v >= b {
			pos.Revert(m)
			e.tt.Insert(key, int8(v), BoundLower, uint8(played), int8(col))
			return v
		}
		if v > best {
			best = v
			bestCol = int8(col)
			if v > a {
				a = v
			}
		}
		pos.Revert(m)
	}

	bound := BoundUpper
	if a > aOrig {
		bound = BoundExact
	}
	e.tt.Insert(key, int8(best), bound, uint8(played), bestCol)
	return best
}
