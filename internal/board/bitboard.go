// Package board implements the Connect Four bitboard representation: move
// generation, win detection, threat masks, and the position key used by the
// transposition table.
package board

import "math/bits"

// Bitboard is a 64-bit word whose bits represent cells of the Connect Four
// grid under the layout described in Position's doc comment.
type Bitboard uint64

const (
	// Width is the number of columns.
	Width = 7
	// Height is the number of playable rows per column.
	Height = 6
	// Stride is the number of bits reserved per column: one per playable
	// row plus a single guard bit above the top row.
	Stride = Height + 1
	// Size is the number of playable cells on the board.
	Size = Width * Height
)

// Directions enumerates the four bit-shift deltas that correspond to a line
// of four: vertical, the two diagonals, and horizontal.
var Directions = [4]int{1, Height, Stride, Height + 2}

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the bit index of the lowest set bit, or -1 if empty.
func (b Bitboard) LSB() int {
	if b == 0 {
		return -1
	}
	return bits.TrailingZeros64(uint64(b))
}

// PopLSB clears and returns the lowest set bit's index.
func (b *Bitboard) PopLSB() int {
	idx := b.LSB()
	*b &= *b - 1
	return idx
}

// Empty reports whether no bits are set.
func (b Bitboard) Empty() bool {
	return b == 0
}

// HasMoreThanOne reports whether at least two bits are set.
func (b Bitboard) HasMoreThanOne() bool {
	return b&(b-1) != 0
}

// FirstMove returns the lowest set bit of b as a Move, or NoMove if b is
// empty.
func (b Bitboard) FirstMove() Move {
	idx := b.LSB()
	if idx < 0 {
		return NoMove
	}
	return Move(Bitboard(1) << uint(idx))
}

// columnMask returns the Height playable bits of column col (the guard bit
// is not included).
func columnMask(col int) Bitboard {
	return ((Bitboard(1) << Height) - 1) << (col * Stride)
}

// bottomMaskCol returns the single bit at the bottom of column col.
func bottomMaskCol(col int) Bitboard {
	return Bitboard(1) << (col * Stride)
}

// topMaskCol returns the single bit at the top playable row of column col.
func topMaskCol(col int) Bitboard {
	return Bitboard(1) << (Height - 1 + col*Stride)
}

var (
	bottomRow Bitboard
	topRow    Bitboard
	playable  Bitboard
)

func init() {
	for col := 0; col < Width; col++ {
		bottomRow |= bottomMaskCol(col)
		topRow |= topMaskCol(col)
		playable |= columnMask(col)
	}
}
