// Package board implements an 8x8 Othello board as a pair of bitboards,
// along with move generation, disc flipping and the positional features
// used by the evaluator.
package board

import "math/bits"

// Color is the color of a disc, or of the player on turn.
type Color uint8

const (
	Black Color = iota
	White
)

// Opponent returns the other color.
func (c Color) Opponent() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == Black {
		return "BLACK"
	}
	return "WHITE"
}

const (
	initialBlack uint64 = 0x0000000810000000
	initialWhite uint64 = 0x0000001008000000
)

// A Board holds one occupancy mask per color. Bit i of a mask is the cell
// Square(i). The two masks never intersect.
type Board struct {
	Black uint64
	White uint64
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	return Board{Black: initialBlack, White: initialWhite}
}

// Masks returns the masks of the mover and of the opponent.
func (b Board) Masks(c Color) (mover, opp uint64) {
	if c == Black {
		return b.Black, b.White
	}
	return b.White, b.Black
}

func fromMasks(c Color, mover, opp uint64) Board {
	if c == Black {
		return Board{Black: mover, White: opp}
	}
	return Board{Black: opp, White: mover}
}

// Occupied returns the mask of all discs on the board.
func (b Board) Occupied() uint64 {
	return b.Black | b.White
}

// Blank returns the mask of all empty cells.
func (b Board) Blank() uint64 {
	return ^(b.Black | b.White)
}

// Empties is the number of empty cells.
func (b Board) Empties() int {
	return 64 - Popcount(b.Occupied())
}

// Discs counts the discs of color c.
func (b Board) Discs(c Color) int {
	m, _ := b.Masks(c)
	return Popcount(m)
}

// Legal reports whether c may place a disc on sq.
func (b Board) Legal(sq Square, c Color) bool {
	return LegalMoves(b, c)&sq.Bit() != 0
}

// HasMoves reports whether c has at least one placement.
func (b Board) HasMoves(c Color) bool {
	return LegalMoves(b, c) != 0
}

// Play places a disc of color c on sq and flips every captured line. The
// caller is responsible for sq being a legal placement.
func (b Board) Play(sq Square, c Color) Board {
	mover, opp := b.Masks(c)
	pos := sq.Bit()
	f := Flips(mover, opp, pos)
	mover |= f | pos
	opp &^= f
	return fromMasks(c, mover, opp)
}

// Result is +1, -1 or 0 depending on whether c has more, fewer or as many
// discs as its opponent.
func Result(b Board, c Color) int {
	mover, opp := b.Masks(c)
	mc, oc := Popcount(mover), Popcount(opp)
	switch {
	case mc > oc:
		return 1
	case mc < oc:
		return -1
	}
	return 0
}

// Popcount returns the number of set bits in mask.
func Popcount(mask uint64) int {
	return bits.OnesCount64(mask)
}

// Squares lists the cells set in mask in increasing order.
func Squares(mask uint64) []Square {
	sqs := make([]Square, 0, Popcount(mask))
	for mask != 0 {
		sqs = append(sqs, Square(bits.TrailingZeros64(mask)))
		mask &= mask - 1
	}
	return sqs
}
