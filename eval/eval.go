// Package eval scores leaf positions for the heuristic search.
package eval

import (
	"math/bits"

	"github.com/domino14/othello/board"
)

// MaterialScale multiplies the disc difference near the end of the game.
// 64 discs times this still fits in an int32, and it dwarfs every
// positional term.
const MaterialScale = 33554431

// MaterialHorizon is the number of remaining plies at or below which only
// the disc difference is scored.
const MaterialHorizon = 4

const (
	opennessWeight = 10
	mobilityWeight = 10
	stableWeight   = 50
)

var weights = [64]int{
	30, -12, 0, -1, -1, 0, -12, 30,
	-12, -15, -3, -3, -3, -3, -15, -12,
	0, -3, 0, -1, -1, 0, -3, 0,
	-1, -3, -1, -1, -1, -1, -3, -1,
	-1, -3, -1, -1, -1, -1, -3, -1,
	0, -3, 0, -1, -1, 0, -3, 0,
	-12, -15, -3, -3, -3, -3, -15, -12,
	30, -12, 0, -1, -1, 0, -12, 30,
}

// PositionalWeight sums the cell weights of every disc in mask.
func PositionalWeight(mask uint64) int {
	res := 0
	for mask != 0 {
		res += weights[bits.TrailingZeros64(mask)]
		mask &= mask - 1
	}
	return res
}

// Evaluate scores b from the point of view of c, who is to move. prev is
// the position one ply earlier; the cells the opponent gained or lost since
// then feed the openness term. depthFromRoot estimates how many plies of
// the game remain at this leaf.
func Evaluate(b, prev board.Board, c board.Color, depthFromRoot int) int {
	mover, opp := b.Masks(c)
	if depthFromRoot <= MaterialHorizon {
		return (board.Popcount(mover) - board.Popcount(opp)) * MaterialScale
	}
	_, prevOpp := prev.Masks(c)
	openness := board.Frontier(opp^prevOpp, mover, opp)
	mobility := board.Popcount(board.Flippable(mover, opp)) - board.Popcount(board.Flippable(opp, mover))
	stable := board.StableDiscs(mover) - board.StableDiscs(opp)

	return opennessWeight*openness +
		PositionalWeight(mover) - PositionalWeight(opp) +
		mobilityWeight*mobility +
		stableWeight*stable
}
