package testhelpers

import (
	"fmt"
	"math/rand/v2"

	"github.com/domino14/othello/board"
)

// Playout plays plies random legal moves from the starting position,
// passing when a side has none, and returns the board and the side to move.
func Playout(rng *rand.Rand, plies int) (board.Board, board.Color) {
	b := board.NewBoard()
	c := board.Black
	for range plies {
		moves := board.Squares(board.LegalMoves(b, c))
		if len(moves) > 0 {
			b = b.Play(moves[rng.IntN(len(moves))], c)
		}
		c = c.Opponent()
	}
	return b, c
}

// Position plays moves, black first and alternating, from the starting
// position. It panics on an illegal move.
func Position(moves ...string) board.Board {
	b := board.NewBoard()
	c := board.Black
	for _, m := range moves {
		sq, err := board.ParseSquare(m)
		if err != nil {
			panic(err)
		}
		if !b.Legal(sq, c) {
			panic(fmt.Sprintf("%s is not legal for %v", m, c))
		}
		b = b.Play(sq, c)
		c = c.Opponent()
	}
	return b
}
