package eval

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
)

func afterF5() board.Board {
	f5, _ := board.ParseSquare("F5")
	return board.NewBoard().Play(f5, board.Black)
}

func TestMaterialNearHorizon(t *testing.T) {
	is := is.New(t)
	b := afterF5()
	start := board.NewBoard()
	is.Equal(Evaluate(start, start, board.Black, 0), 0)
	is.Equal(Evaluate(b, start, board.White, MaterialHorizon), -3*MaterialScale)
	is.Equal(Evaluate(b, start, board.Black, 1), 3*MaterialScale)
	// a full board of one color still fits in an int32.
	full := board.Board{Black: ^uint64(0)}
	is.True(Evaluate(full, full, board.Black, 0) <= 1<<31-1)
}

func TestPositionalTerms(t *testing.T) {
	is := is.New(t)
	b := afterF5()
	start := board.NewBoard()
	// white to move: seven blank cells border the two discs black gained,
	// white holds the better squares by 3, and both sides have 3 moves.
	is.Equal(Evaluate(b, start, board.White, 60), 73)
	is.Equal(Evaluate(b, start, board.Black, 60), 37)
}

func TestPositionalWeight(t *testing.T) {
	is := is.New(t)
	corners := board.NewSquare(0, 0).Bit() | board.NewSquare(7, 0).Bit() |
		board.NewSquare(0, 7).Bit() | board.NewSquare(7, 7).Bit()
	is.Equal(PositionalWeight(corners), 120)
	is.Equal(PositionalWeight(board.NewSquare(1, 1).Bit()), -15)
	is.Equal(PositionalWeight(0), 0)
}

func TestEvaluateIsSymmetric(t *testing.T) {
	is := is.New(t)
	start := board.NewBoard()
	b := afterF5()
	prev := board.Expand(start)
	for i, o := range board.Expand(b) {
		for _, depth := range []int{2, 30} {
			is.Equal(Evaluate(o, prev[i], board.White, depth), Evaluate(b, start, board.White, depth))
		}
	}
}
