// Package search has the pieces the midgame and endgame searchers share:
// candidate ordering, the root fan-out over the worker pool and the abort
// signal.
package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/domino14/othello/board"
)

// Infinity bounds every heuristic score. A proven win is worth Infinity.
const Infinity = math.MaxInt32

// ErrAborted is returned by a search that saw the cancellation flag.
var ErrAborted = errors.New("search aborted")

// Candidate is a legal move at the root together with the position it
// leads to. Score is an ordering key before a search and a search value
// after one. Exact is false when the value is only an upper bound.
type Candidate struct {
	Score  int
	Square board.Square
	Board  board.Board
	Exact  bool
}

func (c Candidate) String() string {
	if c.Exact {
		return fmt.Sprintf("%v(%d)", c.Square, c.Score)
	}
	return fmt.Sprintf("%v(<=%d)", c.Square, c.Score)
}

// Order returns the legal moves of c on b, best first by the heuristic
// that fewer replies for the opponent is better.
func Order(b board.Board, c board.Color) []Candidate {
	opp := c.Opponent()
	cands := lo.Map(board.Squares(board.LegalMoves(b, c)), func(sq board.Square, _ int) Candidate {
		nb := b.Play(sq, c)
		return Candidate{Score: -board.Mobility(nb, opp), Square: sq, Board: nb}
	})
	Sort(cands)
	return cands
}

// Sort orders cands by descending score. An exact score ranks ahead of a
// bound of the same value. The sort is stable; candidate lists are short
// so an insertion sort is used.
func Sort(cands []Candidate) {
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && better(cands[j], cands[j-1]); j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
}

func better(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Exact && !b.Exact
}

// Partition deals cands round-robin into n lists. Lists that would be
// empty are omitted.
func Partition(cands []Candidate, n int) [][]Candidate {
	if n < 1 {
		n = 1
	}
	parts := make([][]Candidate, 0, n)
	for i := range n {
		part := lo.Filter(cands, func(_ Candidate, j int) bool { return j%n == i })
		if len(part) > 0 {
			parts = append(parts, part)
		}
	}
	return parts
}

// Squares lists the squares of cands in order.
func Squares(cands []Candidate) []board.Square {
	return lo.Map(cands, func(c Candidate, _ int) board.Square { return c.Square })
}
