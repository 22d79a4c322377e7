package board

import (
	"math/rand/v2"
	"sort"
	"strings"
	"testing"

	"github.com/matryer/is"
)

var allDirections = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func onBoard(c, r int) bool {
	return c >= 0 && c < 8 && r >= 0 && r < 8
}

// bruteFlips walks the eight directions cell by cell.
func bruteFlips(mover, opp uint64, sq Square) uint64 {
	var res uint64
	for _, d := range allDirections {
		var line uint64
		c, r := sq.Col()+d[0], sq.Row()+d[1]
		for onBoard(c, r) && opp&NewSquare(c, r).Bit() != 0 {
			line |= NewSquare(c, r).Bit()
			c += d[0]
			r += d[1]
		}
		if line != 0 && onBoard(c, r) && mover&NewSquare(c, r).Bit() != 0 {
			res |= line
		}
	}
	return res
}

func bruteLegal(b Board, c Color) uint64 {
	mover, opp := b.Masks(c)
	var res uint64
	for sq := Square(0); sq < 64; sq++ {
		if (mover|opp)&sq.Bit() != 0 {
			continue
		}
		if bruteFlips(mover, opp, sq) != 0 {
			res |= sq.Bit()
		}
	}
	return res
}

// randomBoards plays random games from the starting position and returns
// one position per game, along with the color on turn there.
func randomBoards(seed uint64, n int) ([]Board, []Color) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	boards := make([]Board, 0, n)
	colors := make([]Color, 0, n)
	for len(boards) < n {
		b := NewBoard()
		c := Black
		plies := rng.IntN(60)
		for i := 0; i < plies; i++ {
			moves := Squares(LegalMoves(b, c))
			if len(moves) == 0 {
				if !b.HasMoves(c.Opponent()) {
					break
				}
				c = c.Opponent()
				continue
			}
			b = b.Play(moves[rng.IntN(len(moves))], c)
			c = c.Opponent()
		}
		boards = append(boards, b)
		colors = append(colors, c)
	}
	return boards, colors
}

func squareNames(mask uint64) []string {
	var names []string
	for _, sq := range Squares(mask) {
		names = append(names, sq.String())
	}
	sort.Strings(names)
	return names
}

func TestOpeningMoves(t *testing.T) {
	is := is.New(t)
	b := NewBoard()
	is.Equal(squareNames(LegalMoves(b, Black)), []string{"C4", "D3", "E6", "F5"})
	is.Equal(Mobility(b, White), 4)
	is.Equal(b.Empties(), 60)
}

func TestLegalMovesMatchBruteForce(t *testing.T) {
	is := is.New(t)
	boards, colors := randomBoards(42, 250)
	for i, b := range boards {
		is.Equal(b.Black&b.White, uint64(0))
		for _, c := range []Color{colors[i], colors[i].Opponent()} {
			is.Equal(LegalMoves(b, c), bruteLegal(b, c))
		}
	}
}

func TestPlayFlipsAndGrows(t *testing.T) {
	is := is.New(t)
	boards, colors := randomBoards(7, 150)
	for i, b := range boards {
		c := colors[i]
		mover, opp := b.Masks(c)
		for _, sq := range Squares(LegalMoves(b, c)) {
			expected := bruteFlips(mover, opp, sq)
			is.Equal(Flips(mover, opp, sq.Bit()), expected)

			nb := b.Play(sq, c)
			is.Equal(nb.Black&nb.White, uint64(0))
			is.Equal(Popcount(nb.Occupied()), Popcount(b.Occupied())+1)
			is.Equal(nb.Discs(c), b.Discs(c)+1+Popcount(expected))
			is.Equal(nb.Discs(c.Opponent()), b.Discs(c.Opponent())-Popcount(expected))
		}
	}
}

func TestResult(t *testing.T) {
	is := is.New(t)
	b := Board{Black: 0x7, White: 0x8}
	is.Equal(Result(b, Black), 1)
	is.Equal(Result(b, White), -1)
	is.Equal(Result(Board{Black: 0x3, White: 0xc}, White), 0)
}

func TestStableDiscs(t *testing.T) {
	is := is.New(t)
	is.Equal(StableDiscs(0), 0)
	is.Equal(StableDiscs(NewSquare(0, 0).Bit()), 1)
	// A1, B1, C1
	is.Equal(StableDiscs(NewSquare(0, 0).Bit()|NewSquare(1, 0).Bit()|NewSquare(2, 0).Bit()), 3)
	// the whole A column is reached from both A1 and A8.
	is.Equal(StableDiscs(0xff), 8)
	// an interior disc is never counted.
	is.Equal(StableDiscs(NewSquare(3, 3).Bit()), 0)
}

func TestFrontier(t *testing.T) {
	is := is.New(t)
	center := NewSquare(3, 3).Bit()
	is.Equal(Frontier(center, center, 0), 8)
	cornerBit := NewSquare(0, 0).Bit()
	is.Equal(Frontier(cornerBit, cornerBit, 0), 3)
	edge := NewSquare(7, 4).Bit()
	is.Equal(Frontier(edge, edge, 0), 5)
	// occupied neighbours are not blank.
	b := NewBoard()
	is.Equal(Frontier(center, b.Black, b.White), 5)
}

func TestSquareText(t *testing.T) {
	is := is.New(t)
	for sq := Square(0); sq < 64; sq++ {
		parsed, err := ParseSquare(sq.String())
		is.NoErr(err)
		is.Equal(parsed, sq)
	}
	sq, err := ParseSquare("f5")
	is.NoErr(err)
	is.Equal(sq, NewSquare(5, 4))
	_, err = ParseSquare("I1")
	is.True(err != nil)
	_, err = ParseSquare("A9")
	is.True(err != nil)
	_, err = ParseSquare("A")
	is.True(err != nil)
	is.Equal(NoSquare.String(), "--")
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	txt := NewBoard().ToDisplayText()
	is.True(len(txt) > 0)
	lines := splitLines(txt)
	blank3 := strings.Repeat("  ", 3)
	// D4 is white and E4 is black.
	is.Equal(lines[5], "4|"+blank3+"O X "+blank3)
	is.Equal(lines[6], "5|"+blank3+"X O "+blank3)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
