package book

import (
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/othello/board"
)

// MinWinRate is the lowest win rate a book move may have.
const MinWinRate = 0.5

// Choice is a book move and the statistics of the position it leads to.
type Choice struct {
	Square board.Square
	Stats  Stats
}

// Book picks opening moves from a Table.
type Book struct {
	table *Table

	mu  sync.Mutex
	rng *frand.RNG
}

// New returns a book over t that draws from a randomly seeded generator.
func New(t *Table) *Book {
	return &Book{table: t, rng: frand.New()}
}

// NewSeeded returns a book whose choices are reproducible from seed, which
// must be 32 bytes long.
func NewSeeded(t *Table, seed []byte) *Book {
	return &Book{table: t, rng: frand.NewCustom(seed, 1024, 12)}
}

func (bk *Book) Table() *Table {
	return bk.table
}

// Candidates lists the legal moves of c on b whose resulting position is in
// the book with a win rate of at least MinWinRate, in square order.
func (bk *Book) Candidates(b board.Board, c board.Color) []Choice {
	var choices []Choice
	for _, sq := range board.Squares(board.LegalMoves(b, c)) {
		s, ok := bk.table.Lookup(b.Play(sq, c))
		if !ok || s.WinRate() < MinWinRate {
			continue
		}
		choices = append(choices, Choice{Square: sq, Stats: s})
	}
	return choices
}

// Choose picks one of the Candidates at random, weighted by the number of
// games won after it. ok is false when the book has nothing for b.
func (bk *Book) Choose(b board.Board, c board.Color) (sq board.Square, ok bool) {
	choices := bk.Candidates(b, c)
	if len(choices) == 0 {
		return board.NoSquare, false
	}
	total := 0
	for _, ch := range choices {
		total += ch.Stats.Win
	}
	bk.mu.Lock()
	rd := bk.rng.Intn(total)
	bk.mu.Unlock()

	for _, ch := range choices {
		rd -= ch.Stats.Win
		if rd < 0 {
			log.Debug().Str("move", ch.Square.String()).Int("wins", ch.Stats.Win).
				Int("losses", ch.Stats.Lose).Int("choices", len(choices)).Msg("book-move")
			return ch.Square, true
		}
	}
	return choices[len(choices)-1].Square, true
}
