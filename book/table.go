// Package book is the opening book: win/loss statistics for positions from
// the first plies of recorded games, and the rules for playing from them.
package book

import (
	"github.com/domino14/othello/board"
)

// Stats counts the recorded games in which the player who just moved into a
// position went on to win or lose.
type Stats struct {
	Win  int `yaml:"win"`
	Lose int `yaml:"lose"`
}

// Games is the number of decided games behind s.
func (s Stats) Games() int {
	return s.Win + s.Lose
}

// WinRate is the fraction of decided games won; zero when there are none.
func (s Stats) WinRate() float64 {
	if s.Games() == 0 {
		return 0
	}
	return float64(s.Win) / float64(s.Games())
}

func (s Stats) add(o Stats) Stats {
	return Stats{Win: s.Win + o.Win, Lose: s.Lose + o.Lose}
}

// Table maps positions to their statistics. It is not safe for concurrent
// writes; once built or loaded it is only read.
type Table struct {
	entries map[board.Board]Stats
}

func NewTable() *Table {
	return &Table{entries: make(map[board.Board]Stats)}
}

// Add adds s to the statistics of b. Positions are stored in canonical
// form so a position and its symmetric twins share one entry.
func (t *Table) Add(b board.Board, s Stats) {
	key := board.Canonical(b)
	t.entries[key] = t.entries[key].add(s)
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the statistics of b summed over every distinct position
// symmetric to it, and whether any of them is in the table.
func (t *Table) Lookup(b board.Board) (Stats, bool) {
	var total Stats
	found := false
	for _, o := range board.Distinct(b) {
		if s, ok := t.entries[o]; ok {
			total = total.add(s)
			found = true
		}
	}
	return total, found
}
