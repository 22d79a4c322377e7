package book

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/domino14/othello/board"
)

// DefaultPlies is how many plies of each recorded game go into the book.
const DefaultPlies = 20

// ParseLog builds a table from a game log. Each line holds one game: the
// moves as a single token such as "+f5-d6+c3", each ply a sign followed by
// a column letter and row digit, then the final disc margin for the first
// player, such as "+12" or "-4". The positions after each of the first
// plies are counted as a win for the player who just moved if that player
// won the game, and as a loss otherwise. Drawn games are skipped. Blank
// lines and lines starting with '#' are ignored.
func ParseLog(r io.Reader, plies int) (*Table, error) {
	t := NewTable()
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := t.addGame(line, plies); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) addGame(line string, plies int) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("want moves and a result, got %q", line)
	}
	margin, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("bad result %q: %w", fields[1], err)
	}
	codes := strings.FieldsFunc(fields[0], func(r rune) bool { return r == '+' || r == '-' })
	if len(codes) < plies {
		return fmt.Errorf("game has %d plies, want at least %d", len(codes), plies)
	}
	if margin == 0 {
		return nil
	}
	firstWon := margin > 0

	b := board.NewBoard()
	c := board.Black
	for i, code := range codes[:plies] {
		sq, err := board.ParseSquare(code)
		if err != nil {
			return fmt.Errorf("ply %d: %w", i+1, err)
		}
		if !b.Legal(sq, c) {
			return fmt.Errorf("ply %d: %v is not legal for %v", i+1, sq, c)
		}
		b = b.Play(sq, c)
		if (c == board.Black) == firstWon {
			t.Add(b, Stats{Win: 1})
		} else {
			t.Add(b, Stats{Lose: 1})
		}
		c = c.Opponent()
	}
	return nil
}
