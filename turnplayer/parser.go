package turnplayer

import (
	"fmt"
	"strings"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

// ParseColor accepts "black"/"b" and "white"/"w" in any case.
func ParseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return board.Black, nil
	case "white", "w":
		return board.White, nil
	}
	return board.Black, fmt.Errorf("unrecognized color: %s", s)
}

// ParseMove reads a move typed by a person, such as "f5" or "pass", and
// checks it is legal for c on b.
func ParseMove(b board.Board, c board.Color, fields []string) (move.Move, error) {
	if len(fields) != 1 {
		return move.Move{}, fmt.Errorf("unrecognized move: %s", strings.Join(fields, " "))
	}
	var m move.Move
	switch strings.ToLower(fields[0]) {
	case "pass":
		m = move.NewPass()
	case "resign", "giveup":
		m = move.NewResign()
	default:
		sq, err := board.ParseSquare(fields[0])
		if err != nil {
			return move.Move{}, err
		}
		m = move.NewPlacement(sq)
	}
	if err := move.Validate(b, m, c); err != nil {
		return move.Move{}, err
	}
	return m, nil
}
