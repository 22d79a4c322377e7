package turnplayer

import (
	"context"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

// TurnPlayer encapsulates what a game client needs to have a player make
// its moves.
type TurnPlayer interface {
	// InitSession starts a new game playing c.
	InitSession(c board.Color)
	// SetRemainingTime sets the clock for the next decision.
	SetRemainingTime(ms int64)
	// Play decides the move of c on b. passed is set when the opponent
	// just passed.
	Play(ctx context.Context, b board.Board, c board.Color, passed bool) move.Move
}
