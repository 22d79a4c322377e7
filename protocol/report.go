package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/othello/move"
)

// Ply is one entry of a game history. Ours is false for opponent moves.
type Ply struct {
	Ours bool
	Move move.Move
}

// History is the moves of a game in order.
type History []Ply

// String renders h as "+F5-D6+C3...", ours marked '+' and the
// opponent's '-'.
func (h History) String() string {
	var sb strings.Builder
	for _, p := range h {
		if p.Ours {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(p.Move.String())
	}
	return sb.String()
}

// FormatScores lays the BYE table out one player per line with the names
// padded and the scores right-aligned.
func FormatScores(scores []PlayerScore) string {
	nameWidth := lo.Max(lo.Map(scores, func(s PlayerScore, _ int) int { return len(s.Name) }))
	scoreWidth := lo.Max(lo.Map(scores, func(s PlayerScore, _ int) int { return len(strconv.Itoa(s.Score)) }))
	var sb strings.Builder
	for _, s := range scores {
		fmt.Fprintf(&sb, "%s:%s%*d (Win %d, Lose %d)\n", s.Name,
			strings.Repeat(" ", nameWidth+1-len(s.Name)), scoreWidth, s.Score, s.Wins, s.Losses)
	}
	return sb.String()
}

func outcomeText(c Command) string {
	switch c.Outcome {
	case Win:
		return fmt.Sprintf("You win! (%d vs. %d) -- %s.", c.Mine, c.Theirs, c.Reason)
	case Lose:
		return fmt.Sprintf("You lose! (%d vs. %d) -- %s.", c.Mine, c.Theirs, c.Reason)
	}
	return fmt.Sprintf("Draw (%d vs. %d) -- %s.", c.Mine, c.Theirs, c.Reason)
}
