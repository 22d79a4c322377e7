package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/othello/board"
)

// ShellCompleter completes command names, their options, and the legal
// moves of the current position after play.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

var commandNames = []string{
	"new", "show", "play", "undo", "legal", "eval", "phase", "book",
	"search", "solve", "ai", "help", "exit",
}

var commandOptions = map[string][]string{
	"search": {"-time"},
	"solve":  {"-time"},
	"ai":     {"-time", "nobook"},
	"help":   commandNames,
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	if len(fields) > 0 && !endsWithSpace {
		prefix = fields[len(fields)-1]
	}

	var completions []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !endsWithSpace):
		completions = commandNames
	case fields[0] == "play" || fields[0] == "p":
		completions = c.legalMoves()
	default:
		completions = commandOptions[fields[0]]
	}

	lower := strings.ToLower(prefix)
	return lo.FilterMap(completions, func(s string, _ int) ([]rune, bool) {
		if !strings.HasPrefix(s, lower) {
			return nil, false
		}
		return []rune(s[len(prefix):]), true
	}), len(prefix)
}

func (c *ShellCompleter) legalMoves() []string {
	pos := c.sc.pos
	moves := lo.Map(board.Squares(board.LegalMoves(pos.b, pos.toMove)), func(sq board.Square, _ int) string {
		return strings.ToLower(sq.String())
	})
	if len(moves) == 0 {
		return []string{"pass"}
	}
	return moves
}
