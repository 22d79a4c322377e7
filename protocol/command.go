// Package protocol speaks the line-based game server protocol: the client
// opens a session with its name, then plays the games the server starts
// until it says goodbye.
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
)

type CommandType uint8

const (
	CmdOpen CommandType = iota
	CmdStart
	CmdMove
	CmdAck
	CmdEnd
	CmdBye
)

var commandNames = map[CommandType]string{
	CmdOpen:  "OPEN",
	CmdStart: "START",
	CmdMove:  "MOVE",
	CmdAck:   "ACK",
	CmdEnd:   "END",
	CmdBye:   "BYE",
}

func (t CommandType) String() string {
	return commandNames[t]
}

// Outcome is how a game ended for the receiving player.
type Outcome uint8

const (
	Win Outcome = iota
	Lose
	Tie
)

var outcomeNames = [...]string{"WIN", "LOSE", "TIE"}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// PlayerScore is one row of the tournament table sent with BYE.
type PlayerScore struct {
	Name   string
	Score  int
	Wins   int
	Losses int
}

// Command is one protocol line. Which fields are set depends on Type.
type Command struct {
	Type CommandType
	// Name is our name for OPEN and the opponent's for START.
	Name  string
	Color board.Color
	// TimeMs is the time left on our clock, for START and ACK.
	TimeMs int64
	Move   move.Move

	Outcome Outcome
	Mine    int
	Theirs  int
	Reason  string

	Scores []PlayerScore
}

var (
	ErrEmptyLine      = errors.New("empty line")
	ErrUnknownCommand = errors.New("unknown command")
)

func parseColor(s string) (board.Color, error) {
	switch s {
	case "BLACK":
		return board.Black, nil
	case "WHITE":
		return board.White, nil
	}
	return board.Black, fmt.Errorf("invalid color %q", s)
}

func parseOutcome(s string) (Outcome, error) {
	for i, name := range outcomeNames {
		if s == name {
			return Outcome(i), nil
		}
	}
	return Win, fmt.Errorf("invalid outcome %q", s)
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("want %s, got %q", usage, strings.Join(args, " "))
	}
	return nil
}

// Parse reads one line sent by the server or the client.
func Parse(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, ErrEmptyLine
	}
	args := tokens[1:]
	var cmd Command
	var err error
	switch tokens[0] {
	case "OPEN":
		cmd.Type = CmdOpen
		if err = wantArgs(args, 1, "OPEN <name>"); err == nil {
			cmd.Name = args[0]
		}
	case "START":
		cmd.Type = CmdStart
		if err = wantArgs(args, 3, "START <color> <opponent> <ms>"); err != nil {
			break
		}
		if cmd.Color, err = parseColor(args[0]); err != nil {
			break
		}
		cmd.Name = args[1]
		cmd.TimeMs, err = strconv.ParseInt(args[2], 10, 64)
	case "MOVE":
		cmd.Type = CmdMove
		if err = wantArgs(args, 1, "MOVE <move>"); err == nil {
			cmd.Move, err = move.FromString(args[0])
		}
	case "ACK":
		cmd.Type = CmdAck
		if err = wantArgs(args, 1, "ACK <ms>"); err == nil {
			cmd.TimeMs, err = strconv.ParseInt(args[0], 10, 64)
		}
	case "END":
		cmd.Type = CmdEnd
		if err = wantArgs(args, 4, "END <outcome> <n> <m> <reason>"); err != nil {
			break
		}
		if cmd.Outcome, err = parseOutcome(args[0]); err != nil {
			break
		}
		if cmd.Mine, err = strconv.Atoi(args[1]); err != nil {
			break
		}
		if cmd.Theirs, err = strconv.Atoi(args[2]); err != nil {
			break
		}
		cmd.Reason = args[3]
	case "BYE":
		cmd.Type = CmdBye
		cmd.Scores, err = parseScores(args)
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}
	if err != nil {
		return Command{}, fmt.Errorf("parsing %s: %w", tokens[0], err)
	}
	return cmd, nil
}

func parseScores(args []string) ([]PlayerScore, error) {
	if len(args)%4 != 0 {
		return nil, fmt.Errorf("want groups of <name> <score> <wins> <losses>, got %d fields", len(args))
	}
	scores := make([]PlayerScore, 0, len(args)/4)
	for i := 0; i < len(args); i += 4 {
		var ps PlayerScore
		var err error
		ps.Name = args[i]
		if ps.Score, err = strconv.Atoi(args[i+1]); err != nil {
			return nil, err
		}
		if ps.Wins, err = strconv.Atoi(args[i+2]); err != nil {
			return nil, err
		}
		if ps.Losses, err = strconv.Atoi(args[i+3]); err != nil {
			return nil, err
		}
		scores = append(scores, ps)
	}
	return scores, nil
}

// String is the wire form of c, without the line terminator.
func (c Command) String() string {
	switch c.Type {
	case CmdOpen:
		return "OPEN " + c.Name
	case CmdStart:
		return fmt.Sprintf("START %v %s %d", c.Color, c.Name, c.TimeMs)
	case CmdMove:
		return "MOVE " + c.Move.String()
	case CmdAck:
		return fmt.Sprintf("ACK %d", c.TimeMs)
	case CmdEnd:
		return fmt.Sprintf("END %v %d %d %s", c.Outcome, c.Mine, c.Theirs, c.Reason)
	case CmdBye:
		var sb strings.Builder
		sb.WriteString("BYE")
		for _, s := range c.Scores {
			fmt.Fprintf(&sb, " %s %d %d %d", s.Name, s.Score, s.Wins, s.Losses)
		}
		return sb.String()
	}
	return ""
}
