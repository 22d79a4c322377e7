// Package shell is an interactive analysis console: set up a position by
// playing moves, then ask the engine what it would do.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/book"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/session"
	"github.com/domino14/othello/turnplayer"
)

const HistoryFile = "/tmp/othello-readline.tmp"

var errExit = errors.New("exit")

// position is the board together with whose turn it is.
type position struct {
	b      board.Board
	toMove board.Color
	passed bool
	last   move.Move
}

type ShellController struct {
	l *readline.Instance

	config   *config.Config
	settings *turnplayer.Settings
	player   *turnplayer.AIPlayer

	pos     position
	history []position
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// New returns a controller at the starting position. bk may be nil.
func New(cfg *config.Config, bk *book.Book) (*ShellController, error) {
	settings := turnplayer.SettingsFromConfig(cfg)
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	sc := &ShellController{
		config:   cfg,
		settings: settings,
		player:   turnplayer.NewAIPlayer(settings, bk),
	}
	sc.reset()
	return sc, nil
}

// NewShellController is New with a readline prompt attached, ready for Loop.
func NewShellController(cfg *config.Config, bk *book.Book) (*ShellController, error) {
	sc, err := New(cfg, bk)
	if err != nil {
		return nil, err
	}
	sc.l, err = readline.NewEx(&readline.Config{
		Prompt:          "\033[32mothello>\033[0m ",
		HistoryFile:     HistoryFile,
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		sc.Close()
		return nil, err
	}
	return sc, nil
}

// Close stops the engine's workers.
func (sc *ShellController) Close() {
	sc.player.Close()
}

func (sc *ShellController) reset() {
	sc.pos = position{b: board.NewBoard(), toMove: board.Black}
	sc.history = sc.history[:0]
}

// apply plays m for the side to move and hands the turn over.
func (sc *ShellController) apply(m move.Move) {
	sc.history = append(sc.history, sc.pos)
	sc.pos = position{
		b:      move.Apply(sc.pos.b, m, sc.pos.toMove),
		toMove: sc.pos.toMove.Opponent(),
		passed: m.IsPass(),
		last:   m,
	}
}

// phase estimates the phase counter the engine would have reached in a
// real game at the current position.
func (sc *ShellController) phase() int {
	plies := 60 - sc.pos.b.Empties()
	return session.InitialPhase - plies + plies%2
}

func (sc *ShellController) previous() board.Board {
	if len(sc.history) == 0 {
		return sc.pos.b
	}
	return sc.history[len(sc.history)-1].b
}

func gameOver(b board.Board) bool {
	return !b.HasMoves(board.Black) && !b.HasMoves(board.White)
}

func (sc *ShellController) status() string {
	var sb strings.Builder
	sb.WriteString(sc.pos.b.ToDisplayText())
	black, white := sc.pos.b.Discs(board.Black), sc.pos.b.Discs(board.White)
	fmt.Fprintf(&sb, "Black %d  White %d  Empties %d\n", black, white, sc.pos.b.Empties())
	switch {
	case gameOver(sc.pos.b):
		switch {
		case black > white:
			sb.WriteString("Game over: BLACK wins.")
		case white > black:
			sb.WriteString("Game over: WHITE wins.")
		default:
			sb.WriteString("Game over: draw.")
		}
	case !sc.pos.b.HasMoves(sc.pos.toMove):
		fmt.Fprintf(&sb, "%v to move and must pass.", sc.pos.toMove)
	default:
		fmt.Fprintf(&sb, "%v to move.", sc.pos.toMove)
	}
	return sb.String()
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

// execute runs one line of input.
func (sc *ShellController) execute(ctx context.Context, line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show":
		return msg(sc.status()), nil
	case "play", "p":
		return sc.play(cmd)
	case "undo":
		return sc.undo(cmd)
	case "legal", "moves":
		return sc.legal(cmd)
	case "eval":
		return sc.evaluate(cmd)
	case "phase":
		return sc.phaseInfo(cmd)
	case "book":
		return sc.bookMoves(cmd)
	case "search":
		return sc.search(ctx, cmd)
	case "solve":
		return sc.solve(ctx, cmd)
	case "ai":
		return sc.ai(ctx, cmd)
	}
	return nil, fmt.Errorf("unrecognized command: %s", cmd.cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	defer sc.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		resp, err := sc.execute(context.Background(), line)
		if errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			showMessage(resp.message, sc.l.Stdout())
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}
