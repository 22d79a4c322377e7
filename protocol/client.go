package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/turnplayer"
)

// ErrUnexpected is returned when the server sends a valid command at a
// point in the conversation where it makes no sense.
var ErrUnexpected = errors.New("unexpected command")

// Dial connects to the game server, retrying with backoff up to attempts
// times.
func Dial(ctx context.Context, addr string, attempts uint) (net.Conn, error) {
	var d net.Dialer
	var conn net.Conn
	err := retry.Do(
		func() error {
			c, err := d.DialContext(ctx, "tcp", addr)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Warn().Err(err).Uint("n", n).Str("addr", addr).Msg("could-not-connect-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	log.Info().Str("addr", addr).Msg("connected")
	return conn, nil
}

// thinkTimer is implemented by players that keep statistics on how long
// they take per move.
type thinkTimer interface {
	ThinkTimeSummary() (mean, stddev float64, n int)
}

// GameResult is the record of one finished game.
type GameResult struct {
	Opponent string
	Color    board.Color
	End      Command
	Board    board.Board
	History  History
}

// Client plays games on behalf of a TurnPlayer over one connection.
type Client struct {
	name    string
	player  turnplayer.TurnPlayer
	conn    io.ReadWriter
	r       *bufio.Reader
	out     io.Writer
	verbose bool

	results []GameResult
	scores  []PlayerScore
}

func NewClient(conn io.ReadWriter, name string, player turnplayer.TurnPlayer) *Client {
	return &Client{
		name:   name,
		player: player,
		conn:   conn,
		r:      bufio.NewReader(conn),
		out:    os.Stdout,
	}
}

// SetOutput sets where game reports are printed.
func (cl *Client) SetOutput(w io.Writer) {
	cl.out = w
}

// SetVerbose prints the board after every move of ours.
func (cl *Client) SetVerbose(v bool) {
	cl.verbose = v
}

func (cl *Client) Results() []GameResult {
	return cl.results
}

// Scores is the final table sent by the server, once Run has returned.
func (cl *Client) Scores() []PlayerScore {
	return cl.scores
}

// Run announces the player and plays every game the server starts until it
// says goodbye. The connection is closed when Run returns if it is an
// io.Closer; cancelling ctx closes it early.
func (cl *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	g := &errgroup.Group{}
	g.Go(func() error {
		defer cancel()
		return cl.serve(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		if c, ok := cl.conn.(io.Closer); ok {
			c.Close()
		}
		return nil
	})
	return g.Wait()
}

func (cl *Client) serve(ctx context.Context) error {
	if err := cl.send(Command{Type: CmdOpen, Name: cl.name}); err != nil {
		return err
	}
	for {
		cmd, err := cl.receive()
		if err != nil {
			return err
		}
		switch cmd.Type {
		case CmdBye:
			cl.scores = cmd.Scores
			fmt.Fprintln(cl.out, FormatScores(cmd.Scores))
			log.Info().Int("games", len(cl.results)).Msg("tournament-over")
			return nil
		case CmdStart:
			if err := cl.playGame(ctx, cmd); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %v while waiting for a game", ErrUnexpected, cmd.Type)
		}
	}
}

func (cl *Client) send(c Command) error {
	line := c.String()
	log.Debug().Str("line", line).Msg("send")
	if _, err := io.WriteString(cl.conn, line+"\n"); err != nil {
		return fmt.Errorf("sending %v: %w", c.Type, err)
	}
	return nil
}

// receive reads the next non-empty line and parses it.
func (cl *Client) receive() (Command, error) {
	for {
		line, err := cl.r.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return Command{}, fmt.Errorf("reading from server: %w", err)
		}
		log.Debug().Str("line", strings.TrimSpace(line)).Msg("received")
		cmd, perr := Parse(line)
		if errors.Is(perr, ErrEmptyLine) {
			if err != nil {
				return Command{}, fmt.Errorf("reading from server: %w", err)
			}
			continue
		}
		return cmd, perr
	}
}

func (cl *Client) playGame(ctx context.Context, start Command) error {
	res := GameResult{Opponent: start.Name, Color: start.Color, Board: board.NewBoard()}
	cl.player.InitSession(res.Color)
	cl.player.SetRemainingTime(start.TimeMs)
	log.Info().Str("opponent", res.Opponent).Str("color", res.Color.String()).
		Int64("ms", start.TimeMs).Msg("game-started")

	opp := res.Color.Opponent()
	myTurn := res.Color == board.Black
	passed := false
	for {
		if myTurn {
			m := cl.player.Play(ctx, res.Board, res.Color, passed)
			if err := cl.send(Command{Type: CmdMove, Move: m}); err != nil {
				return err
			}
			res.Board = move.Apply(res.Board, m, res.Color)
			if cl.verbose {
				fmt.Fprintf(cl.out, "%s\nPMove: %v %v\n%s", strings.Repeat("-", 80), m, res.Color, res.Board)
			}
			reply, err := cl.receive()
			if err != nil {
				return err
			}
			switch reply.Type {
			case CmdAck:
				res.History = append(res.History, Ply{Ours: true, Move: m})
				cl.player.SetRemainingTime(reply.TimeMs)
				myTurn = false
			case CmdEnd:
				return cl.finish(res, reply)
			default:
				return fmt.Errorf("%w: %v after our move", ErrUnexpected, reply.Type)
			}
			continue
		}

		reply, err := cl.receive()
		if err != nil {
			return err
		}
		switch reply.Type {
		case CmdMove:
			if err := move.Validate(res.Board, reply.Move, opp); err != nil {
				log.Warn().Err(err).Str("move", reply.Move.String()).Msg("opponent-move-looks-illegal")
			}
			res.Board = move.Apply(res.Board, reply.Move, opp)
			res.History = append(res.History, Ply{Move: reply.Move})
			passed = reply.Move.IsPass()
			myTurn = true
		case CmdEnd:
			return cl.finish(res, reply)
		default:
			return fmt.Errorf("%w: %v while waiting for the opponent", ErrUnexpected, reply.Type)
		}
	}
}

func (cl *Client) finish(res GameResult, end Command) error {
	res.End = end
	cl.results = append(cl.results, res)

	fmt.Fprintln(cl.out, outcomeText(end))
	fmt.Fprintf(cl.out, "Your name: %s (%v)  Opponent name: %s (%v).\n",
		cl.name, res.Color, res.Opponent, res.Color.Opponent())
	fmt.Fprint(cl.out, res.Board.ToDisplayText())
	fmt.Fprintln(cl.out, res.History)

	evt := log.Info().Str("outcome", end.Outcome.String()).Int("mine", end.Mine).
		Int("theirs", end.Theirs).Str("reason", end.Reason).Str("history", res.History.String())
	if tt, ok := cl.player.(thinkTimer); ok {
		mean, stddev, n := tt.ThinkTimeSummary()
		evt = evt.Float64("think-mean-sec", mean).Float64("think-stddev-sec", stddev).Int("decisions", n)
	}
	evt.Msg("game-over")
	return nil
}
