package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/endgame"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/search"
	"github.com/domino14/othello/turnplayer"
)

// DefaultThinkTime bounds ai, search and solve when no -time is given.
const DefaultThinkTime = 5 * time.Second

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits line into a command, its positional arguments, and
// its -name value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			cmd.options[f[1:]] = fields[i+1]
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (c *shellcmd) duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := c.options[key]
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("-%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("-%s must be positive", key)
	}
	return d, nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	sc.reset()
	for _, m := range cmd.args {
		if _, err := sc.play(&shellcmd{cmd: "play", args: []string{m}}); err != nil {
			return nil, err
		}
	}
	return msg(sc.status()), nil
}

// play accepts one or more moves in a row, such as "play f5 d6 c3".
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <move> [<move> ...]")
	}
	for _, arg := range cmd.args {
		m, err := turnplayer.ParseMove(sc.pos.b, sc.pos.toMove, []string{arg})
		if err != nil {
			return nil, err
		}
		if m.Action() == move.MoveTypeResign {
			return nil, errors.New("resigning is not supported here; use new")
		}
		sc.apply(m)
	}
	return msg(sc.status()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	n := 1
	if len(cmd.args) > 0 {
		var err error
		if n, err = strconv.Atoi(cmd.args[0]); err != nil || n < 1 {
			return nil, fmt.Errorf("bad undo count %q", cmd.args[0])
		}
	}
	if n > len(sc.history) {
		return nil, errors.New("nothing to undo")
	}
	sc.pos = sc.history[len(sc.history)-n]
	sc.history = sc.history[:len(sc.history)-n]
	return msg(sc.status()), nil
}

func (sc *ShellController) legal(cmd *shellcmd) (*Response, error) {
	cands := search.Order(sc.pos.b, sc.pos.toMove)
	if len(cands) == 0 {
		return msg(fmt.Sprintf("%v has no legal moves.", sc.pos.toMove)), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d moves for %v (best first by opponent mobility):\n", len(cands), sc.pos.toMove)
	for _, c := range cands {
		fmt.Fprintf(&sb, "  %v  opponent replies %d\n", c.Square, -c.Score)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) evaluate(cmd *shellcmd) (*Response, error) {
	b, c := sc.pos.b, sc.pos.toMove
	mover, opp := b.Masks(c)
	score := eval.Evaluate(b, sc.previous(), c, b.Empties())
	return msg(fmt.Sprintf(
		"Evaluation for %v: %d\n  mobility %d vs %d\n  stable discs %d vs %d\n  positional %d vs %d",
		c, score,
		board.Mobility(b, c), board.Mobility(b, c.Opponent()),
		board.StableDiscs(mover), board.StableDiscs(opp),
		eval.PositionalWeight(mover), eval.PositionalWeight(opp))), nil
}

// strategy names what the engine does at phase p.
func (sc *ShellController) strategy(p int) string {
	s := sc.settings
	switch {
	case p >= s.BookThreshold:
		return "opening book, then iterative deepening"
	case p >= s.LadderThreshold:
		return fmt.Sprintf("iterative deepening %v", s.Ladder)
	case p > s.FixedDepth:
		return fmt.Sprintf("depth %d search refined by the endgame solver", s.FixedDepth)
	}
	return "endgame solver"
}

func (sc *ShellController) phaseInfo(cmd *shellcmd) (*Response, error) {
	p := sc.phase()
	return msg(fmt.Sprintf("Phase %d: %s.", p, sc.strategy(p))), nil
}

func (sc *ShellController) bookMoves(cmd *shellcmd) (*Response, error) {
	bk := sc.player.Book()
	if bk == nil {
		return nil, errors.New("no opening book loaded; set book-path")
	}
	choices := bk.Candidates(sc.pos.b, sc.pos.toMove)
	if len(choices) == 0 {
		return msg("Out of book."), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Book moves for %v:\n", sc.pos.toMove)
	for _, ch := range choices {
		fmt.Fprintf(&sb, "  %v  won %d lost %d (%.1f%%)\n", ch.Square,
			ch.Stats.Win, ch.Stats.Lose, 100*ch.Stats.WinRate())
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

// timeBox arms the session deadline for an analysis command and returns a
// function that disarms it.
func (sc *ShellController) timeBox(d time.Duration) func() {
	sess := sc.player.Session()
	sess.Resume()
	sess.SetDeadline(time.Now().Add(d))
	return sess.ClearDeadline
}

func (sc *ShellController) search(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: search <depth> [-time 5s]")
	}
	depth, err := strconv.Atoi(cmd.args[0])
	if err != nil || depth < 1 {
		return nil, fmt.Errorf("bad depth %q", cmd.args[0])
	}
	limit, err := cmd.duration("time", DefaultThinkTime)
	if err != nil {
		return nil, err
	}
	cands := search.Order(sc.pos.b, sc.pos.toMove)
	if len(cands) == 0 {
		return msg(fmt.Sprintf("%v has no legal moves.", sc.pos.toMove)), nil
	}
	defer sc.timeBox(limit)()

	start := time.Now()
	ranked := sc.player.Midgame().SearchRoot(ctx, sc.pos.b, sc.pos.toMove, depth, cands)
	elapsed := time.Since(start)
	log.Debug().Int("depth", depth).Dur("elapsed", elapsed).Msg("shell-search")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Depth %d search for %v in %v", depth, sc.pos.toMove, elapsed.Round(time.Millisecond))
	if sc.player.Session().Cancelled() {
		sb.WriteString(" (timed out)")
	}
	sb.WriteString(":\n")
	for i, c := range ranked {
		fmt.Fprintf(&sb, "%3d: %v\n", i+1, c)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func outcomeName(v int) string {
	switch v {
	case endgame.Win:
		return "win"
	case endgame.Draw:
		return "draw"
	}
	return "loss"
}

func (sc *ShellController) solve(ctx context.Context, cmd *shellcmd) (*Response, error) {
	limit, err := cmd.duration("time", DefaultThinkTime)
	if err != nil {
		return nil, err
	}
	cands := search.Order(sc.pos.b, sc.pos.toMove)
	if len(cands) == 0 {
		return msg(fmt.Sprintf("%v has no legal moves.", sc.pos.toMove)), nil
	}
	defer sc.timeBox(limit)()

	best, value, _ := sc.player.Endgame().SolveRoot(ctx, sc.pos.toMove, cands)
	if sc.player.Session().Cancelled() {
		return msg(fmt.Sprintf("Timed out; best so far %v (%s or better).", best.Square, outcomeName(value))), nil
	}
	return msg(fmt.Sprintf("%v plays %v: %s.", sc.pos.toMove, best.Square, outcomeName(value))), nil
}

// ai lets the engine choose a move for the side to move, as it would in a
// game reaching this position, and plays it.
func (sc *ShellController) ai(ctx context.Context, cmd *shellcmd) (*Response, error) {
	limit, err := cmd.duration("time", DefaultThinkTime)
	if err != nil {
		return nil, err
	}
	if gameOver(sc.pos.b) {
		return nil, errors.New("the game is over")
	}
	// the session is reset, not the player, so think times accumulate.
	sess := sc.player.Session()
	sess.Init(sc.pos.toMove)
	sess.SetPhase(sc.phase())
	if len(cmd.args) > 0 && cmd.args[0] == "nobook" {
		sess.MarkBookExhausted()
	}
	sess.SetDeadline(time.Now().Add(limit))
	defer sess.ClearDeadline()

	m := sc.player.Play(ctx, sc.pos.b, sc.pos.toMove, sc.pos.passed)
	mover := sc.pos.toMove
	sc.apply(m)
	return msg(fmt.Sprintf("%v plays %v\n%s", mover, m, sc.status())), nil
}
