package turnplayer

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/book"
	"github.com/domino14/othello/config"
	"github.com/domino14/othello/endgame"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/search"
	"github.com/domino14/othello/testhelpers"
)

func fastSettings() *Settings {
	s := DefaultSettings()
	s.Ladder = []int{1, 2}
	s.FixedDepth = 2
	s.Threads = 2
	s.PollInterval = time.Millisecond
	s.ReservePerPly = 0
	s.ReserveBase = 0
	return s
}

func newPlayer(t *testing.T, s *Settings, bk *book.Book) *AIPlayer {
	p := NewAIPlayer(s, bk)
	t.Cleanup(p.Close)
	return p
}

func openingBook(t *testing.T) *book.Book {
	tbl, err := book.ParseLog(strings.NewReader("+f5-d6+c3-d3 +4\n+f5-d6+c3-d3 +4\n"), 4)
	if err != nil {
		t.Fatal(err)
	}
	return book.NewSeeded(tbl, bytes.Repeat([]byte{1}, 32))
}

func TestOpeningFromBook(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), openingBook(t))
	p.InitSession(board.Black)
	p.Session().ClearDeadline()

	m := p.Play(context.Background(), board.NewBoard(), board.Black, false)
	is.True(m.IsPlacement())
	is.True(board.NewBoard().Legal(m.Square(), board.Black))
	is.Equal(p.Session().Phase(), 62)
	is.True(!p.Session().BookExhausted())

	// the book knows nothing after f5-f6, so the player falls back on
	// search for the rest of the game.
	pos := testhelpers.Position("f5", "f6")
	m = p.Play(context.Background(), pos, board.Black, false)
	is.True(pos.Legal(m.Square(), board.Black))
	is.True(p.Session().BookExhausted())
	is.Equal(p.Session().Phase(), 60)
}

func TestPlayWithoutBook(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), nil)
	p.InitSession(board.White)
	p.SetRemainingTime(60_000)
	pos := testhelpers.Position("f5")
	m := p.Play(context.Background(), pos, board.White, false)
	is.True(m.IsPlacement())
	is.True(pos.Legal(m.Square(), board.White))
	is.True(p.Session().BookExhausted())
}

func TestPassWhenNoMoves(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), nil)
	b := board.Board{Black: 0xffff, White: 0xff << 56}
	for _, phase := range []int{64, 30, 12, 2} {
		p.InitSession(board.Black)
		p.Session().SetPhase(phase)
		m := p.Play(context.Background(), b, board.Black, true)
		is.True(m.IsPass())
	}
}

func TestEndgamePlaysPerfectly(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), nil)
	solver := p.Endgame()
	rng := rand.New(rand.NewPCG(21, 12))
	for range 10 {
		b, c := testhelpers.Playout(rng, 54)
		cands := search.Order(b, c)
		if len(cands) == 0 {
			continue
		}
		p.InitSession(c)
		p.Session().ClearDeadline()
		p.Session().SetPhase(6)

		want := endgame.Loss
		for _, cand := range cands {
			v, err := solver.Solve(cand.Board, c.Opponent(), false)
			is.NoErr(err)
			want = max(want, -v)
		}
		m := p.Play(context.Background(), b, c, false)
		is.True(m.IsPlacement())
		v, err := solver.Solve(b.Play(m.Square(), c), c.Opponent(), false)
		is.NoErr(err)
		is.Equal(-v, want)
	}
}

func TestFixedDepthThenSolverRespectsDeadline(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), nil)
	b, c := testhelpers.Playout(rand.New(rand.NewPCG(4, 4)), 40)
	p.InitSession(c)
	p.Session().SetPhase(20)
	p.SetRemainingTime(100)

	start := time.Now()
	m := p.Play(context.Background(), b, c, false)
	is.True(time.Since(start) < 5*time.Second)
	if b.HasMoves(c) {
		is.True(b.Legal(m.Square(), c))
	} else {
		is.True(m.IsPass())
	}
	is.Equal(p.Session().Phase(), 18)
}

func TestPlayClearsCancellation(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), nil)
	// C1 takes white's only disc.
	b := board.Board{Black: board.NewSquare(0, 0).Bit(), White: board.NewSquare(1, 0).Bit()}
	p.InitSession(board.Black)
	p.Session().ClearDeadline()
	p.Session().SetPhase(4)
	p.Session().Cancel()
	m := p.Play(context.Background(), b, board.Black, false)
	is.Equal(m.String(), "C1")
	is.True(!p.Session().Cancelled())
}

func TestThinkTimeSummary(t *testing.T) {
	is := is.New(t)
	p := newPlayer(t, fastSettings(), nil)
	p.InitSession(board.Black)
	_, _, n := p.ThinkTimeSummary()
	is.Equal(n, 0)
	p.thinkTimes = []float64{1, 2, 3}
	mean, sd, n := p.ThinkTimeSummary()
	is.Equal(n, 3)
	is.Equal(mean, 2.0)
	is.Equal(sd, 1.0)
	p.InitSession(board.White)
	_, _, n = p.ThinkTimeSummary()
	is.Equal(n, 0)
}

func TestSettings(t *testing.T) {
	is := is.New(t)
	is.NoErr(DefaultSettings().Validate())
	s := SettingsFromConfig(config.DefaultConfig())
	is.Equal(s, DefaultSettings())

	bad := DefaultSettings()
	bad.LadderThreshold = 50
	is.True(bad.Validate() != nil)
	bad = DefaultSettings()
	bad.Ladder = nil
	is.True(bad.Validate() != nil)
}

func TestParseMove(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	m, err := ParseMove(b, board.Black, []string{"f5"})
	is.NoErr(err)
	is.Equal(m.String(), "F5")
	_, err = ParseMove(b, board.Black, []string{"a1"})
	is.True(err != nil)
	_, err = ParseMove(b, board.Black, []string{"pass"})
	is.True(err != nil)
	m, err = ParseMove(b, board.White, []string{"Resign"})
	is.NoErr(err)
	is.Equal(m, move.NewResign())
	_, err = ParseMove(b, board.Black, []string{"f5", "d6"})
	is.True(err != nil)

	c, err := ParseColor("WHITE")
	is.NoErr(err)
	is.Equal(c, board.White)
	_, err = ParseColor("green")
	is.True(err != nil)
}
