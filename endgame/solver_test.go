package endgame

import (
	"context"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/search"
	"github.com/domino14/othello/session"
	"github.com/domino14/othello/testhelpers"
	"github.com/domino14/othello/worker"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// minimax solves b without any cut-offs.
func minimax(b board.Board, c board.Color, passed bool) int {
	moves := board.Squares(board.LegalMoves(b, c))
	if len(moves) == 0 {
		if passed {
			return board.Result(b, c)
		}
		return -minimax(b, c.Opponent(), true)
	}
	best := Loss
	for _, sq := range moves {
		best = max(best, -minimax(b.Play(sq, c), c.Opponent(), false))
	}
	return best
}

func newSolver(t *testing.T) (*Solver, *session.Session) {
	sess := session.New()
	sess.ClearDeadline()
	pool := worker.NewPool(4)
	t.Cleanup(pool.Close)
	return NewSolver(sess, pool, time.Millisecond), sess
}

func TestSolveMatchesMinimax(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	rng := rand.New(rand.NewPCG(42, 1))
	for range 25 {
		b, c := testhelpers.Playout(rng, 53+rng.IntN(4))
		v, err := s.Solve(b, c, false)
		is.NoErr(err)
		is.Equal(v, minimax(b, c, false))
	}
}

func TestSolveRootFindsBestOutcome(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	rng := rand.New(rand.NewPCG(8, 9))
	for range 25 {
		b, c := testhelpers.Playout(rng, 53)
		cands := search.Order(b, c)
		best, v, ok := s.SolveRoot(context.Background(), c, cands)
		if len(cands) == 0 {
			is.True(!ok)
			continue
		}
		is.True(ok)
		is.Equal(v, minimax(b, c, false))
		is.True(b.Legal(best.Square, c))
		is.Equal(-minimax(best.Board, c.Opponent(), false), v)
	}
}

func TestTerminalPositions(t *testing.T) {
	is := is.New(t)
	s, _ := newSolver(t)
	b := board.Board{Black: 0xffff, White: 0xff << 56}
	v, err := s.Solve(b, board.White, false)
	is.NoErr(err)
	is.Equal(v, Loss)
	drawn := board.Board{Black: 0xff, White: 0xff << 56}
	v, err = s.Solve(drawn, board.Black, false)
	is.NoErr(err)
	is.Equal(v, Draw)
}

func TestCancelledSolveKeepsFirstCandidate(t *testing.T) {
	is := is.New(t)
	s, sess := newSolver(t)
	b := board.NewBoard()
	cands := search.Order(b, board.Black)
	sess.SetDeadline(time.Now().Add(20 * time.Millisecond))

	start := time.Now()
	best, v, ok := s.SolveRoot(context.Background(), board.Black, cands)
	is.True(time.Since(start) < 5*time.Second)
	is.True(ok)
	is.Equal(best.Square, cands[0].Square)
	is.Equal(v, Loss)

	_, err := s.Solve(b, board.Black, false)
	is.Equal(err, search.ErrAborted)
}
