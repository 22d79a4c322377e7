package turnplayer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/book"
	"github.com/domino14/othello/endgame"
	"github.com/domino14/othello/move"
	"github.com/domino14/othello/negascout"
	"github.com/domino14/othello/search"
	"github.com/domino14/othello/session"
	"github.com/domino14/othello/worker"
)

// AIPlayer picks moves by phase of the game: opening book, iterative
// deepening, a fixed-depth search refined by the endgame solver, and
// finally the solver alone.
type AIPlayer struct {
	settings *Settings
	sess     *session.Session
	pool     *worker.Pool
	book     *book.Book
	midgame  *negascout.Searcher
	endgame  *endgame.Solver

	mu         sync.Mutex
	thinkTimes []float64
}

// NewAIPlayer starts the worker pool. bk may be nil to play without a book.
func NewAIPlayer(settings *Settings, bk *book.Book) *AIPlayer {
	sess := session.New()
	sess.SetReserve(settings.ReservePerPly, settings.ReserveBase)
	pool := worker.NewPool(settings.Threads)
	return &AIPlayer{
		settings: settings,
		sess:     sess,
		pool:     pool,
		book:     bk,
		midgame:  negascout.NewSearcher(sess, pool, settings.PollInterval),
		endgame:  endgame.NewSolver(sess, pool, settings.PollInterval),
	}
}

// Close stops the worker pool.
func (p *AIPlayer) Close() {
	p.pool.Close()
}

func (p *AIPlayer) Session() *session.Session {
	return p.sess
}

func (p *AIPlayer) Midgame() *negascout.Searcher {
	return p.midgame
}

func (p *AIPlayer) Endgame() *endgame.Solver {
	return p.endgame
}

func (p *AIPlayer) Book() *book.Book {
	return p.book
}

func (p *AIPlayer) InitSession(c board.Color) {
	p.sess.Init(c)
	p.mu.Lock()
	p.thinkTimes = p.thinkTimes[:0]
	p.mu.Unlock()
	log.Debug().Str("color", c.String()).Msg("new-session")
}

func (p *AIPlayer) SetRemainingTime(ms int64) {
	p.sess.SetRemainingTime(ms)
}

// Play decides the move of c on b. It passes when c has no placement.
func (p *AIPlayer) Play(ctx context.Context, b board.Board, c board.Color, passed bool) move.Move {
	p.sess.Resume()
	start := time.Now()
	phase := p.sess.Phase()

	sq, ok := p.decide(ctx, b, c)
	p.sess.AdvancePhase()

	elapsed := time.Since(start)
	p.mu.Lock()
	p.thinkTimes = append(p.thinkTimes, elapsed.Seconds())
	p.mu.Unlock()

	m := move.NewPass()
	if ok {
		m = move.NewPlacement(sq)
	}
	log.Info().Int("phase", phase).Str("move", m.String()).Bool("opp-passed", passed).
		Bool("timed-out", p.sess.Cancelled()).Dur("elapsed", elapsed).Msg("decided")
	return m
}

func (p *AIPlayer) decide(ctx context.Context, b board.Board, c board.Color) (board.Square, bool) {
	phase := p.sess.Phase()
	s := p.settings
	switch {
	case phase >= s.BookThreshold && !p.sess.BookExhausted():
		if p.book != nil {
			if sq, ok := p.book.Choose(b, c); ok {
				return sq, true
			}
		}
		log.Debug().Int("phase", phase).Msg("out-of-book")
		p.sess.MarkBookExhausted()
		return p.midgame.IterativeDeepening(ctx, b, c, s.Ladder)

	case phase >= s.LadderThreshold:
		return p.midgame.IterativeDeepening(ctx, b, c, s.Ladder)

	case phase > s.FixedDepth:
		ranked := p.midgame.SearchRoot(ctx, b, c, s.FixedDepth, search.Order(b, c))
		if len(ranked) == 0 {
			return board.NoSquare, false
		}
		if p.sess.Cancelled() {
			return ranked[0].Square, true
		}
		best, _, _ := p.endgame.SolveRoot(ctx, c, ranked)
		return best.Square, true

	default:
		best, _, ok := p.endgame.SolveRoot(ctx, c, search.Order(b, c))
		return best.Square, ok
	}
}

// ThinkTimeSummary returns the mean and standard deviation in seconds of
// the time spent per decision this game, and the number of decisions.
func (p *AIPlayer) ThinkTimeSummary() (mean, stddev float64, n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	n = len(p.thinkTimes)
	if n == 0 {
		return 0, 0, 0
	}
	if n == 1 {
		return p.thinkTimes[0], 0, 1
	}
	mean, stddev = stat.MeanStdDev(p.thinkTimes, nil)
	return mean, stddev, n
}
