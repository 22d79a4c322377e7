// Package endgame solves positions exactly to the end of the game. Values
// are ternary: +1 a win for the side to move, 0 a draw, -1 a loss.
package endgame

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/search"
	"github.com/domino14/othello/session"
	"github.com/domino14/othello/worker"
)

const (
	Loss = -1
	Draw = 0
	Win  = 1
)

// Solver searches to the end of the game for one session.
type Solver struct {
	sess         *session.Session
	pool         *worker.Pool
	pollInterval time.Duration
}

func NewSolver(sess *session.Session, pool *worker.Pool, pollInterval time.Duration) *Solver {
	return &Solver{sess: sess, pool: pool, pollInterval: pollInterval}
}

// Solve returns the outcome of b with c to move under perfect play. It
// stops at the first winning reply. The recursion is bounded by the empty
// cells plus passes, well under a hundred and thirty frames.
func (s *Solver) Solve(b board.Board, c board.Color, passed bool) (int, error) {
	if s.sess.Cancelled() {
		return 0, search.ErrAborted
	}
	opp := c.Opponent()
	children := search.Order(b, c)
	if len(children) == 0 {
		if passed {
			return board.Result(b, c), nil
		}
		v, err := s.Solve(b, opp, true)
		return -v, err
	}
	best := Loss
	for _, child := range children {
		v, err := s.Solve(child.Board, opp, false)
		if err != nil {
			return 0, err
		}
		if -v == Win {
			return Win, nil
		}
		best = max(best, -v)
	}
	return best, nil
}

// rootBest is the best candidate found so far by the root workers.
type rootBest struct {
	mu    sync.Mutex
	cand  search.Candidate
	value int
}

func (r *rootBest) offer(c search.Candidate, v int) (won bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v > r.value {
		r.cand, r.value = c, v
	}
	return r.value == Win
}

func (r *rootBest) won() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value == Win
}

// SolveRoot solves each of cands, the moves available to c, across the
// worker pool and returns the best one with its outcome. The first
// candidate is returned as a loss until something better is proven, so a
// search cut short by the deadline still yields a move. ok is false only
// when cands is empty.
func (s *Solver) SolveRoot(ctx context.Context, c board.Color,
	cands []search.Candidate) (best search.Candidate, value int, ok bool) {

	if len(cands) == 0 {
		return search.Candidate{}, Loss, false
	}
	root := &rootBest{cand: cands[0], value: Loss}
	opp := c.Opponent()
	err := search.Watch(ctx, s.sess, s.pollInterval, func() error {
		return search.FanOut(ctx, s.pool, cands, func(ctx context.Context, share []search.Candidate) error {
			for _, cand := range share {
				if root.won() {
					return nil
				}
				v, err := s.Solve(cand.Board, opp, false)
				if err != nil {
					return nil
				}
				if root.offer(cand, -v) {
					return nil
				}
			}
			return nil
		})
	})
	if err != nil {
		log.Error().Err(err).Msg("endgame-search-failed")
	}
	log.Debug().Str("move", root.cand.Square.String()).Int("outcome", root.value).
		Bool("complete", !s.sess.Cancelled()).Msg("endgame-solved")
	return root.cand, root.value, true
}
