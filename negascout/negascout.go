// Package negascout is the heuristic midgame search: a principal variation
// search over the evaluation in eval, parallelised at the root.
package negascout

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
	"github.com/domino14/othello/eval"
	"github.com/domino14/othello/search"
	"github.com/domino14/othello/session"
	"github.com/domino14/othello/worker"
)

// Searcher runs depth-limited searches for one session.
type Searcher struct {
	sess         *session.Session
	pool         *worker.Pool
	pollInterval time.Duration
}

func NewSearcher(sess *session.Session, pool *worker.Pool, pollInterval time.Duration) *Searcher {
	return &Searcher{sess: sess, pool: pool, pollInterval: pollInterval}
}

// NegaScout returns the value of b for c, who is to move, searched depth
// plies deep. prev is the position one ply earlier. initialDepth is the
// depth the root was searched at; with the session phase it estimates how
// far the leaves are from the end of the game. passed is set when the
// previous ply was a pass, so a second pass ends the game.
//
// The recursion is at most depth plus the number of passes deep.
func (s *Searcher) NegaScout(b, prev board.Board, c board.Color,
	alpha, beta, depth, initialDepth int, passed bool) (int, error) {

	if s.sess.Cancelled() {
		return 0, search.ErrAborted
	}
	if depth == 0 {
		return eval.Evaluate(b, prev, c, s.sess.Phase()+depth-initialDepth), nil
	}
	opp := c.Opponent()
	children := search.Order(b, c)
	if len(children) == 0 {
		if passed {
			return board.Result(b, c) * search.Infinity, nil
		}
		v, err := s.NegaScout(b, prev, opp, -beta, -alpha, depth-1, initialDepth, true)
		return -v, err
	}

	v, err := s.NegaScout(children[0].Board, b, opp, -beta, -alpha, depth-1, initialDepth, false)
	if err != nil {
		return 0, err
	}
	best := -v
	if beta <= best {
		return best, nil
	}
	alpha = max(alpha, best)

	for _, child := range children[1:] {
		v, err = s.NegaScout(child.Board, b, opp, -alpha-1, -alpha, depth-1, initialDepth, false)
		if err != nil {
			return 0, err
		}
		v = -v
		if beta <= v {
			return v, nil
		}
		if alpha < v {
			alpha = v
			v, err = s.NegaScout(child.Board, b, opp, -beta, -alpha, depth-1, initialDepth, false)
			if err != nil {
				return 0, err
			}
			v = -v
			if beta <= v {
				return v, nil
			}
			alpha = max(alpha, v)
		}
		best = max(best, v)
	}
	return best, nil
}

// rootBounds is the window shared by the workers searching the root.
type rootBounds struct {
	mu      sync.Mutex
	alpha   int
	best    int
	results []search.Candidate
}

func (r *rootBounds) window() (alpha int, proven bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alpha, r.best == search.Infinity
}

// raise lifts alpha to v if it is higher and returns the new alpha.
func (r *rootBounds) raise(v int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alpha = max(r.alpha, v)
	return r.alpha
}

func (r *rootBounds) record(c search.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.best = max(r.best, c.Score)
	r.results = append(r.results, c)
}

// SearchRoot searches every candidate depth plies deep and returns them
// ranked best first. Candidates whose search was cut short by the deadline
// are left out; if none completed, the first candidate is returned alone.
// The ranking is not deterministic: workers share the window, so which
// candidates get exact scores depends on timing.
func (s *Searcher) SearchRoot(ctx context.Context, b board.Board, c board.Color,
	depth int, cands []search.Candidate) []search.Candidate {

	if len(cands) == 0 {
		return nil
	}
	var ranked []search.Candidate
	err := search.Watch(ctx, s.sess, s.pollInterval, func() error {
		var err error
		ranked, err = s.searchRoot(ctx, b, c, depth, cands)
		return err
	})
	if err != nil {
		log.Error().Err(err).Int("depth", depth).Msg("root-search-failed")
	}
	if len(ranked) == 0 {
		return []search.Candidate{cands[0]}
	}
	return ranked
}

func (s *Searcher) searchRoot(ctx context.Context, b board.Board, c board.Color,
	depth int, cands []search.Candidate) ([]search.Candidate, error) {

	first := cands[0]
	opp := c.Opponent()
	v, err := s.NegaScout(first.Board, b, opp, -search.Infinity, search.Infinity, depth, depth, false)
	if err != nil {
		return nil, nil
	}
	first.Score, first.Exact = -v, true
	bounds := &rootBounds{alpha: first.Score, best: first.Score}
	bounds.results = append(bounds.results, first)

	err = search.FanOut(ctx, s.pool, cands[1:], func(ctx context.Context, share []search.Candidate) error {
		for _, cand := range share {
			alpha, proven := bounds.window()
			if proven {
				return nil
			}
			v, err := s.NegaScout(cand.Board, b, opp, -alpha-1, -alpha, depth, depth, false)
			if err != nil {
				return nil
			}
			cand.Score, cand.Exact = -v, false
			if alpha < cand.Score {
				lower := cand.Score
				alpha = bounds.raise(lower)
				v, err = s.NegaScout(cand.Board, b, opp, -search.Infinity, -alpha, depth, depth, false)
				if err != nil {
					return nil
				}
				cand.Score = -v
				// below the window the value is an upper bound, which is
				// exact only if it meets the lower bound found above.
				cand.Exact = alpha < cand.Score || cand.Score == lower
				bounds.raise(cand.Score)
			}
			bounds.record(cand)
		}
		return nil
	})

	ranked := bounds.results
	search.Sort(ranked)
	return ranked, err
}

// IterativeDeepening searches b at each depth in turn, re-ranking the
// candidates after every pass. It returns early on a proven win or once
// the session is cancelled. ok is false when c has no legal move.
func (s *Searcher) IterativeDeepening(ctx context.Context, b board.Board, c board.Color,
	depths []int) (sq board.Square, ok bool) {

	cands := search.Order(b, c)
	if len(cands) == 0 {
		return board.NoSquare, false
	}
	for _, depth := range depths {
		cands = s.SearchRoot(ctx, b, c, depth, cands)
		log.Debug().Int("depth", depth).Str("best", cands[0].String()).
			Int("ranked", len(cands)).Msg("deepened")
		if cands[0].Score == search.Infinity {
			log.Debug().Str("move", cands[0].Square.String()).Msg("proven-win")
			break
		}
		if s.sess.Cancelled() {
			break
		}
	}
	return cands[0].Square, true
}
