package search

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/othello/session"
	"github.com/domino14/othello/worker"
)

// Watch runs fn with the session's deadline poller alongside it. The
// poller is stopped as soon as fn returns.
func Watch(ctx context.Context, sess *session.Session, poll time.Duration, fn func() error) error {
	done := make(chan struct{})
	g := &errgroup.Group{}
	g.Go(func() error {
		sess.Poll(ctx, poll, done)
		return nil
	})
	g.Go(func() error {
		defer close(done)
		return fn()
	})
	return g.Wait()
}

// FanOut splits cands round-robin over the workers of pool and calls each
// with one share per worker. It returns once every share is done.
func FanOut(ctx context.Context, pool *worker.Pool, cands []Candidate,
	each func(ctx context.Context, share []Candidate) error) error {

	parts := Partition(cands, pool.Size())
	jobs := make([]worker.Job, len(parts))
	for i, part := range parts {
		jobs[i] = func(ctx context.Context) error {
			return each(ctx, part)
		}
	}
	return pool.Run(ctx, jobs)
}
