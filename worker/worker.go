// Package worker runs search jobs on a fixed set of long-lived goroutines.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// DefaultSize is the number of workers the player uses unless configured.
const DefaultSize = 4

// Pool is a persistent set of workers fed from a task queue. It is created
// once and reused for every search of a game.
type Pool struct {
	size      int
	tasks     chan task
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewPool starts size workers. A size below one starts a single worker.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{size: size, tasks: make(chan task)}
	p.wg.Add(size)
	for i := range size {
		go p.work(i)
	}
	log.Debug().Int("workers", size).Msg("started-worker-pool")
	return p
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for t := range p.tasks {
		t.done(t.idx, runJob(t.ctx, id, t.job))
	}
}

// Run queues every job and blocks until all of them have returned. The
// errors of failed jobs are joined; a panicking job shows up as an error
// wrapping ErrJobPanicked.
func (p *Pool) Run(ctx context.Context, jobs []Job) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	done := func(idx int, err error) {
		errs[idx] = err
		wg.Done()
	}
	for i, j := range jobs {
		p.tasks <- task{ctx: ctx, job: j, idx: i, done: done}
	}
	wg.Wait()
	return errors.Join(errs...)
}

// Close stops the workers once the queue drains. It must not be called
// while Run is in progress.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.tasks)
		p.wg.Wait()
	})
}
