package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

var (
	// ErrJobPanicked wraps the value a job panicked with.
	ErrJobPanicked = errors.New("worker job panicked")
	ErrPoolClosed  = errors.New("worker pool closed")
)

// Job is a unit of work handed to the pool.
type Job func(ctx context.Context) error

// task is a job in the queue together with where its result goes.
type task struct {
	ctx  context.Context
	job  Job
	idx  int
	done func(idx int, err error)
}

func runJob(ctx context.Context, workerID int, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", workerID).Interface("panic", r).
				Str("stack", string(debug.Stack())).Msg("job-panicked")
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()
	return job(ctx)
}
