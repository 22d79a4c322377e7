// Package session holds the state that lives for one game: the color being
// played, the phase counter, the move deadline and the cancellation flag
// the searchers poll.
package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/othello/board"
)

const (
	// InitialPhase is the phase counter at the start of a game.
	InitialPhase = 64
	// DefaultPollInterval is how often the deadline poller checks the clock.
	DefaultPollInterval = 10 * time.Millisecond

	DefaultReservePerPly = 900 * time.Millisecond
	DefaultReserveBase   = 5 * time.Second
)

// Session is the per-game state shared by the scheduler and the search
// workers. The cancellation flag and the deadline are safe for concurrent
// use; the rest is only touched between searches.
type Session struct {
	color         board.Color
	phase         atomic.Int32
	deadline      atomic.Int64 // unix nanoseconds; zero means none
	cancelled     atomic.Bool
	bookExhausted bool

	reservePerPly time.Duration
	reserveBase   time.Duration
	now           func() time.Time
}

// New returns a session for black with the default time reserve.
func New() *Session {
	s := &Session{
		reservePerPly: DefaultReservePerPly,
		reserveBase:   DefaultReserveBase,
		now:           time.Now,
	}
	s.Init(board.Black)
	return s
}

// SetReserve changes how much time is held back from every deadline:
// base plus perPly for each unit of the phase counter.
func (s *Session) SetReserve(perPly, base time.Duration) {
	s.reservePerPly = perPly
	s.reserveBase = base
}

// Init starts a new game playing c.
func (s *Session) Init(c board.Color) {
	s.color = c
	s.phase.Store(InitialPhase)
	s.cancelled.Store(false)
	s.bookExhausted = false
}

func (s *Session) Color() board.Color {
	return s.color
}

func (s *Session) Phase() int {
	return int(s.phase.Load())
}

// SetPhase overrides the phase counter.
func (s *Session) SetPhase(p int) {
	s.phase.Store(int32(p))
}

// AdvancePhase moves the counter forward by one full move. Passes are not
// accounted for.
func (s *Session) AdvancePhase() {
	s.phase.Add(-2)
}

func (s *Session) BookExhausted() bool {
	return s.bookExhausted
}

// MarkBookExhausted stops the opening book from being consulted for the
// rest of the game.
func (s *Session) MarkBookExhausted() {
	s.bookExhausted = true
}

// SetRemainingTime sets the deadline for the current move from the time the
// server says we have left. A reserve that shrinks as the game progresses is
// held back; if the reserve exceeds ms the deadline is now.
func (s *Session) SetRemainingTime(ms int64) {
	reserve := time.Duration(s.Phase())*s.reservePerPly + s.reserveBase
	budget := max(time.Duration(ms)*time.Millisecond-reserve, 0)
	s.SetDeadline(s.now().Add(budget))
	log.Debug().Int64("remaining-ms", ms).Dur("budget", budget).Msg("set-deadline")
}

func (s *Session) SetDeadline(t time.Time) {
	s.deadline.Store(t.UnixNano())
}

// ClearDeadline lets searches run until they complete.
func (s *Session) ClearDeadline() {
	s.deadline.Store(0)
}

// Deadline returns the deadline and whether one is set.
func (s *Session) Deadline() (time.Time, bool) {
	d := s.deadline.Load()
	if d == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, d), true
}

// Expired reports whether a deadline is set and has passed.
func (s *Session) Expired() bool {
	d, ok := s.Deadline()
	return ok && !s.now().Before(d)
}

func (s *Session) Cancelled() bool {
	return s.cancelled.Load()
}

func (s *Session) Cancel() {
	s.cancelled.Store(true)
}

// Resume clears the cancellation flag before a new decision.
func (s *Session) Resume() {
	s.cancelled.Store(false)
}

// Poll checks the clock every interval until done is closed. It sets the
// cancellation flag and returns once the deadline has passed or ctx is done.
func (s *Session) Poll(ctx context.Context, interval time.Duration, done <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			log.Debug().Err(ctx.Err()).Msg("poller-context-done")
			s.Cancel()
			return
		case <-ticker.C:
			if s.Expired() {
				log.Debug().Msg("deadline-reached")
				s.Cancel()
				return
			}
		}
	}
}
