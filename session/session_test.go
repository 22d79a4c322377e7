package session

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/othello/board"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestInit(t *testing.T) {
	is := is.New(t)
	s := New()
	s.SetPhase(12)
	s.Cancel()
	s.MarkBookExhausted()

	s.Init(board.White)
	is.Equal(s.Color(), board.White)
	is.Equal(s.Phase(), InitialPhase)
	is.True(!s.Cancelled())
	is.True(!s.BookExhausted())

	s.AdvancePhase()
	s.AdvancePhase()
	is.Equal(s.Phase(), 60)
}

func TestRemainingTimeKeepsReserve(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New()
	s.now = fixedClock(now)

	// 64*900ms + 5s = 62.6s held back.
	s.SetRemainingTime(90_000)
	d, ok := s.Deadline()
	is.True(ok)
	is.Equal(d.Sub(now), 27400*time.Millisecond)

	s.SetPhase(10)
	s.SetRemainingTime(20_000)
	d, _ = s.Deadline()
	is.Equal(d.Sub(now), 6*time.Second)
}

func TestRemainingTimeNeverNegative(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New()
	s.now = fixedClock(now)
	s.SetRemainingTime(1000)
	d, ok := s.Deadline()
	is.True(ok)
	is.True(d.Equal(now))
	is.True(s.Expired())
}

func TestNoDeadlineNeverExpires(t *testing.T) {
	is := is.New(t)
	s := New()
	s.ClearDeadline()
	_, ok := s.Deadline()
	is.True(!ok)
	is.True(!s.Expired())
}

func TestPollCancelsAfterDeadline(t *testing.T) {
	is := is.New(t)
	s := New()
	s.SetDeadline(time.Now().Add(20 * time.Millisecond))
	start := time.Now()
	s.Poll(context.Background(), 5*time.Millisecond, make(chan struct{}))
	is.True(s.Cancelled())
	is.True(time.Since(start) >= 20*time.Millisecond)
	is.True(time.Since(start) < time.Second)
}

func TestPollStopsWhenDone(t *testing.T) {
	is := is.New(t)
	s := New()
	s.ClearDeadline()
	done := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		s.Poll(context.Background(), time.Millisecond, done)
		close(returned)
	}()
	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
	is.True(!s.Cancelled())
}

func TestPollCancelsOnContext(t *testing.T) {
	is := is.New(t)
	s := New()
	s.ClearDeadline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Poll(ctx, time.Millisecond, make(chan struct{}))
	is.True(s.Cancelled())
	s.Resume()
	is.True(!s.Cancelled())
}
