package game

import (
	"sort"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the callback
	// already fired or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. The Machine uses it for every
// countdown and delayed transition, so tests can swap in a virtual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the wall clock with time.AfterFunc.
//
// If Dispatch is set, callbacks are handed to it instead of being called
// directly on the timer goroutine. The frontend uses this to run them in
// the UI loop.
type RealScheduler struct {
	Dispatch func(f func())
}

// AfterFunc implements Scheduler.
func (s RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		if s.Dispatch != nil {
			s.Dispatch(f)
			return
		}
		f()
	})
}

// ManualScheduler is a virtual clock: callbacks only fire when Advance moves
// time past their deadline. It is not safe for concurrent use.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &manualTimer{at: s.now + d, seq: s.seq, f: f}
	s.seq++
	s.pending = append(s.pending, t)
	return t
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of callbacks that are scheduled and not stopped.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing every callback due on the way in
// deadline order (ties in scheduling order). Callbacks scheduled by a firing
// callback also fire if they fall due before the new time.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.at
		t.fired = true
		t.f()
	}
	s.now = target
}

// next removes and returns the earliest live timer due at or before target.
func (s *ManualScheduler) next(target time.Duration) *manualTimer {
	live := s.pending[:0]
	for _, t := range s.pending {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	s.pending = live
	if len(live) == 0 {
		return nil
	}
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].at != live[j].at {
			return live[i].at < live[j].at
		}
		return live[i].seq < live[j].seq
	})
	if live[0].at > target {
		return nil
	}
	t := live[0]
	s.pending = live[1:]
	return t
}
