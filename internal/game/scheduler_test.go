package game

import (
	"slices"
	"testing"
	"testing/synctest"
	"time"
)

func TestManualScheduler(t *testing.T) {
	s := &ManualScheduler{}
	var fired []string

	s.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })
	s.AfterFunc(time.Second, func() {
		fired = append(fired, "a")
		// Scheduled from inside a callback, due before "b".
		s.AfterFunc(500*time.Millisecond, func() { fired = append(fired, "a2") })
	})
	s.AfterFunc(2*time.Second, func() { fired = append(fired, "c") })
	stopped := s.AfterFunc(time.Second, func() { fired = append(fired, "stopped") })

	if !stopped.Stop() {
		t.Errorf("Stop on a pending timer should return true")
	}
	if stopped.Stop() {
		t.Errorf("Stop on a stopped timer should return false")
	}
	if got := s.Pending(); got != 3 {
		t.Errorf("Expected 3 pending timers, got %d", got)
	}

	s.Advance(999 * time.Millisecond)
	if len(fired) != 0 {
		t.Fatalf("Nothing should have fired yet, got %v", fired)
	}

	s.Advance(3 * time.Second)
	want := []string{"a", "a2", "b", "c"}
	if !slices.Equal(fired, want) {
		t.Errorf("Fired %v, want %v", fired, want)
	}
	if s.Now() != 3999*time.Millisecond {
		t.Errorf("Now() = %s, want 3.999s", s.Now())
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", s.Pending())
	}
}

func TestRealSchedulerDispatch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		dispatched := make(chan func(), 1)
		s := RealScheduler{Dispatch: func(f func()) { dispatched <- f }}

		ran := false
		s.AfterFunc(time.Second, func() { ran = true })
		time.Sleep(time.Second + time.Millisecond)
		synctest.Wait()

		select {
		case f := <-dispatched:
			if ran {
				t.Fatalf("Callback should run only when the dispatcher runs it")
			}
			f()
		default:
			t.Fatalf("Callback was not dispatched")
		}
		if !ran {
			t.Errorf("Callback did not run")
		}
	})
}
