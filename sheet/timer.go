package sheet

import (
	"time"

	"golang.org/x/exp/slices"
)

// Timer is a scheduled function.
type Timer interface {
	// Stop prevents the function from running. It reports whether it stopped the timer, and false if the
	// timer already fired or was stopped before.
	Stop() bool
}

// Scheduler runs functions after a delay. The functions have to run on the goroutine that uses the
// Controller; Timers does that for hosts driven by a frame clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timers is a Scheduler driven by the host's clock. Scheduled functions run from within Advance, on the
// goroutine that calls it. The zero value is ready to use.
type Timers struct {
	now   time.Time
	tasks []*task
}

type task struct {
	at      time.Time
	f       func()
	timers  *Timers
	stopped bool
}

var _ Scheduler = (*Timers)(nil)

func (t *task) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	ts := t.timers
	if i := slices.Index(ts.tasks, t); i >= 0 {
		ts.tasks = slices.Delete(ts.tasks, i, i+1)
	}
	return true
}

func (ts *Timers) AfterFunc(d time.Duration, f func()) Timer {
	t := &task{at: ts.now.Add(d), f: f, timers: ts}
	ts.tasks = append(ts.tasks, t)
	return t
}

// Now returns the time passed to the last call to Advance. Functions run by Advance see their deadline
// instead.
func (ts *Timers) Now() time.Time {
	return ts.now
}

// Advance moves the clock to now and runs all functions that are due, in the order of their deadlines.
// Functions scheduled by those functions run as well if they are due by now. Time doesn't go backwards;
// earlier times are ignored.
func (ts *Timers) Advance(now time.Time) {
	if ts.now.IsZero() {
		// Functions scheduled before the first call to Advance are relative to the zero time.
		for _, t := range ts.tasks {
			t.at = now.Add(t.at.Sub(time.Time{}))
		}
	}
	if now.Before(ts.now) {
		return
	}

	for {
		slices.SortStableFunc(ts.tasks, func(a, b *task) int { return a.at.Compare(b.at) })
		if len(ts.tasks) == 0 || ts.tasks[0].at.After(now) {
			break
		}
		t := ts.tasks[0]
		ts.tasks = ts.tasks[1:]
		t.stopped = true
		// Functions observe the clock at their own deadline, so that anything they schedule is relative to it.
		if t.at.After(ts.now) {
			ts.now = t.at
		}
		t.f()
	}
	ts.now = now
}

// Next returns the deadline of the earliest pending function.
func (ts *Timers) Next() (time.Time, bool) {
	if len(ts.tasks) == 0 {
		return time.Time{}, false
	}
	next := ts.tasks[0].at
	for _, t := range ts.tasks[1:] {
		if t.at.Before(next) {
			next = t.at
		}
	}
	return next, true
}

// Len returns the number of pending functions.
func (ts *Timers) Len() int {
	return len(ts.tasks)
}
