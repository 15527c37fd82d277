package sheet

import (
	"testing"
	"time"
)

func TestTimersOrder(t *testing.T) {
	var ts Timers
	start := time.Unix(0, 0)
	ts.Advance(start)

	var got []int
	ts.AfterFunc(30*time.Millisecond, func() { got = append(got, 3) })
	ts.AfterFunc(10*time.Millisecond, func() {
		got = append(got, 1)
		ts.AfterFunc(5*time.Millisecond, func() { got = append(got, 2) })
	})
	stopped := ts.AfterFunc(20*time.Millisecond, func() { got = append(got, -1) })

	if next, ok := ts.Next(); !ok || !next.Equal(start.Add(10*time.Millisecond)) {
		t.Errorf("got next deadline %v, %t, want %v", next, ok, start.Add(10*time.Millisecond))
	}
	if !stopped.Stop() {
		t.Error("Stop on a pending timer returned false")
	}
	if stopped.Stop() {
		t.Error("second Stop returned true")
	}

	ts.Advance(start.Add(time.Second))
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if ts.Len() != 0 {
		t.Errorf("got %d pending timers, want 0", ts.Len())
	}
}

func TestTimersStopAfterFire(t *testing.T) {
	var ts Timers
	ts.Advance(time.Unix(0, 0))
	tm := ts.AfterFunc(time.Millisecond, func() {})
	ts.Advance(time.Unix(1, 0))
	if tm.Stop() {
		t.Error("Stop on a fired timer returned true")
	}
}

func TestTimersBeforeFirstAdvance(t *testing.T) {
	var ts Timers
	var fired bool
	ts.AfterFunc(100*time.Millisecond, func() { fired = true })

	now := time.Unix(5000, 0)
	ts.Advance(now)
	if fired {
		t.Fatal("timer fired on the first Advance")
	}
	ts.Advance(now.Add(100 * time.Millisecond))
	if !fired {
		t.Error("timer didn't fire")
	}
}

func TestTimersIgnoreBackwardsTime(t *testing.T) {
	var ts Timers
	now := time.Unix(10, 0)
	ts.Advance(now)
	ts.Advance(now.Add(-time.Second))
	if !ts.Now().Equal(now) {
		t.Errorf("clock went backwards to %v", ts.Now())
	}
}

func TestDispatcherRemoveDuringDispatch(t *testing.T) {
	var d Dispatcher
	var calls []string
	var removeSecond func()
	d.Listen(MouseMove, func(*Event) {
		calls = append(calls, "first")
		removeSecond()
		d.Listen(MouseMove, func(*Event) { calls = append(calls, "late") })
	})
	removeSecond = d.Listen(MouseMove, func(*Event) { calls = append(calls, "second") })

	d.Dispatch(&Event{Kind: MouseMove})
	if len(calls) != 1 || calls[0] != "first" {
		t.Errorf("got calls %v, want [first]", calls)
	}
	if n := d.Listeners(MouseMove); n != 2 {
		t.Errorf("got %d listeners, want 2", n)
	}
	removeSecond()
	if n := d.Listeners(MouseMove); n != 2 {
		t.Errorf("removing twice changed the listener count to %d", n)
	}
}
