package sheet

import (
	"golang.org/x/exp/slices"
)

type listener struct {
	fn      func(*Event)
	removed bool
}

// Dispatcher is an EventTarget that hosts feed events into with Dispatch. The zero value is ready to use.
type Dispatcher struct {
	// Tap, if set, sees every dispatched event before the listeners do.
	Tap func(*Event)

	listeners [numEventKinds][]*listener
}

var _ EventTarget = (*Dispatcher)(nil)

func (d *Dispatcher) Listen(kind EventKind, fn func(*Event)) func() {
	l := &listener{fn: fn}
	d.listeners[kind] = append(d.listeners[kind], l)
	return func() {
		l.removed = true
		ls := d.listeners[kind]
		if i := slices.Index(ls, l); i >= 0 {
			d.listeners[kind] = slices.Delete(ls, i, i+1)
		}
	}
}

// Dispatch delivers ev to the listeners registered for its kind, in registration order. A listener removed
// during dispatch isn't called anymore, one added during dispatch only sees later events. Dispatch reports
// whether a listener prevented the default handling of ev.
func (d *Dispatcher) Dispatch(ev *Event) bool {
	if d.Tap != nil {
		d.Tap(ev)
	}
	ls := slices.Clone(d.listeners[ev.Kind])
	for _, l := range ls {
		if l.removed {
			continue
		}
		l.fn(ev)
	}
	return ev.DefaultPrevented()
}

// Listeners returns the number of listeners registered for kind.
func (d *Dispatcher) Listeners(kind EventKind) int {
	return len(d.listeners[kind])
}
