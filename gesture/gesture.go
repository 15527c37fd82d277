package gesture

import (
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

// How long a touch has to be held in place to request a context menu.
const longPressDuration = 500 * time.Millisecond

// ContextMenuEvent is a request for a context menu.
type ContextMenuEvent struct {
	Position  f32.Point
	Source    pointer.Source
	PointerID pointer.ID
}

// ContextMenu detects context menu requests in the form of ContextMenuEvents. Pressing the secondary
// mouse button requests a menu, as does holding a single touch in place.
//
// ContextMenu doesn't register its own input handler. It is fed the pointer events of the widget that uses
// it.
type ContextMenu struct {
	// The e.Buttons of the previous mouse event.
	prevButtons pointer.Buttons

	touch struct {
		// pressed tracks whether a single touch is down and hasn't moved.
		pressed bool
		// fired tracks whether we've already reported the current press.
		fired bool
		// pid is the pointer.ID of the touch.
		pid   pointer.ID
		at    f32.Point
		since time.Time
	}
}

// Update processes pointer events and returns context menu requests, if any. now is the current frame
// time, slop the distance in pixels a touch may move and still count as held in place.
func (cm *ContextMenu) Update(now time.Time, slop float32, evs []pointer.Event) []ContextMenuEvent {
	var events []ContextMenuEvent
	for _, e := range evs {
		switch e.Source {
		case pointer.Mouse:
			prevButtons := cm.prevButtons
			cm.prevButtons = e.Buttons

			switch e.Kind {
			case pointer.Press:
				// e.Buttons contains all buttons currently held. e.Buttons &^ prevButtons are all newly pressed buttons.
				if (e.Buttons&^prevButtons)&pointer.ButtonSecondary != 0 {
					events = append(events, ContextMenuEvent{Position: e.Position, Source: e.Source, PointerID: e.PointerID})
				}
			case pointer.Cancel:
				cm.prevButtons = 0
			}

		case pointer.Touch:
			t := &cm.touch
			switch e.Kind {
			case pointer.Press:
				if t.pressed {
					// A second finger. Long presses need a single contact.
					t.pressed = false
					continue
				}
				t.pressed = true
				t.fired = false
				t.pid = e.PointerID
				t.at = e.Position
				t.since = now
			case pointer.Drag:
				if !t.pressed || t.pid != e.PointerID {
					continue
				}
				d := e.Position.Sub(t.at)
				if d.X*d.X+d.Y*d.Y > slop*slop {
					t.pressed = false
				}
			case pointer.Release:
				if t.pid == e.PointerID {
					t.pressed = false
				}
			case pointer.Cancel:
				t.pressed = false
			}
		}
	}

	if t := &cm.touch; t.pressed && !t.fired && now.Sub(t.since) >= longPressDuration {
		t.fired = true
		events = append(events, ContextMenuEvent{Position: t.at, Source: pointer.Touch, PointerID: t.pid})
	}
	return events
}

// Deadline returns the time at which a held touch will be reported, if one is pending. Widgets should
// invalidate their frame at that time.
func (cm *ContextMenu) Deadline() (time.Time, bool) {
	if !cm.touch.pressed || cm.touch.fired {
		return time.Time{}, false
	}
	return cm.touch.since.Add(longPressDuration), true
}
