package gesture

import (
	"fmt"

	"gioui.org/f32"
)

// Phase is the phase of a drag session.
type Phase uint8

const (
	// Idle means that no session is live.
	Idle Phase = iota
	// Tracking means that a pointer is down but hasn't moved far enough to decide between dragging and
	// scrolling.
	Tracking
	// Dragging means that the sheet follows the pointer.
	Dragging
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Tracking:
		return "tracking"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Resolution is how a session ended, if it did.
type Resolution uint8

const (
	ResolveNone Resolution = iota
	// ResolveCancel aborts the session without deciding anything, leaving the pointer to native scrolling.
	ResolveCancel
	// ResolveDismiss hides the sheet.
	ResolveDismiss
	// ResolveSnapBack returns the sheet to its resting position.
	ResolveSnapBack
)

func (r Resolution) String() string {
	switch r {
	case ResolveNone:
		return "none"
	case ResolveCancel:
		return "cancel"
	case ResolveDismiss:
		return "dismiss"
	case ResolveSnapBack:
		return "snap back"
	default:
		return fmt.Sprintf("Resolution(%d)", uint8(r))
	}
}

// State is the state of a drag session. The zero value is an idle session.
type State struct {
	Phase Phase
	// Last is the last observed pointer position.
	Last f32.Point
	// Delta is the movement between the two most recent samples.
	Delta f32.Point
	// Acc is the movement accumulated since the session started. It is reset when the session starts
	// dragging, so that during Dragging it only measures post-activation travel.
	Acc f32.Point
}

// Outcome describes the side effects of a transition.
type Outcome struct {
	// Render is set if the sheet should be translated by Offset along the side's axis.
	Render bool
	Offset float32
	// PreventDefault is set if the host's default handling of the input should be suppressed.
	PreventDefault bool
	Resolution     Resolution
}

// Sample is a single movement sample.
type Sample struct {
	Touch bool
	// Position is the pointer position for mouse samples.
	Position f32.Point
	// Contacts are the active contact points for touch samples.
	Contacts []f32.Point
}

// Drag interprets sequences of samples as drags of a sheet anchored to Side. Drag holds no session state;
// its methods take the current State and return the next one.
type Drag struct {
	Side Side
	// DragThreshold is the distance along the side's axis that a pointer has to travel before a session
	// becomes a drag.
	DragThreshold float32
	// DismissThreshold is the distance towards the side that a drag has to cover for the sheet to be
	// dismissed on release.
	DismissThreshold float32
}

// Start begins a new session at p, discarding any previous state.
func (d Drag) Start(p f32.Point) State {
	return State{Phase: Tracking, Last: p}
}

// Move processes a movement sample. target is the element the session started on and is consulted to
// decide between dragging and scrolling touch input; nil means an element that can't scroll.
func (d Drag) Move(s State, smp Sample, target Scroller) (State, Outcome) {
	if s.Phase == Idle {
		return d.End(s)
	}
	if smp.Touch && len(smp.Contacts) > 1 {
		return s, Outcome{}
	}

	p := smp.Position
	if smp.Touch {
		if len(smp.Contacts) == 0 {
			return d.End(s)
		}
		p = smp.Contacts[0]
	}

	s.Delta = p.Sub(s.Last)
	s.Acc = s.Acc.Add(s.Delta)
	s.Last = p

	delta := d.Side.Along(s.Delta)
	if delta == 0 {
		// No movement on our axis, we can't tell the direction yet.
		return s, Outcome{}
	}

	if s.Phase == Tracking && smp.Touch {
		// Moving away from the side, or towards it while the content can still scroll that way, is
		// scrolling, not dragging.
		if d.Side.Toward(delta) < 0 || !atScrollEdge(target, d.Side) {
			return State{}, Outcome{Resolution: ResolveCancel}
		}
	}

	out := Outcome{PreventDefault: true}
	if s.Phase == Tracking {
		if abs(d.Side.Across(s.Acc)) >= d.DragThreshold {
			out.Resolution = ResolveCancel
			return State{}, out
		}
		if abs(d.Side.Along(s.Acc)) < d.DragThreshold {
			return s, out
		}
		s.Phase = Dragging
		s.Acc = f32.Point{}
	}

	out.Render = true
	out.Offset = d.Side.Clamp(d.Side.Along(s.Acc))
	return s, out
}

// End ends the session. Drags that covered at least DismissThreshold towards the side dismiss the sheet,
// everything else snaps it back.
func (d Drag) End(s State) (State, Outcome) {
	out := Outcome{Resolution: ResolveSnapBack}
	if s.Phase == Dragging && d.Side.Toward(d.Side.Along(s.Acc)) >= d.DismissThreshold {
		out.Resolution = ResolveDismiss
	}
	return State{}, out
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
