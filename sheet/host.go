package sheet

import (
	"fmt"
	"image"

	"gioui.org/f32"
	"gioui.org/layout"
)

type EventKind uint8

const (
	MouseDown EventKind = iota
	MouseMove
	MouseUp
	TouchStart
	TouchMove
	TouchEnd
	ContextMenu

	numEventKinds
)

func (k EventKind) String() string {
	switch k {
	case MouseDown:
		return "mousedown"
	case MouseMove:
		return "mousemove"
	case MouseUp:
		return "mouseup"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	case ContextMenu:
		return "contextmenu"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

func (k EventKind) isTouch() bool {
	return k == TouchStart || k == TouchMove || k == TouchEnd
}

type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// Event is an input event delivered by the host.
type Event struct {
	Kind EventKind
	// Button is the button that changed state, for MouseDown and MouseUp.
	Button Button
	// Position is the pointer position for mouse events, in viewport coordinates.
	Position f32.Point
	// Touches are the contact points currently on the surface, for touch events. For TouchEnd they are the
	// contacts that remain.
	Touches []f32.Point
	// Target is the element the event originated from. It should implement Node, and may implement
	// gesture.Scroller.
	Target any

	prevented bool
}

// PreventDefault asks the host not to apply its default handling, such as scrolling or showing a menu.
func (ev *Event) PreventDefault() { ev.prevented = true }

func (ev *Event) DefaultPrevented() bool { return ev.prevented }

// EventTarget delivers events to listeners.
type EventTarget interface {
	// Listen registers fn for events of the given kind. The returned function removes the listener; calling
	// it more than once has no effect.
	Listen(kind EventKind, fn func(*Event)) (remove func())
}

// Node is an element in the host's element tree.
type Node interface {
	// SetGestureScroll enables or disables scrolling of the node in response to touch gestures.
	SetGestureScroll(enabled bool)
	Children() []Node
}

// Element is the sheet itself.
type Element interface {
	Node
	EventTarget
	SetTransform(t Transform)
	// SetTransition enables or disables animated transitions between transforms.
	SetTransition(enabled bool)
	// SetSelectable enables or disables text selection in the element.
	SetSelectable(enabled bool)
}

type Unit uint8

const (
	Px Unit = iota
	// Percent is relative to the size of the sheet along the transform's axis.
	Percent
)

// Transform is a translation of the sheet along one axis.
type Transform struct {
	Axis   layout.Axis
	Offset float32
	Unit   Unit
}

func (t Transform) String() string {
	axis := "Y"
	if t.Axis == layout.Horizontal {
		axis = "X"
	}
	unit := "px"
	if t.Unit == Percent {
		unit = "%"
	}
	return fmt.Sprintf("translate%s(%g%s)", axis, t.Offset, unit)
}

// Pixels resolves the transform for a sheet of the given size.
func (t Transform) Pixels(size image.Point) float32 {
	if t.Unit == Px {
		return t.Offset
	}
	if t.Axis == layout.Horizontal {
		return t.Offset / 100 * float32(size.X)
	}
	return t.Offset / 100 * float32(size.Y)
}

// Point returns the translation as a point.
func (t Transform) Point(size image.Point) f32.Point {
	v := t.Pixels(size)
	if t.Axis == layout.Horizontal {
		return f32.Pt(v, 0)
	}
	return f32.Pt(0, v)
}
