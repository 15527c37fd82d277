// Package sheet implements drag-to-dismiss for sheets anchored to an edge of the viewport.
//
// A Controller binds the drag state machine of package gesture to a host: it listens for input on the
// sheet (or a drag handle) and on the document, moves the sheet while it is being dragged, and on release
// either snaps it back or hides it. Hosts provide the element tree, event delivery and a scheduler; package
// theme contains a host for Gio.
package sheet

import (
	"honnef.co/go/sheetdrag/gesture"
)

// Controller handles drag gestures on a single sheet. All methods, as well as the event listeners it
// registers, must be called from the same goroutine.
type Controller struct {
	el     Element
	doc    EventTarget
	handle EventTarget
	sched  Scheduler
	drag   gesture.Drag

	state gesture.State
	// target is the node the current session started on. It is nil between sessions.
	target Node

	// detach removes the listeners on the handle.
	detach []func()
	// session removes the listeners on the document, which only exist during a session.
	session []func()
	hide    Timer

	shown  observers
	hidden observers

	destroyed bool
}

// New returns a controller for the sheet el. Moves and releases are observed on doc, so that drags keep
// working when the pointer leaves the sheet.
func New(el Element, doc EventTarget, opts Options) *Controller {
	if opts.Scheduler == nil {
		panic("sheet: Options.Scheduler is nil")
	}
	opts = opts.withDefaults()
	c := &Controller{
		el:     el,
		doc:    doc,
		handle: opts.Handle,
		sched:  opts.Scheduler,
		drag: gesture.Drag{
			Side:             opts.Side,
			DragThreshold:    opts.DragThreshold,
			DismissThreshold: opts.DismissThreshold,
		},
	}
	if c.handle == nil {
		c.handle = el
	}

	c.detach = []func(){
		c.handle.Listen(ContextMenu, c.contextMenu),
		c.handle.Listen(MouseDown, c.start),
		c.handle.Listen(TouchStart, c.start),
	}
	return c
}

func (c *Controller) Side() gesture.Side { return c.drag.Side }

// Phase returns the phase of the current drag session.
func (c *Controller) Phase() gesture.Phase { return c.state.Phase }

// OnShow registers fn to be called when the sheet is shown. The returned function unregisters it.
func (c *Controller) OnShow(fn func()) (remove func()) { return c.shown.add(fn) }

// OnHide registers fn to be called once the sheet has finished hiding. The returned function unregisters it.
func (c *Controller) OnHide(fn func()) (remove func()) { return c.hidden.add(fn) }

// Show moves the sheet to its resting position, aborting any drag and pending hide. Show observers are
// notified before the sheet moves.
func (c *Controller) Show() {
	if c.destroyed {
		return
	}
	c.shown.notify()
	c.stopHide()
	c.endSession()
	c.revertDragMode()
	c.el.SetTransform(Resting(c.drag.Side))
}

// Hide moves the sheet offscreen, aborting any drag. Hide observers are notified after HideDelay. Hiding
// again before then restarts the delay.
func (c *Controller) Hide() {
	if c.destroyed {
		return
	}
	c.stopHide()
	c.endSession()
	c.el.SetTransition(true)
	var t Timer
	t = c.sched.AfterFunc(HideDelay, func() {
		if c.hide != t {
			// A stopped timer that fired anyway.
			return
		}
		c.hide = nil
		c.revertDragMode()
		c.hidden.notify()
	})
	c.hide = t
	c.el.SetTransform(Offscreen(c.drag.Side))
}

// Destroy detaches the controller from the sheet. Afterwards, input has no effect, Show and Hide do nothing
// and no more notifications are sent. Destroy may be called more than once.
func (c *Controller) Destroy() {
	for _, fn := range c.detach {
		fn()
	}
	c.detach = nil
	c.endSession()
	c.stopHide()
	c.revertDragMode()
	c.destroyed = true
}

func (c *Controller) contextMenu(ev *Event) {
	// Context menus get in the way of long presses.
	ev.PreventDefault()
}

func (c *Controller) start(ev *Event) {
	// Starts that can't begin a session leave the current session and any pending hide alone.
	node, ok := ev.Target.(Node)
	if !ok {
		return
	}

	var p = ev.Position
	if ev.Kind.isTouch() {
		if len(ev.Touches) != 1 {
			return
		}
		p = ev.Touches[0]
	} else if ev.Button != ButtonPrimary {
		return
	}

	c.cancel()
	c.stopHide()

	c.target = node
	c.state = c.drag.Start(p)
	c.applyDragMode()

	c.session = []func(){
		c.doc.Listen(MouseMove, c.move),
		c.doc.Listen(TouchMove, c.move),
		c.doc.Listen(MouseUp, c.end),
		c.doc.Listen(TouchEnd, c.end),
	}
}

func (c *Controller) move(ev *Event) {
	if c.target == nil {
		c.end(ev)
		return
	}

	smp := gesture.Sample{
		Touch:    ev.Kind.isTouch(),
		Position: ev.Position,
		Contacts: ev.Touches,
	}
	sc, _ := c.target.(gesture.Scroller)
	state, out := c.drag.Move(c.state, smp, sc)
	c.state = state
	if out.PreventDefault {
		ev.PreventDefault()
	}
	c.apply(out)
}

func (c *Controller) end(*Event) {
	state, out := c.drag.End(c.state)
	c.state = state
	c.apply(out)
}

func (c *Controller) apply(out gesture.Outcome) {
	if out.Render {
		c.el.SetTransform(Transform{Axis: c.drag.Side.Axis(), Offset: out.Offset})
	}

	switch out.Resolution {
	case gesture.ResolveNone:
	case gesture.ResolveCancel:
		c.cancel()
	case gesture.ResolveDismiss:
		c.Hide()
	case gesture.ResolveSnapBack:
		c.endSession()
		c.el.SetTransform(Resting(c.drag.Side))
		c.revertDragMode()
	default:
		panic("unreachable")
	}
}

// cancel aborts the session without moving the sheet.
func (c *Controller) cancel() {
	c.endSession()
	c.revertDragMode()
}

func (c *Controller) endSession() {
	for _, fn := range c.session {
		fn()
	}
	c.session = nil
	c.target = nil
	c.state = gesture.State{}
}

func (c *Controller) stopHide() {
	if c.hide != nil {
		c.hide.Stop()
		c.hide = nil
	}
}
