package theme

import (
	"context"
	"image"
	"image/color"
	rtrace "runtime/trace"
	"time"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/layout"
	"honnef.co/go/sheetdrag/record"
	"honnef.co/go/sheetdrag/sheet"
	"honnef.co/go/sheetdrag/widget"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"golang.org/x/exp/slices"
)

// How far a touch may wander and still count as a long press.
const touchSlop = unit.Dp(8)

// Sheet is the state of a sheet anchored to an edge of the window. It hosts a sheet.Controller, turning
// pointer input into sheet events and applying the controller's effects when the sheet is laid out.
type Sheet struct {
	ctrl *sheet.Controller
	side gesture.Side

	events sheet.Dispatcher
	// handle is nil unless the sheet has a separate drag handle.
	handle *sheet.Dispatcher
	doc    sheet.Dispatcher
	timers sheet.Timers
	menu   gesture.ContextMenu

	// touches are the active touch contacts in window coordinates, in the order they went down.
	touches []touch
	// onHandle tracks pointers that went down on the drag handle.
	onHandle map[pointer.ID]bool
	// pressed maps pointers to the scrollable child they went down on in the current frame.
	pressed  map[pointer.ID]*SheetScroll
	children []*SheetScroll

	transform       sheet.Transform
	noTransition    bool
	noSelect        bool
	noGestureScroll bool
	// claimed is set once the current session prevented the default handling of a move.
	claimed bool

	anim    Animation[float32]
	current float32
	size    image.Point
	// origin is the sheet's position in the last frame, in window coordinates. Pointer events are relative to
	// it.
	origin f32.Point

	menuRequested bool
}

type touch struct {
	id  pointer.ID
	pos f32.Point
}

var _ sheet.Element = (*Sheet)(nil)

// NewSheet returns a sheet configured by opts, which is shown initially. If withHandle is set, drags only
// start on the area laid out with LayoutHandle. opts.Handle and opts.Scheduler are provided by the sheet.
func NewSheet(opts sheet.Options, withHandle bool) *Sheet {
	s := &Sheet{
		side:      opts.Side,
		onHandle:  map[pointer.ID]bool{},
		pressed:   map[pointer.ID]*SheetScroll{},
		transform: sheet.Resting(opts.Side),
	}
	opts.Handle = nil
	if withHandle {
		s.handle = new(sheet.Dispatcher)
		opts.Handle = s.handle
	}
	opts.Scheduler = &s.timers
	s.ctrl = sheet.New(s, &s.doc, opts)
	return s
}

func (s *Sheet) Controller() *sheet.Controller { return s.ctrl }

// Record records the sheet's input to rec. Passing nil stops recording.
func (s *Sheet) Record(rec *record.Recorder) {
	start := &s.events
	if s.handle != nil {
		start = s.handle
	}
	if rec == nil {
		start.Tap = nil
		s.doc.Tap = nil
		return
	}
	start.Tap = rec.Tap(record.RoleHandle)
	s.doc.Tap = rec.Tap(record.RoleDocument)
}

// Now returns the frame time of the last layout.
func (s *Sheet) Now() time.Time { return s.timers.Now() }

// Offset returns the sheet's current offset from its resting position, in pixels.
func (s *Sheet) Offset() float32 { return s.current }

// Selectable reports whether content of the sheet should allow selecting text.
func (s *Sheet) Selectable() bool { return !s.noSelect }

// ContextMenuRequested reports whether a context menu was requested and not suppressed since the last call.
func (s *Sheet) ContextMenuRequested() bool {
	ok := s.menuRequested
	s.menuRequested = false
	return ok
}

func (s *Sheet) Listen(kind sheet.EventKind, fn func(*sheet.Event)) func() {
	return s.events.Listen(kind, fn)
}

func (s *Sheet) SetGestureScroll(enabled bool) { s.noGestureScroll = !enabled }

func (s *Sheet) Children() []sheet.Node {
	nodes := make([]sheet.Node, len(s.children))
	for i, c := range s.children {
		nodes[i] = c
	}
	return nodes
}

func (s *Sheet) SetTransform(t sheet.Transform) { s.transform = t }
func (s *Sheet) SetTransition(enabled bool)     { s.noTransition = !enabled }
func (s *Sheet) SetSelectable(enabled bool)     { s.noSelect = !enabled }

func (s *Sheet) adopt(ss *SheetScroll) {
	if slices.Contains(s.children, ss) {
		return
	}
	s.children = append(s.children, ss)
	ss.SetGestureScroll(!s.noGestureScroll)
}

func (s *Sheet) update(gtx layout.Context) {
	s.timers.Advance(gtx.Now)

	clear(s.pressed)
	for _, child := range s.children {
		for _, ev := range gtx.Events(child) {
			if e, ok := ev.(pointer.Event); ok && e.Kind == pointer.Press {
				s.pressed[e.PointerID] = child
			}
		}
	}
	if s.handle != nil {
		for _, ev := range gtx.Events(s.handle) {
			if e, ok := ev.(pointer.Event); ok && e.Kind == pointer.Press {
				s.onHandle[e.PointerID] = true
			}
		}
	}

	var evs []pointer.Event
	for _, ev := range gtx.Events(s) {
		if e, ok := ev.(pointer.Event); ok {
			evs = append(evs, e)
			s.pointer(e)
		}
	}

	for _, req := range s.menu.Update(gtx.Now, float32(gtx.Dp(touchSlop)), evs) {
		s.contextMenu(req)
	}
}

// pointer translates a pointer event on the sheet into sheet events.
func (s *Sheet) pointer(e pointer.Event) {
	pos := e.Position.Add(s.origin)
	ev := sheet.Event{Position: pos}

	switch e.Kind {
	case pointer.Press:
		if e.Source == pointer.Touch {
			s.touches = append(s.touches, touch{e.PointerID, pos})
			ev.Kind = sheet.TouchStart
		} else {
			ev.Kind = sheet.MouseDown
			ev.Button = button(e.Buttons)
		}
		ev.Touches = s.touchPoints()
		if child, ok := s.pressed[e.PointerID]; ok {
			ev.Target = child
		} else {
			ev.Target = s
		}

		s.events.Dispatch(&ev)
		if s.handle != nil && s.onHandle[e.PointerID] {
			hev := ev
			s.handle.Dispatch(&hev)
		}

	case pointer.Drag:
		if e.Source == pointer.Touch {
			for i := range s.touches {
				if s.touches[i].id == e.PointerID {
					s.touches[i].pos = pos
				}
			}
			ev.Kind = sheet.TouchMove
			ev.Touches = s.touchPoints()
		} else {
			ev.Kind = sheet.MouseMove
		}
		if s.doc.Dispatch(&ev) {
			s.claimed = true
		}

	case pointer.Release, pointer.Cancel:
		delete(s.onHandle, e.PointerID)
		if e.Source == pointer.Touch || (e.Kind == pointer.Cancel && len(s.touches) > 0) {
			if e.Kind == pointer.Cancel {
				// Cancel ends all contacts.
				s.touches = s.touches[:0]
			} else {
				s.touches = slices.DeleteFunc(s.touches, func(t touch) bool { return t.id == e.PointerID })
			}
			ev.Kind = sheet.TouchEnd
			ev.Touches = s.touchPoints()
		} else {
			ev.Kind = sheet.MouseUp
			ev.Button = button(e.Buttons)
		}
		s.doc.Dispatch(&ev)
	}

	if s.ctrl.Phase() == gesture.Idle {
		s.claimed = false
	}
}

// owns reports whether the sheet has taken the current gesture from its content.
func (s *Sheet) owns() bool {
	return s.claimed || s.ctrl.Phase() == gesture.Dragging
}

func (s *Sheet) contextMenu(req gesture.ContextMenuEvent) {
	start := &s.events
	if s.handle != nil {
		if !s.onHandle[req.PointerID] {
			return
		}
		start = s.handle
	}
	ev := sheet.Event{Kind: sheet.ContextMenu, Position: req.Position.Add(s.origin), Target: s}
	if !start.Dispatch(&ev) {
		s.menuRequested = true
	}
}

func (s *Sheet) touchPoints() []f32.Point {
	if len(s.touches) == 0 {
		return nil
	}
	pts := make([]f32.Point, len(s.touches))
	for i, t := range s.touches {
		pts[i] = t.pos
	}
	return pts
}

func button(b pointer.Buttons) sheet.Button {
	switch {
	case b&pointer.ButtonSecondary != 0:
		return sheet.ButtonSecondary
	case b&pointer.ButtonTertiary != 0:
		return sheet.ButtonAuxiliary
	default:
		return sheet.ButtonPrimary
	}
}

// resolve returns the sheet's offset along its axis for this frame, animating changes of the transform
// unless transitions are disabled.
func (s *Sheet) resolve(gtx layout.Context) float32 {
	target := s.transform.Pixels(s.size)
	if target != s.anim.Target() {
		if s.noTransition {
			s.anim.Jump(target)
		} else {
			s.anim.Start(gtx, s.current, target, sheet.HideDelay, EaseOut(3))
		}
	} else if s.noTransition && !s.anim.Done() {
		s.anim.Jump(target)
	}
	s.current = s.anim.Value(gtx)
	return s.current
}

// LayoutHandle lays out w as the sheet's drag handle. It has to be called as part of the sheet's content and
// only has an effect if the sheet was created with a handle.
func (s *Sheet) LayoutHandle(gtx layout.Context, w layout.Widget) layout.Dimensions {
	dims := w(gtx)
	if s.handle == nil {
		return dims
	}
	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	defer pointer.PassOp{}.Push(gtx.Ops).Pop()
	pointer.InputOp{Tag: s.handle, Kinds: pointer.Press | pointer.Release | pointer.Cancel}.Add(gtx.Ops)
	pointer.CursorGrab.Add(gtx.Ops)
	return dims
}

type SheetStyle struct {
	Sheet      *Sheet
	Background color.NRGBA
	// Radius rounds the corners of the sheet's background.
	Radius unit.Dp
}

// Layout lays out w as the content of the sheet, anchored to the sheet's side of the available space. The
// content spans the full width of top and bottom sheets and the full height of left and right sheets.
func (ss SheetStyle) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "theme.SheetStyle.Layout").End()

	s := ss.Sheet
	s.update(gtx)

	viewport := gtx.Constraints.Max
	cgtx := gtx
	cgtx.Constraints.Min = image.Point{}
	if s.side.Axis() == layout.Vertical {
		cgtx.Constraints.Min.X = viewport.X
	} else {
		cgtx.Constraints.Min.Y = viewport.Y
	}
	m := op.Record(gtx.Ops)
	dims := w(cgtx)
	call := m.Stop()
	s.size = dims.Size

	off := s.transform
	off.Offset = s.resolve(gtx)
	off.Unit = sheet.Px
	offset := off.Point(dims.Size).Round()

	var origin image.Point
	switch s.side {
	case gesture.SideBottom:
		origin.Y = viewport.Y - dims.Size.Y
	case gesture.SideRight:
		origin.X = viewport.X - dims.Size.X
	}
	origin = origin.Add(offset)
	s.origin = f32.Pt(float32(origin.X), float32(origin.Y))

	sgtx := gtx
	sgtx.Constraints = layout.Exact(dims.Size)
	stack := op.Offset(origin).Push(gtx.Ops)
	widget.Background{Color: ss.Background, Radius: ss.Radius}.Layout(sgtx, func(gtx layout.Context) layout.Dimensions {
		defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
		pointer.InputOp{
			Tag:   s,
			Kinds: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
			Grab:  s.owns(),
		}.Add(gtx.Ops)
		call.Add(gtx.Ops)
		return dims
	})
	stack.Pop()

	if next, ok := s.timers.Next(); ok {
		op.InvalidateOp{At: next}.Add(gtx.Ops)
	}
	if next, ok := s.menu.Deadline(); ok {
		op.InvalidateOp{At: next}.Add(gtx.Ops)
	}

	return layout.Dimensions{Size: viewport}
}

// SheetScroll is a list inside a sheet. It stops scrolling in response to touch gestures once the sheet claims
// them, and reports its scroll position so that the sheet can tell drags from scrolls.
type SheetScroll struct {
	List layout.List

	noGestureScroll bool
	viewport        int
}

var _ gesture.Scroller = (*SheetScroll)(nil)

func (ss *SheetScroll) SetGestureScroll(enabled bool) { ss.noGestureScroll = !enabled }
func (ss *SheetScroll) Children() []sheet.Node        { return nil }

func (ss *SheetScroll) ScrollMetrics(axis layout.Axis) gesture.ScrollMetrics {
	v := float32(ss.viewport)
	if axis != ss.List.Axis {
		return gesture.ScrollMetrics{Viewport: v, Extent: v}
	}

	// layout.List doesn't know the size of its content, only whether there is more of it before or after the
	// viewport, which is all that matters for detecting the edges.
	pos := ss.List.Position
	m := gesture.ScrollMetrics{Viewport: v}
	if pos.First > 0 || pos.Offset > 0 {
		m.Offset = max(1, float32(pos.Offset))
	}
	m.Extent = m.Offset + v
	if pos.BeforeEnd {
		m.Extent++
	}
	return m
}

// Layout lays out the list as a child of the sheet s.
func (ss *SheetScroll) Layout(gtx layout.Context, s *Sheet, n int, w layout.ListElement) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "theme.SheetScroll.Layout").End()

	s.adopt(ss)
	lgtx := gtx
	// A session that is still being tracked may turn out to be a scroll, so the list keeps receiving drags
	// until the sheet claims them or the controller turns off gesture scrolling.
	if lgtx.Queue != nil && (ss.noGestureScroll || s.claimed) {
		lgtx.Queue = withoutDrags{lgtx.Queue}
	}
	dims := ss.List.Layout(lgtx, n, w)
	if ss.List.Axis == layout.Horizontal {
		ss.viewport = dims.Size.X
	} else {
		ss.viewport = dims.Size.Y
	}

	// Note which pointers go down on the list, without taking them from it.
	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()
	defer pointer.PassOp{}.Push(gtx.Ops).Pop()
	pointer.InputOp{Tag: ss, Kinds: pointer.Press}.Add(gtx.Ops)
	return dims
}

// withoutDrags hides pointer drags from a sheet's content. Presses, releases and cancellations still get
// through, so that the content's gestures end when the sheet takes a pointer from them.
type withoutDrags struct {
	event.Queue
}

func (q withoutDrags) Events(tag event.Tag) []event.Event {
	return slices.DeleteFunc(q.Queue.Events(tag), func(ev event.Event) bool {
		e, ok := ev.(pointer.Event)
		return ok && e.Kind == pointer.Drag
	})
}
