package record

import (
	"errors"
	"fmt"
	"io"
	"time"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/sheet"

	"gioui.org/layout"
)

// Result is the outcome of a replay.
type Result struct {
	Header Header
	Events int
	Shows  int
	Hides  int
	// Transform is the sheet's transform after the replay.
	Transform sheet.Transform
	// Prevented is the number of events whose default handling the controller prevented.
	Prevented int
}

// element is a headless sheet.
type element struct {
	sheet.Dispatcher
	transform sheet.Transform
}

func (el *element) SetGestureScroll(bool)          {}
func (el *element) Children() []sheet.Node         { return nil }
func (el *element) SetTransform(t sheet.Transform) { el.transform = t }
func (el *element) SetTransition(bool)             {}
func (el *element) SetSelectable(bool)             {}

// scroller is a recorded scrollable target. Replays update its metrics as later events report them.
type scroller struct {
	metrics gesture.ScrollMetrics
}

func (sc *scroller) SetGestureScroll(bool)  {}
func (sc *scroller) Children() []sheet.Node { return nil }
func (sc *scroller) ScrollMetrics(layout.Axis) gesture.ScrollMetrics {
	return sc.metrics
}

// notElement stands in for targets that weren't elements.
type notElement struct{}

// Replay feeds a recording to a controller driving a headless sheet. The clock starts at start and
// advances by the recorded delays; after the last event it advances by sheet.HideDelay so that a pending hide
// completes.
func Replay(r io.Reader, start time.Time) (Result, error) {
	rd, err := NewReader(r)
	if err != nil {
		return Result{}, err
	}

	var (
		el     element
		doc    sheet.Dispatcher
		timers sheet.Timers
		res    = Result{Header: rd.Header()}
		// cur is the scrollable target of the current session.
		cur *scroller
	)
	now := start
	timers.Advance(now)

	opts := rd.Header().Options()
	opts.Scheduler = &timers
	c := sheet.New(&el, &doc, opts)
	c.OnShow(func() { res.Shows++ })
	c.OnHide(func() { res.Hides++ })

	for {
		e, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, err
		}

		now = now.Add(e.Elapsed)
		timers.Advance(now)

		ev := e.Event
		switch e.Target {
		case TargetNone:
			ev.Target = notElement{}
		case TargetNode:
			ev.Target = &el
		case TargetScroller:
			if e.Role == RoleDocument && cur != nil {
				cur.metrics = e.Metrics
				ev.Target = cur
			} else {
				ev.Target = &scroller{metrics: e.Metrics}
			}
		}
		if e.Role == RoleHandle && startsSession(&ev) {
			cur, _ = ev.Target.(*scroller)
		}

		var prevented bool
		switch e.Role {
		case RoleHandle:
			prevented = el.Dispatch(&ev)
		case RoleDocument:
			prevented = doc.Dispatch(&ev)
		default:
			return res, fmt.Errorf("unknown role %d", e.Role)
		}
		if prevented {
			res.Prevented++
		}
		res.Events++
	}

	timers.Advance(now.Add(sheet.HideDelay))
	res.Transform = el.transform
	c.Destroy()
	return res, nil
}
