package record

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/sheet"

	"gioui.org/f32"
)

type session struct {
	el     element
	doc    sheet.Dispatcher
	timers sheet.Timers
	now    time.Time
	c      *sheet.Controller
	rec    *Recorder
	hides  int
}

func newSession(t *testing.T, w io.Writer, opts sheet.Options) *session {
	s := &session{now: time.Unix(100, 0)}
	s.timers.Advance(s.now)
	rec, err := NewRecorder(w, opts, s.timers.Now)
	if err != nil {
		t.Fatal(err)
	}
	s.rec = rec
	s.el.Tap = rec.Tap(RoleHandle)
	s.doc.Tap = rec.Tap(RoleDocument)
	opts.Scheduler = &s.timers
	s.c = sheet.New(&s.el, &s.doc, opts)
	s.c.OnHide(func() { s.hides++ })
	return s
}

func (s *session) step(d time.Duration) {
	s.now = s.now.Add(d)
	s.timers.Advance(s.now)
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(t, &buf, sheet.Options{Side: gesture.SideRight, DragThreshold: 8})

	list := &scroller{metrics: gesture.ScrollMetrics{Offset: 0, Viewport: 200, Extent: 800}}
	s.el.Dispatch(&sheet.Event{Kind: sheet.TouchStart, Touches: []f32.Point{{X: 10, Y: 10}}, Target: list})
	for x := float32(14); x <= 110; x += 4 {
		s.step(16 * time.Millisecond)
		s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchMove, Touches: []f32.Point{{X: x, Y: 11}}})
	}
	s.step(16 * time.Millisecond)
	s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchEnd})
	s.el.Dispatch(&sheet.Event{Kind: sheet.ContextMenu, Target: notElement{}})
	s.step(sheet.HideDelay)
	if err := s.rec.Close(); err != nil {
		t.Fatal(err)
	}
	if s.hides != 1 {
		t.Fatalf("live session: got %d hides, want 1", s.hides)
	}

	rd, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if got := rd.Header(); got.Side != gesture.SideRight || got.DragThreshold != 8 || got.DismissThreshold != 0 {
		t.Errorf("got header %+v", got)
	}
	first, err := rd.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.Role != RoleHandle || first.Event.Kind != sheet.TouchStart || first.Target != TargetScroller {
		t.Errorf("got first entry %+v", first)
	}
	if first.Metrics != list.metrics {
		t.Errorf("got metrics %+v, want %+v", first.Metrics, list.metrics)
	}
	second, err := rd.Next()
	if err != nil {
		t.Fatal(err)
	}
	if second.Elapsed != 16*time.Millisecond {
		t.Errorf("got elapsed %v, want 16ms", second.Elapsed)
	}
	if len(second.Event.Touches) != 1 || second.Event.Touches[0] != (f32.Point{X: 14, Y: 11}) {
		t.Errorf("got touches %v", second.Event.Touches)
	}
	if second.Target != TargetScroller || second.Metrics != list.metrics {
		t.Errorf("move: got target %d with metrics %+v, want the list's metrics", second.Target, second.Metrics)
	}

	res, err := Replay(bytes.NewReader(buf.Bytes()), time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	// start, 25 moves, end, context menu
	if res.Events != 28 {
		t.Errorf("got %d events, want 28", res.Events)
	}
	if res.Hides != 1 {
		t.Errorf("got %d hides, want 1", res.Hides)
	}
	if res.Transform != sheet.Offscreen(gesture.SideRight) {
		t.Errorf("got transform %s, want %s", res.Transform, sheet.Offscreen(gesture.SideRight))
	}
	// All moves and the context menu
	if res.Prevented != 26 {
		t.Errorf("got %d prevented events, want 26", res.Prevented)
	}
}

func TestReplayScrollWins(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(t, &buf, sheet.Options{})

	// The list is scrolled, so pulling down scrolls it back up instead of dragging the sheet.
	list := &scroller{metrics: gesture.ScrollMetrics{Offset: 120, Viewport: 200, Extent: 800}}
	s.el.Dispatch(&sheet.Event{Kind: sheet.TouchStart, Touches: []f32.Point{{X: 10, Y: 10}}, Target: list})
	s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchMove, Touches: []f32.Point{{X: 10, Y: 90}}})
	s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchEnd})
	if err := s.rec.Close(); err != nil {
		t.Fatal(err)
	}

	res, err := Replay(&buf, time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if res.Hides != 0 || res.Prevented != 0 {
		t.Errorf("got %+v, want no hides and nothing prevented", res)
	}
	// The session was cancelled before the release, so the release isn't seen by anyone.
	if res.Events != 3 {
		t.Errorf("got %d events, want 3", res.Events)
	}
}

func TestReplayListScrolledDuringSession(t *testing.T) {
	var buf bytes.Buffer
	s := newSession(t, &buf, sheet.Options{})

	list := &scroller{metrics: gesture.ScrollMetrics{Offset: 0, Viewport: 200, Extent: 800}}
	s.el.Dispatch(&sheet.Event{Kind: sheet.TouchStart, Touches: []f32.Point{{X: 10, Y: 10}}, Target: list})
	if !s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchMove, Touches: []f32.Point{{X: 10, Y: 11}}}) {
		t.Fatal("pulling a list at the top wasn't prevented")
	}
	// The list scrolled away from the top before the next move, which makes the session a scroll.
	list.metrics.Offset = 50
	for y := float32(12); y <= 100; y += 4 {
		s.step(16 * time.Millisecond)
		s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchMove, Touches: []f32.Point{{X: 10, Y: y}}})
	}
	s.doc.Dispatch(&sheet.Event{Kind: sheet.TouchEnd})
	s.step(sheet.HideDelay)
	if err := s.rec.Close(); err != nil {
		t.Fatal(err)
	}
	if s.hides != 0 {
		t.Fatalf("live session: got %d hides, want 0", s.hides)
	}

	rd, err := NewReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	var offsets []float32
	for {
		e, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if e.Role == RoleDocument && e.Event.Kind == sheet.TouchMove {
			offsets = append(offsets, e.Metrics.Offset)
		}
	}
	if len(offsets) < 2 || offsets[0] != 0 || offsets[1] != 50 {
		t.Errorf("got recorded offsets %v, want [0 50 ...]", offsets)
	}

	res, err := Replay(bytes.NewReader(buf.Bytes()), time.Unix(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if res.Hides != 0 || res.Prevented != 1 {
		t.Errorf("got %+v, want no hides and one prevented event", res)
	}
	if res.Transform.Offset != 0 {
		t.Errorf("got transform %s, want the sheet not to move", res.Transform)
	}
}

func TestBadInput(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte("nope, not a recording"))); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got error %v, want ErrBadMagic", err)
	}
	if _, err := NewReader(bytes.NewReader(nil)); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got error %v, want ErrBadMagic", err)
	}

	hdr := []byte(magic)
	hdr = append(hdr, 99, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	if _, err := NewReader(bytes.NewReader(hdr)); !errors.Is(err, ErrBadVersion) {
		t.Errorf("got error %v, want ErrBadVersion", err)
	}

	var buf bytes.Buffer
	s := newSession(t, &buf, sheet.Options{})
	s.el.Dispatch(&sheet.Event{Kind: sheet.MouseDown, Target: &s.el})
	if err := s.rec.Close(); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-1]
	if _, err := Replay(bytes.NewReader(truncated), time.Unix(0, 0)); err == nil {
		t.Error("replaying a truncated recording succeeded")
	}
}
