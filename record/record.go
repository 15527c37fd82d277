// Package record records the input a sheet controller sees and replays it against a headless sheet.
//
// A recording starts with an uncompressed header holding the controller's options, followed by a snappy
// stream of events. Each event stores the time since the previous one, the target it was dispatched on,
// the event itself and, for scrollable event targets, their scroll metrics at the time of the event. Moves
// and releases carry the metrics of the scrollable target their session started on, so that replays make the
// same drag-versus-scroll decisions even when the content scrolls during a session.
package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/sheet"

	"gioui.org/f32"
	"github.com/golang/snappy"
)

const (
	magic   = "SHDR"
	version = 1
)

var (
	ErrBadMagic   = errors.New("not a gesture recording")
	ErrBadVersion = errors.New("unsupported recording version")
)

// Role identifies the event target an event was dispatched on.
type Role uint8

const (
	// RoleHandle is the target that starts drags: the drag handle, or the sheet if it has none.
	RoleHandle Role = iota
	// RoleDocument is the target that receives moves and releases.
	RoleDocument
)

// TargetKind describes the target of a recorded event.
type TargetKind uint8

const (
	// TargetNone is a target that isn't an element.
	TargetNone TargetKind = iota
	// TargetNode is an element that doesn't scroll.
	TargetNode
	// TargetScroller is a scrollable element.
	TargetScroller
)

type Header struct {
	Side             gesture.Side
	DragThreshold    float32
	DismissThreshold float32
}

func (hdr Header) Options() sheet.Options {
	return sheet.Options{
		Side:             hdr.Side,
		DragThreshold:    hdr.DragThreshold,
		DismissThreshold: hdr.DismissThreshold,
	}
}

// Entry is a recorded event.
type Entry struct {
	// Elapsed is the time since the previous entry.
	Elapsed time.Duration
	Role    Role
	// Event is the recorded event. Its Target is nil; see Target and Metrics.
	Event  sheet.Event
	Target TargetKind
	// Metrics are the target's scroll metrics along the sheet's axis, if Target is TargetScroller. For
	// RoleDocument entries they belong to the target the session started on.
	Metrics gesture.ScrollMetrics
}

// Recorder writes a recording.
type Recorder struct {
	w    *snappy.Writer
	side gesture.Side
	now  func() time.Time
	last time.Time
	buf  []byte
	err  error

	// session is the scrollable target of the current session, if any.
	session gesture.Scroller
}

// NewRecorder writes the header for a sheet configured with opts to w and returns a recorder for its
// events. now returns the host's current time.
func NewRecorder(w io.Writer, opts sheet.Options, now func() time.Time) (*Recorder, error) {
	hdr := append([]byte(magic), version, byte(opts.Side))
	hdr = binary.LittleEndian.AppendUint32(hdr, math.Float32bits(opts.DragThreshold))
	hdr = binary.LittleEndian.AppendUint32(hdr, math.Float32bits(opts.DismissThreshold))
	if _, err := w.Write(hdr); err != nil {
		return nil, fmt.Errorf("couldn't write header: %w", err)
	}
	return &Recorder{
		w:    snappy.NewBufferedWriter(w),
		side: opts.Side,
		now:  now,
		last: now(),
	}, nil
}

// Tap returns a function suitable for sheet.Dispatcher.Tap that records events dispatched on the target
// with the given role.
func (r *Recorder) Tap(role Role) func(*sheet.Event) {
	return func(ev *sheet.Event) { r.Record(role, ev) }
}

// Record records ev. Errors are sticky and reported by Close.
func (r *Recorder) Record(role Role, ev *sheet.Event) {
	if r.err != nil {
		return
	}

	now := r.now()
	elapsed := now.Sub(r.last)
	if elapsed < 0 {
		elapsed = 0
	}
	r.last = now

	b := r.buf[:0]
	b = binary.AppendUvarint(b, uint64(elapsed/time.Microsecond))
	b = append(b, byte(role), byte(ev.Kind), byte(ev.Button))
	b = appendPoint(b, ev.Position.X, ev.Position.Y)
	b = binary.AppendUvarint(b, uint64(len(ev.Touches)))
	for _, t := range ev.Touches {
		b = appendPoint(b, t.X, t.Y)
	}

	target := ev.Target
	switch role {
	case RoleHandle:
		if startsSession(ev) {
			r.session, _ = target.(gesture.Scroller)
		}
	case RoleDocument:
		if target == nil && r.session != nil {
			target = r.session
		}
		if ev.Kind == sheet.MouseUp || ev.Kind == sheet.TouchEnd {
			r.session = nil
		}
	}
	switch target := target.(type) {
	case gesture.Scroller:
		m := target.ScrollMetrics(r.side.Axis())
		b = append(b, byte(TargetScroller))
		b = appendFloat(b, m.Offset)
		b = appendFloat(b, m.Viewport)
		b = appendFloat(b, m.Extent)
	case sheet.Node:
		b = append(b, byte(TargetNode))
	default:
		b = append(b, byte(TargetNone))
	}
	r.buf = b

	if _, err := r.w.Write(b); err != nil {
		r.err = fmt.Errorf("couldn't write event: %w", err)
	}
}

// startsSession reports whether a controller begins a new session for ev.
func startsSession(ev *sheet.Event) bool {
	if _, ok := ev.Target.(sheet.Node); !ok {
		return false
	}
	switch ev.Kind {
	case sheet.MouseDown:
		return ev.Button == sheet.ButtonPrimary
	case sheet.TouchStart:
		return len(ev.Touches) == 1
	default:
		return false
	}
}

// Close flushes buffered events. It doesn't close the underlying writer.
func (r *Recorder) Close() error {
	if r.err != nil {
		return r.err
	}
	if err := r.w.Close(); err != nil {
		return fmt.Errorf("couldn't flush recording: %w", err)
	}
	return nil
}

func appendFloat(b []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
}

func appendPoint(b []byte, x, y float32) []byte {
	return appendFloat(appendFloat(b, x), y)
}

// Reader reads a recording.
type Reader struct {
	hdr Header
	r   *bufio.Reader
	n   int
}

func NewReader(r io.Reader) (*Reader, error) {
	var hdr [len(magic) + 10]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("couldn't read header: %w", err)
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	b := hdr[len(magic):]
	if b[0] != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, b[0])
	}
	side := gesture.Side(b[1])
	if _, err := side.MarshalText(); err != nil {
		return nil, fmt.Errorf("corrupt header: %w", err)
	}
	return &Reader{
		hdr: Header{
			Side:             side,
			DragThreshold:    math.Float32frombits(binary.LittleEndian.Uint32(b[2:])),
			DismissThreshold: math.Float32frombits(binary.LittleEndian.Uint32(b[6:])),
		},
		r: bufio.NewReader(snappy.NewReader(r)),
	}, nil
}

func (r *Reader) Header() Header { return r.hdr }

// Next returns the next entry. It returns io.EOF at the end of the recording.
func (r *Reader) Next() (Entry, error) {
	us, err := binary.ReadUvarint(r.r)
	if err != nil {
		if err == io.EOF {
			return Entry{}, io.EOF
		}
		return Entry{}, r.corrupt(err)
	}

	var e Entry
	e.Elapsed = time.Duration(us) * time.Microsecond

	var fixed [3 + 8]byte
	if _, err := io.ReadFull(r.r, fixed[:]); err != nil {
		return Entry{}, r.corrupt(err)
	}
	e.Role = Role(fixed[0])
	e.Event.Kind = sheet.EventKind(fixed[1])
	e.Event.Button = sheet.Button(fixed[2])
	e.Event.Position.X, e.Event.Position.Y = readPoint(fixed[3:])
	if e.Role > RoleDocument || e.Event.Kind > sheet.ContextMenu {
		return Entry{}, r.corrupt(fmt.Errorf("invalid role %d or kind %d", e.Role, e.Event.Kind))
	}

	n, err := binary.ReadUvarint(r.r)
	if err != nil {
		return Entry{}, r.corrupt(err)
	}
	if n > 10 {
		return Entry{}, r.corrupt(fmt.Errorf("implausible number of touches: %d", n))
	}
	if n > 0 {
		e.Event.Touches = make([]f32.Point, n)
		for i := range e.Event.Touches {
			var p [8]byte
			if _, err := io.ReadFull(r.r, p[:]); err != nil {
				return Entry{}, r.corrupt(err)
			}
			e.Event.Touches[i].X, e.Event.Touches[i].Y = readPoint(p[:])
		}
	}

	kind, err := r.r.ReadByte()
	if err != nil {
		return Entry{}, r.corrupt(err)
	}
	e.Target = TargetKind(kind)
	switch e.Target {
	case TargetNone, TargetNode:
	case TargetScroller:
		var m [12]byte
		if _, err := io.ReadFull(r.r, m[:]); err != nil {
			return Entry{}, r.corrupt(err)
		}
		e.Metrics = gesture.ScrollMetrics{
			Offset:   readFloat(m[0:]),
			Viewport: readFloat(m[4:]),
			Extent:   readFloat(m[8:]),
		}
	default:
		return Entry{}, r.corrupt(fmt.Errorf("invalid target kind %d", kind))
	}

	r.n++
	return e, nil
}

func (r *Reader) corrupt(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("corrupt recording at event %d: %w", r.n, err)
}

func readFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func readPoint(b []byte) (float32, float32) {
	return readFloat(b), readFloat(b[4:])
}
