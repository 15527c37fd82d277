package gesture

import (
	"fmt"

	"gioui.org/f32"
	"gioui.org/layout"
)

// Side is the edge of the viewport a sheet is anchored to. A sheet is dismissed by dragging it away from
// the center of the viewport, towards its side.
type Side uint8

const (
	SideBottom Side = iota
	SideTop
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// ParseSide parses the output of Side.String.
func ParseSide(s string) (Side, error) {
	switch s {
	case "bottom":
		return SideBottom, nil
	case "top":
		return SideTop, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

func (s Side) MarshalText() ([]byte, error) {
	if s > SideRight {
		return nil, fmt.Errorf("invalid side %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Axis returns the axis along which a sheet on this side moves.
func (s Side) Axis() layout.Axis {
	switch s {
	case SideLeft, SideRight:
		return layout.Horizontal
	default:
		return layout.Vertical
	}
}

// Sign returns 1 if dismissing moves towards increasing coordinates and -1 otherwise.
func (s Side) Sign() float32 {
	switch s {
	case SideTop, SideLeft:
		return -1
	default:
		return 1
	}
}

// Along returns the component of p on the side's axis.
func (s Side) Along(p f32.Point) float32 {
	if s.Axis() == layout.Horizontal {
		return p.X
	}
	return p.Y
}

// Across returns the component of p on the axis perpendicular to the side's axis.
func (s Side) Across(p f32.Point) float32 {
	if s.Axis() == layout.Horizontal {
		return p.Y
	}
	return p.X
}

// Toward converts a signed distance along the side's axis into the distance travelled towards dismissal.
func (s Side) Toward(v float32) float32 {
	return v * s.Sign()
}

// Clamp limits an offset along the side's axis to the dismissable direction.
func (s Side) Clamp(v float32) float32 {
	if s.Sign() > 0 {
		return max(0, v)
	}
	return min(0, v)
}

// ScrollMetrics describes the scroll state of a scrollable element along one axis.
type ScrollMetrics struct {
	Offset   float32
	Viewport float32
	Extent   float32
}

// Scroller is implemented by elements that can scroll their content.
type Scroller interface {
	ScrollMetrics(axis layout.Axis) ScrollMetrics
}

// AtScrollEdge reports whether m is at the edge that allows dragging a sheet on side s. Bottom and right
// sheets check the start of the scroll range, top and left sheets the end.
func (s Side) AtScrollEdge(m ScrollMetrics) bool {
	switch s {
	case SideBottom, SideRight:
		return m.Offset == 0
	default:
		return m.Offset+m.Viewport >= m.Extent
	}
}

func atScrollEdge(sc Scroller, s Side) bool {
	if sc == nil {
		// Elements that can't scroll are always at the edge.
		return true
	}
	return s.AtScrollEdge(sc.ScrollMetrics(s.Axis()))
}
