package theme

import (
	"math"
	"time"

	"honnef.co/go/sheetdrag/layout"
	"honnef.co/go/stuff/math/mathutil"

	"gioui.org/op"
	"golang.org/x/exp/constraints"
)

type EasingFunction func(float64) float64

// Animation moves a value towards a target over time. Values are computed from the frame time, so an
// animation progresses only while frames are being drawn; Value requests new frames until the animation is
// done. The zero value rests at zero.
type Animation[T constraints.Integer | constraints.Float] struct {
	from, to T
	start    time.Time
	duration time.Duration
	ease     EasingFunction

	active bool
}

// Start animates from v1 to v2 over d, beginning at the current frame.
func (anim *Animation[T]) Start(gtx layout.Context, v1, v2 T, d time.Duration, ease EasingFunction) {
	anim.from = v1
	anim.to = v2
	anim.start = gtx.Now
	anim.duration = d
	anim.ease = ease
	anim.active = true
	op.InvalidateOp{}.Add(gtx.Ops)
}

// Jump ends the animation at v.
func (anim *Animation[T]) Jump(v T) {
	anim.active = false
	anim.from = v
	anim.to = v
}

// Target returns the value the animation ends at.
func (anim *Animation[T]) Target() T { return anim.to }

func (anim *Animation[T]) Value(gtx layout.Context) T {
	if !anim.active {
		return anim.to
	}

	d := gtx.Now.Sub(anim.start)
	if d >= anim.duration {
		anim.active = false
		return anim.to
	}

	op.InvalidateOp{}.Add(gtx.Ops)
	return mathutil.Lerp(anim.from, anim.to, anim.ease(float64(d)/float64(anim.duration)))
}

func (anim *Animation[T]) Done() bool {
	return !anim.active
}

func EaseOut(power int) EasingFunction {
	switch power {
	case 1:
		return func(r float64) float64 { return r }
	case 2:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r }
	case 3:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r*r }
	default:
		return func(r float64) float64 { return 1 - math.Pow(1-r, float64(power)) }
	}
}
