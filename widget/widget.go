package widget

import (
	"context"
	"image"
	"image/color"
	rtrace "runtime/trace"

	"honnef.co/go/sheetdrag/layout"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

// Border draws a border of the given width along one edge of a widget.
type Border struct {
	Color color.NRGBA
	Width unit.Dp
	// Top selects the top edge instead of the bottom one.
	Top bool
}

func (b Border) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.Border.Layout").End()

	dims := w(gtx)
	sz := dims.Size
	bwidth := gtx.Dp(b.Width)

	r := clip.Rect{Min: image.Pt(0, sz.Y-bwidth), Max: sz}
	if b.Top {
		r = clip.Rect{Max: image.Pt(sz.X, bwidth)}
	}
	paint.FillShape(gtx.Ops, b.Color, r.Op())

	return dims
}

func ColorTextMaterial(gtx layout.Context, c color.NRGBA) op.CallOp {
	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	return m.Stop()
}

// Background fills the area of a widget before drawing the widget on top of it.
type Background struct {
	Color  color.NRGBA
	Radius unit.Dp
}

func (b Background) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.Background.Layout").End()

	m := op.Record(gtx.Ops)
	dims := w(gtx)
	content := m.Stop()

	area := image.Rectangle{Max: dims.Size}
	if r := gtx.Dp(b.Radius); r > 0 {
		paint.FillShape(gtx.Ops, b.Color, clip.UniformRRect(area, r).Op(gtx.Ops))
	} else {
		paint.FillShape(gtx.Ops, b.Color, clip.Rect(area).Op())
	}
	content.Add(gtx.Ops)
	return dims
}

// Grip is the bar commonly drawn on drag handles. It is centered in the space it is given, which it fills
// along the horizontal axis.
type Grip struct {
	Color  color.NRGBA
	Width  unit.Dp
	Height unit.Dp
	Inset  unit.Dp
}

func (g Grip) Layout(gtx layout.Context) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.Grip.Layout").End()

	inset := gtx.Dp(g.Inset)
	bar := image.Pt(gtx.Dp(g.Width), gtx.Dp(g.Height))
	size := image.Pt(gtx.Constraints.Max.X, bar.Y+2*inset)
	size = gtx.Constraints.Constrain(size)

	min := image.Pt((size.X-bar.X)/2, (size.Y-bar.Y)/2)
	rr := clip.UniformRRect(image.Rectangle{Min: min, Max: min.Add(bar)}, bar.Y/2)
	paint.FillShape(gtx.Ops, g.Color, rr.Op(gtx.Ops))

	return layout.Dimensions{Size: size}
}
