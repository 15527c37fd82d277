package widget

import (
	"image"
	"image/color"
	"testing"

	"honnef.co/go/sheetdrag/layout"

	"gioui.org/op"
	"gioui.org/unit"
)

func TestBackground(t *testing.T) {
	for _, radius := range []unit.Dp{0, 12} {
		var ops op.Ops
		gtx := layout.Context{
			Ops:         &ops,
			Metric:      unit.Metric{PxPerDp: 2, PxPerSp: 2},
			Constraints: layout.Exact(image.Pt(300, 200)),
		}
		var got layout.Constraints
		dims := Background{Color: color.NRGBA{A: 0xFF}, Radius: radius}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			got = gtx.Constraints
			return layout.Dimensions{Size: image.Pt(300, 200)}
		})
		if got != gtx.Constraints {
			t.Errorf("radius %g: content got constraints %+v, want %+v", radius, got, gtx.Constraints)
		}
		if dims.Size != image.Pt(300, 200) {
			t.Errorf("radius %g: got size %v, want the content's size", radius, dims.Size)
		}
	}
}
