// Command sheetdemo shows a sheet that can be dragged off the edge of its window.
//
// Usage:
//
//	sheetdemo [-record file] [config.toml]
//	sheetdemo -replay file
//
// Clicking the area outside of the sheet shows or hides it, as does the space key.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"time"

	"honnef.co/go/sheetdrag/gesture"
	"honnef.co/go/sheetdrag/layout"
	"honnef.co/go/sheetdrag/record"
	"honnef.co/go/sheetdrag/sheet"
	"honnef.co/go/sheetdrag/theme"
	"honnef.co/go/sheetdrag/widget"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var local = message.NewPrinter(language.English)

const (
	colorBackground = 0x3a3a3aFF
	colorSheet      = 0xffffeaFF
	colorRowText    = 0x000000FF
	colorStatus     = 0xeeeeeeFF
	colorGrip       = 0x888888FF
	colorDivider    = 0xccccbbFF
)

func toColor(c uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(c & 0xFF),
		B: uint8(c >> 8 & 0xFF),
		G: uint8(c >> 16 & 0xFF),
		R: uint8(c >> 24 & 0xFF),
	}
}

func main() {
	recordPath := flag.String("record", "", "record gestures to `file`")
	replayPath := flag.String("replay", "", "replay the gestures in `file` and exit")
	flag.Parse()

	if *replayPath != "" {
		if err := replay(*replayPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg := defaultConfig()
	if flag.NArg() > 0 {
		var err error
		cfg, err = readConfig(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
	}

	go func() {
		w := app.NewWindow(app.Title("sheetdemo"))
		err := run(w, cfg, *recordPath)
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func replay(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := record.Replay(f, time.Now())
	if err != nil {
		return fmt.Errorf("couldn't replay %s: %w", path, err)
	}

	opts := res.Header.Options()
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = sheet.DefaultDragThreshold
	}
	if opts.DismissThreshold == 0 {
		opts.DismissThreshold = sheet.DefaultDismissThreshold
	}
	if opts.DismissThreshold < 0 {
		opts.DismissThreshold = 0
	}
	log.Print(local.Sprintf("%s sheet, drag threshold %.0fpx, dismiss threshold %.0fpx", opts.Side, opts.DragThreshold, opts.DismissThreshold))
	log.Print(local.Sprintf("replayed %d events, prevented default handling of %d", res.Events, res.Prevented))
	log.Print(local.Sprintf("shown %d times, hidden %d times, final transform %s", res.Shows, res.Hides, res.Transform))
	return nil
}

func run(w *app.Window, cfg config, recordPath string) error {
	s := theme.NewSheet(cfg.options(), cfg.Handle)
	ctrl := s.Controller()
	defer ctrl.Destroy()

	if recordPath != "" {
		f, err := os.Create(recordPath)
		if err != nil {
			return err
		}
		defer f.Close()
		rec, err := record.NewRecorder(f, cfg.options(), time.Now)
		if err != nil {
			return err
		}
		s.Record(rec)
		defer func() {
			if err := rec.Close(); err != nil {
				log.Printf("couldn't save recording: %s", err)
			}
		}()
	}

	shown := true
	var dismissals int
	ctrl.OnShow(func() { shown = true })
	ctrl.OnHide(func() {
		shown = false
		dismissals++
		log.Print(local.Sprintf("sheet hidden (%d so far)", dismissals))
	})

	shaper := text.NewShaper(text.WithCollection(gofont.Collection()))
	list := &theme.SheetScroll{List: layout.List{Axis: cfg.Side.Axis()}}
	var (
		ops op.Ops
		bg  gesture.Click
	)

	toggle := func() {
		if shown {
			ctrl.Hide()
		} else {
			ctrl.Show()
		}
	}

	for {
		switch ev := w.NextEvent().(type) {
		case system.DestroyEvent:
			return ev.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, ev)

			for _, ce := range bg.Update(gtx.Queue) {
				if ce.Kind == gesture.KindClick {
					toggle()
				}
			}
			for _, e := range gtx.Events(w) {
				if ke, ok := e.(key.Event); ok && ke.State == key.Press {
					switch ke.Name {
					case key.NameSpace:
						toggle()
					case key.NameEscape:
						ctrl.Hide()
					}
				}
			}
			if s.ContextMenuRequested() {
				log.Print("context menu requested")
			}

			paint.Fill(gtx.Ops, toColor(colorBackground))
			area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
			bg.Add(gtx.Ops)
			key.InputOp{Tag: w, Keys: key.Set("Space|⎋")}.Add(gtx.Ops)
			area.Pop()

			layoutStatus(gtx, shaper, s, cfg)

			theme.SheetStyle{Sheet: s, Background: toColor(colorSheet), Radius: 12}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return layoutContent(gtx, shaper, s, list, cfg)
			})

			ev.Frame(gtx.Ops)
		}
	}
}

func layoutStatus(gtx layout.Context, shaper *text.Shaper, s *theme.Sheet, cfg config) layout.Dimensions {
	status := local.Sprintf("%s sheet, %s, offset %.0fpx", cfg.Side, s.Controller().Phase(), s.Offset())
	return layout.UniformInset(8).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		return widget.Label{MaxLines: 1}.Layout(gtx, shaper, font.Font{}, 14, status, widget.ColorTextMaterial(gtx, toColor(colorStatus)))
	})
}

// layoutContent lays out the sheet's content: a grip if the sheet has a handle, followed by a list of rows.
// Sheets on the top and bottom edges take up to half the window's height, sheets on the left and right
// edges up to half its width.
func layoutContent(gtx layout.Context, shaper *text.Shaper, s *theme.Sheet, list *theme.SheetScroll, cfg config) layout.Dimensions {
	if cfg.Side.Axis() == layout.Vertical {
		gtx.Constraints.Max.Y /= 2
		gtx.Constraints.Min.Y = gtx.Constraints.Max.Y
	} else {
		gtx.Constraints.Max.X /= 2
		gtx.Constraints.Min.X = gtx.Constraints.Max.X
	}

	row := func(gtx layout.Context, i int) layout.Dimensions {
		gtx.Constraints.Min = image.Point{}
		border := widget.Border{Color: toColor(colorDivider), Width: 1}
		return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(12).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return widget.Label{MaxLines: 1}.Layout(gtx, shaper, font.Font{}, 16, local.Sprintf("Row %d", i+1), widget.ColorTextMaterial(gtx, toColor(colorRowText)))
			})
		})
	}
	rows := func(gtx layout.Context) layout.Dimensions {
		return list.Layout(gtx, s, cfg.Items, row)
	}

	if !cfg.Handle {
		return rows(gtx)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return s.LayoutHandle(gtx, widget.Grip{Color: toColor(colorGrip), Width: 48, Height: 5, Inset: 10}.Layout)
		}),
		layout.Flexed(1, rows),
	)
}
