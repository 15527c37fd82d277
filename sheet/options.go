package sheet

import (
	"time"

	"honnef.co/go/sheetdrag/gesture"
)

const (
	DefaultDismissThreshold = 64
	DefaultDragThreshold    = 5

	// HideDelay is how long hiding takes. It should match the duration of the host's transition.
	HideDelay = 300 * time.Millisecond

	// NoThreshold is a DismissThreshold of zero.
	NoThreshold = -1
)

// Options configure a Controller. Apart from Scheduler, the zero value is a bottom sheet with default
// thresholds.
type Options struct {
	Side gesture.Side
	// Handle is the target that starts drags. It defaults to the sheet element.
	Handle EventTarget
	// DismissThreshold is the distance in pixels a drag has to cover for the sheet to be dismissed. Zero
	// means DefaultDismissThreshold. Use NoThreshold to dismiss every drag that doesn't end behind the
	// point where it became a drag.
	DismissThreshold float32
	// DragThreshold is the distance in pixels the pointer has to move before a drag starts. It is also the
	// cross-axis distance that cancels a session, so it has to be positive; zero and negative values mean
	// DefaultDragThreshold.
	DragThreshold float32
	// Scheduler runs the delayed part of hiding. It is required.
	Scheduler Scheduler
}

func (opts Options) withDefaults() Options {
	if opts.DismissThreshold == 0 {
		opts.DismissThreshold = DefaultDismissThreshold
	}
	if opts.DismissThreshold < 0 {
		opts.DismissThreshold = 0
	}
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = DefaultDragThreshold
	}
	return opts
}

// Resting returns the transform of a shown sheet.
func Resting(side gesture.Side) Transform {
	return Transform{Axis: side.Axis()}
}

// Offscreen returns the transform of a hidden sheet, which is moved by its own size towards its side.
func Offscreen(side gesture.Side) Transform {
	return Transform{Axis: side.Axis(), Offset: side.Sign() * 100, Unit: Percent}
}
