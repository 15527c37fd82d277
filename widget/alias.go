package widget

import "gioui.org/widget"

type Label = widget.Label
