package gesture

import "gioui.org/gesture"

type Click = gesture.Click

type ClickEvent = gesture.ClickEvent

const KindClick = gesture.KindClick
