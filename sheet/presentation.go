package sheet

// applyDragMode prepares the sheet for following the pointer: transforms apply instantly, text can't be
// selected, and nothing inside the sheet scrolls in response to touch gestures.
func (c *Controller) applyDragMode() {
	c.el.SetTransition(false)
	c.el.SetSelectable(false)
	setGestureScroll(c.el, false)
}

func (c *Controller) revertDragMode() {
	c.el.SetTransition(true)
	c.el.SetSelectable(true)
	setGestureScroll(c.el, true)
}

// setGestureScroll sets the flag on n and all of its descendants.
func setGestureScroll(n Node, enabled bool) {
	n.SetGestureScroll(enabled)
	for _, child := range n.Children() {
		setGestureScroll(child, enabled)
	}
}
