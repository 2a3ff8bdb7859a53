package editor

// setCursor moves the cursor to (line, offset) in buffer space. A no-op
// if already there. Recomputes the display offset, fires onCursorMove,
// and clears the auto-indent-applied flag unless the new position is
// exactly the recorded auto-indent landing spot (spec.md §4.D, I5).
func (c *Control) setCursor(line, offset int) {
	if line == c.cur.line && offset == c.cur.offset {
		return
	}
	c.cur.line, c.cur.offset = line, offset
	c.recomputeDisplayCursor()
	if c.onCursorMove != nil {
		c.onCursorMove(line, offset)
	}
	if !(c.cur.autoIndentApplied && line == c.cur.autoIndentAppliedLine && offset == c.cur.autoIndentSourceLength) {
		c.cur.autoIndentApplied = false
	}
}

func (c *Control) recomputeDisplayCursor() {
	l := c.lines.line(c.clampLine(c.cur.line))
	c.cur.displayOffset = displayFromBuffer(l, c.cur.offset, c.tabWidth)
}

// populateDesired records the current display column as the sticky
// "desired" column, if one isn't already populated. Called once, the
// first time the user navigates vertically.
func (c *Control) populateDesired() {
	if c.cur.desiredDisplayOffset == noDesiredOffset {
		c.cur.desiredDisplayOffset = c.cur.displayOffset
	}
}

// clearDesired forgets the sticky desired column. Called by horizontal
// movement, Home/End, and all edits.
func (c *Control) clearDesired() {
	c.cur.desiredDisplayOffset = noDesiredOffset
}

// ensureVisible computes the minimal viewport adjustment so the cursor,
// and (if present and single-line) the active selection's endpoints,
// fall inside the client rectangle. Widens the dirty range and asks the
// scroll bar collaborator to repaint on any change (spec.md §4.D).
func (c *Control) ensureVisible() {
	if c.vp.width <= 0 || c.vp.height <= 0 {
		return
	}
	before := c.vp

	if c.cur.line < c.vp.top {
		c.vp.top = c.cur.line
	}
	if c.cur.line >= c.vp.top+c.vp.height {
		c.vp.top = c.cur.line - c.vp.height + 1
	}
	if c.cur.displayOffset < c.vp.left {
		c.vp.left = c.cur.displayOffset
	}
	if c.cur.displayOffset >= c.vp.left+c.vp.width {
		c.vp.left = c.cur.displayOffset - c.vp.width + 1
	}
	if c.vp.top < 0 {
		c.vp.top = 0
	}
	if c.vp.left < 0 {
		c.vp.left = 0
	}

	// A single-line selection's endpoints should also land inside the
	// viewport when they sit on the cursor's line (spec.md §4.D).
	if c.sel.active() && c.sel.firstLine == c.sel.lastLine && c.sel.firstLine == c.cur.line {
		fl := displayFromBuffer(c.lines.line(c.sel.firstLine), c.sel.firstOffset, c.tabWidth)
		ll := displayFromBuffer(c.lines.line(c.sel.lastLine), c.sel.lastOffset, c.tabWidth)
		if fl < c.vp.left {
			c.vp.left = fl
		}
		if ll >= c.vp.left+c.vp.width {
			c.vp.left = ll - c.vp.width + 1
		}
	}

	if before != c.vp {
		c.dirty.expand(0, lastIndex)
		c.notifyScrollBar()
	}
}

func (c *Control) notifyScrollBar() {
	if c.scrollBar == nil {
		return
	}
	max := c.lines.count()
	c.scrollBar.SetScrollPosition(c.vp.top, c.vp.height, max)
}

// GetCursorLocation returns the cursor's buffer-space position.
func (c *Control) GetCursorLocation() (line, offset int) {
	return c.cur.line, c.cur.offset
}

// SetCursorLocation sets the cursor's buffer-space position, clamping
// the line index into the populated range (spec.md §6).
func (c *Control) SetCursorLocation(line, offset int) {
	line = c.clampLine(line)
	if offset < 0 {
		offset = 0
	}
	c.clearDesired()
	c.setCursor(line, offset)
	c.ensureVisible()
}

// GetViewportLocation returns the viewport's origin in display
// coordinates.
func (c *Control) GetViewportLocation() (top, left int) {
	return c.vp.top, c.vp.left
}

// SetViewportLocation sets the viewport's origin without moving the
// cursor (spec.md §6).
func (c *Control) SetViewportLocation(top, left int) {
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	if top == c.vp.top && left == c.vp.left {
		return
	}
	c.vp.top, c.vp.left = top, left
	c.dirty.expand(0, lastIndex)
	c.notifyScrollBar()
}
