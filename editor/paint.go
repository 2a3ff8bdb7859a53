package editor

// cursorShapePercent mirrors the source's insert/overwrite caret shape
// convention: a thin 20%-height bar in insert mode, a 50%-height block
// in overwrite mode.
const (
	insertCursorShapePct    = 20
	overwriteCursorShapePct = 50
)

// Paint repaints the dirty range through the ScreenWriter collaborator,
// walking only the visible lines inside the dirty range, and positions the cursor. A
// no-op if no ScreenWriter is wired (spec.md §4.I).
func (c *Control) Paint() {
	if c.screen == nil {
		return
	}
	w, h := c.screen.ClientSize()
	c.vp.width, c.vp.height = w, h

	r := c.dirty.consume()
	if r.isEmpty() {
		c.paintCursor()
		return
	}
	r = r.clampTo(c.vp.top + h - 1)

	first := r.first
	if first < c.vp.top {
		first = c.vp.top
	}
	last := r.last
	if last > c.vp.top+h-1 {
		last = c.vp.top + h - 1
	}

	for screenY := 0; screenY < h; screenY++ {
		ln := c.vp.top + screenY
		if ln < first || ln > last {
			continue
		}
		c.paintLine(ln, screenY, w)
	}

	c.paintCaption()
	c.paintCursor()
}

func (c *Control) paintLine(ln, screenY, width int) {
	if ln >= c.lines.count() {
		for x := 0; x < width; x++ {
			c.screen.SetClientCell(x, screenY, ' ', CellAttr{})
		}
		return
	}
	l := c.lines.line(ln)
	selFirst, selLast := -1, -1
	if c.hasSelection() && ln >= c.sel.firstLine && ln <= c.sel.lastLine {
		selFirst, selLast = 0, displayFromBuffer(l, l.length, c.tabWidth)
		if ln == c.sel.firstLine {
			selFirst = displayFromBuffer(l, c.sel.firstOffset, c.tabWidth)
		}
		if ln == c.sel.lastLine {
			selLast = displayFromBuffer(l, c.sel.lastOffset, c.tabWidth)
		}
	}

	disp := 0
	bufOff := 0
	for disp < c.vp.left+width && bufOff <= l.length {
		var ch rune
		width1 := 1
		if bufOff < l.length {
			ch = l.data[bufOff]
			if ch == '\t' {
				width1 = c.tabWidth - disp%c.tabWidth
				ch = ' '
			} else if ch == 0 {
				// Substitute a space for embedded NULs: some terminals
				// render a literal NUL as a visible glyph instead of
				// leaving the cell blank (spec.md §4.I).
				ch = ' '
			}
		} else {
			ch = ' '
		}
		for k := 0; k < width1; k++ {
			x := disp + k - c.vp.left
			if x >= 0 && x < width {
				selected := selFirst >= 0 && disp+k >= selFirst && disp+k < selLast
				c.screen.SetClientCell(x, screenY, ch, CellAttr{Selected: selected})
			}
		}
		disp += width1
		bufOff++
	}
}

func (c *Control) paintCaption() {
	if c.caption == "" {
		return
	}
	for i, r := range []rune(c.caption) {
		if r == 0 {
			r = ' '
		}
		c.screen.SetNonClientCell(i, 0, r, CellAttr{})
	}
}

func (c *Control) paintCursor() {
	x := c.cur.displayOffset - c.vp.left
	y := c.cur.line - c.vp.top
	visible := x >= 0 && x < c.vp.width && y >= 0 && y < c.vp.height
	c.screen.SetCursorState(visible, c.cursorShapePercent())
	if visible {
		c.screen.SetCursorLocation(x, y)
	}
}

func (c *Control) cursorShapePercent() int {
	if c.insertMode {
		return insertCursorShapePct
	}
	return overwriteCursorShapePct
}
