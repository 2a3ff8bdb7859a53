package editor

// selectionState is the five-state-plus-inactive selection state machine
// of spec.md §4.F. Keyboard and mouse selections are tracked separately
// so that starting one kind clears the other.
type selectionState int

const (
	selInactive selectionState = iota
	selKbdTop                  // first==anchor, growing toward larger offsets via keyboard
	selKbdBottom               // last==anchor, growing toward smaller offsets via keyboard
	selMouseTop
	selMouseBottom
	selMouseDone // mouse selection finished (button released), still displayed
)

func (s selectionState) isKeyboard() bool {
	return s == selKbdTop || s == selKbdBottom
}

func (s selectionState) isMouse() bool {
	return s == selMouseTop || s == selMouseBottom || s == selMouseDone
}

// selection is the {active, first, last} record of spec.md §3. When
// active, (firstLine,firstOffset) <= (lastLine,lastOffset)
// lexicographically; keyboard selections keep that strict (no
// zero-width selection survives), mouse selections tolerate equality
// (an empty "caret-only" drag).
type selection struct {
	state                  selectionState
	firstLine, firstOffset int
	lastLine, lastOffset   int
}

func (s *selection) active() bool { return s.state != selInactive }

// pointLess reports whether (al,ao) sorts strictly before (bl,bo).
func pointLess(al, ao, bl, bo int) bool {
	if al != bl {
		return al < bl
	}
	return ao < bo
}

func pointEqual(al, ao, bl, bo int) bool {
	return al == bl && ao == bo
}

// start begins a selection of the given kind anchored at the cursor,
// clearing any selection of the other input kind first.
func (c *Control) selStart(kind selectionState) {
	sel := &c.sel
	if sel.active() {
		otherKind := (kind == selKbdTop || kind == selKbdBottom) != sel.state.isKeyboard()
		if otherKind {
			c.selClear()
		}
	}
	if !sel.active() {
		sel.firstLine, sel.firstOffset = c.cur.line, c.cur.offset
		sel.lastLine, sel.lastOffset = c.cur.line, c.cur.offset
		if kind == selKbdTop || kind == selKbdBottom {
			sel.state = selKbdTop
		} else {
			sel.state = selMouseTop
		}
	}
}

// extendToCursor re-derives the selection's first/last from its anchor
// and the current cursor position, per spec.md §4.F extend_to_cursor.
func (c *Control) selExtendToCursor() {
	sel := &c.sel
	if !sel.active() {
		return
	}
	// Recover the anchor: the endpoint that is NOT the side the cursor
	// was last driving. Since we always keep first/last consistent with
	// the *other* endpoint being the anchor, the anchor is whichever of
	// first/last was not just moved to the old cursor position. We track
	// this implicitly: on a *Top state the anchor is `first`; on a
	// *Bottom state the anchor is `last`.
	var anchorLine, anchorOffset int
	switch sel.state {
	case selKbdTop, selMouseTop:
		anchorLine, anchorOffset = sel.firstLine, sel.firstOffset
	case selKbdBottom, selMouseBottom:
		anchorLine, anchorOffset = sel.lastLine, sel.lastOffset
	default:
		anchorLine, anchorOffset = sel.firstLine, sel.firstOffset
	}

	cl, co := c.cur.line, c.cur.offset
	isKbd := sel.state.isKeyboard()

	c.selDirty()
	switch {
	case pointLess(cl, co, anchorLine, anchorOffset):
		sel.firstLine, sel.firstOffset = cl, co
		sel.lastLine, sel.lastOffset = anchorLine, anchorOffset
		if isKbd {
			sel.state = selKbdBottom
		} else {
			sel.state = selMouseBottom
		}
	case pointLess(anchorLine, anchorOffset, cl, co):
		sel.firstLine, sel.firstOffset = anchorLine, anchorOffset
		sel.lastLine, sel.lastOffset = cl, co
		if isKbd {
			sel.state = selKbdTop
		} else {
			sel.state = selMouseTop
		}
	default:
		// cursor == anchor: shrink to a caret.
		sel.firstLine, sel.firstOffset = cl, co
		sel.lastLine, sel.lastOffset = cl, co
		if isKbd {
			sel.state = selInactive
		}
		// mouse selections tolerate the caret-only empty drag and stay
		// in their *Top/*Bottom state until finishMouse() runs.
	}
	c.selDirty()
}

// finishMouse transitions a finished mouse drag to selMouseDone, or to
// selInactive if it never grew past a single caret. Cancels any armed
// auto-scroll timer.
func (c *Control) finishMouse() {
	c.cancelAutoScroll()
	sel := &c.sel
	if !sel.state.isMouse() {
		return
	}
	if pointEqual(sel.firstLine, sel.firstOffset, sel.lastLine, sel.lastOffset) {
		sel.state = selInactive
		return
	}
	sel.state = selMouseDone
}

// selClear marks the previously covered lines dirty and deactivates the
// selection.
func (c *Control) selClear() {
	if !c.sel.active() {
		return
	}
	c.selDirty()
	c.sel = selection{}
}

// selDirty widens the dirty range over the lines the current selection
// covers (a no-op if inactive).
func (c *Control) selDirty() {
	if !c.sel.active() {
		return
	}
	c.dirty.expand(c.sel.firstLine, c.sel.lastLine)
}

// hasSelection reports whether a non-empty selection is active.
func (c *Control) hasSelection() bool {
	return c.sel.active() && !pointEqual(c.sel.firstLine, c.sel.firstOffset, c.sel.lastLine, c.sel.lastOffset)
}

// SelectionRange returns the active selection's endpoints and whether one
// is active.
func (c *Control) SelectionRange() (firstLine, firstOffset, lastLine, lastOffset int, active bool) {
	return c.sel.firstLine, c.sel.firstOffset, c.sel.lastLine, c.sel.lastOffset, c.hasSelection()
}

// SetSelectionRange programmatically sets the selection (spec.md §6).
func (c *Control) SetSelectionRange(sLn, sOff, eLn, eOff int) {
	c.selClear()
	sLn, eLn = c.clampLine(sLn), c.clampLine(eLn)
	if pointLess(eLn, eOff, sLn, sOff) {
		sLn, sOff, eLn, eOff = eLn, eOff, sLn, sOff
	}
	if sLn == eLn && sOff == eOff {
		return
	}
	c.sel = selection{state: selKbdTop, firstLine: sLn, firstOffset: sOff, lastLine: eLn, lastOffset: eOff}
	c.selDirty()
}

// selectAll implements Ctrl+A.
func (c *Control) selectAll() {
	c.selClear()
	lastLn := c.lines.count() - 1
	lastLen := c.lines.line(lastLn).length
	if lastLn == 0 && lastLen == 0 {
		return
	}
	c.sel = selection{state: selKbdTop, firstLine: 0, firstOffset: 0, lastLine: lastLn, lastOffset: lastLen}
	c.selDirty()
	c.setCursor(lastLn, lastLen)
}
