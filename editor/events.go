package editor

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// autoScrollPeriodMS is the fixed tick rate of the auto-scroll timer
// armed while a mouse selection drag sits outside the client rect
// (spec.md §9's fixed-100ms supplement).
const autoScrollPeriodMS = 100

// autoScrollState tracks the recurring timer armed during an
// out-of-bounds mouse drag, and which direction it should nudge the
// viewport on each tick.
type autoScrollState struct {
	timer    Timer
	armed    bool
	dx, dy   int
}

// doubleClickWindow bounds how soon a second Button1 press at the same
// cell must follow the first to count as a DoubleClick (spec.md §4.H).
const doubleClickWindow = 500 * time.Millisecond

// clickState remembers the time and buffer position of the last Button1
// press, so HandleMouse can recognize a DoubleClick.
type clickState struct {
	at           time.Time
	line, offset int
}

func (c *Control) cancelAutoScroll() {
	if !c.autoScroll.armed {
		return
	}
	if c.timers != nil {
		c.timers.Free(c.autoScroll.timer)
	}
	c.autoScroll = autoScrollState{}
}

func (c *Control) armAutoScroll(dx, dy int) {
	if c.timers == nil {
		return
	}
	if c.autoScroll.armed {
		c.autoScroll.dx, c.autoScroll.dy = dx, dy
		return
	}
	c.autoScroll.timer = c.timers.AllocateRecurring(c, autoScrollPeriodMS)
	c.autoScroll.armed = true
	c.autoScroll.dx, c.autoScroll.dy = dx, dy
}

// HandleTimer advances the viewport by the armed auto-scroll delta and
// extends the in-progress mouse selection to the new edge (spec.md §4.H).
func (c *Control) HandleTimer() {
	if !c.autoScroll.armed {
		return
	}
	c.vp.top += c.autoScroll.dy
	c.vp.left += c.autoScroll.dx
	if c.vp.top < 0 {
		c.vp.top = 0
	}
	if c.vp.left < 0 {
		c.vp.left = 0
	}
	if c.vp.top > c.lines.count()-1 {
		c.vp.top = c.lines.count() - 1
	}
	c.dirty.expand(0, lastIndex)
	c.notifyScrollBar()
	if c.autoScroll.dy != 0 {
		c.setCursor(c.clampLine(c.cur.line+c.autoScroll.dy), c.cur.offset)
	}
	c.selExtendToCursor()
}

// HandleFocus clears any in-progress mouse drag state on focus loss.
func (c *Control) HandleFocus(focused bool) {
	if !focused {
		c.finishMouse()
	}
	c.dirty.expand(c.cur.line, c.cur.line)
}

// typeText inserts (in insert mode) or overwrites (in overwrite mode)
// text at the cursor, replacing any active selection first. Used for
// direct keystrokes; paste always inserts via InsertTextAtCursor.
func (c *Control) typeText(text string) bool {
	if c.readOnly {
		return false
	}
	if c.hasSelection() {
		c.deleteSelection()
	}
	ln, off := c.cur.line, c.cur.offset
	return c.guardAlloc(func() {
		var endLn, endOff int
		if c.insertMode {
			endLn, endOff = c.insertRange(ln, off, text, false)
		} else {
			endLn, endOff = c.overwriteRange(ln, off, text, false)
		}
		c.setCursor(endLn, endOff)
		c.ensureVisible()
	})
}

func (c *Control) backspace() {
	if c.readOnly {
		return
	}
	if c.hasSelection() {
		c.deleteSelection()
		c.ensureVisible()
		return
	}
	if c.cur.autoIndentApplied && c.cur.line == c.cur.autoIndentAppliedLine && c.cur.offset == c.cur.autoIndentSourceLength {
		c.dedentToShorterIndent()
		c.ensureVisible()
		return
	}
	ln, off := c.cur.line, c.cur.offset
	var pl, po int
	if off > 0 {
		pl, po = ln, off-1
	} else if ln > 0 {
		pl = ln - 1
		po = c.lines.line(pl).length
	} else {
		return
	}
	c.deleteRange(pl, po, ln, off, true, false)
	c.setCursor(pl, po)
	c.ensureVisible()
}

// dedentToShorterIndent implements spec.md §4.E's backspace-while-
// auto-indent-applied edge case: rather than deleting one character, it
// searches earlier lines for the nearest shorter whitespace prefix and
// retreats the current line's indent to that length (0 if none found).
func (c *Control) dedentToShorterIndent() {
	ln := c.cur.line
	target := c.previousShorterIndentLen(c.cur.autoIndentSourceLine, c.cur.autoIndentSourceLength)
	c.deleteRange(ln, target, ln, c.cur.offset, true, false)
	c.cur.autoIndentApplied = false
	c.setCursor(ln, target)
}

// previousShorterIndentLen scans lines [fromLine, 0] for the first whose
// leading whitespace run is shorter than currentLen, returning its length
// or 0 if the scan reaches the top of the buffer without finding one.
func (c *Control) previousShorterIndentLen(fromLine, currentLen int) int {
	for ln := fromLine; ln >= 0; ln-- {
		n := len(leadingWhitespace(c.lines.line(ln)))
		if n < currentLen {
			return n
		}
	}
	return 0
}

func (c *Control) deleteForward() {
	if c.readOnly {
		return
	}
	if c.hasSelection() {
		c.deleteSelection()
		c.ensureVisible()
		return
	}
	ln, off := c.cur.line, c.cur.offset
	l := c.lines.line(ln)
	var nl, no int
	if off < l.length {
		nl, no = ln, off+1
	} else if ln < c.lines.count()-1 {
		nl, no = ln+1, 0
	} else {
		return
	}
	c.deleteRange(ln, off, nl, no, false, false)
	c.ensureVisible()
}

// deleteCurrentLine implements the Ctrl+Y supplement: delete the
// cursor's entire line together with one line separator (its own
// terminator, or the preceding one when it is the last line) as one
// coalescable DeleteText record (spec.md §9).
func (c *Control) deleteCurrentLine() {
	if c.readOnly {
		return
	}
	ln := c.cur.line
	startOff := 0
	var endLn, endOff int
	if ln < c.lines.count()-1 {
		endLn, endOff = ln+1, 0
	} else if ln > 0 {
		endLn, endOff = ln, c.lines.line(ln).length
		ln--
		startOff = c.lines.line(ln).length
	} else {
		c.deleteRange(0, 0, 0, c.lines.line(0).length, false, false)
		c.setCursor(0, 0)
		c.ensureVisible()
		return
	}
	c.deleteRange(ln, startOff, endLn, endOff, false, false)
	c.setCursor(c.clampLine(ln), 0)
	c.ensureVisible()
}

func (c *Control) moveHorizontal(delta int) {
	c.clearDesired()
	ln, off := c.cur.line, c.cur.offset
	off += delta
	if c.navMode == TraditionalNavigation {
		// Traditional navigation stays on the current line and lets the
		// cursor rest past end-of-line.
		if off < 0 {
			off = 0
		}
		c.setCursor(ln, off)
		c.ensureVisible()
		return
	}
	for off < 0 && ln > 0 {
		ln--
		off += c.lines.line(ln).length + 1
	}
	for ln < c.lines.count()-1 && off > c.lines.line(ln).length {
		off -= c.lines.line(ln).length + 1
		ln++
	}
	if off < 0 {
		off = 0
	}
	if l := c.lines.line(ln); off > l.length {
		off = l.length
	}
	c.setCursor(ln, off)
	c.ensureVisible()
}

func (c *Control) moveVertical(delta int) {
	c.populateDesired()
	ln := c.clampLine(c.cur.line + delta)
	l := c.lines.line(ln)
	off := bufferFromDisplay(l, c.cur.desiredDisplayOffset, c.tabWidth, c.navMode)
	c.setCursor(ln, off)
	c.ensureVisible()
}

func (c *Control) moveHome() {
	c.clearDesired()
	l := c.lines.line(c.cur.line)
	firstNonBlank := 0
	for firstNonBlank < l.length && (l.data[firstNonBlank] == ' ' || l.data[firstNonBlank] == '\t') {
		firstNonBlank++
	}
	off := firstNonBlank
	if c.cur.offset == firstNonBlank {
		off = 0
	}
	c.setCursor(c.cur.line, off)
	c.ensureVisible()
}

func (c *Control) moveEnd() {
	c.clearDesired()
	c.setCursor(c.cur.line, c.lines.line(c.cur.line).length)
	c.ensureVisible()
}

func (c *Control) movePage(dir int) {
	c.populateDesired()
	delta := dir * c.vp.height
	if delta == 0 {
		delta = dir
	}
	ln := c.clampLine(c.cur.line + delta)
	l := c.lines.line(ln)
	off := bufferFromDisplay(l, c.cur.desiredDisplayOffset, c.tabWidth, c.navMode)
	c.vp.top = c.clampLine(c.vp.top + delta)
	c.setCursor(ln, off)
	c.dirty.expand(0, lastIndex)
	c.ensureVisible()
}

func (c *Control) moveDocStart() {
	c.clearDesired()
	c.setCursor(0, 0)
	c.ensureVisible()
}

func (c *Control) moveDocEnd() {
	c.clearDesired()
	ln := c.lines.count() - 1
	c.setCursor(ln, c.lines.line(ln).length)
	c.ensureVisible()
}

// moveWord implements Ctrl+Left/Ctrl+Right word motion, grounded on
// rjmcguire-godit's move_cursor_word_forward/backward: skip the run of
// whitespace (if any) under the cursor, then skip the following run of
// one class (word characters or word breaks) in the direction of travel.
func (c *Control) moveWord(forward bool) {
	c.clearDesired()
	ln, off := c.cur.line, c.cur.offset
	l := c.lines.line(ln)
	if forward {
		for off < l.length && c.classifier.IsWhitespace(l.data[off]) {
			off++
		}
		if off < l.length {
			brk := c.classifier.IsWordBreak(l.data[off])
			for off < l.length && !c.classifier.IsWhitespace(l.data[off]) && c.classifier.IsWordBreak(l.data[off]) == brk {
				off++
			}
		} else if ln < c.lines.count()-1 {
			ln++
			off = 0
		}
	} else {
		for off > 0 && c.classifier.IsWhitespace(l.data[off-1]) {
			off--
		}
		if off > 0 {
			brk := c.classifier.IsWordBreak(l.data[off-1])
			for off > 0 && !c.classifier.IsWhitespace(l.data[off-1]) && c.classifier.IsWordBreak(l.data[off-1]) == brk {
				off--
			}
		} else if ln > 0 {
			ln--
			off = c.lines.line(ln).length
		}
	}
	c.setCursor(ln, off)
	c.ensureVisible()
}

// isDoubleClick reports whether a Button1 press at (ln,off) falls within
// doubleClickWindow of the previous press at the same cell, and records
// this press as the new "previous" one either way.
func (c *Control) isDoubleClick(ln, off int) bool {
	now := time.Now()
	prev := c.lastClick
	c.lastClick = clickState{at: now, line: ln, offset: off}
	return !prev.at.IsZero() && prev.line == ln && prev.offset == off && now.Sub(prev.at) <= doubleClickWindow
}

// selectWordAt selects the run of word characters or word breaks (per
// c.classifier) touching buffer position (ln,off), expanding in both
// directions the same way moveWord does in one. A click on whitespace
// just places the caret.
func (c *Control) selectWordAt(ln, off int) {
	l := c.lines.line(ln)
	start, end := wordBoundsAt(l, off, c.classifier)
	c.selClear()
	c.setCursor(ln, end)
	if start == end {
		return
	}
	c.sel = selection{state: selMouseDone, firstLine: ln, firstOffset: start, lastLine: ln, lastOffset: end}
	c.selDirty()
}

// wordBoundsAt returns the [start,end) run of l sharing off's word/break
// class, or a zero-width range at off if off sits on whitespace or past
// the end of an empty line.
func wordBoundsAt(l *editLine, off int, classifier CharClassifier) (start, end int) {
	if l.length == 0 {
		return 0, 0
	}
	if off >= l.length {
		off = l.length - 1
	}
	if classifier.IsWhitespace(l.data[off]) {
		return off, off
	}
	brk := classifier.IsWordBreak(l.data[off])
	start, end = off, off+1
	for start > 0 && !classifier.IsWhitespace(l.data[start-1]) && classifier.IsWordBreak(l.data[start-1]) == brk {
		start--
	}
	for end < l.length && !classifier.IsWhitespace(l.data[end]) && classifier.IsWordBreak(l.data[end]) == brk {
		end++
	}
	return start, end
}

// HandleKey dispatches a key event, returning whether it was consumed.
// A shifted motion key starts a keyboard selection at the cursor (if none
// is active) and extends it to the cursor after the motion runs; an
// unshifted motion key first clears a keyboard selection (spec.md §4.H).
func (c *Control) HandleKey(ev *tcell.EventKey) bool {
	shift := ev.Modifiers()&tcell.ModShift != 0
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	isMotion := isMotionKey(ev.Key())
	if shift && isMotion {
		c.selStart(selKbdTop)
	} else if !shift && c.sel.state.isKeyboard() && isMotion {
		c.selClear()
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		if ctrl {
			c.moveWord(false)
		} else {
			c.moveHorizontal(-1)
		}
	case tcell.KeyRight:
		if ctrl {
			c.moveWord(true)
		} else {
			c.moveHorizontal(1)
		}
	case tcell.KeyUp:
		c.moveVertical(-1)
	case tcell.KeyDown:
		c.moveVertical(1)
	case tcell.KeyHome:
		if ctrl {
			c.moveDocStart()
		} else {
			c.moveHome()
		}
	case tcell.KeyEnd:
		if ctrl {
			c.moveDocEnd()
		} else {
			c.moveEnd()
		}
	case tcell.KeyPgUp:
		c.movePage(-1)
	case tcell.KeyPgDn:
		c.movePage(1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		c.backspace()
	case tcell.KeyDelete:
		c.deleteForward()
	case tcell.KeyEnter:
		c.typeText("\n")
	case tcell.KeyTab:
		c.typeText("\t")
	case tcell.KeyInsert:
		c.insertMode = !c.insertMode
	case tcell.KeyCtrlA:
		c.selectAll()
	case tcell.KeyCtrlC:
		c.Copy()
	case tcell.KeyCtrlX:
		c.Cut()
	case tcell.KeyCtrlV:
		c.Paste()
	case tcell.KeyCtrlZ:
		c.Undo()
	case tcell.KeyCtrlR:
		c.Redo()
	case tcell.KeyCtrlY:
		c.deleteCurrentLine()
	case tcell.KeyEsc:
		c.selClear()
	case tcell.KeyRune:
		c.typeText(string(ev.Rune()))
	default:
		if shift && isMotion {
			c.selExtendToCursor()
		}
		return false
	}

	if shift && isMotion {
		c.selExtendToCursor()
	}
	return true
}

func isMotionKey(k tcell.Key) bool {
	switch k {
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown,
		tcell.KeyHome, tcell.KeyEnd, tcell.KeyPgUp, tcell.KeyPgDn:
		return true
	default:
		return false
	}
}

// clientToBuffer maps a client-relative (x,y) cell to a buffer (line,
// offset) position, clamping into range.
func (c *Control) clientToBuffer(x, y int) (line, offset int) {
	line = c.clampLine(c.vp.top + y)
	l := c.lines.line(line)
	offset = bufferFromDisplay(l, c.vp.left+x, c.tabWidth, c.navMode)
	return line, offset
}

// HandleMouse dispatches a mouse event, returning whether it was
// consumed (spec.md §4.H).
func (c *Control) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		c.scrollLines(-3)
		return true
	case buttons&tcell.WheelDown != 0:
		c.scrollLines(3)
		return true
	case buttons&tcell.Button1 != 0:
		ln, off := c.clientToBuffer(x, y)
		if !c.sel.state.isMouse() {
			if c.isDoubleClick(ln, off) {
				c.selectWordAt(ln, off)
				c.ensureVisible()
				return true
			}
			c.setCursor(ln, off)
			c.selStart(selMouseTop)
		} else {
			c.setCursor(ln, off)
		}
		c.selExtendToCursor()
		c.adjustAutoScroll(x, y)
		c.ensureVisible()
		return true
	default:
		if c.sel.state.isMouse() && c.sel.state != selMouseDone {
			c.finishMouse()
			return true
		}
		return false
	}
}

// adjustAutoScroll arms or disarms the auto-scroll timer depending on
// whether (x,y) sits outside the client rectangle.
func (c *Control) adjustAutoScroll(x, y int) {
	dx, dy := 0, 0
	if y < 0 {
		dy = -1
	} else if y >= c.vp.height {
		dy = 1
	}
	if x < 0 {
		dx = -1
	} else if x >= c.vp.width {
		dx = 1
	}
	if dx == 0 && dy == 0 {
		c.cancelAutoScroll()
		return
	}
	c.armAutoScroll(dx, dy)
}

// scrollLines moves the viewport by delta lines without moving the
// cursor (mouse wheel).
func (c *Control) scrollLines(delta int) {
	top := c.vp.top + delta
	if top < 0 {
		top = 0
	}
	if max := c.lines.count() - 1; top > max {
		top = max
	}
	if top == c.vp.top {
		return
	}
	c.vp.top = top
	c.dirty.expand(0, lastIndex)
	c.notifyScrollBar()
}

// Copy writes the active selection's text to the clipboard collaborator
// (or the internal fallback if none is wired).
func (c *Control) Copy() error {
	if !c.hasSelection() {
		return nil
	}
	text := c.GetSelectedText("\n")
	c.clip = text
	if c.clipboard == nil {
		return wrapAbsent("Copy: no Clipboard collaborator wired")
	}
	return c.clipboard.Copy(text)
}

// Cut copies then deletes the active selection.
func (c *Control) Cut() error {
	if !c.hasSelection() {
		return nil
	}
	if err := c.Copy(); err != nil && c.clipboard != nil {
		return err
	}
	if c.readOnly {
		return nil
	}
	c.deleteSelection()
	c.ensureVisible()
	return nil
}

// Paste inserts the clipboard's text (or the internal fallback) at the
// cursor.
func (c *Control) Paste() bool {
	var text string
	if c.clipboard != nil {
		if t, ok := c.clipboard.Paste(); ok {
			text = t
		} else {
			text = c.clip
		}
	} else {
		text = c.clip
	}
	if text == "" {
		return false
	}
	return c.InsertTextAtCursor(text)
}
