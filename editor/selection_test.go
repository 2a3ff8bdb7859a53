package editor

import "testing"

// TestSelectionInvariantOrdering covers I4: an active selection always has
// first <= last lexicographically, regardless of which direction the drag
// ran.
func TestSelectionInvariantOrdering(t *testing.T) {
	c := newFilledControl(t, "abcdef", "ghijkl")
	c.SetCursorLocation(1, 2)
	c.selStart(selKbdTop)
	c.SetCursorLocation(0, 3)
	c.selExtendToCursor()

	fl, fo, ll, lo, active := c.SelectionRange()
	if !active {
		t.Fatalf("expected an active selection")
	}
	if !(pointLess(fl, fo, ll, lo) || pointEqual(fl, fo, ll, lo)) {
		t.Fatalf("selection endpoints out of order: (%d,%d) > (%d,%d)", fl, fo, ll, lo)
	}
}

func TestKeyboardSelectionCollapsesWhenCursorReturnsToAnchor(t *testing.T) {
	c := newFilledControl(t, "abcdef")
	c.SetCursorLocation(0, 2)
	c.selStart(selKbdTop)
	c.SetCursorLocation(0, 4)
	c.selExtendToCursor()
	c.SetCursorLocation(0, 2)
	c.selExtendToCursor()

	if c.sel.active() {
		t.Fatalf("keyboard selection should collapse to inactive when cursor returns to its anchor")
	}
}

func TestMouseSelectionTreatsEmptyDragAsInactive(t *testing.T) {
	c := newFilledControl(t, "abcdef")
	c.SetCursorLocation(0, 2)
	c.selStart(selMouseTop)
	c.selExtendToCursor()
	c.finishMouse()

	if c.sel.active() {
		t.Fatalf("an empty mouse drag should finish inactive, not as a caret-only selection")
	}
}

func TestStartingKeyboardSelectionClearsMouseSelection(t *testing.T) {
	c := newFilledControl(t, "abcdef")
	c.SetCursorLocation(0, 1)
	c.selStart(selMouseTop)
	c.SetCursorLocation(0, 3)
	c.selExtendToCursor()
	if !c.sel.state.isMouse() {
		t.Fatalf("expected a mouse selection to be active")
	}

	c.selStart(selKbdTop)
	if c.sel.state.isMouse() {
		t.Fatalf("starting a keyboard selection should have cleared the mouse selection")
	}
}
