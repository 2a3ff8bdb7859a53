package editor

import "testing"

func newFilledControl(t *testing.T, lines ...string) *Control {
	t.Helper()
	c := New()
	for i, s := range lines {
		if i > 0 {
			c.InsertTextAtCursor("\n")
		}
		c.InsertTextAtCursor(s)
	}
	c.SetModifyState(false)
	c.SetCursorLocation(0, 0)
	// Start from the filled buffer with no edit history of its own.
	c.undoStack, c.redoStack = nil, nil
	return c
}

func measure(text string) (lines, lastCol int) {
	cur := 0
	for _, r := range text {
		if r == '\n' {
			lines++
			cur = 0
			continue
		}
		cur++
	}
	return lines, cur
}

// TestInsertThenDeleteRoundTrips covers law R1: insert_range(p, text)
// followed by delete_range(p, p+measure(text)) restores the original
// buffer.
func TestInsertThenDeleteRoundTrips(t *testing.T) {
	c := newFilledControl(t, "hello world", "second line")
	before := linesToText(c)

	text := "XY\nZ"
	endLn, endOff := c.insertRange(0, 5, text, false)

	addedLines, lastCol := measure(text)
	if endLn != 0+addedLines || endOff != lastCol {
		t.Fatalf("insertRange end = (%d,%d), want (%d,%d)", endLn, endOff, addedLines, lastCol)
	}

	c.deleteRange(0, 5, endLn, endOff, false, false)
	after := linesToText(c)

	if len(before) != len(after) {
		t.Fatalf("round trip changed line count: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("round trip mismatch on line %d: %q -> %q", i, before[i], after[i])
		}
	}
}

// TestGetRangeTextDeleteInsertRoundTrips covers law R2: capturing a range's
// text, deleting it, then reinserting the captured text at the same point
// restores the original buffer.
func TestGetRangeTextDeleteInsertRoundTrips(t *testing.T) {
	c := newFilledControl(t, "alpha beta", "gamma delta", "epsilon")
	before := linesToText(c)

	captured := c.getRangeText(0, 2, 2, 4, "\n")
	c.deleteRange(0, 2, 2, 4, false, false)
	c.insertRange(0, 2, captured, false)
	after := linesToText(c)

	if len(before) != len(after) {
		t.Fatalf("round trip changed line count: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("round trip mismatch on line %d: %q -> %q", i, before[i], after[i])
		}
	}
}

func TestInsertPastLineEndPadsWithSpaces(t *testing.T) {
	c := newFilledControl(t, "ab")
	c.insertRange(0, 5, "X", false)
	if got := c.Line(0); got != "ab   X" {
		t.Fatalf("insert past end = %q, want %q", got, "ab   X")
	}
}

func TestInsertRecognizesCRLFAsSingleBreak(t *testing.T) {
	c := New()
	c.insertRange(0, 0, "one\r\ntwo\rthree\nfour", false)
	want := []string{"one", "two", "three", "four"}
	if c.LineCount() != len(want) {
		t.Fatalf("line count = %d, want %d (%v)", c.LineCount(), len(want), linesToText(c))
	}
	for i, w := range want {
		if c.Line(i) != w {
			t.Fatalf("line %d = %q, want %q", i, c.Line(i), w)
		}
	}
}

func TestDeleteAcrossEntireBuffer(t *testing.T) {
	c := newFilledControl(t, "one", "two", "three")
	last := c.LineCount() - 1
	c.deleteRange(0, 0, last, len(c.Line(last)), false, false)
	if c.LineCount() != 1 || c.Line(0) != "" {
		t.Fatalf("delete-all left %v, want a single empty line", linesToText(c))
	}
}

func TestDeleteAcrossFirstLine(t *testing.T) {
	c := newFilledControl(t, "one", "two", "three")
	c.deleteRange(0, 0, 0, 3, false, false)
	if c.Line(0) != "" || c.LineCount() != 3 {
		t.Fatalf("delete within first line left %v", linesToText(c))
	}
}

func TestDeleteAcrossLastLine(t *testing.T) {
	c := newFilledControl(t, "one", "two", "three")
	c.deleteRange(2, 0, 2, 5, false, false)
	if c.Line(2) != "" {
		t.Fatalf("delete within last line left %q", c.Line(2))
	}
}

func TestDeleteRangeBeyondBufferClamps(t *testing.T) {
	c := newFilledControl(t, "one", "two")
	c.deleteRange(0, 1, 5, 99, false, false)
	if c.LineCount() != 1 || c.Line(0) != "o" {
		t.Fatalf("out-of-range delete end = %v, want single line %q", linesToText(c), "o")
	}
}

func TestEnterAppliesAutoIndent(t *testing.T) {
	c := New()
	c.SetAutoIndent(true)
	c.InsertTextAtCursor("    foo")
	c.insertRange(0, 7, "\n", false)
	if c.Line(1) != "    " {
		t.Fatalf("auto-indented line = %q, want 4 spaces", c.Line(1))
	}
}

func TestEnterUnderOverwriteModeMigratesTail(t *testing.T) {
	c := New()
	c.InsertTextAtCursor("abcdef")
	c.overwriteRange(0, 2, "\n", false)
	if c.Line(0) != "ab" || c.Line(1) != "cdef" {
		t.Fatalf("overwrite-mode Enter split to %q / %q, want %q / %q", c.Line(0), c.Line(1), "ab", "cdef")
	}
}

func TestOverwriteFirstSegmentReplacesInPlace(t *testing.T) {
	c := newFilledControl(t, "abcdef")
	c.overwriteRange(0, 1, "XY", false)
	if c.Line(0) != "aXYdef" {
		t.Fatalf("overwrite = %q, want %q", c.Line(0), "aXYdef")
	}
}

func TestOverwritePastLineEndExtends(t *testing.T) {
	c := newFilledControl(t, "ab")
	c.overwriteRange(0, 3, "XY", false)
	if c.Line(0) != "ab XY" {
		t.Fatalf("overwrite past end = %q, want %q", c.Line(0), "ab XY")
	}
}

func TestDeleteSelectionClearsSelection(t *testing.T) {
	c := newFilledControl(t, "abcdef")
	c.SetSelectionRange(0, 1, 0, 4)
	c.deleteSelection()
	if c.hasSelection() {
		t.Fatalf("selection still active after deleteSelection")
	}
	if c.Line(0) != "aef" {
		t.Fatalf("buffer after deleteSelection = %q, want %q", c.Line(0), "aef")
	}
}
