package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkStructuralInvariants asserts I1-I3 hold for c's current state.
func checkStructuralInvariants(t *testing.T, c *Control) {
	t.Helper()
	assert.LessOrEqual(t, c.lines.count(), cap(c.lines.lines), "I1: lines_populated <= lines_allocated")
	for i := 0; i < c.lines.count(); i++ {
		l := c.lines.line(i)
		assert.LessOrEqual(t, l.length, cap(l.data), "I2: line %d length <= capacity", i)
	}
	assert.True(t, c.cur.line == 0 || c.cur.line < c.lines.count(), "I3: cursor_line = 0 or < lines_populated")
}

func TestInvariantsHoldAcrossAnOperationSequence(t *testing.T) {
	c := New()
	checkStructuralInvariants(t, c)

	c.InsertTextAtCursor("the quick brown fox\njumps over\nthe lazy dog")
	checkStructuralInvariants(t, c)

	c.SetCursorLocation(1, 0)
	c.selStart(selKbdTop)
	c.SetCursorLocation(2, 3)
	c.selExtendToCursor()
	checkStructuralInvariants(t, c)

	// I4: an active selection always has first <= last.
	fl, fo, ll, lo, active := c.SelectionRange()
	if active {
		assert.True(t, pointLess(fl, fo, ll, lo) || pointEqual(fl, fo, ll, lo), "I4: selection endpoints ordered")
	}

	c.typeText("XYZ")
	checkStructuralInvariants(t, c)

	c.backspace()
	checkStructuralInvariants(t, c)

	for i := 0; i < 5; i++ {
		c.InsertTextAtCursor("more text\n")
		checkStructuralInvariants(t, c)
	}

	for c.CanUndo() {
		c.Undo()
		checkStructuralInvariants(t, c)
	}
}

// TestInvariantAutoIndentAppliedImpliesCursorAtLanding covers I5: if
// auto-indent-applied, cursor_line = applied_line and cursor_offset =
// source_length.
func TestInvariantAutoIndentAppliedImpliesCursorAtLanding(t *testing.T) {
	c := New()
	c.SetAutoIndent(true)
	c.InsertTextAtCursor("  abc")
	c.InsertTextAtCursor("\n")

	require.True(t, c.cur.autoIndentApplied, "expected auto-indent to have applied")
	assert.Equal(t, c.cur.autoIndentAppliedLine, c.cur.line, "I5: cursor_line = applied_line")
	assert.Equal(t, c.cur.autoIndentSourceLength, c.cur.offset, "I5: cursor_offset = source_length")
}

// TestInvariantPaintLeavesDirtyRangeEmpty covers I6: after a paint, the
// dirty range is empty.
func TestInvariantPaintLeavesDirtyRangeEmpty(t *testing.T) {
	c := New()
	c.InsertTextAtCursor("hello\nworld")

	screen := &recordingScreenWriter{w: 80, h: 24}
	c.SetCollaborators(screen, nil, nil, nil, nil)
	c.Reposition(80, 24)

	c.Paint()

	assert.True(t, c.dirty.isEmpty(), "I6: dirty range must be empty after Paint")
}

// recordingScreenWriter is a minimal ScreenWriter stub for exercising
// Paint without a real terminal.
type recordingScreenWriter struct {
	w, h int
}

func (r *recordingScreenWriter) SetClientCell(x, y int, ch rune, attr CellAttr)    {}
func (r *recordingScreenWriter) SetNonClientCell(x, y int, ch rune, attr CellAttr) {}
func (r *recordingScreenWriter) SetCursorState(visible bool, shapePct int)        {}
func (r *recordingScreenWriter) SetCursorLocation(x, y int)                       {}
func (r *recordingScreenWriter) ClientSize() (w, h int)                           { return r.w, r.h }
