package editor

import "testing"

// TestDisplayBufferRoundTrip covers law R3: display_from_buffer composed
// with buffer_from_display is the identity on in-range offsets for a line
// with no tabs, and lands on a tab boundary for one that has them.
func TestDisplayBufferRoundTrip(t *testing.T) {
	plain := newEditLineFromRunes([]rune("hello"))
	for off := 0; off <= plain.length; off++ {
		disp := displayFromBuffer(plain, off, 4)
		back := bufferFromDisplay(plain, disp, 4, ModernNavigation)
		if back != off {
			t.Fatalf("plain line: offset %d round-tripped to %d", off, back)
		}
	}

	tabbed := newEditLineFromRunes([]rune("a\tbc"))
	disp := displayFromBuffer(tabbed, 1, 4) // just past 'a', before the tab
	if disp != 1 {
		t.Fatalf("display offset before tab = %d, want 1", disp)
	}
	// A display column that lands inside the tab's cell span projects to
	// the buffer offset of the tab character itself (the nearest
	// preceding boundary), not past it.
	mid := bufferFromDisplay(tabbed, 2, 4, ModernNavigation)
	if mid != 1 {
		t.Fatalf("mid-tab display column resolved to buffer offset %d, want 1", mid)
	}
}

func TestBufferFromDisplayModernClampsAtEOL(t *testing.T) {
	l := newEditLineFromRunes([]rune("ab"))
	off := bufferFromDisplay(l, 50, 4, ModernNavigation)
	if off != l.length {
		t.Fatalf("modern navigation past EOL = %d, want clamp to %d", off, l.length)
	}
}

func TestBufferFromDisplayTraditionalPreservesExcess(t *testing.T) {
	l := newEditLineFromRunes([]rune("ab"))
	off := bufferFromDisplay(l, 5, 4, TraditionalNavigation)
	if off != l.length+3 {
		t.Fatalf("traditional navigation past EOL = %d, want %d", off, l.length+3)
	}
}

// TestSetTabWidthTwiceIsNoOp covers law R4: set_tab_width(n); set_tab_width(n)
// must not change observable buffer content.
func TestSetTabWidthTwiceIsNoOp(t *testing.T) {
	c := New()
	c.InsertTextAtCursor("a\tb\tc")
	before := linesToText(c)
	c.SetTabWidth(4)
	c.SetTabWidth(4)
	after := linesToText(c)
	if len(before) != len(after) || before[0] != after[0] {
		t.Fatalf("SetTabWidth(n) twice changed content: %v -> %v", before, after)
	}
}
