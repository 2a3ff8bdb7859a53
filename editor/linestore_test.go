package editor

import "testing"

func linesToText(c *Control) []string {
	out := make([]string, c.LineCount())
	for i := range out {
		out[i] = c.Line(i)
	}
	return out
}

func TestLineStoreGrowthStaysWithinAllocation(t *testing.T) {
	s := newLineStore()
	s.insertEmptyLines(0, 5000)
	if s.count() > cap(s.lines) {
		t.Fatalf("populated %d exceeds allocated %d", s.count(), cap(s.lines))
	}
	if cap(s.lines)%lineArrayMinAlloc != 0 {
		t.Fatalf("backing array capacity %d not a %d boundary", cap(s.lines), lineArrayMinAlloc)
	}
}

func TestEditLineLengthNeverExceedsCapacity(t *testing.T) {
	l := newEditLine()
	l.setLength(10)
	l.setLength(200)
	if l.length > cap(l.data) {
		t.Fatalf("length %d exceeds capacity %d", l.length, cap(l.data))
	}
}

func TestEditLineSetLengthPadsWithSpaces(t *testing.T) {
	l := newEditLineFromRunes([]rune("ab"))
	l.setLength(5)
	if got := l.text(); got != "ab   " {
		t.Fatalf("setLength padding = %q, want %q", got, "ab   ")
	}
}

func TestLineStoreSplitAndMerge(t *testing.T) {
	s := newLineStore()
	s.lines[0] = newEditLineFromRunes([]rune("hello world"))
	newIdx := s.splitLine(0, 5)
	if newIdx != 1 || s.count() != 2 {
		t.Fatalf("splitLine = %d, count %d", newIdx, s.count())
	}
	if s.line(0).text() != "hello" || s.line(1).text() != " world" {
		t.Fatalf("split content = %q / %q", s.line(0).text(), s.line(1).text())
	}
	s.mergeLines(0)
	if s.count() != 1 || s.line(0).text() != "hello world" {
		t.Fatalf("merge result = %q (count %d)", s.line(0).text(), s.count())
	}
}

func TestLineStoreDeleteLinesCollapsesToOneOnEmpty(t *testing.T) {
	s := newLineStore()
	s.insertEmptyLines(0, 2)
	s.deleteLines(0, 2)
	if s.count() != 1 {
		t.Fatalf("count after deleting every line = %d, want 1", s.count())
	}
}
