package editor

import "strings"

// splitInsertText splits text into the lines it would occupy once
// inserted, recognizing '\r', '\n', and "\r\n" as line terminators (a
// "\r\n" pair consumes both as a single break, per spec.md's edge
// cases). Returns one segment per resulting line (lineCount+1 segments
// for lineCount terminators).
func splitInsertText(text string) (segments [][]rune, lineCount int) {
	r := []rune(text)
	var cur []rune
	for i := 0; i < len(r); i++ {
		switch r[i] {
		case '\r':
			segments = append(segments, cur)
			cur = nil
			lineCount++
			if i+1 < len(r) && r[i+1] == '\n' {
				i++
			}
		case '\n':
			segments = append(segments, cur)
			cur = nil
			lineCount++
		default:
			cur = append(cur, r[i])
		}
	}
	segments = append(segments, cur)
	return segments, lineCount
}

// leadingWhitespace returns the contiguous run of spaces/tabs at the
// start of l (spec.md §4.E step 2; auto-indent characters are
// whitespace-only).
func leadingWhitespace(l *editLine) []rune {
	var out []rune
	for i := 0; i < l.length; i++ {
		if l.data[i] == ' ' || l.data[i] == '\t' {
			out = append(out, l.data[i])
		} else {
			break
		}
	}
	return out
}

// insertRange inserts text at (firstLn,firstOff), returning the
// resulting cursor position. See spec.md §4.E.
func (c *Control) insertRange(firstLn, firstOff int, text string, processingUndo bool) (endLn, endOff int) {
	segments, lineCount := splitInsertText(text)

	orig := c.lines.line(firstLn)

	var indent []rune
	appliedIndent := false
	if c.autoIndent && lineCount > 0 && len(segments[lineCount]) == 0 && !processingUndo {
		indent = leadingWhitespace(orig)
		appliedIndent = len(indent) > 0
	}

	if lineCount == 0 {
		endLn = firstLn
		endOff = c.placeFirstSegment(orig, firstOff, segments[0])
	} else {
		tail := append([]rune(nil), orig.runesFrom(firstOff)...)
		c.placeFirstSegmentTruncating(orig, firstOff, segments[0])
		c.lines.insertEmptyLines(firstLn, lineCount)
		for i := 1; i < lineCount; i++ {
			c.lines.lines[firstLn+i] = newEditLineFromRunes(segments[i])
		}
		lastContent := append(append([]rune(nil), indent...), segments[lineCount]...)
		lastContent = append(lastContent, tail...)
		c.lines.lines[firstLn+lineCount] = newEditLineFromRunes(lastContent)
		endLn = firstLn + lineCount
		endOff = len(indent) + len(segments[lineCount])
		c.dirty.expand(firstLn, lastIndex)
	}
	if lineCount == 0 {
		c.dirty.expand(firstLn, firstLn)
	}

	if appliedIndent {
		c.cur.autoIndentApplied = true
		c.cur.autoIndentSourceLine = firstLn
		c.cur.autoIndentSourceLength = len(indent)
		c.cur.autoIndentAppliedLine = endLn
	}

	if !processingUndo {
		rec := c.getOrCreateInsertRecord(firstLn, firstOff)
		rec.lastLine, rec.lastOffset = endLn, endOff
		rec.insertedText = append(rec.insertedText, joinSegments(segments, indent, lineCount)...)
	}

	c.userModified = true
	c.clearDesired()
	return endLn, endOff
}

// runesFrom returns a copy-safe view of l's content from offset
// onward, or nil if offset is at or past the end.
func (l *editLine) runesFrom(offset int) []rune {
	if offset >= l.length {
		return nil
	}
	if offset < 0 {
		offset = 0
	}
	return l.data[offset:l.length]
}

// placeFirstSegment inserts seg at off on l (growing the line,
// space-padding if off exceeds the current length), returning the
// resulting offset after the inserted text. Used for the single-line
// (lineCount==0) case, where any existing tail must be preserved.
func (c *Control) placeFirstSegment(l *editLine, off int, seg []rune) int {
	if off > l.length {
		l.setLength(off)
	}
	tail := append([]rune(nil), l.data[off:l.length]...)
	needed := off + len(seg) + len(tail)
	l.setLength(needed)
	copy(l.data[off+len(seg):needed], tail)
	copy(l.data[off:off+len(seg)], seg)
	return off + len(seg)
}

// placeFirstSegmentTruncating sets l's content to its prefix up to off
// (padding with spaces if needed) followed by seg; any tail is
// discarded here because the caller has already saved it to relocate to
// the last newly-created line.
func (c *Control) placeFirstSegmentTruncating(l *editLine, off int, seg []rune) {
	if off > l.length {
		l.setLength(off)
	}
	needed := off + len(seg)
	l.setLength(needed)
	copy(l.data[off:needed], seg)
}

func joinSegments(segments [][]rune, indent []rune, lineCount int) []rune {
	var out []rune
	for i, seg := range segments {
		if i > 0 {
			out = append(out, '\n')
		}
		if i == lineCount {
			out = append(out, indent...)
		}
		out = append(out, seg...)
	}
	return out
}

// overwriteRange behaves like insertRange except that characters on the
// first target line are replaced in place rather than shifted right; a
// terminator mid-text still migrates the remainder of that line down,
// exactly as Enter does under overwrite mode (spec.md §4.E).
func (c *Control) overwriteRange(firstLn, firstOff int, text string, processingUndo bool) (endLn, endOff int) {
	segments, lineCount := splitInsertText(text)
	orig := c.lines.line(firstLn)

	if lineCount == 0 {
		seg := segments[0]
		if !processingUndo {
			c.recordOverwrite(firstLn, firstOff, orig, seg)
		}
		c.overwriteFirstSegment(orig, firstOff, seg)
		endLn, endOff = firstLn, firstOff+len(seg)
		c.dirty.expand(firstLn, firstLn)
		c.userModified = true
		c.clearDesired()
		return endLn, endOff
	}

	// A terminator is present: structurally identical to insertRange
	// (new lines are freshly allocated, so there's nothing on them to
	// overwrite), except the first line's targeted span is replaced
	// in place before the line is truncated at firstOff+len(segment).
	tail := append([]rune(nil), orig.runesFrom(firstOff+len(segments[0]))...)
	c.overwriteFirstSegment(orig, firstOff, segments[0])
	orig.length = firstOff + len(segments[0])

	var indent []rune
	if c.autoIndent && len(segments[lineCount]) == 0 && !processingUndo {
		indent = leadingWhitespace(orig)
	}

	c.lines.insertEmptyLines(firstLn, lineCount)
	for i := 1; i < lineCount; i++ {
		c.lines.lines[firstLn+i] = newEditLineFromRunes(segments[i])
	}
	lastContent := append(append([]rune(nil), indent...), segments[lineCount]...)
	lastContent = append(lastContent, tail...)
	c.lines.lines[firstLn+lineCount] = newEditLineFromRunes(lastContent)

	endLn = firstLn + lineCount
	endOff = len(indent) + len(segments[lineCount])
	c.dirty.expand(firstLn, lastIndex)

	if !processingUndo {
		rec := c.getOrCreateInsertRecord(firstLn, firstOff)
		rec.lastLine, rec.lastOffset = endLn, endOff
		rec.insertedText = append(rec.insertedText, joinSegments(segments, indent, lineCount)...)
	}

	c.userModified = true
	c.clearDesired()
	return endLn, endOff
}

// overwriteFirstSegment replaces l's content in [off, off+len(seg)) with
// seg, extending (space-padding) the line if the span runs past its
// current length.
func (c *Control) overwriteFirstSegment(l *editLine, off int, seg []rune) {
	if off > l.length {
		l.setLength(off)
	}
	needed := off + len(seg)
	if needed > l.length {
		l.setLength(needed)
	}
	copy(l.data[off:needed], seg)
}

// recordOverwrite extends (or creates) the OverwriteText record for a
// single-line in-place replacement.
func (c *Control) recordOverwrite(line, off int, l *editLine, seg []rune) {
	rec := c.getOrCreateOverwriteRecord(line, off)
	if rec.owFirstModOffset > off {
		rec.owFirstModOffset = off
	}
	newLast := off + len(seg)
	if newLast > rec.owLastModOffset {
		rec.owLastModOffset = newLast
	}
	// Recompute owTypedText as the current live span of the line
	// (post previous strokes) with this stroke's text overlaid; since
	// owSavedLine already captured the pristine original, and
	// subsequent strokes only grow the span monotonically forward in
	// typical typing, this keeps redo self-consistent.
	span := rec.owLastModOffset - rec.owFirstModOffset
	buf := make([]rune, span)
	copy(buf, safeSlice(rec.owTypedRelativeTo(l), rec.owFirstModOffset, len(buf)))
	relOff := off - rec.owFirstModOffset
	copy(buf[relOff:relOff+len(seg)], seg)
	rec.owTypedText = buf
}

// owTypedRelativeTo returns the line's *current* content (before this
// stroke is applied), used as the base onto which recordOverwrite
// overlays the new stroke.
func (rec *undoRecord) owTypedRelativeTo(l *editLine) []rune {
	return l.runes()
}

func safeSlice(r []rune, off, n int) []rune {
	if off < 0 {
		off = 0
	}
	if off > len(r) {
		return make([]rune, n)
	}
	end := off + n
	if end > len(r) {
		end = len(r)
	}
	out := make([]rune, n)
	copy(out, r[off:end])
	return out
}

// deleteRange deletes [firstLn,firstOff) to [lastLn,lastOff) (end
// exclusive), clamping an out-of-range end per spec.md's edge cases.
func (c *Control) deleteRange(firstLn, firstOff, lastLn, lastOff int, processingBackspace, processingUndo bool) {
	if !processingBackspace {
		c.cur.autoIndentApplied = false
	}
	lastLn, lastOff = c.clampDeleteEnd(lastLn, lastOff)
	if firstLn > lastLn || (firstLn == lastLn && firstOff >= lastOff) {
		return
	}

	if !processingUndo {
		text := c.getRangeText(firstLn, firstOff, lastLn, lastOff, "\n")
		rec, prepend := c.getOrCreateDeleteRecord(firstLn, firstOff, lastLn, lastOff)
		if prepend {
			rec.delBuf.prepend([]rune(text))
			rec.firstLine, rec.firstOffset = firstLn, firstOff
		} else {
			rec.delBuf.append([]rune(text))
		}
	}

	if firstLn == lastLn {
		l := c.lines.line(firstLn)
		if lastOff > l.length {
			lastOff = l.length
		}
		copy(l.data[firstOff:l.length-(lastOff-firstOff)], l.data[lastOff:l.length])
		l.length -= lastOff - firstOff
		c.dirty.expand(firstLn, firstLn)
	} else {
		first := c.lines.line(firstLn)
		last := c.lines.line(lastLn)
		prefixLen := firstOff
		suffixLen := last.length - lastOff
		combined := prefixLen + suffixLen
		first.ensureCapacity(combined)
		copy(first.data[prefixLen:combined], last.data[lastOff:last.length])
		first.length = combined
		if lastLn > firstLn {
			c.lines.deleteLines(firstLn+1, lastLn)
		}
		c.dirty.expand(firstLn, lastIndex)
	}

	c.userModified = true
	c.clearDesired()
}

// clampDeleteEnd clamps the exclusive end of a deletion into range: a
// last_line beyond the populated set (or at its boundary with offset 0)
// resolves to the end of the actual last line, never merging a
// non-existent trailing line (spec.md §4.E edge cases, §9 Open
// Questions).
func (c *Control) clampDeleteEnd(lastLn, lastOff int) (int, int) {
	pop := c.lines.count()
	if lastLn >= pop {
		return pop - 1, c.lines.line(pop - 1).length
	}
	l := c.lines.line(lastLn)
	if lastOff > l.length {
		lastOff = l.length
	}
	return lastLn, lastOff
}

// getRangeText returns the text between (firstLn,firstOff) and
// (lastLn,lastOff), with sep between lines.
func (c *Control) getRangeText(firstLn, firstOff, lastLn, lastOff int, sep string) string {
	lastLn, lastOff = c.clampDeleteEnd(lastLn, lastOff)
	if firstLn > lastLn || (firstLn == lastLn && firstOff >= lastOff) {
		return ""
	}
	if firstLn == lastLn {
		l := c.lines.line(firstLn)
		if firstOff > l.length {
			firstOff = l.length
		}
		return string(l.data[firstOff:lastOff])
	}
	var b strings.Builder
	first := c.lines.line(firstLn)
	fo := firstOff
	if fo > first.length {
		fo = first.length
	}
	b.WriteString(string(first.data[fo:first.length]))
	for ln := firstLn + 1; ln < lastLn; ln++ {
		b.WriteString(sep)
		b.WriteString(c.lines.line(ln).text())
	}
	b.WriteString(sep)
	last := c.lines.line(lastLn)
	lo := lastOff
	if lo > last.length {
		lo = last.length
	}
	b.WriteString(string(last.data[:lo]))
	return b.String()
}

// GetSelectedText returns the active selection's text, or "" if there is
// none (spec.md §6).
func (c *Control) GetSelectedText(sep string) string {
	if !c.hasSelection() {
		return ""
	}
	return c.getRangeText(c.sel.firstLine, c.sel.firstOffset, c.sel.lastLine, c.sel.lastOffset, sep)
}

// deleteSelection deletes the active selection's text and clears it.
func (c *Control) deleteSelection() {
	if !c.hasSelection() {
		return
	}
	fl, fo, ll, lo := c.sel.firstLine, c.sel.firstOffset, c.sel.lastLine, c.sel.lastOffset
	c.selClear()
	c.deleteRange(fl, fo, ll, lo, false, false)
	c.setCursor(fl, fo)
}

// InsertTextAtCursor inserts arbitrary (possibly multiline) text at the
// cursor, honoring read-only mode (spec.md §6).
func (c *Control) InsertTextAtCursor(text string) bool {
	if c.readOnly {
		return false
	}
	if c.hasSelection() {
		c.deleteSelection()
	}
	ln, off := c.cur.line, c.cur.offset
	return c.guardAlloc(func() {
		endLn, endOff := c.insertRange(ln, off, text, false)
		c.setCursor(endLn, endOff)
		c.ensureVisible()
	})
}
