package editor

// undoKind tags which of the three record shapes spec.md §3 describes a
// record carries.
type undoKind int

const (
	kindInsert undoKind = iota
	kindDelete
	kindOverwrite
)

// undoRecord is spec.md §3's tagged undo-record variant. Unlike the
// source's single-direction record (which relies on mirror_record to
// regenerate an inverse just before pushing it to the opposite stack),
// this record stores enough of both the "before" and "after" text to be
// applied directly in either direction. That trades a little memory for
// a record type usable on both the undo and redo stacks without a
// separate mirroring pass — see DESIGN.md's Open Question notes on
// OverwriteText.
type undoRecord struct {
	kind undoKind

	// Insert: the rectangle inserted; insertedText is what was inserted,
	// with '\n' as the line separator. Undo deletes [first,last); redo
	// re-inserts insertedText at (firstLine,firstOffset).
	firstLine, firstOffset int
	lastLine, lastOffset   int
	insertedText           []rune

	// Delete: (firstLine,firstOffset) is the point text is reinserted
	// at on undo. delBuf holds the deleted text (with '\n' separators),
	// growable at either end so adjacent backspaces/deletes coalesce.
	delBuf splitBuffer

	// Overwrite: owOrigLine/owOrigOffset is where this stroke's overwrite
	// began; owSavedLine is the *entire* original line content captured
	// on the first stroke (spec.md §3 and the matching Open Question in
	// spec.md §9); owFirstModOffset/owLastModOffset bound the span of
	// owOrigLine actually touched so far; owTypedText is what the user
	// typed across that span, for redo.
	owOrigLine, owOrigOffset           int
	owSavedLine                        []rune
	owFirstModOffset, owLastModOffset  int
	owTypedText                        []rune
}

// pushUndo pushes a new record and clears the redo stack, per spec.md
// §4.G: any content-modifying operation that is not itself an undo/redo
// replay clears redo.
func (c *Control) pushUndo(rec *undoRecord) {
	c.undoStack = append(c.undoStack, rec)
	c.redoStack = nil
}

func (c *Control) topUndo() *undoRecord {
	if len(c.undoStack) == 0 {
		return nil
	}
	return c.undoStack[len(c.undoStack)-1]
}

// getOrCreateInsertRecord returns the record a new insert at
// (firstLn,firstOff) should extend, creating one if the top of the undo
// stack isn't an adjacent InsertText record (spec.md §4.G: "follows
// when new first = record.last").
func (c *Control) getOrCreateInsertRecord(firstLn, firstOff int) *undoRecord {
	if top := c.topUndo(); top != nil && top.kind == kindInsert &&
		top.lastLine == firstLn && top.lastOffset == firstOff {
		return top
	}
	rec := &undoRecord{kind: kindInsert, firstLine: firstLn, firstOffset: firstOff, lastLine: firstLn, lastOffset: firstOff}
	c.pushUndo(rec)
	return rec
}

// getOrCreateDeleteRecord returns the record a deletion of
// [firstLn,firstOff)-[lastLn,lastOff) should extend. Backspace deletions
// grow backward (new last meets the record's current origin); forward
// (Delete-key) deletions grow forward from a fixed origin (new first
// equals the record's origin). Returns the record and which side the
// new text attaches to.
func (c *Control) getOrCreateDeleteRecord(firstLn, firstOff, lastLn, lastOff int) (rec *undoRecord, prepend bool) {
	if top := c.topUndo(); top != nil && top.kind == kindDelete {
		if top.firstLine == lastLn && top.firstOffset == lastOff {
			return top, true
		}
		if top.firstLine == firstLn && top.firstOffset == firstOff {
			return top, false
		}
	}
	rec = &undoRecord{kind: kindDelete, firstLine: firstLn, firstOffset: firstOff}
	rec.delBuf = newSplitBuffer(nil)
	c.pushUndo(rec)
	return rec, false
}

// getOrCreateOverwriteRecord returns the record a same-line overwrite
// stroke at (line,off) should extend ("follows when new first =
// record.last_modified"), snapshotting the entire original line on
// first creation.
func (c *Control) getOrCreateOverwriteRecord(line, off int) *undoRecord {
	if top := c.topUndo(); top != nil && top.kind == kindOverwrite &&
		top.owOrigLine == line && top.owLastModOffset == off {
		return top
	}
	rec := &undoRecord{kind: kindOverwrite, owOrigLine: line, owOrigOffset: off, owFirstModOffset: off, owLastModOffset: off}
	rec.owSavedLine = append([]rune(nil), c.lines.line(line).runes()...)
	c.pushUndo(rec)
	return rec
}

// Undo pops the top undo record, applies its inverse, and pushes it
// onto the redo stack. Reports whether a record was applied; in
// read-only mode nothing is applied.
func (c *Control) Undo() bool {
	if c.readOnly || len(c.undoStack) == 0 {
		return false
	}
	n := len(c.undoStack)
	rec := c.undoStack[n-1]
	c.undoStack = c.undoStack[:n-1]
	c.applyRecordUndo(rec)
	c.redoStack = append(c.redoStack, rec)
	c.selClear()
	return true
}

// Redo pops the top redo record, re-applies its original edit, and
// pushes it back onto the undo stack.
func (c *Control) Redo() bool {
	if c.readOnly || len(c.redoStack) == 0 {
		return false
	}
	n := len(c.redoStack)
	rec := c.redoStack[n-1]
	c.redoStack = c.redoStack[:n-1]
	c.applyRecordRedo(rec)
	c.undoStack = append(c.undoStack, rec)
	c.selClear()
	return true
}

// CanUndo / CanRedo expose stack availability (spec.md §6).
func (c *Control) CanUndo() bool { return len(c.undoStack) > 0 }
func (c *Control) CanRedo() bool { return len(c.redoStack) > 0 }

func (c *Control) applyRecordUndo(rec *undoRecord) {
	switch rec.kind {
	case kindInsert:
		c.deleteRange(rec.firstLine, rec.firstOffset, rec.lastLine, rec.lastOffset, false, true)
		c.setCursor(rec.firstLine, rec.firstOffset)
	case kindDelete:
		text := splitBufferToText(rec.delBuf.text())
		c.insertRange(rec.firstLine, rec.firstOffset, text, true)
		c.setCursor(rec.firstLine, rec.firstOffset)
	case kindOverwrite:
		c.restoreOverwriteLine(rec)
		c.setCursor(rec.owOrigLine, rec.owOrigOffset)
	}
	c.clearDesired()
	c.ensureVisible()
}

func (c *Control) applyRecordRedo(rec *undoRecord) {
	switch rec.kind {
	case kindInsert:
		text := runesToText(rec.insertedText)
		endLn, endOff := c.insertRange(rec.firstLine, rec.firstOffset, text, true)
		c.setCursor(endLn, endOff)
	case kindDelete:
		endLn, endOff := deleteEndFromBuffer(rec)
		c.deleteRange(rec.firstLine, rec.firstOffset, endLn, endOff, false, true)
		c.setCursor(rec.firstLine, rec.firstOffset)
	case kindOverwrite:
		c.replayOverwriteLine(rec)
		c.setCursor(rec.owOrigLine, rec.owLastModOffset)
	}
	c.clearDesired()
	c.ensureVisible()
}

// restoreOverwriteLine resets owOrigLine's content back to the saved
// snapshot, widening the dirty range over it.
func (c *Control) restoreOverwriteLine(rec *undoRecord) {
	l := c.lines.line(rec.owOrigLine)
	l.ensureCapacity(len(rec.owSavedLine))
	copy(l.data, rec.owSavedLine)
	l.length = len(rec.owSavedLine)
	c.dirty.expand(rec.owOrigLine, rec.owOrigLine)
}

// replayOverwriteLine re-applies the typed span recorded in rec onto the
// (already-restored, by construction of the undo/redo pairing) saved
// line content.
func (c *Control) replayOverwriteLine(rec *undoRecord) {
	l := c.lines.line(rec.owOrigLine)
	needed := rec.owFirstModOffset + len(rec.owTypedText)
	if needed > l.length {
		l.setLength(needed)
	}
	copy(l.data[rec.owFirstModOffset:rec.owFirstModOffset+len(rec.owTypedText)], rec.owTypedText)
	c.dirty.expand(rec.owOrigLine, rec.owOrigLine)
}

// deleteEndFromBuffer recovers the (line,offset) end point of a
// DeleteText record's originally-deleted span by walking its saved text
// from the origin, counting '\n' as line breaks.
func deleteEndFromBuffer(rec *undoRecord) (line, offset int) {
	line, offset = rec.firstLine, rec.firstOffset
	for _, r := range rec.delBuf.text() {
		if r == '\n' {
			line++
			offset = 0
		} else {
			offset++
		}
	}
	return line, offset
}

func splitBufferToText(r []rune) string { return runesToText(r) }

func runesToText(r []rune) string { return string(r) }
