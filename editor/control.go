package editor

import "github.com/gdamore/tcell/v2"

// noDesiredOffset is the sentinel for "no desired display offset has
// been populated yet" (spec.md §3's DWORD -1 idiom, named per spec.md
// §9's guidance to use a descriptive constant instead of a bare -1).
const noDesiredOffset = -1

// cursorState holds the cursor's position in both coordinate spaces plus
// the sticky "desired" column used across vertical navigation.
type cursorState struct {
	line, offset               int
	displayOffset              int
	desiredDisplayOffset       int
	autoIndentApplied          bool
	autoIndentSourceLine       int
	autoIndentSourceLength     int
	autoIndentAppliedLine      int
}

// viewportState holds the top-left origin of the visible window, in
// lines / display columns.
type viewportState struct {
	top, left int
	width     int // client width in display columns
	height    int // client height in lines
}

// Control is the multiline edit control: the coordinated line store,
// cursor, viewport, selection, and undo/redo state described by spec.md.
// It owns no screen resources; all host interaction goes through the
// collaborator interfaces in interfaces.go.
type Control struct {
	lines *lineStore
	dirty dirtyRange

	cur cursorState
	vp  viewportState
	sel selection

	undoStack []*undoRecord
	redoStack []*undoRecord

	tabWidth       int
	navMode        NavigationMode
	autoIndent     bool
	readOnly       bool
	insertMode     bool
	userModified   bool
	caption        string
	textStyle      tcell.Style
	selectedStyle  tcell.Style

	clip string // most recently copied/cut text, used when no Clipboard collaborator is wired

	screen     ScreenWriter
	clipboard  Clipboard
	scrollBar  ScrollBarHost
	timers     TimerHost
	classifier CharClassifier

	onCursorMove func(line, offset int)

	autoScroll autoScrollState
	lastClick  clickState
}

// New creates an empty control with sensible defaults: tab width 8,
// modern navigation, auto-indent on, insert mode on.
func New() *Control {
	c := &Control{
		lines:      newLineStore(),
		tabWidth:   8,
		navMode:    ModernNavigation,
		autoIndent: true,
		insertMode: true,
		classifier: AsciiClassifier{},
	}
	c.cur.desiredDisplayOffset = noDesiredOffset
	c.dirty = newDirtyRange()
	return c
}

// SetCollaborators wires the external collaborators described in
// spec.md §6. Any of them may be nil. Without a clipboard, Copy keeps
// the text in an internal buffer and returns ErrAbsentCollaborator, and
// Cut and Paste work through that internal buffer; a missing scroll bar
// or timer simply skips that optional side effect.
func (c *Control) SetCollaborators(screen ScreenWriter, clip Clipboard, sb ScrollBarHost, timers TimerHost, classifier CharClassifier) {
	c.screen = screen
	c.clipboard = clip
	c.scrollBar = sb
	c.timers = timers
	if classifier != nil {
		c.classifier = classifier
	}
}

// SetScreenWriter rewires just the paint-side collaborator, leaving the
// others untouched. Hosts that rebuild their Painter every frame (e.g.
// texelui/widgets.TextArea) call this once per Draw.
func (c *Control) SetScreenWriter(s ScreenWriter) {
	c.screen = s
}

// SetOnCursorMove installs a callback invoked whenever the cursor moves.
func (c *Control) SetOnCursorMove(fn func(line, offset int)) {
	c.onCursorMove = fn
}

// Clear resets the buffer, undo/redo stacks, cursor, viewport, and
// selection to their startup state (spec.md §6).
func (c *Control) Clear() {
	c.lines.reset()
	c.undoStack = nil
	c.redoStack = nil
	c.cur = cursorState{desiredDisplayOffset: noDesiredOffset}
	c.vp = viewportState{width: c.vp.width, height: c.vp.height}
	c.sel = selection{}
	c.userModified = false
	c.dirty = newDirtyRange()
	c.dirty.expand(0, lastIndex)
}

// LineCount returns the number of populated lines.
func (c *Control) LineCount() int { return c.lines.count() }

// Line returns the text of line i, or "" if i is out of range (a clamped
// best-effort read per spec.md §7's Bounds policy).
func (c *Control) Line(i int) string {
	if i < 0 || i >= c.lines.count() {
		return ""
	}
	return c.lines.line(i).text()
}

// SetCaption sets the non-client title text.
func (c *Control) SetCaption(text string) { c.caption = text }

// Caption returns the non-client title text.
func (c *Control) Caption() string { return c.caption }

// SetColor sets the normal and selected-text styles.
func (c *Control) SetColor(text, selected tcell.Style) {
	c.textStyle, c.selectedStyle = text, selected
	c.dirty.expand(0, lastIndex)
}

// SetTabWidth changes the tab stop width used for display mapping only;
// it never mutates buffer content (spec.md §6, law R4).
func (c *Control) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	if n == c.tabWidth {
		return
	}
	c.tabWidth = n
	c.recomputeDisplayCursor()
	c.dirty.expand(0, lastIndex)
}

// SetTraditionalNavigation toggles traditional vs. modern navigation mode.
func (c *Control) SetTraditionalNavigation(on bool) {
	if on {
		c.navMode = TraditionalNavigation
	} else {
		c.navMode = ModernNavigation
	}
}

// SetAutoIndent toggles auto-indent on Enter.
func (c *Control) SetAutoIndent(on bool) { c.autoIndent = on }

// SetReadOnly toggles read-only mode; content-modifying operations
// become no-ops while set.
func (c *Control) SetReadOnly(on bool) { c.readOnly = on }

// ReadOnly reports whether the control is read-only.
func (c *Control) ReadOnly() bool { return c.readOnly }

// ModifyState returns the UserModified bit.
func (c *Control) ModifyState() bool { return c.userModified }

// SetModifyState lets the host clear (or set) the modified bit, e.g.
// after a successful save.
func (c *Control) SetModifyState(v bool) { c.userModified = v }

// clampLine clamps a line index into the populated range.
func (c *Control) clampLine(ln int) int {
	if ln < 0 {
		return 0
	}
	if ln >= c.lines.count() {
		return c.lines.count() - 1
	}
	return ln
}

// Reposition resizes the control's client viewport and forces a full
// repaint (spec.md §6).
func (c *Control) Reposition(width, height int) {
	c.vp.width, c.vp.height = width, height
	c.ensureVisible()
	c.dirty.expand(0, lastIndex)
}
