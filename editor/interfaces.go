package editor

// CellAttr carries the per-cell rendering attributes a ScreenWriter
// needs beyond style: currently just whether the cell is drawn with
// the selected-text style, matching spec.md §4.I's two-style model.
type CellAttr struct {
	Selected bool
}

// ScreenWriter is the paint-side collaborator (spec.md §4.I, §6): the
// control draws into it cell by cell and reports cursor shape/position.
// It never reads back from the screen.
type ScreenWriter interface {
	SetClientCell(x, y int, ch rune, attr CellAttr)
	SetNonClientCell(x, y int, ch rune, attr CellAttr)
	SetCursorState(visible bool, shapePct int)
	SetCursorLocation(x, y int)
	ClientSize() (w, h int)
}

// Clipboard is the OS clipboard collaborator used by Copy/Cut/Paste.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, bool)
}

// ScrollBarHost receives viewport position updates (with the current
// line count) whenever the viewport origin moves (spec.md §4.D).
type ScrollBarHost interface {
	SetScrollPosition(top, visible, max int)
}

// TimerOwner identifies the holder of a recurring timer allocation, so a
// TimerHost implementation can route a fired timer back to the control
// that armed it.
type TimerOwner interface{}

// Timer is an opaque handle to a recurring timer allocation.
type Timer interface{}

// TimerHost arms and disarms the recurring timer used to drive
// auto-scroll while a mouse selection drag sits outside the client rect
// (spec.md §4.H).
type TimerHost interface {
	AllocateRecurring(owner TimerOwner, periodMS int) Timer
	Free(t Timer)
}

// CharClassifier supplies the word-boundary and whitespace predicates
// used by word-left/word-right navigation and double-click word
// selection (spec.md §9's word-motion supplement).
type CharClassifier interface {
	IsWordBreak(r rune) bool
	IsWhitespace(r rune) bool
}

// AsciiClassifier is the default CharClassifier: space, tab and '-' are
// word breaks and every other rune is a word character; IsWhitespace
// reports the ASCII whitespace runes.
type AsciiClassifier struct{}

func (AsciiClassifier) IsWordBreak(r rune) bool {
	return !isWordRune(r)
}

func (AsciiClassifier) IsWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

func isWordRune(r rune) bool {
	switch r {
	case ' ', '\t', '-':
		return false
	default:
		return true
	}
}
