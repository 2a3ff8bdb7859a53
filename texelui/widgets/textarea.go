package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/texelation/texedit/editor"
	"github.com/texelation/texedit/texelui/core"
)

// TextArea is a multiline text-editing widget: a thin host around
// editor.Control that wires the control's ScreenWriter collaborator to a
// core.Painter and forwards key/mouse events to it.
type TextArea struct {
	core.BaseWidget
	Style      tcell.Style
	CaretStyle tcell.Style

	ctrl *editor.Control

	cursorVisible  bool
	cursorShapePct int
	cursorX        int
	cursorY        int
}

// NewTextArea creates a TextArea at (x,y) sized w x h, backed by a fresh
// editor.Control.
func NewTextArea(x, y, w, h int) *TextArea {
	t := &TextArea{
		Style:      tcell.StyleDefault,
		CaretStyle: tcell.StyleDefault.Reverse(true),
		ctrl:       editor.New(),
	}
	t.SetPosition(x, y)
	t.Resize(w, h)
	t.SetFocusable(true)
	return t
}

// Control exposes the underlying editor.Control for host code that needs
// direct access (text load/save, undo queries, collaborator wiring).
func (t *TextArea) Control() *editor.Control { return t.ctrl }

// Resize also repositions the control's viewport.
func (t *TextArea) Resize(w, h int) {
	t.BaseWidget.Resize(w, h)
	t.ctrl.Reposition(w, h)
}

// Draw wires a screenAdapter bound to this frame's Painter and rectangle
// into the control, then asks it to repaint its dirty lines.
func (t *TextArea) Draw(p *core.Painter) {
	adapter := &screenAdapter{ta: t, p: p, rect: t.Rect}
	t.ctrl.SetScreenWriter(adapter)
	t.ctrl.Paint()
	if t.IsFocused() && t.cursorVisible {
		x, y := t.Rect.X+t.cursorX, t.Rect.Y+t.cursorY
		p.SetCell(x, y, ' ', t.CaretStyle)
	}
}

// HandleKey forwards the event to the control.
func (t *TextArea) HandleKey(ev *tcell.EventKey) bool {
	return t.ctrl.HandleKey(ev)
}

// HandleMouse forwards the event to the control, translating screen
// coordinates into the widget's client space first.
func (t *TextArea) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	local := tcell.NewEventMouse(x-t.Rect.X, y-t.Rect.Y, ev.Buttons(), ev.Modifiers())
	return t.ctrl.HandleMouse(local)
}

func (t *TextArea) Focus() {
	t.BaseWidget.Focus()
	t.ctrl.HandleFocus(true)
}

func (t *TextArea) Blur() {
	t.BaseWidget.Blur()
	t.ctrl.HandleFocus(false)
}

// screenAdapter implements editor.ScreenWriter over a core.Painter
// clipped to a widget's rectangle; it is constructed fresh for every
// Draw call since the Painter itself is frame-scoped.
type screenAdapter struct {
	ta   *TextArea
	p    *core.Painter
	rect core.Rect
}

func (a *screenAdapter) SetClientCell(x, y int, ch rune, attr editor.CellAttr) {
	style := a.ta.Style
	if attr.Selected {
		style = style.Reverse(true)
	}
	a.p.SetCell(a.rect.X+x, a.rect.Y+y, ch, style)
}

// SetNonClientCell is a no-op: TextArea reserves no caption row of its
// own (a host that wants a caption wraps it in a Border and draws the
// caption there instead).
func (a *screenAdapter) SetNonClientCell(x, y int, ch rune, attr editor.CellAttr) {}

func (a *screenAdapter) SetCursorState(visible bool, shapePct int) {
	a.ta.cursorVisible = visible
	a.ta.cursorShapePct = shapePct
}

func (a *screenAdapter) SetCursorLocation(x, y int) {
	a.ta.cursorX, a.ta.cursorY = x, y
}

func (a *screenAdapter) ClientSize() (w, h int) {
	return a.rect.W, a.rect.H
}
