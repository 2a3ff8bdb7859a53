package core

import "github.com/gdamore/tcell/v2"

// Rect is an axis-aligned screen rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x,y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Cell is a single screen cell: a rune plus its rendering style.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Painter draws into a shared [][]Cell framebuffer, clipped to a
// rectangle. A zero-value Painter is not usable; construct with
// NewPainter.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter returns a Painter over buf, clipped to clip.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// WithClip returns a Painter over the same buffer, further clipped to
// the intersection of the current clip and r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: intersectRect(p.clip, r)}
}

func intersectRect(a, b Rect) Rect {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.W, b.X+b.W), min(a.Y+a.H, b.Y+b.H)
	if x1 < x0 || y1 < y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// SetCell writes a single cell, dropping it silently if (x,y) falls
// outside the Painter's clip rectangle or the backing buffer.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r (clamped to the clip rectangle) with ch/style.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawBorder draws a box around r using charset [h, v, tl, tr, bl, br].
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	h, v, tl, tr, bl, br := charset[0], charset[1], charset[2], charset[3], charset[4], charset[5]
	for x := r.X + 1; x < r.X+r.W-1; x++ {
		p.SetCell(x, r.Y, h, style)
		p.SetCell(x, r.Y+r.H-1, h, style)
	}
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		p.SetCell(r.X, y, v, style)
		p.SetCell(r.X+r.W-1, y, v, style)
	}
	p.SetCell(r.X, r.Y, tl, style)
	p.SetCell(r.X+r.W-1, r.Y, tr, style)
	p.SetCell(r.X, r.Y+r.H-1, bl, style)
	p.SetCell(r.X+r.W-1, r.Y+r.H-1, br, style)
}

// FocusState is implemented by widgets that can report their own focus.
type FocusState interface {
	IsFocused() bool
}

// FocusCycler is implemented by container widgets that manage focus
// across a set of children (spec.md's TAB-traversal supplement; see
// ScrollPane.CycleFocus).
type FocusCycler interface {
	CycleFocus(forward bool) bool
}

// Layout positions a widget tree within a rectangle. UIManager.SetLayout
// stores one, but UIManager never invokes it: widgets keep the absolute
// positions they were given.
type Layout interface {
	Layout(widgets []Widget, area Rect)
}

// EffectiveStyle returns style unchanged: BaseWidget's enabled field is
// not consulted, so no widget is drawn in a dimmed style. Pane and
// ScrollPane call it for their background fill.
func (b *BaseWidget) EffectiveStyle(style tcell.Style) tcell.Style {
	return style
}
