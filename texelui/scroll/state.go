// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable scroll-position primitive shared by ScrollPane.

package scroll

// State is the scroll position of a viewport of height ViewportHeight
// over content of height ContentHeight. It is immutable: every
// transition returns a new State rather than mutating in place, so
// ScrollPane can compare old/new offsets before deciding to invalidate.
type State struct {
	Offset         int
	ContentHeight  int
	ViewportHeight int
}

// NewState returns the scroll state for the given content/viewport
// heights, offset 0.
func NewState(contentHeight, viewportHeight int) State {
	return State{ContentHeight: contentHeight, ViewportHeight: viewportHeight}
}

func (s State) maxOffset() int {
	m := s.ContentHeight - s.ViewportHeight
	if m < 0 {
		return 0
	}
	return m
}

func (s State) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if m := s.maxOffset(); offset > m {
		return m
	}
	return offset
}

// WithContentHeight returns the state with a new content height,
// reclamping the offset.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = h
	s.Offset = s.clamp(s.Offset)
	return s
}

// WithViewportHeight returns the state with a new viewport height,
// reclamping the offset.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = h
	s.Offset = s.clamp(s.Offset)
	return s
}

// ScrollBy returns the state scrolled by delta rows (positive = down).
func (s State) ScrollBy(delta int) State {
	s.Offset = s.clamp(s.Offset + delta)
	return s
}

// ScrollTo returns the state scrolled the minimal amount so that row is
// visible within the viewport.
func (s State) ScrollTo(row int) State {
	if row < s.Offset {
		s.Offset = s.clamp(row)
	} else if row >= s.Offset+s.ViewportHeight {
		s.Offset = s.clamp(row - s.ViewportHeight + 1)
	}
	return s
}

// ScrollToCentered returns the state scrolled so row sits at the
// vertical center of the viewport.
func (s State) ScrollToCentered(row int) State {
	s.Offset = s.clamp(row - s.ViewportHeight/2)
	return s
}

// ScrollToTop returns the state scrolled to offset 0.
func (s State) ScrollToTop() State {
	s.Offset = 0
	return s
}

// ScrollToBottom returns the state scrolled to its maximum offset.
func (s State) ScrollToBottom() State {
	s.Offset = s.maxOffset()
	return s
}

// IsRowVisible reports whether content row is within the current
// viewport window.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

// CanScroll reports whether the content exceeds the viewport at all.
func (s State) CanScroll() bool { return s.ContentHeight > s.ViewportHeight }

// CanScrollUp reports whether there is hidden content above the
// viewport.
func (s State) CanScrollUp() bool { return s.Offset > 0 }

// CanScrollDown reports whether there is hidden content below the
// viewport.
func (s State) CanScrollDown() bool { return s.Offset < s.maxOffset() }
