package editor

import "math"

// dirtyRange accumulates the inclusive [first,last] line range the paint
// driver must refresh. The empty range is encoded as first > last
// (spec.md §3), so expand/consume never need a separate "is empty" flag.
type dirtyRange struct {
	first, last int
}

func newDirtyRange() dirtyRange {
	return dirtyRange{first: math.MaxInt32, last: 0}
}

func (d dirtyRange) isEmpty() bool { return d.first > d.last }

// expand widens the range to cover [first,last], clamping last at
// lastIndex so "through end of buffer" requests don't overflow.
func (d *dirtyRange) expand(first, last int) {
	if last > lastIndex {
		last = lastIndex
	}
	if first < d.first {
		d.first = first
	}
	if last > d.last {
		d.last = last
	}
}

// consume returns the current range and resets it to empty.
func (d *dirtyRange) consume() dirtyRange {
	r := *d
	*d = newDirtyRange()
	return r
}

// clampTo bounds a consumed range's last endpoint to the buffer's actual
// line count, since expand() may have been called with the lastIndex
// sentinel before the final population count was known.
func (d dirtyRange) clampTo(maxLine int) dirtyRange {
	if d.isEmpty() {
		return d
	}
	if d.last > maxLine {
		d.last = maxLine
	}
	return d
}
