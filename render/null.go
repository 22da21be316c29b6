// Package render holds render targets that need no display.
package render

import "image/color"

// Null discards drawing and counts calls. Headless runs and the stress
// harness use it to keep the render path exercised.
type Null struct {
	Clears int
	Rects  int
}

func (n *Null) Clear(color.RGBA) {
	n.Clears++
}

func (n *Null) FillRect(x, y, w, h float64, c color.RGBA) {
	n.Rects++
}

// Reset zeroes the counters.
func (n *Null) Reset() {
	*n = Null{}
}
