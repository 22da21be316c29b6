// Package termrender draws the two mirror worlds into side-by-side panes of
// a terminal screen.
package termrender

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/mirrorworld/ecs"
	"github.com/plus3/mirrorworld/systems"
)

// Pane is a rectangle of terminal cells showing one world layer scaled to
// fit. Every cell a world rect touches is painted.
type Pane struct {
	Screen tcell.Screen
	X, Y   int
	Cols   int
	Rows   int

	WorldWidth  float64
	WorldHeight float64
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (p *Pane) Clear(c color.RGBA) {
	p.fill(0, 0, p.Cols, p.Rows, c)
}

func (p *Pane) FillRect(x, y, w, h float64, c color.RGBA) {
	if p.WorldWidth <= 0 || p.WorldHeight <= 0 {
		return
	}
	cols, rows := float64(p.Cols), float64(p.Rows)

	c0 := int(math.Floor(x * cols / p.WorldWidth))
	c1 := int(math.Ceil((x + w) * cols / p.WorldWidth))
	r0 := int(math.Floor(y * rows / p.WorldHeight))
	r1 := int(math.Ceil((y + h) * rows / p.WorldHeight))
	p.fill(c0, r0, c1, r1, c)
}

// fill paints pane-relative cells [c0,c1) x [r0,r1), clipped to the pane.
func (p *Pane) fill(c0, r0, c1, r1 int, c color.RGBA) {
	c0, c1 = max(c0, 0), min(c1, p.Cols)
	r0, r1 = max(r0, 0), min(r1, p.Rows)

	style := tcell.StyleDefault.Background(cellColor(c))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			p.Screen.SetContent(p.X+col, p.Y+row, ' ', nil, style)
		}
	}
}

// Display splits a screen into a left and a right pane above one status
// line.
type Display struct {
	Screen tcell.Screen
	Left   *Pane
	Right  *Pane
	Gap    int
}

func NewDisplay(screen tcell.Screen, worldWidth, worldHeight float64) *Display {
	d := &Display{
		Screen: screen,
		Left:   &Pane{Screen: screen, WorldWidth: worldWidth, WorldHeight: worldHeight},
		Right:  &Pane{Screen: screen, WorldWidth: worldWidth, WorldHeight: worldHeight},
		Gap:    1,
	}
	d.Resize()
	return d
}

// Resize recomputes the panes from the current screen size. Pane pointers
// stay valid so render systems holding them keep working.
func (d *Display) Resize() {
	w, h := d.Screen.Size()
	rows := max(h-1, 1)
	cols := max((w-d.Gap)/2, 1)

	d.Left.X, d.Left.Y, d.Left.Cols, d.Left.Rows = 0, 0, cols, rows
	d.Right.X, d.Right.Y, d.Right.Cols, d.Right.Rows = cols+d.Gap, 0, cols, rows
}

func (d *Display) RenderTargets() map[ecs.Layer]systems.RenderTarget {
	return map[ecs.Layer]systems.RenderTarget{
		ecs.LayerLeft:  d.Left,
		ecs.LayerRight: d.Right,
	}
}

// Status writes text on the bottom line, clearing the rest of it.
func (d *Display) Status(text string) {
	w, h := d.Screen.Size()
	if h < 2 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)

	x := 0
	for _, r := range text {
		if x >= w {
			break
		}
		d.Screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		d.Screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

func (d *Display) Show() {
	d.Screen.Show()
}
