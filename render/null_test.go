package render_test

import (
	"image/color"
	"testing"

	"github.com/plus3/mirrorworld/render"
	"github.com/plus3/mirrorworld/systems"
	"github.com/stretchr/testify/assert"
)

var _ systems.RenderTarget = (*render.Null)(nil)

func TestNullCounts(t *testing.T) {
	n := &render.Null{}
	n.Clear(color.RGBA{})
	n.FillRect(0, 0, 1, 1, color.RGBA{})
	n.FillRect(0, 0, 1, 1, color.RGBA{})

	assert.Equal(t, render.Null{Clears: 1, Rects: 2}, *n)

	n.Reset()
	assert.Zero(t, *n)
}
