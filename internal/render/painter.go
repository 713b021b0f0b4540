//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads palette-indexed cells into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads cells through palette and draws the image scaled onto dst.
// Cells of the wrong length are ignored.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillPaletteRGBA(gp.buf, cells, palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// MaskLayer draws a translucent tinted intensity mask over the grid.
type MaskLayer struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// Draw tints mask and draws it scaled onto dst. The backing image follows
// the mask dimensions.
func (m *MaskLayer) Draw(dst *ebiten.Image, mask []float32, w, h int, tint color.RGBA, scale int) {
	if w <= 0 || h <= 0 || len(mask) != w*h {
		return
	}
	if m.img == nil || m.w != w || m.h != h {
		m.w, m.h = w, h
		m.img = ebiten.NewImage(w, h)
		m.buf = make([]byte, 4*w*h)
	}
	fillMaskRGBA(m.buf, mask, tint)
	m.img.WritePixels(m.buf)

	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(m.img, op)
}
