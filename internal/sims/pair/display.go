package pair

import (
	"image/color"

	"gonum.org/v1/plot/palette"
)

const (
	displayLevels    = 255
	displaySeparator = 255
)

var pairPalette = buildPairPalette()

// Palette exposes the colors for Cells: density levels followed by the
// separator column color.
func (v *View) Palette() []color.RGBA {
	return pairPalette
}

func buildPairPalette() []color.RGBA {
	heat := palette.Heat(displayLevels, 1).Colors()
	out := make([]color.RGBA, 0, displayLevels+1)
	for _, c := range heat {
		r, g, b, a := c.RGBA()
		out = append(out, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
	}
	return append(out, color.RGBA{R: 60, G: 60, B: 70, A: 255})
}

// level maps v in [0, peak] onto a palette index. Negative values clamp to the
// lowest level.
func level(v, peak float64) uint8 {
	if peak <= 0 || v <= 0 {
		return 0
	}
	l := int(v / peak * float64(displayLevels-1))
	if l > displayLevels-1 {
		l = displayLevels - 1
	}
	return uint8(l)
}
