package render

import (
	"image/color"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// GrayPalette returns n evenly spaced opaque grays from black to white.
func GrayPalette(n int) []color.RGBA {
	if n <= 0 {
		return nil
	}
	out := make([]color.RGBA, n)
	for i := range out {
		v := uint8(0)
		if n > 1 {
			v = uint8(math.Round(255 * float64(i) / float64(n-1)))
		}
		out[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return out
}

const (
	maskMaxAlpha      = 140.0
	maskGlowBase      = 0.35
	maskGlowRange     = 0.65
	maskIntensityBias = 0.75
)

// fillMaskRGBA tints a [0,1] intensity mask. Zero cells stay transparent;
// brighter cells get both more alpha and more of the tint.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA) {
	for i, m := range mask {
		base := i * 4
		intensity := clamp01(float64(m))
		if intensity == 0 {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		alpha := uint8(math.Round(maskMaxAlpha * math.Pow(intensity, maskIntensityBias)))
		glow := maskGlowBase + maskGlowRange*math.Sqrt(intensity)

		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = alpha
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
