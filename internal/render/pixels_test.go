package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 10, G: 20, B: 30, A: 255}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 9}, pal)
	assert.Equal(t, []byte{1, 2, 3, 4, 10, 20, 30, 255, 10, 20, 30, 255}, buf, "out of range indices clamp to the last color")

	fillPaletteRGBA(buf, []uint8{0, 1, 2}, nil)
	assert.Equal(t, make([]byte, 12), buf)
}

func TestGrayPalette(t *testing.T) {
	pal := GrayPalette(3)
	assert.Equal(t, []color.RGBA{
		{A: 255},
		{R: 128, G: 128, B: 128, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}, pal)
	assert.Nil(t, GrayPalette(0))
	assert.Equal(t, []color.RGBA{{A: 255}}, GrayPalette(1))
}

func TestFillMaskRGBA(t *testing.T) {
	tint := color.RGBA{R: 200, G: 100, B: 40}
	buf := []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}
	fillMaskRGBA(buf, []float32{0, 1, -3}, tint)

	assert.Equal(t, []byte{0, 0, 0, 0}, buf[0:4])
	assert.Equal(t, []byte{200, 100, 40, 140}, buf[4:8], "full intensity keeps the tint at maximum alpha")
	assert.Equal(t, []byte{0, 0, 0, 0}, buf[8:12], "negative intensity clamps to transparent")

	fillMaskRGBA(buf[:4], []float32{0.25}, tint)
	assert.Equal(t, uint8(135), buf[0], "glow is 0.35+0.65*sqrt(0.25)")
	assert.Less(t, buf[3], uint8(140))
	assert.Greater(t, buf[3], uint8(0))
}
