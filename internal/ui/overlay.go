//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"twobody/internal/core"
	"twobody/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type bindingMaskProvider interface {
	BindingMask() []float32
}

type negativeMaskProvider interface {
	NegativeMask() []float32
}

type centroidProvider interface {
	Centroids() [][2]float64
}

const trailLength = 96

// Overlay draws optional diagnostics on top of the density view: the binding
// wells, cells where the marginal dipped negative, and centroid trails.
type Overlay struct {
	sim   core.Sim
	scale int

	showBinding  bool
	showNegative bool
	showTrails   bool

	binding  render.MaskLayer
	negative render.MaskLayer

	pixel  *ebiten.Image
	trails [][][2]float64
	size   core.Size
}

// NewOverlay constructs an overlay for sim with bindings and trails visible.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showBinding: true, showTrails: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles toggles and records centroid history.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBinding = !o.showBinding
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showNegative = !o.showNegative
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showTrails = !o.showTrails
		o.trails = nil
	}

	if size := o.sim.Size(); size != o.size {
		o.size = size
		o.trails = nil
	}
	provider, ok := o.sim.(centroidProvider)
	if !ok || !o.showTrails {
		return
	}
	cs := provider.Centroids()
	if len(o.trails) != len(cs) {
		o.trails = make([][][2]float64, len(cs))
	}
	for i, c := range cs {
		trail := o.trails[i]
		if n := len(trail); n > 0 && trail[n-1] == c {
			continue
		}
		if len(trail) == trailLength {
			trail = append(trail[:0], trail[1:]...)
		}
		o.trails[i] = append(trail, c)
	}
}

// ClearTrails forgets the recorded centroid history.
func (o *Overlay) ClearTrails() { o.trails = nil }

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showBinding {
		if provider, ok := o.sim.(bindingMaskProvider); ok {
			o.binding.Draw(screen, provider.BindingMask(), size.W, size.H, color.RGBA{R: 64, G: 164, B: 223}, scale)
		}
	}
	if o.showNegative {
		if provider, ok := o.sim.(negativeMaskProvider); ok {
			o.negative.Draw(screen, provider.NegativeMask(), size.W, size.H, color.RGBA{R: 120, G: 255, B: 120}, scale)
		}
	}
	if o.showTrails {
		o.drawTrails(screen, size, scale)
	}
}

var trailColors = []color.RGBA{
	{R: 90, G: 200, B: 255, A: 220},
	{R: 255, G: 140, B: 220, A: 220},
}

func (o *Overlay) drawTrails(screen *ebiten.Image, size core.Size, scale int) {
	s := float64(scale)
	// Segments longer than this crossed a periodic edge.
	maxJump := float64(size.W) / 4
	for i, trail := range o.trails {
		col := trailColors[i%len(trailColors)]
		for j := 1; j < len(trail); j++ {
			a, b := trail[j-1], trail[j]
			if math.Hypot(b[0]-a[0], b[1]-a[1]) > maxJump {
				continue
			}
			fade := float64(j) / float64(len(trail))
			c := col
			c.A = uint8(math.Round(float64(col.A) * fade))
			o.drawLine(screen, (a[0]+0.5)*s, (a[1]+0.5)*s, (b[0]+0.5)*s, (b[1]+0.5)*s, math.Max(1, s*0.4), c)
		}
		if n := len(trail); n > 0 {
			last := trail[n-1]
			o.drawPoint(screen, (last[0]+0.5)*s, (last[1]+0.5)*s, math.Max(3, s*1.5), col)
		}
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
