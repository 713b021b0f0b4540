//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"twobody/internal/core"
	"twobody/internal/render"
	"twobody/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.FixedStep
	palette []color.RGBA
	size    core.Size

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	g := &Game{
		sim:      sim,
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		pacer:    core.NewFixedStep(cfg.StepsPerSecond),
		scale:    cfg.Scale,
		hudWidth: max(cfg.HUDWidth, 0),
	}
	if provider, ok := sim.(paletteProvider); ok {
		g.palette = provider.Palette()
	} else {
		g.palette = render.GrayPalette(256)
	}
	g.resize()
	return g
}

// Reset restarts the simulation from its current parameters.
func (g *Game) Reset() error {
	if err := g.sim.Reset(); err != nil {
		return err
	}
	g.tickOnce = false
	g.overlay.ClearTrails()
	g.resize()
	return nil
}

// resize follows size changes made through HUD controls.
func (g *Game) resize() {
	size := g.sim.Size()
	if g.painter != nil && size == g.size {
		return
	}
	g.size = size
	g.painter = render.NewGridPainter(size.W, size.H)
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(); err != nil {
			return fmt.Errorf("reset %s: %w", g.sim.Name(), err)
		}
	}

	g.hud.Update(g.size.W * g.scale)
	g.resize()
	g.overlay.Update()

	advance := !g.paused && g.pacer.ShouldStep()
	if advance || g.tickOnce {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			return fmt.Errorf("step %s: %w", g.sim.Name(), err)
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.size.W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, max(s.H*g.scale, g.hud.PanelHeight(g.scale))
}
