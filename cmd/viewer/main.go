//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"twobody/internal/app"
	"twobody/internal/core"
	_ "twobody/internal/sims/pair"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.NewSim(cfg.Scenario, cfg.ScenarioParams())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	ebiten.SetWindowTitle("twobody: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
