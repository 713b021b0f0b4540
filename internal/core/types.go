package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a displayable grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a live-viewable simulation must implement.
// Cells returns one byte per display pixel, indexed y*W+x.
type Sim interface {
	Name() string
	Size() Size
	Reset() error
	Step() error
	Cells() []uint8
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSim looks up and constructs a registered simulation.
func NewSim(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (have %v)", name, SimNames())
	}
	return f(cfg)
}
