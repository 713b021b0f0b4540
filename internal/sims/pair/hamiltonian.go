package pair

import (
	"fmt"

	"twobody/internal/core"
	"twobody/internal/potential"
)

// Fourth-order second-difference weights with the kinetic sign folded in.
const (
	weightCenter = 5.0 / 2
	weightNear   = 4.0 / 3
	weightFar    = 1.0 / 12
)

// Potentials bundles the precomputed, time-independent energy tables of a
// run. Nil binding fields are zero; a nil Relative table is non-interacting.
type Potentials struct {
	Binding1 []float64
	Binding2 []float64
	Relative *potential.RelativeTable
}

// NewPotentials precomputes the tables for cfg. Any of the callbacks may be
// nil.
func NewPotentials(cfg Config, rel potential.Func, bind1, bind2 potential.BindingFunc) (Potentials, error) {
	lat := cfg.Lattice()
	table, err := potential.NewRelativeTable(lat, rel)
	if err != nil {
		return Potentials{}, err
	}
	b1, err := potential.NewBinding(lat, bind1)
	if err != nil {
		return Potentials{}, fmt.Errorf("particle 1: %w", err)
	}
	b2, err := potential.NewBinding(lat, bind2)
	if err != nil {
		return Potentials{}, fmt.Errorf("particle 2: %w", err)
	}
	return Potentials{Binding1: b1, Binding2: b2, Relative: table}, nil
}

func (p Potentials) check(lat core.Lattice) (Potentials, error) {
	n := lat.Points()
	if p.Binding1 != nil && len(p.Binding1) != n {
		return p, fmt.Errorf("%w: binding1 has %d values for %d points", ErrInvalidConfig, len(p.Binding1), n)
	}
	if p.Binding2 != nil && len(p.Binding2) != n {
		return p, fmt.Errorf("%w: binding2 has %d values for %d points", ErrInvalidConfig, len(p.Binding2), n)
	}
	if p.Relative == nil {
		table, err := potential.NewRelativeTable(lat, nil)
		if err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		p.Relative = table
	}
	if w, h := p.Relative.Dims(); w != 2*lat.Nx-1 || h != 2*lat.Ny-1 {
		return p, fmt.Errorf("%w: relative table is %dx%d, want %dx%d", ErrInvalidConfig, w, h, 2*lat.Nx-1, 2*lat.Ny-1)
	}
	return p, nil
}

// hamiltonian applies the two-particle operator
//
//	H = -∇₁²/(2m₁) - ∇₂²/(2m₂) + V₁(p1) + V₂(p2) + Vrel(p2-p1)
//
// with periodic fourth-order differences, one y2 slice at a time.
type hamiltonian struct {
	lat    core.Lattice
	k1, k2 float64
	sx, sy core.Stencil

	bind1, bind2 []float64
	rel          []float64
	relStride    int
}

func newHamiltonian(cfg Config, pots Potentials) *hamiltonian {
	lat := cfg.Lattice()
	a2 := lat.Spacing * lat.Spacing
	w, _ := pots.Relative.Dims()
	return &hamiltonian{
		lat:       lat,
		k1:        1 / (2 * cfg.Mass1 * a2),
		k2:        1 / (2 * cfg.Mass2 * a2),
		sx:        core.NewStencil(lat.Nx),
		sy:        core.NewStencil(lat.Ny),
		bind1:     pots.Binding1,
		bind2:     pots.Binding2,
		rel:       pots.Relative.Values(),
		relStride: w,
	}
}

// applySlice writes dst[i] = base[i] + coef·(H·src)[i] for every index i in
// the y2 slice. A nil base is zero. dst may alias base but never src.
func (h *hamiltonian) applySlice(dst, base, src []float64, coef float64, y2 int) {
	nx, ny := h.lat.Nx, h.lat.Ny
	p := nx * ny
	sx, sy := h.sx, h.sy

	for x2 := 0; x2 < nx; x2++ {
		p2 := y2*nx + x2
		off := p2 * p

		// Block offsets of particle 2's neighbors; each block holds one
		// full particle-1 grid.
		l1 := (y2*nx + sx.M1[x2]) * p
		r1 := (y2*nx + sx.P1[x2]) * p
		d1 := (sy.M1[y2]*nx + x2) * p
		u1 := (sy.P1[y2]*nx + x2) * p
		l2 := (y2*nx + sx.M2[x2]) * p
		r2 := (y2*nx + sx.P2[x2]) * p
		d2 := (sy.M2[y2]*nx + x2) * p
		u2 := (sy.P2[y2]*nx + x2) * p

		var v2 float64
		if h.bind2 != nil {
			v2 = h.bind2[p2]
		}

		for y1 := 0; y1 < ny; y1++ {
			row := off + y1*nx
			down1 := off + sy.M1[y1]*nx
			up1 := off + sy.P1[y1]*nx
			down2 := off + sy.M2[y1]*nx
			up2 := off + sy.P2[y1]*nx
			relRow := (y2-y1+ny-1)*h.relStride + x2 + nx - 1

			for x1 := 0; x1 < nx; x1++ {
				i := row + x1
				p1 := y1*nx + x1
				f := src[i]

				near1 := src[row+sx.M1[x1]] + src[row+sx.P1[x1]] + src[down1+x1] + src[up1+x1]
				far1 := src[row+sx.M2[x1]] + src[row+sx.P2[x1]] + src[down2+x1] + src[up2+x1]
				near2 := src[l1+p1] + src[r1+p1] + src[d1+p1] + src[u1+p1]
				far2 := src[l2+p1] + src[r2+p1] + src[d2+p1] + src[u2+p1]

				v := v2 + h.rel[relRow-x1]
				if h.bind1 != nil {
					v += h.bind1[p1]
				}

				kin1 := h.k1 * (2*weightCenter*f - weightNear*near1 + weightFar*far1)
				kin2 := h.k2 * (2*weightCenter*f - weightNear*near2 + weightFar*far2)
				out := coef * (kin1 + kin2 + v*f)
				if base != nil {
					out += base[i]
				}
				dst[i] = out
			}
		}
	}
}

// apply writes H·src into dst over the whole grid.
func (h *hamiltonian) apply(dst, src []float64) {
	for y2 := 0; y2 < h.lat.Ny; y2++ {
		h.applySlice(dst, nil, src, 1, y2)
	}
}
