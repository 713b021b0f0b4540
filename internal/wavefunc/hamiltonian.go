package wavefunc

import "twobody/internal/core"

// Fourth-order central second-difference weights, already combined with the
// minus sign of the kinetic operator: -f'' ≈ (5/2 f - 4/3 Σ±1 + 1/12 Σ±2)/h².
const (
	kineticCenter = 5.0 / 2
	kineticNear   = 4.0 / 3
	kineticFar    = 1.0 / 12
)

// Apply writes H·in into out for a single particle, where H is the
// periodic fourth-order kinetic operator plus the binding field (nil means
// zero). in and out must not alias.
func Apply(lat core.Lattice, mass float64, binding []float64, in, out []complex128) {
	k := complex(1/(2*mass*lat.Spacing*lat.Spacing), 0)
	sx, sy := core.NewStencil(lat.Nx), core.NewStencil(lat.Ny)
	nx := lat.Nx
	for y := 0; y < lat.Ny; y++ {
		row := y * nx
		m1, p1 := sy.M1[y]*nx, sy.P1[y]*nx
		m2, p2 := sy.M2[y]*nx, sy.P2[y]*nx
		for x := 0; x < nx; x++ {
			i := row + x
			f := in[i]
			near := in[row+sx.M1[x]] + in[row+sx.P1[x]] + in[m1+x] + in[p1+x]
			far := in[row+sx.M2[x]] + in[row+sx.P2[x]] + in[m2+x] + in[p2+x]
			h := k * (2*kineticCenter*f - kineticNear*near + kineticFar*far)
			if binding != nil {
				h += complex(binding[i], 0) * f
			}
			out[i] = h
		}
	}
}

// Advance propagates s by ±dt/2 with the second-order series of
// exp(-iHτ): ψ± = ψ ∓ iτHψ - (τ²/2)H²ψ, τ = dt/2. It returns the advanced
// and retarded states.
func Advance(s *State, binding []float64, dt float64) (*State, *State) {
	n := len(s.amp)
	h1 := make([]complex128, n)
	h2 := make([]complex128, n)
	Apply(s.lat, s.mass, binding, s.amp, h1)
	Apply(s.lat, s.mass, binding, h1, h2)

	tau := dt / 2
	first := complex(0, tau)
	second := complex(tau*tau/2, 0)
	adv := make([]complex128, n)
	ret := make([]complex128, n)
	for i, v := range s.amp {
		adv[i] = v - first*h1[i] - second*h2[i]
		ret[i] = v + first*h1[i] - second*h2[i]
	}
	return &State{lat: s.lat, mass: s.mass, amp: adv}, &State{lat: s.lat, mass: s.mass, amp: ret}
}
