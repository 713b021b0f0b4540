package pair

import (
	"context"

	"twobody/internal/wavefunc"
)

// build forms the t=0 Visscher state from two single-particle factors. Real
// is the real part of the direct product; ImagP and ImagM are the imaginary
// parts of the products of the factors advanced and retarded by dt/2 under
// their own single-particle Hamiltonians. Each pass is a barrier.
func build(cfg Config, pots Potentials, wf1, wf2 *wavefunc.State, sl slicer) (*TwoParticleState, error) {
	lat := cfg.Lattice()
	st := newTwoParticleState(lat)
	nx, p := lat.Nx, lat.Points()

	a1, a2 := wf1.Amplitudes(), wf2.Amplitudes()
	err := sl.run(context.Background(), lat.Ny, func(y2 int) {
		for x2 := 0; x2 < nx; x2++ {
			p2 := y2*nx + x2
			r2, i2 := real(a2[p2]), imag(a2[p2])
			off := p2 * p
			for p1, v := range a1 {
				r1, i1 := real(v), imag(v)
				st.real[off+p1] = float64(r1*r2) - float64(i1*i2)
			}
		}
	})
	if err != nil {
		return nil, err
	}

	adv1, ret1 := wavefunc.Advance(wf1, pots.Binding1, cfg.Dt)
	adv2, ret2 := wavefunc.Advance(wf2, pots.Binding2, cfg.Dt)
	ap1, am1 := adv1.Amplitudes(), ret1.Amplitudes()
	ap2, am2 := adv2.Amplitudes(), ret2.Amplitudes()

	ip, im := st.ImagP(), st.ImagM()
	err = sl.run(context.Background(), lat.Ny, func(y2 int) {
		for x2 := 0; x2 < nx; x2++ {
			p2 := y2*nx + x2
			off := p2 * p
			for p1 := 0; p1 < p; p1++ {
				ip[off+p1] = imagProduct(ap1[p1], ap2[p2])
				im[off+p1] = imagProduct(am1[p1], am2[p2])
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

func imagProduct(a, b complex128) float64 {
	return float64(real(a)*imag(b)) + float64(imag(a)*real(b))
}
