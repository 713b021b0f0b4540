package pair

import "twobody/internal/core"

// Parameters returns the configuration as display groups.
func (c Config) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("nx", "Nx", c.Nx),
				core.IntParam("ny", "Ny", c.Ny),
				core.FloatParam("a", "Spacing", c.Spacing),
			},
		},
		{
			Name: "Particles",
			Params: []core.Parameter{
				core.FloatParam("m1", "Mass 1", c.Mass1),
				core.FloatParam("m2", "Mass 2", c.Mass2),
			},
		},
		{
			Name: "Integration",
			Params: []core.Parameter{
				core.FloatParam("dt", "Timestep", c.Dt),
				core.FloatParam("t", "Total time", c.TotalTime),
				core.IntParam("frames", "Frames", c.Frames),
				core.IntParam("steps", "Steps", c.Steps()),
				core.BoolParam("parallel", "Parallel", c.Parallel),
				core.IntParam("workers", "Workers", c.WorkerCount()),
			},
			Summary: "leapfrog, 4th-order stencil",
		},
	}}
}

// Parameters reports the view's configuration plus live run telemetry.
func (v *View) Parameters() core.ParameterSnapshot {
	snap := v.setup.Config.Parameters()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "Scenario",
		Params: []core.Parameter{
			core.FloatParam("px", "Momentum", floatValue(v.params, "px", 2)),
			core.IntParam("steps_per_frame", "Steps/frame", v.stepsPerFrame),
		},
	}, core.ParameterGroup{
		Name: "Run",
		Params: []core.Parameter{
			core.IntParam("step", "Step", v.runner.StepCount()),
			core.FloatParam("time", "Time", v.runner.Time()),
			core.FloatParam("norm", "Norm", v.norm),
		},
	})
	return snap
}

// ParameterControls lists the HUD-adjustable parameters. Changing any of them
// rebuilds the run.
func (v *View) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "nx", Label: "Nx", Type: core.ParamTypeInt, Step: 2, Min: 4, HasMin: true, Max: 64, HasMax: true},
		{Key: "ny", Label: "Ny", Type: core.ParamTypeInt, Step: 2, Min: 4, HasMin: true, Max: 64, HasMax: true},
		{Key: "a", Label: "Spacing", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, HasMin: true},
		{Key: "m1", Label: "Mass 1", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, HasMin: true},
		{Key: "m2", Label: "Mass 2", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, HasMin: true},
		{Key: "dt", Label: "Timestep", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, HasMin: true},
		{Key: "px", Label: "Momentum", Type: core.ParamTypeFloat, Step: 0.5},
		{Key: "steps_per_frame", Label: "Steps/frame", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 50, HasMax: true},
	}
}
