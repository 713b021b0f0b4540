package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"strconv"
	"strings"
	"time"

	"twobody/internal/monitoring"
	"twobody/internal/sims/pair"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	scenario := flag.String("scenario", "free", "scenario to integrate ("+strings.Join(pair.ScenarioNames(), ", ")+")")
	steps := flag.Int("steps", 400, "timesteps per (dt, spacing) point")
	workers := flag.Int("workers", runtime.NumCPU(), "points integrated concurrently")
	dtList := flag.String("dt", "0.002,0.005,0.01,0.02,0.05,0.1", "comma-separated timesteps")
	aList := flag.String("a", "0.25,0.5,1", "comma-separated lattice spacings")
	verbose := flag.Bool("v", false, "log every run")
	var overrides kvList
	flag.Var(&overrides, "set", "scenario parameter in key=value form (repeatable)")
	flag.Parse()

	if !*verbose {
		monitoring.SetLogger(nil)
	}

	dts, err := parseFloats(*dtList)
	if err != nil {
		log.Fatalf("-dt: %v", err)
	}
	spacings, err := parseFloats(*aList)
	if err != nil {
		log.Fatalf("-a: %v", err)
	}
	params := map[string]string{}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("-set %q: want key=value", kv)
		}
		params[key] = value
	}

	fmt.Printf("Sweeping %s over %d timesteps x %d spacings (%d workers, %d steps)\n",
		*scenario, len(dts), len(spacings), *workers, *steps)

	start := time.Now()
	records, err := pair.StabilitySweep(*scenario, params, dts, spacings, *steps, *workers)
	if err != nil {
		log.Fatal(err)
	}

	base := pair.FromMap(params)
	fmt.Printf("\n%8s %8s %10s %12s %8s %s\n", "a", "dt", "limit", "max drift", "steps", "verdict")
	largest := map[float64]float64{}
	for _, rec := range records {
		cfg := base
		cfg.Spacing = rec.Spacing
		limit := pair.StabilityLimit(cfg, 0)
		if rec.Err != nil {
			fmt.Printf("%8.4g %8.4g %10.4g %12s %8s error: %v\n", rec.Spacing, rec.Dt, limit, "-", "-", rec.Err)
			continue
		}
		verdict := "unstable"
		if rec.Result.Stable {
			verdict = "stable"
			if rec.Dt > largest[rec.Spacing] {
				largest[rec.Spacing] = rec.Dt
			}
		}
		fmt.Printf("%8.4g %8.4g %10.4g %12.3e %8d %s\n",
			rec.Spacing, rec.Dt, limit, rec.Result.MaxDrift, rec.Result.Steps, verdict)
	}

	fmt.Printf("\nLargest stable timestep per spacing (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for _, a := range spacings {
		if dt, ok := largest[a]; ok {
			fmt.Printf("  a=%-8.4g dt=%.4g\n", a, dt)
		} else {
			fmt.Printf("  a=%-8.4g none of the sampled timesteps\n", a)
		}
	}
}

func parseFloats(list string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
