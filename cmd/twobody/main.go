package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"twobody/internal/monitoring"
	"twobody/internal/output"
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
	cfg := pair.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	scenario := flag.String("scenario", "scatter", "scenario to run ("+strings.Join(pair.ScenarioNames(), ", ")+")")
	outDir := flag.String("out", "", "directory for heat-map frames and the norm plot (empty disables images)")
	quiet := flag.Bool("q", false, "suppress run logging and progress")
	var overrides kvList
	flag.Var(&overrides, "set", "scenario parameter in key=value form (repeatable)")
	flag.Parse()

	// Scenario factories parse the config themselves; forward only what was
	// set explicitly so their defaults still apply.
	params := map[string]string{}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			log.Fatalf("-set %q: want key=value", kv)
		}
		params[key] = value
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scenario", "out", "q", "set":
			return
		}
		params[f.Name] = f.Value.String()
	})

	if *quiet {
		monitoring.SetLogger(nil)
	}

	setup, err := pair.NewSetup(*scenario, params)
	if err != nil {
		log.Fatal(err)
	}
	if limit := pair.StabilityLimit(setup.Config, 0); setup.Config.Dt > limit {
		fmt.Fprintf(os.Stderr, "warning: dt=%g exceeds the free-particle stability limit %.4g\n", setup.Config.Dt, limit)
	}

	rec := output.NewRecorder()
	sinks := []pair.Sink{rec}
	var heat *output.HeatmapSink
	if *outDir != "" {
		heat = output.NewHeatmapSink(*outDir)
		sinks = append(sinks, heat)
	}

	opts := []pair.Option{pair.WithSink(output.Tee(sinks...))}
	if !*quiet {
		opts = append(opts, pair.WithProgress(progressPrinter()))
	}
	runner, err := setup.Runner(opts...)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := runner.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("run %s: %s after %d/%d steps, %d frames in %s\n",
		res.RunID, res.Outcome, res.Steps, setup.Config.Steps(), res.Frames, res.Elapsed)
	times, norms := rec.NormSeries()
	if len(norms) > 0 {
		drift := (norms[len(norms)-1] - norms[0]) / norms[0]
		fmt.Printf("norm %.9f -> %.9f (drift %.2e)\n", norms[0], norms[len(norms)-1], drift)
	}

	if heat != nil && len(norms) > 0 {
		dir := filepath.Join(*outDir, res.RunID.String())
		if err := output.SaveNormPlot(filepath.Join(dir, "norm.png"), times, norms); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d frame images and norm.png to %s\n", len(heat.Files()), dir)
	}
	if res.Outcome != pair.OutcomeCompleted {
		os.Exit(1)
	}
}

// progressPrinter reports every tenth of the run.
func progressPrinter() pair.ProgressFunc {
	last := -1
	return func(step, total int) {
		pct := step * 10 / total
		if pct == last {
			return
		}
		last = pct
		fmt.Fprintf(os.Stderr, "\r%3d%% (%d/%d)", pct*10, step, total)
		if step == total {
			fmt.Fprintln(os.Stderr)
		}
	}
}
