package app

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{
		"-scenario", "bound-pair", "-scale", "8", "-sps", "10",
		"-nx", "32", "-n", "2", "-lz", "-2", "-potential", "harmonic",
	}))

	assert.Equal(t, "bound-pair", cfg.Scenario)
	assert.Equal(t, 8, cfg.Scale)
	assert.Equal(t, 10, cfg.StepsPerSecond)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, map[string]string{"nx": "32", "n": "2", "lz": "-2", "potential": "harmonic"}, cfg.ScenarioParams())

	params := cfg.ScenarioParams()
	params["nx"] = "4"
	assert.Equal(t, "32", cfg.Params["nx"], "ScenarioParams returns a copy")
}

func TestConfigBindUnknownFlag(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	assert.Error(t, fs.Parse([]string{"-seed", "3"}))
	assert.Empty(t, cfg.Params)
}
