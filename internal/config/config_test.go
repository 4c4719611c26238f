package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "nec.yaml", cfg.Output)
	assert.Equal(t, 0.0, cfg.Cuts.MinQ2)
	assert.Equal(t, 100.0, cfg.Cuts.MaxQ2)
	assert.Equal(t, 100.0, cfg.Beam.Energy)
	assert.Equal(t, "InclusiveKinematicsElectron", cfg.Collections.Electron)
	assert.Equal(t, "InclusiveKinematicsTruth", cfg.Collections.Truth)
	assert.Equal(t, "ReconstructedBreitFrameParticles", cfg.Collections.Particles)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, 1.0, cfg.NPow)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := Default()
	cfg.Input = "events.db"
	cfg.Cuts.MinQ2 = 10
	cfg.Cuts.MaxQ2 = 50
	cfg.Beam.Energy = 275
	cfg.Workers = 4
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: events.db\ncuts:\n  min_q2: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "events.db", cfg.Input)
	assert.Equal(t, 4.0, cfg.Cuts.MinQ2)
	assert.Equal(t, 100.0, cfg.Cuts.MaxQ2, "unset keys keep their defaults")
	assert.Equal(t, "nec.yaml", cfg.Output)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Input = "events.db"
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing input", func(c *Config) { c.Input = "" }},
		{"missing output", func(c *Config) { c.Output = "" }},
		{"inverted q2 window", func(c *Config) { c.Cuts.MinQ2 = 50; c.Cuts.MaxQ2 = 10 }},
		{"empty q2 window", func(c *Config) { c.Cuts.MinQ2 = 10; c.Cuts.MaxQ2 = 10 }},
		{"zero beam energy", func(c *Config) { c.Beam.Energy = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"missing collection", func(c *Config) { c.Collections.Truth = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
