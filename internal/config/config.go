// Package config holds the run options: dataset locations, the Q2
// admission window, beam reference energy, the reserved power-law
// exponent, and execution settings. Values come from an optional YAML
// file with CLI flags layered on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full options record for one run.
type Config struct {
	// Input is the event store to analyze.
	Input string `yaml:"input"`
	// Output is the histogram container file, opened in overwrite mode.
	Output string `yaml:"output"`

	Cuts        CutsConfig        `yaml:"cuts"`
	Beam        BeamConfig        `yaml:"beam"`
	Collections CollectionsConfig `yaml:"collections"`
	Workers     int               `yaml:"workers"`

	// NPow is the power the Bjorken-x weight will eventually be raised
	// to. Reserved: the current derivations do not read it.
	NPow float64 `yaml:"n_pow"`
}

// CutsConfig is the kinematic admission window. Both bounds are
// strictly exclusive.
type CutsConfig struct {
	MinQ2 float64 `yaml:"min_q2"`
	MaxQ2 float64 `yaml:"max_q2"`
}

// BeamConfig holds the beam parameters entering the weight formula.
type BeamConfig struct {
	// Energy is the reference proton beam energy in GeV dividing the
	// per-particle energy fraction.
	Energy float64 `yaml:"energy"`
}

// CollectionsConfig names the input collections the default pipeline
// reads.
type CollectionsConfig struct {
	Electron  string `yaml:"electron"`
	Truth     string `yaml:"truth"`
	Particles string `yaml:"particles"`
}

// Default returns the standard analysis configuration: full Q2 window
// up to 100, 10x100 GeV running, unit power.
func Default() Config {
	return Config{
		Output: "nec.yaml",
		Cuts: CutsConfig{
			MinQ2: 0,
			MaxQ2: 100,
		},
		Beam: BeamConfig{Energy: 100},
		Collections: CollectionsConfig{
			Electron:  "InclusiveKinematicsElectron",
			Truth:     "InclusiveKinematicsTruth",
			Particles: "ReconstructedBreitFrameParticles",
		},
		Workers: runtime.NumCPU(),
		NPow:    1,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config %q: %w", path, err)
	}
	return nil
}

// Validate checks the record before any processing starts.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("%w: input path required", ErrInvalid)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path required", ErrInvalid)
	}
	if !(c.Cuts.MinQ2 < c.Cuts.MaxQ2) {
		return fmt.Errorf("%w: min_q2 %v must be below max_q2 %v", ErrInvalid, c.Cuts.MinQ2, c.Cuts.MaxQ2)
	}
	if c.Beam.Energy <= 0 {
		return fmt.Errorf("%w: beam energy %v must be positive", ErrInvalid, c.Beam.Energy)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers %d must be at least 1", ErrInvalid, c.Workers)
	}
	if c.Collections.Electron == "" || c.Collections.Truth == "" || c.Collections.Particles == "" {
		return fmt.Errorf("%w: collection names required", ErrInvalid)
	}
	return nil
}
