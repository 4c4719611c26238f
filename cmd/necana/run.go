package main

import (
	"github.com/spf13/cobra"

	"necana/internal/config"
	"necana/internal/runner"
)

var (
	runInput      string
	runOutput     string
	runMinQ2      float64
	runMaxQ2      float64
	runNPow       float64
	runBeamEnergy float64
	runWorkers    int
)

// runCmd executes a full analysis pass over one event store.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the NEC analysis over an event store",
	Long: `Processes every event in the input store: admission cuts on the
inclusive kinematics, quantity derivation, histogram fills, and a
single output container written at the end.

Example:
  necana run -i events.db -o nec.yaml --min-q2 10 --max-q2 100`,
	RunE: runAnalysis,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Input event store (required unless set in config)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output histogram container")
	runCmd.Flags().Float64Var(&runMinQ2, "min-q2", -1, "Lower Q2 admission bound, exclusive")
	runCmd.Flags().Float64Var(&runMaxQ2, "max-q2", -1, "Upper Q2 admission bound, exclusive")
	runCmd.Flags().Float64Var(&runNPow, "n-pow", -1, "Power to raise x_B to (reserved)")
	runCmd.Flags().Float64Var(&runBeamEnergy, "beam-energy", -1, "Reference proton beam energy in GeV")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Parallel event partitions (default: all CPUs)")
}

// loadRunConfig layers the run flags over the config file (or the
// defaults when no file is given). Only flags the user changed
// override.
func loadRunConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("input") {
		cfg.Input = runInput
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = runOutput
	}
	if cmd.Flags().Changed("min-q2") {
		cfg.Cuts.MinQ2 = runMinQ2
	}
	if cmd.Flags().Changed("max-q2") {
		cfg.Cuts.MaxQ2 = runMaxQ2
	}
	if cmd.Flags().Changed("n-pow") {
		cfg.NPow = runNPow
	}
	if cmd.Flags().Changed("beam-energy") {
		cfg.Beam.Energy = runBeamEnergy
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = runWorkers
	}
	return cfg, cfg.Validate()
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	_, err = runner.New(cfg, logger).Run(cmd.Context())
	return err
}
