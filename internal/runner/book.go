package runner

import (
	"necana/internal/agg"
	"necana/internal/booking"
	"necana/internal/config"
	"necana/internal/event"
	"necana/internal/filter"
	"necana/internal/pipeline"
)

// Derived quantity names used by the default analysis.
const (
	qXBRec  = "xbRec"
	qLnXRec = "lnxbRec"
	qXBGen  = "xbGen"
	qLnXGen = "lnxbGen"
	qParEne = "parEne"
	qParTh  = "parTheta"
	qParRap = "parRap"
	qParWgt = "parWeight"
)

// bookHistograms registers the analysis axes and histogram
// definitions.
func bookHistograms() (*booking.AxisRegistry, *booking.Catalog, error) {
	reg := booking.NewAxisRegistry()
	axes := map[string]booking.Axis{
		"ene":    {Title: "E [GeV]", Bins: 200, Low: 0, High: 200},
		"rap":    {Title: "y = ln tan(#theta/2)", Bins: 200, Low: -15, High: 5},
		"weight": {Title: "E/E_{p}", Bins: 30, Low: -1, High: 2},
		"x":      {Title: "x_{B}", Bins: 60, Low: -1, High: 2},
		"lnx":    {Title: "ln x_{B}", Bins: 100, Low: -50, High: 50},
	}
	for name, ax := range axes {
		if err := reg.Register(name, ax); err != nil {
			return nil, nil, err
		}
	}

	cat := booking.NewCatalog(reg)
	specs := []booking.Spec{
		{Name: "hNEC", Axes: []string{"rap"}, Title: booking.TitleParts{Y: "#GTNEC#LT"}},
		{Name: "hRapPar", Axes: []string{"rap"}},
		{Name: "hEnePar", Axes: []string{"ene"}},
		{Name: "hEneFrac", Axes: []string{"weight"}},
		{Name: "hXBRec", Axes: []string{"x"}},
		{Name: "hXBGen", Axes: []string{"x"}},
		{Name: "hLogXBRec", Axes: []string{"lnx"}},
		{Name: "hLogXBGen", Axes: []string{"lnx"}},
		{Name: "hRapVsEne", Axes: []string{"rap", "ene"}},
	}
	for _, spec := range specs {
		if err := cat.Define(spec); err != nil {
			return nil, nil, err
		}
	}
	reg.Seal()
	return reg, cat, nil
}

// buildChain assembles the admission chain: presence gates for both
// kinematic collections, then the open-interval Q2 window. Presence
// precedes the range cut because the chain short-circuits and the
// range predicate indexes into the collection.
func buildChain(cfg config.Config) *filter.Chain {
	return filter.NewChain(
		filter.HasCollection(cfg.Collections.Electron),
		filter.HasCollection(cfg.Collections.Truth),
		filter.KinematicRange(cfg.Collections.Electron, event.FieldQ2, cfg.Cuts.MinQ2, cfg.Cuts.MaxQ2),
	)
}

// buildPipeline assembles the derivation chain: Bjorken x and its
// logarithm for reconstructed and truth kinematics, then the
// particle-level energies, polar angles, rapidities and
// energy-fraction weights of the correlator.
func buildPipeline(cfg config.Config) (*pipeline.Pipeline, error) {
	raw := []string{
		cfg.Collections.Electron,
		cfg.Collections.Truth,
		cfg.Collections.Particles,
	}
	return pipeline.New(raw,
		pipeline.KinematicField(qXBRec, cfg.Collections.Electron, event.FieldX),
		pipeline.NaturalLog(qLnXRec, qXBRec),
		pipeline.KinematicField(qXBGen, cfg.Collections.Truth, event.FieldX),
		pipeline.NaturalLog(qLnXGen, qXBGen),
		pipeline.ExtractField(qParEne, cfg.Collections.Particles, event.FieldEnergy),
		pipeline.PolarAngle(qParTh, cfg.Collections.Particles),
		pipeline.Rapidity(qParRap, qParTh),
		pipeline.EnergyFractionWeight(qParWgt, qParEne, qXBRec, cfg.Beam.Energy),
	)
}

// defaultBindings wires the booked histograms to the derived
// quantities. hNEC is the correlator itself: per-particle rapidity
// weighted by xb*E/E_beam.
func defaultBindings() []agg.Binding {
	return []agg.Binding{
		{Hist: "hXBRec", Value: qXBRec},
		{Hist: "hXBGen", Value: qXBGen},
		{Hist: "hLogXBRec", Value: qLnXRec},
		{Hist: "hLogXBGen", Value: qLnXGen},
		{Hist: "hEnePar", Value: qParEne},
		{Hist: "hRapPar", Value: qParRap},
		{Hist: "hEneFrac", Value: qParWgt},
		{Hist: "hNEC", Value: qParRap, Weight: qParWgt},
		{Hist: "hRapVsEne", Value: qParRap, YValue: qParEne},
	}
}
