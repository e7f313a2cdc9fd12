// Simulator running the coiled-tubing job pipeline
package jobsim

import (
	"fmt"
	"log/slog"
	"math"

	"ctsim/internal/calc"
	"ctsim/internal/config"
)

// Simulator screens a job and, when feasible, runs the force, hydraulics,
// time, fatigue and risk stages. It holds no per-run state and is safe for
// concurrent use.
type Simulator struct {
	cfg *config.SimulationConfig
	eng calc.Engine
	log *slog.Logger
}

// NewSimulator returns a Simulator. Nil arguments select config.Default and
// slog.Default.
func NewSimulator(cfg *config.SimulationConfig, log *slog.Logger) *Simulator {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{cfg: cfg, eng: calc.New(cfg.Calc), log: log}
}

// Engine exposes the calculator engine built from the simulator's config.
func (s *Simulator) Engine() calc.Engine {
	return s.eng
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() *config.SimulationConfig {
	return s.cfg
}

// Simulate runs the pipeline for one job. Infeasible jobs return only the
// feasibility check; a validation failure in a later stage keeps the stages
// already completed and leaves the rest nil.
func (s *Simulator) Simulate(job config.JobParameters) SimulationResult {
	log := s.log.With("well", job.WellName)
	p := s.withDefaults(job)
	res := SimulationResult{WellName: job.WellName}

	if err := checkScreened(p); err != nil {
		res.Feasibility = FeasibilityCheck{LimitingFactors: []string{}, Details: []string{}, Warnings: []string{}}
		return s.abort(log, res, "feasibility screening", err)
	}
	res.Feasibility = s.screen(p)
	if !res.Feasibility.IsFeasible {
		res.Error = "job infeasible: " + res.Feasibility.Details[0]
		log.Debug("job infeasible", "factors", res.Feasibility.LimitingFactors)
		return res
	}

	path, err := s.trajectory(p)
	if err != nil {
		return s.abort(log, res, "force analysis", err)
	}
	if res.Forces, err = s.forces(p, path); err != nil {
		return s.abort(log, res, "force analysis", err)
	}
	log.Debug("force analysis complete", "samples", len(path), "max_hookload_lbf", res.Forces.MaxHookloadLbf)

	if res.Hydraulics, err = s.hydraulics(p, path); err != nil {
		return s.abort(log, res, "hydraulics analysis", err)
	}
	log.Debug("hydraulics analysis complete", "max_pressure_psi", res.Hydraulics.MaxPressurePsi)

	if res.Time, err = s.timing(p); err != nil {
		return s.abort(log, res, "time estimation", err)
	}
	if res.Fatigue, err = s.fatigue(p, res.Hydraulics.MaxPressurePsi); err != nil {
		return s.abort(log, res, "fatigue prediction", err)
	}
	log.Debug("fatigue prediction complete", "increment_pct", res.Fatigue.EstimatedFatiguePercent)

	res.Risks = s.risks(p, res)
	return res
}

func (s *Simulator) abort(log *slog.Logger, res SimulationResult, stage string, err error) SimulationResult {
	res.Error = fmt.Sprintf("%s: %v", stage, err)
	log.Debug("simulation aborted", "stage", stage, "err", err)
	return res
}

// withDefaults fills the optional job fields from the configuration.
func (s *Simulator) withDefaults(job config.JobParameters) config.JobParameters {
	c := s.cfg
	if job.UnitMaxRunningSpeedFtMin == 0 {
		job.UnitMaxRunningSpeedFtMin = c.Limits.UnitMaxRunningSpeedFtMin
	}
	if job.PumpRateBpm == 0 {
		job.PumpRateBpm = c.Model.PumpRateBpm
	}
	if job.TubingWeightLbfFt == 0 {
		od, id := job.TubingODInch, job.TubingIDInch
		job.TubingWeightLbfFt = c.Model.SteelWeightLbfFtPerIn2 * math.Pi / 4 * (od*od - id*id)
	}
	if job.TreatmentDurationHr == nil {
		hr := c.Time.TreatmentHr
		job.TreatmentDurationHr = &hr
	}
	if job.ReelCoreDiameterInch == 0 {
		job.ReelCoreDiameterInch = c.Fatigue.ReelCoreDiameterInch
	}
	if job.GuideArchRadiusInch == 0 {
		job.GuideArchRadiusInch = c.Fatigue.GuideArchRadiusInch
	}
	if job.FluidPlasticViscosityCp == 0 {
		job.FluidPlasticViscosityCp = c.Model.PlasticViscosityCp
	}
	if job.FluidYieldPointLbf100ft2 == 0 {
		job.FluidYieldPointLbf100ft2 = c.Model.YieldPointLbf100ft2
	}
	return job
}

type limitCheck struct {
	factor   string
	violated bool
	detail   string
	// near is set when the value sits within the warning margin of its limit.
	near bool
	warn string
}

// checkScreened rejects non-finite values among those screening compares. NaN
// fails every comparison and an infinite limit admits anything, so either
// would pass as within limits.
func checkScreened(p config.JobParameters) error {
	fields := []struct {
		name string
		v    float64
	}{
		{"target_depth_ft", p.TargetDepthFt},
		{"wellbore_diameter_inch", p.WellboreDiameterInch},
		{"max_inclination_deg", p.MaxInclinationDeg},
		{"tubing_od_inch", p.TubingODInch},
		{"tubing_id_inch", p.TubingIDInch},
		{"tubing_length_ft", p.TubingLengthFt},
		{"fluid_density_ppg", p.FluidDensityPpg},
		{"max_pressure_psi", p.MaxPressurePsi},
		{"max_running_speed_ft_min", p.MaxRunningSpeedFtMin},
		{"unit_max_pressure_psi", p.UnitMaxPressurePsi},
		{"unit_max_tension_lbf", p.UnitMaxTensionLbf},
		{"unit_max_running_speed_ft_min", p.UnitMaxRunningSpeedFtMin},
		{"tubing_weight_lbf_ft", p.TubingWeightLbfFt},
	}
	for _, f := range fields {
		if !finite(f.v) {
			return invalid(f.name, "must be a finite number")
		}
	}
	return nil
}

// screen compares the job against the unit's hard limits.
func (s *Simulator) screen(p config.JobParameters) FeasibilityCheck {
	margin := s.cfg.Limits.WarningMargin
	near := func(v, limit float64) bool {
		return limit > 0 && v <= limit && v >= limit*(1-margin)
	}
	pct := margin * 100

	tension := p.TubingWeightLbfFt*s.eng.BuoyancyFactor(p.FluidDensityPpg)*p.TargetDepthFt + s.cfg.Model.StripperFrictionLbf
	maxInc := s.cfg.Limits.MaxInclinationDeg

	checks := []limitCheck{
		{
			factor:   FactorPressure,
			violated: p.MaxPressurePsi > p.UnitMaxPressurePsi,
			detail:   fmt.Sprintf("pressure: job max pressure %.0f psi exceeds unit limit %.0f psi", p.MaxPressurePsi, p.UnitMaxPressurePsi),
			near:     near(p.MaxPressurePsi, p.UnitMaxPressurePsi),
			warn:     fmt.Sprintf("pressure: job max pressure %.0f psi is within %.0f%% of unit limit %.0f psi", p.MaxPressurePsi, pct, p.UnitMaxPressurePsi),
		},
		{
			factor:   FactorTension,
			violated: tension > p.UnitMaxTensionLbf,
			detail:   fmt.Sprintf("tension: string weight at target depth %.0f lbf exceeds unit limit %.0f lbf", tension, p.UnitMaxTensionLbf),
			near:     near(tension, p.UnitMaxTensionLbf),
			warn:     fmt.Sprintf("tension: string weight at target depth %.0f lbf is within %.0f%% of unit limit %.0f lbf", tension, pct, p.UnitMaxTensionLbf),
		},
		{
			factor:   FactorRunningSpeed,
			violated: p.MaxRunningSpeedFtMin > p.UnitMaxRunningSpeedFtMin,
			detail:   fmt.Sprintf("running_speed: %.0f ft/min exceeds unit limit %.0f ft/min", p.MaxRunningSpeedFtMin, p.UnitMaxRunningSpeedFtMin),
			near:     near(p.MaxRunningSpeedFtMin, p.UnitMaxRunningSpeedFtMin),
			warn:     fmt.Sprintf("running_speed: %.0f ft/min is within %.0f%% of unit limit %.0f ft/min", p.MaxRunningSpeedFtMin, pct, p.UnitMaxRunningSpeedFtMin),
		},
		{
			factor:   FactorInclination,
			violated: p.MaxInclinationDeg > maxInc,
			detail:   fmt.Sprintf("inclination: %.1f deg exceeds the %.1f deg limit", p.MaxInclinationDeg, maxInc),
			near:     near(p.MaxInclinationDeg, maxInc),
			warn:     fmt.Sprintf("inclination: %.1f deg is within %.0f%% of the %.1f deg limit", p.MaxInclinationDeg, pct, maxInc),
		},
		{
			factor:   FactorTubingLength,
			violated: p.TubingLengthFt < p.TargetDepthFt,
			detail:   fmt.Sprintf("tubing_length: %.0f ft of tubing cannot reach %.0f ft", p.TubingLengthFt, p.TargetDepthFt),
			near:     p.TubingLengthFt >= p.TargetDepthFt && p.TubingLengthFt < p.TargetDepthFt*(1+margin),
			warn:     fmt.Sprintf("tubing_length: less than %.0f%% spare tubing beyond %.0f ft", pct, p.TargetDepthFt),
		},
		{
			factor:   FactorClearance,
			violated: p.TubingODInch >= p.WellboreDiameterInch || p.TubingIDInch >= p.TubingODInch,
			detail:   fmt.Sprintf("clearance: tubing %.3f x %.3f in does not fit a %.3f in wellbore", p.TubingODInch, p.TubingIDInch, p.WellboreDiameterInch),
		},
	}

	fc := FeasibilityCheck{
		IsFeasible:      true,
		LimitingFactors: []string{},
		Details:         []string{},
		Warnings:        []string{},
	}
	for _, c := range checks {
		switch {
		case c.violated:
			fc.IsFeasible = false
			fc.LimitingFactors = append(fc.LimitingFactors, c.factor)
			fc.Details = append(fc.Details, c.detail)
		case c.near:
			fc.Warnings = append(fc.Warnings, c.warn)
		}
	}
	return fc
}
