package jobsim

import (
	"fmt"
	"math"

	"ctsim/internal/calc"
	"ctsim/internal/config"
)

// maxSamples bounds the depth discretization.
const maxSamples = 20000

// sample is one depth along the synthetic well path.
type sample struct {
	calc.SurveyPoint
	TVDFt float64
}

func invalid(field, reason string) error {
	return &calc.ValidationError{Field: field, Reason: reason}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// trajectory builds the sampled well path: vertical to the kickoff depth,
// a constant build up to the job's max inclination, then a tangent hold.
// The target depth is always the last sample.
func (s *Simulator) trajectory(p config.JobParameters) ([]sample, error) {
	if !finite(p.TargetDepthFt) || p.TargetDepthFt <= 0 {
		return nil, invalid("target_depth_ft", "must be a finite number greater than zero")
	}
	if !finite(p.MaxInclinationDeg) || p.MaxInclinationDeg < 0 || p.MaxInclinationDeg > 180 {
		return nil, invalid("max_inclination_deg", "must be between 0 and 180")
	}
	m := s.cfg.Model
	if p.TargetDepthFt/m.DepthStepFt > maxSamples {
		return nil, invalid("target_depth_ft", fmt.Sprintf("needs more than %d samples at a %g ft step", maxSamples, m.DepthStepFt))
	}

	kickoff := p.TargetDepthFt * m.KickoffDepthFraction
	inclination := func(md float64) float64 {
		if md <= kickoff {
			return 0
		}
		return math.Min(p.MaxInclinationDeg, (md-kickoff)*m.BuildRateDegPer100Ft/100)
	}
	point := func(md float64) sample {
		return sample{SurveyPoint: calc.SurveyPoint{MeasuredDepthFt: md, InclinationDeg: inclination(md)}}
	}

	var path []sample
	for i := 0; ; i++ {
		md := float64(i) * m.DepthStepFt
		if md >= p.TargetDepthFt {
			break
		}
		path = append(path, point(md))
	}
	path = append(path, point(p.TargetDepthFt))

	for i := 1; i < len(path); i++ {
		dl, err := s.eng.Dogleg(calc.DoglegRequest{
			From: station(path[i-1]),
			To:   station(path[i]),
		})
		if err != nil {
			return nil, err
		}
		path[i].TVDFt = path[i-1].TVDFt + dl.DeltaTVDFt
	}
	return path, nil
}

func station(s sample) calc.Station {
	return calc.Station{
		MeasuredDepthFt: s.MeasuredDepthFt,
		InclinationDeg:  s.InclinationDeg,
		AzimuthDeg:      s.AzimuthDeg,
	}
}

// wellheadForce is the pressure-area force pushing the tubing out of the well.
func wellheadForce(p config.JobParameters) float64 {
	return p.WellheadPressurePsi * math.Pi / 4 * p.TubingODInch * p.TubingODInch
}

// forces sums a soft-string torque and drag run over each course on its own,
// starting from zero tension at the course bottom. That is the simple-curve
// approximation for tubing without a survey, and it keeps the profile linear
// in the sample count. Hookloads are measured above the stripper, which adds
// friction against the motion. Buckling margin is the critical load less the
// compression below the stripper while running in.
func (s *Simulator) forces(p config.JobParameters, path []sample) (*ForceAnalysis, error) {
	n := len(path)
	fa := &ForceAnalysis{
		DepthFt:             make([]float64, n),
		PickupHookloadLbf:   make([]float64, n),
		SlackOffHookloadLbf: make([]float64, n),
		BucklingMarginLbf:   make([]float64, n),
		TubingWeightLbfFt:   p.TubingWeightLbfFt,
		TargetTVDFt:         path[n-1].TVDFt,
	}

	survey := make([]calc.SurveyPoint, n)
	for i := range path {
		survey[i] = path[i].SurveyPoint
	}
	req := calc.TorqueDragRequest{
		StringWeightLbfFt: p.TubingWeightLbfFt,
		FrictionFactor:    s.cfg.Model.FrictionFactor,
		MudWeightPpg:      p.FluidDensityPpg,
		PipeODIn:          p.TubingODInch,
		PipeIDIn:          p.TubingIDInch,
		HoleDiameterIn:    p.WellboreDiameterInch,
	}
	stripper := s.cfg.Model.StripperFrictionLbf
	whp := wellheadForce(p)

	var pickupLoad, slackLoad float64
	for i := range path {
		// The surface sample borrows the first course for its buckling load.
		c := max(i, 1)
		req.Survey = survey[c-1 : c+1]
		td, err := s.eng.TorqueDrag(req)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			pickupLoad += td.PickupWeightLbf
			slackLoad += td.SlackOffWeightLbf
		}

		pickup := pickupLoad + stripper - whp
		slack := slackLoad - stripper - whp
		margin := td.CriticalBucklingLoadLbf - math.Max(0, whp-slackLoad)
		ratio := margin / td.CriticalBucklingLoadLbf

		fa.DepthFt[i] = path[i].MeasuredDepthFt
		fa.PickupHookloadLbf[i] = pickup
		fa.SlackOffHookloadLbf[i] = slack
		fa.BucklingMarginLbf[i] = margin

		if i == 0 || pickup > fa.MaxHookloadLbf {
			fa.MaxHookloadLbf = pickup
		}
		if i == 0 || slack < fa.MinHookloadLbf {
			fa.MinHookloadLbf = slack
		}
		if i == 0 || margin < fa.MinBucklingMarginLbf {
			fa.MinBucklingMarginLbf = margin
		}
		if i == 0 || ratio < fa.MinBucklingMarginRatio {
			fa.MinBucklingMarginRatio = ratio
		}
	}
	return fa, nil
}

// hydraulics circulates at the pump rate with the tubing end at each sample.
// All of the tubing on the reel is in the flow path.
func (s *Simulator) hydraulics(p config.JobParameters, path []sample) (*HydraulicAnalysis, error) {
	n := len(path)
	ha := &HydraulicAnalysis{
		DepthFt:               make([]float64, n),
		PumpPressurePsi:       make([]float64, n),
		BottomholePressurePsi: make([]float64, n),
		AnnularVelocityFtMin:  make([]float64, n),
		PumpRateBpm:           p.PumpRateBpm,
	}
	req := calc.FlowFrictionRequest{
		FlowRateGpm:         calc.BpmToGpm(p.PumpRateBpm),
		MudWeightPpg:        p.FluidDensityPpg,
		PlasticViscosityCp:  p.FluidPlasticViscosityCp,
		YieldPointLbf100ft2: p.FluidYieldPointLbf100ft2,
		PipeIDIn:            p.TubingIDInch,
		PipeODIn:            p.TubingODInch,
		HoleDiameterIn:      p.WellboreDiameterInch,
		PipeLengthFt:        p.TubingLengthFt,
	}
	whp := p.WellheadPressurePsi
	if !finite(whp) || whp < 0 {
		return nil, invalid("wellhead_pressure_psi", "must be a finite non-negative number")
	}

	for i, smp := range path {
		req.AnnulusLengthFt = smp.MeasuredDepthFt
		ff, err := s.eng.FlowFriction(req)
		if err != nil {
			return nil, err
		}
		bhp := ff.AnnularFrictionPsi + whp
		if smp.TVDFt > 0 {
			ecd, err := s.eng.ECD(calc.ECDRequest{
				MudWeightPpg:           p.FluidDensityPpg,
				TVDFt:                  smp.TVDFt,
				AnnularPressureLossPsi: ff.AnnularFrictionPsi + whp,
			})
			if err != nil {
				return nil, err
			}
			bhp = ecd.TotalBottomholePressurePsi
			ha.TargetECDPpg = ecd.ECDPpg
		}
		pump := ff.PipeFrictionPsi + ff.AnnularFrictionPsi + whp

		ha.DepthFt[i] = smp.MeasuredDepthFt
		ha.PumpPressurePsi[i] = pump
		ha.BottomholePressurePsi[i] = bhp
		ha.AnnularVelocityFtMin[i] = ff.AnnularVelocityFtMin
		if i == 0 || pump > ha.MaxPressurePsi {
			ha.MaxPressurePsi = pump
		}
		ha.TubingFrictionPsi = ff.PipeFrictionPsi
		ha.TurbulentInTubing = ff.PipeTurbulent
		ha.TurbulentInAnnulus = ha.TurbulentInAnnulus || ff.AnnularTurbulent
	}
	return ha, nil
}

// timing sums the five job phases.
func (s *Simulator) timing(p config.JobParameters) (*TimeEstimation, error) {
	speed := p.MaxRunningSpeedFtMin
	if !finite(speed) || speed <= 0 {
		return nil, invalid("max_running_speed_ft_min", "must be a finite number greater than zero")
	}
	treatment := *p.TreatmentDurationHr
	if !finite(treatment) || treatment < 0 {
		return nil, invalid("treatment_duration_hr", "must be a finite non-negative number")
	}
	t := s.cfg.Time
	te := &TimeEstimation{
		RigUpHr:      t.RigUpHr,
		RunningInHr:  p.TargetDepthFt / (speed * t.RunInSpeedFraction) / 60,
		TreatmentHr:  treatment,
		PullingOutHr: p.TargetDepthFt / (speed * t.PullOutSpeedFraction) / 60,
		RigDownHr:    t.RigDownHr,
	}
	te.TotalHr = te.RigUpHr + te.RunningInHr + te.TreatmentHr + te.PullingOutHr + te.RigDownHr
	return te, nil
}

// governingWrapDiameter is the reel wrap diameter of the last tubing spooled
// off when depthFt has been run, with wraps packed on an OD square pitch.
// Running deeper unwinds onto smaller wraps, so the bend strain rises.
func governingWrapDiameter(f config.FatiguePolicy, p config.JobParameters, depthFt float64) float64 {
	onReelIn := math.Max(0, p.TubingLengthFt-depthFt) * 12
	od := p.TubingODInch
	return math.Sqrt(p.ReelCoreDiameterInch*p.ReelCoreDiameterInch + 4*onReelIn*od*od/(math.Pi*f.ReelWidthInch))
}

// fatigue counts the reel and guide-arch bend cycles of one trip against a
// strain-life curve derated by internal pressure. The governing section is
// the one bent over the tightest wrap the run reaches.
func (s *Simulator) fatigue(p config.JobParameters, pressurePsi float64) (*FatiguePrediction, error) {
	switch {
	case !finite(p.ReelCoreDiameterInch) || p.ReelCoreDiameterInch <= 0:
		return nil, invalid("reel_core_diameter_inch", "must be a finite number greater than zero")
	case !finite(p.GuideArchRadiusInch) || p.GuideArchRadiusInch <= 0:
		return nil, invalid("guide_arch_radius_inch", "must be a finite number greater than zero")
	case !finite(p.PriorFatiguePercent) || p.PriorFatiguePercent < 0 || p.PriorFatiguePercent > 100:
		return nil, invalid("prior_fatigue_percent", "must be between 0 and 100")
	}
	f := s.cfg.Fatigue
	derate := 1 / (1 + f.PressureDeratePer1000Psi*math.Max(0, pressurePsi)/1000)
	cycles := func(strain float64) float64 {
		return 0.5 * math.Pow(strain/f.Ductility, 1/f.Exponent) * derate
	}

	wrap := governingWrapDiameter(f, p, p.TargetDepthFt)
	fp := &FatiguePrediction{
		LengthRunFt:               2 * p.TargetDepthFt,
		GoverningReelDiameterInch: wrap,
		ReelStrain:                p.TubingODInch / wrap,
		ArchStrain:                p.TubingODInch / (2 * p.GuideArchRadiusInch),
		PressureDerate:            derate,
		PriorFatiguePercent:       p.PriorFatiguePercent,
	}
	fp.ReelCyclesToFailure = cycles(fp.ReelStrain)
	fp.ArchCyclesToFailure = cycles(fp.ArchStrain)
	if !(fp.ReelCyclesToFailure > 0) || math.IsInf(fp.ReelCyclesToFailure, 0) {
		return nil, invalid("reel_core_diameter_inch", "bend strain is outside the fatigue model range")
	}
	if !(fp.ArchCyclesToFailure > 0) || math.IsInf(fp.ArchCyclesToFailure, 0) {
		return nil, invalid("guide_arch_radius_inch", "bend strain is outside the fatigue model range")
	}

	damage := f.ReelBendsPerTrip/fp.ReelCyclesToFailure + f.ArchBendsPerTrip/fp.ArchCyclesToFailure
	fp.EstimatedFatiguePercent = damage * 100
	fp.RemainingLifePercent = math.Max(0, 100-p.PriorFatiguePercent-fp.EstimatedFatiguePercent)
	return fp, nil
}
