package calc

import (
	"fmt"
	"math"
)

// SurveyPoint is a survey station carrying the string weight at that depth.
// A zero WeightPerFootLbf falls back to the request's string weight.
type SurveyPoint struct {
	MeasuredDepthFt  float64 `json:"measured_depth_ft" yaml:"measured_depth_ft"`
	InclinationDeg   float64 `json:"inclination_deg" yaml:"inclination_deg"`
	AzimuthDeg       float64 `json:"azimuth_deg" yaml:"azimuth_deg"`
	WeightPerFootLbf float64 `json:"weight_per_foot_lbf,omitempty" yaml:"weight_per_foot_lbf,omitempty"`
}

// TorqueDragRequest describes a string hanging along a surveyed wellbore.
type TorqueDragRequest struct {
	Survey            []SurveyPoint `json:"survey" yaml:"survey"`
	StringWeightLbfFt float64       `json:"string_weight_lbf_ft" yaml:"string_weight_lbf_ft"`
	FrictionFactor    float64       `json:"friction_factor" yaml:"friction_factor"`
	MudWeightPpg      float64       `json:"mud_weight_ppg" yaml:"mud_weight_ppg"`
	WOBLbf            float64       `json:"wob_lbf" yaml:"wob_lbf"`
	PipeODIn          float64       `json:"pipe_od_in" yaml:"pipe_od_in"`
	PipeIDIn          float64       `json:"pipe_id_in" yaml:"pipe_id_in"`
	HoleDiameterIn    float64       `json:"hole_diameter_in" yaml:"hole_diameter_in"`
}

// TorqueDragResult holds surface loads for each running mode.
type TorqueDragResult struct {
	PickupWeightLbf         float64 `json:"pickup_weight_lbf"`
	SlackOffWeightLbf       float64 `json:"slack_off_weight_lbf"`
	RotatingWeightLbf       float64 `json:"rotating_weight_lbf"`
	SurfaceTorqueFtLbf      float64 `json:"surface_torque_ft_lbf"`
	BitTorqueFtLbf          float64 `json:"bit_torque_ft_lbf"`
	MaxDragLbf              float64 `json:"max_drag_lbf"`
	CriticalBucklingLoadLbf float64 `json:"critical_buckling_load_lbf"`
	HelicalBucklingLoadLbf  float64 `json:"helical_buckling_load_lbf"`
	BucklingExpected        bool    `json:"buckling_expected"`
	BuoyancyFactor          float64 `json:"buoyancy_factor"`
}

// TorqueDrag runs a soft-string model from the deepest station to surface.
func (e Engine) TorqueDrag(req TorqueDragRequest) (TorqueDragResult, error) {
	if err := e.checkTorqueDrag(req); err != nil {
		return TorqueDragResult{}, err
	}

	mu := req.FrictionFactor
	bf := e.BuoyancyFactor(req.MudWeightPpg)
	radiusFt := req.PipeODIn / 24
	bitTorque := e.c.BitFrictionCoefficient * req.WOBLbf * req.HoleDiameterIn / 36

	// Tensions at the lower end of the current course: pickup, slack-off,
	// off-bottom rotating and on-bottom rotating (which carries WOB).
	pickup, slack, rotating := 0.0, 0.0, 0.0
	onBottom := -req.WOBLbf
	torque := bitTorque

	s := req.Survey
	for i := len(s) - 1; i > 0; i-- {
		top, bot := s[i-1], s[i]
		dl := bot.MeasuredDepthFt - top.MeasuredDepthFt
		w := req.StringWeightLbfFt
		if bot.WeightPerFootLbf > 0 {
			w = bot.WeightPerFootLbf
		}
		w *= bf

		i1, i2 := radians(top.InclinationDeg), radians(bot.InclinationDeg)
		avg := (i1 + i2) / 2
		dInc := i1 - i2
		dAzi := radians(wrap180(bot.AzimuthDeg - top.AzimuthDeg))
		axial := w * dl * math.Cos(avg)
		lateral := w * dl * math.Sin(avg)
		normal := func(t float64) float64 {
			return math.Hypot(t*dAzi*math.Sin(avg), t*dInc+lateral)
		}

		// Clamped per course so an overflowed tension never meets a zero
		// angle change and turns into NaN.
		pickup = saturate(pickup + axial + mu*normal(pickup))
		slack = saturate(slack + axial - mu*normal(slack))
		rotating += axial
		torque = saturate(torque + mu*normal(onBottom)*radiusFt)
		onBottom += axial
	}

	critical, helical := e.bucklingLoads(req, bf)
	return settle(TorqueDragResult{
		PickupWeightLbf:         saturate(pickup),
		SlackOffWeightLbf:       saturate(slack),
		RotatingWeightLbf:       saturate(rotating),
		SurfaceTorqueFtLbf:      saturate(torque),
		BitTorqueFtLbf:          bitTorque,
		MaxDragLbf:              saturate(math.Max(pickup-rotating, rotating-slack)),
		CriticalBucklingLoadLbf: critical,
		HelicalBucklingLoadLbf:  helical,
		BucklingExpected:        req.WOBLbf > critical,
		BuoyancyFactor:          bf,
	})
}

func (e Engine) checkTorqueDrag(req TorqueDragRequest) error {
	var g guard
	if len(req.Survey) < 2 {
		g.fail("survey", "at least two survey points are required")
	}
	for i, p := range req.Survey {
		prefix := fmt.Sprintf("survey[%d]", i)
		g.nonNegative(prefix+".measured_depth_ft", p.MeasuredDepthFt)
		g.between(prefix+".inclination_deg", p.InclinationDeg, 0, 180)
		g.finite(prefix+".azimuth_deg", p.AzimuthDeg)
		g.nonNegative(prefix+".weight_per_foot_lbf", p.WeightPerFootLbf)
		if g.err == nil && i > 0 && p.MeasuredDepthFt <= req.Survey[i-1].MeasuredDepthFt {
			g.fail(prefix+".measured_depth_ft", "must be strictly increasing")
		}
	}
	g.positive("string_weight_lbf_ft", req.StringWeightLbfFt)
	g.between("friction_factor", req.FrictionFactor, 0, 1)
	g.positive("mud_weight_ppg", req.MudWeightPpg)
	if g.err == nil && req.MudWeightPpg >= e.c.SteelDensityPpg {
		g.fail("mud_weight_ppg", "must be lighter than steel")
	}
	g.nonNegative("wob_lbf", req.WOBLbf)
	g.positive("pipe_od_in", req.PipeODIn)
	g.nonNegative("pipe_id_in", req.PipeIDIn)
	g.below("pipe_id_in", req.PipeIDIn, req.PipeODIn, "pipe_od_in")
	g.positive("hole_diameter_in", req.HoleDiameterIn)
	if g.err == nil && req.HoleDiameterIn <= req.PipeODIn {
		g.fail("hole_diameter_in", "must be greater than pipe_od_in")
	}
	return g.result()
}

// bucklingLoads evaluates the deepest course. The inclined (Dawson-Paslay and
// Chen) loads vanish as the hole goes vertical, so the vertical forms act as a
// floor.
func (e Engine) bucklingLoads(req TorqueDragRequest, bf float64) (sinusoidal, helical float64) {
	n := len(req.Survey)
	top, bot := req.Survey[n-2], req.Survey[n-1]
	w := req.StringWeightLbfFt
	if bot.WeightPerFootLbf > 0 {
		w = bot.WeightPerFootLbf
	}
	wIn := w * bf / 12
	od, id := req.PipeODIn, req.PipeIDIn
	ei := e.c.YoungsModulusPsi * math.Pi / 64 * (od*od*od*od - id*id*id*id)
	clearance := (req.HoleDiameterIn - od) / 2
	inc := radians((top.InclinationDeg + bot.InclinationDeg) / 2)

	inclined := math.Sqrt(ei * wIn * math.Abs(math.Sin(inc)) / clearance)
	vertical := math.Cbrt(ei * wIn * wIn)
	sinusoidal = math.Max(2*inclined, 1.94*vertical)
	helical = math.Max(2*math.Sqrt2*inclined, 5.55*vertical)
	return saturate(sinusoidal), saturate(helical)
}
