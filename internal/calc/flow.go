package calc

import "math"

// FlowFrictionRequest describes circulation down a pipe and up the annulus
// between that pipe and the hole.
type FlowFrictionRequest struct {
	FlowRateGpm         float64 `json:"flow_rate_gpm" yaml:"flow_rate_gpm"`
	MudWeightPpg        float64 `json:"mud_weight_ppg" yaml:"mud_weight_ppg"`
	PlasticViscosityCp  float64 `json:"plastic_viscosity_cp" yaml:"plastic_viscosity_cp"`
	YieldPointLbf100ft2 float64 `json:"yield_point_lbf_100ft2" yaml:"yield_point_lbf_100ft2"`
	PipeIDIn            float64 `json:"pipe_id_in" yaml:"pipe_id_in"`
	PipeODIn            float64 `json:"pipe_od_in" yaml:"pipe_od_in"`
	HoleDiameterIn      float64 `json:"hole_diameter_in" yaml:"hole_diameter_in"`
	PipeLengthFt        float64 `json:"pipe_length_ft" yaml:"pipe_length_ft"`
	AnnulusLengthFt     float64 `json:"annulus_length_ft" yaml:"annulus_length_ft"`
}

// FlowFrictionResult holds pipe and annular friction for a Bingham fluid.
type FlowFrictionResult struct {
	PipeVelocityFtS      float64 `json:"pipe_velocity_ft_s"`
	PipeReynolds         float64 `json:"pipe_reynolds"`
	PipeTurbulent        bool    `json:"pipe_turbulent"`
	PipeFrictionPsi      float64 `json:"pipe_friction_psi"`
	AnnularVelocityFtMin float64 `json:"annular_velocity_ft_min"`
	AnnularReynolds      float64 `json:"annular_reynolds"`
	AnnularTurbulent     bool    `json:"annular_turbulent"`
	AnnularFrictionPsi   float64 `json:"annular_friction_psi"`
}

// FlowFriction computes frictional pressure loss inside the pipe and in the
// annulus. Laminar flow uses the Bingham-plastic closed form; turbulent flow
// uses the Blasius Fanning friction factor.
func (e Engine) FlowFriction(req FlowFrictionRequest) (FlowFrictionResult, error) {
	var g guard
	g.nonNegative("flow_rate_gpm", req.FlowRateGpm)
	g.positive("mud_weight_ppg", req.MudWeightPpg)
	g.positive("plastic_viscosity_cp", req.PlasticViscosityCp)
	g.nonNegative("yield_point_lbf_100ft2", req.YieldPointLbf100ft2)
	g.positive("pipe_id_in", req.PipeIDIn)
	g.positive("pipe_od_in", req.PipeODIn)
	g.below("pipe_id_in", req.PipeIDIn, req.PipeODIn, "pipe_od_in")
	g.positive("hole_diameter_in", req.HoleDiameterIn)
	if g.err == nil && req.HoleDiameterIn <= req.PipeODIn {
		g.fail("hole_diameter_in", "must be greater than pipe_od_in")
	}
	g.nonNegative("pipe_length_ft", req.PipeLengthFt)
	g.nonNegative("annulus_length_ft", req.AnnulusLengthFt)
	if err := g.result(); err != nil {
		return FlowFrictionResult{}, err
	}

	var res FlowFrictionResult
	if req.FlowRateGpm == 0 {
		return res, nil
	}

	d := req.PipeIDIn
	vp := req.FlowRateGpm / (2.448 * d * d)
	res.PipeVelocityFtS = vp
	muPipe := req.PlasticViscosityCp + 6.66*req.YieldPointLbf100ft2*d/vp
	res.PipeReynolds = 928 * req.MudWeightPpg * vp * d / muPipe
	if res.PipeReynolds < e.c.CriticalReynolds {
		res.PipeFrictionPsi = (req.PlasticViscosityCp*vp/(1500*d*d) + req.YieldPointLbf100ft2/(225*d)) * req.PipeLengthFt
	} else {
		res.PipeTurbulent = true
		f := 0.0791 / math.Pow(res.PipeReynolds, 0.25)
		res.PipeFrictionPsi = f * req.MudWeightPpg * vp * vp / (25.8 * d) * req.PipeLengthFt
	}

	de := req.HoleDiameterIn - req.PipeODIn
	va := req.FlowRateGpm / (2.448 * (req.HoleDiameterIn*req.HoleDiameterIn - req.PipeODIn*req.PipeODIn))
	res.AnnularVelocityFtMin = va * 60
	muAnn := req.PlasticViscosityCp + 5*req.YieldPointLbf100ft2*de/va
	res.AnnularReynolds = 757 * req.MudWeightPpg * va * de / muAnn
	if res.AnnularReynolds < e.c.CriticalReynolds {
		res.AnnularFrictionPsi = annularLaminarGradient(req.PlasticViscosityCp, req.YieldPointLbf100ft2, va, de) * req.AnnulusLengthFt
	} else {
		res.AnnularTurbulent = true
		f := 0.0791 / math.Pow(res.AnnularReynolds, 0.25)
		res.AnnularFrictionPsi = f * req.MudWeightPpg * va * va / (21.1 * de) * req.AnnulusLengthFt
	}

	res.PipeFrictionPsi = saturate(res.PipeFrictionPsi)
	res.AnnularFrictionPsi = saturate(res.AnnularFrictionPsi)
	return settle(res)
}

// annularLaminarGradient is the Bingham-plastic laminar annular pressure
// gradient in psi/ft for a velocity in ft/s and hydraulic diameter de in inches.
// A fluid at rest carries no friction.
func annularLaminarGradient(pv, yp, velocityFtS, de float64) float64 {
	if velocityFtS <= 0 {
		return 0
	}
	return pv*velocityFtS/(1000*de*de) + yp/(200*de)
}
