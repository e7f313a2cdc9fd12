package calc

import (
	"fmt"
	"math"
)

// BitHydraulicsRequest describes flow through the bit nozzles. Nozzle sizes
// are in 32nds of an inch.
type BitHydraulicsRequest struct {
	FlowRateGpm    float64   `json:"flow_rate_gpm" yaml:"flow_rate_gpm"`
	MudWeightPpg   float64   `json:"mud_weight_ppg" yaml:"mud_weight_ppg"`
	Nozzles32nds   []float64 `json:"nozzles_32nds" yaml:"nozzles_32nds"`
	HoleDiameterIn float64   `json:"hole_diameter_in,omitempty" yaml:"hole_diameter_in,omitempty"`
}

// NozzleJet is the flow through one nozzle.
type NozzleJet struct {
	Size32nds      float64 `json:"size_32nds"`
	AreaIn2        float64 `json:"area_in2"`
	FlowRateGpm    float64 `json:"flow_rate_gpm"`
	ImpactForceLbf float64 `json:"impact_force_lbf"`
}

// BitHydraulicsResult holds the bit pressure drop and jet energy figures.
type BitHydraulicsResult struct {
	TotalFlowAreaIn2        float64     `json:"total_flow_area_in2"`
	NozzleVelocityFtS       float64     `json:"nozzle_velocity_ft_s"`
	PressureDropPsi         float64     `json:"pressure_drop_psi"`
	HydraulicHorsepower     float64     `json:"hydraulic_horsepower"`
	ImpactForceLbf          float64     `json:"impact_force_lbf"`
	HSI                     float64     `json:"hsi_hp_in2"`
	ImpactForcePerAreaLbfIn float64     `json:"impact_force_per_area_lbf_in2"`
	Jets                    []NozzleJet `json:"jets"`
}

// BitHydraulics computes total flow area, jet velocity, bit pressure drop,
// hydraulic horsepower and jet impact force.
func (e Engine) BitHydraulics(req BitHydraulicsRequest) (BitHydraulicsResult, error) {
	var g guard
	g.positive("flow_rate_gpm", req.FlowRateGpm)
	g.positive("mud_weight_ppg", req.MudWeightPpg)
	if len(req.Nozzles32nds) == 0 {
		g.fail("nozzles_32nds", "at least one nozzle is required")
	}
	for i, n := range req.Nozzles32nds {
		g.positive(fmt.Sprintf("nozzles_32nds[%d]", i), n)
	}
	g.nonNegative("hole_diameter_in", req.HoleDiameterIn)
	if err := g.result(); err != nil {
		return BitHydraulicsResult{}, err
	}

	areas := make([]float64, len(req.Nozzles32nds))
	var tfa float64
	for i, n := range req.Nozzles32nds {
		d := n / 32
		areas[i] = math.Pi / 4 * d * d
		tfa += areas[i]
	}

	q := req.FlowRateGpm
	cd := e.c.NozzleDischargeCoefficient
	velocity := 0.3208 * q / tfa
	drop := 8.311e-5 * req.MudWeightPpg * q * q / (cd * cd * tfa * tfa)
	hhp := drop * q / hhpDivisor
	impact := req.MudWeightPpg * q * velocity / 1932

	jets := make([]NozzleJet, len(areas))
	for i, a := range areas {
		share := q * a / tfa
		jets[i] = NozzleJet{
			Size32nds:      req.Nozzles32nds[i],
			AreaIn2:        a,
			FlowRateGpm:    share,
			ImpactForceLbf: saturate(req.MudWeightPpg * share * velocity / 1932),
		}
	}

	res := BitHydraulicsResult{
		TotalFlowAreaIn2:    tfa,
		NozzleVelocityFtS:   saturate(velocity),
		PressureDropPsi:     saturate(drop),
		HydraulicHorsepower: saturate(hhp),
		ImpactForceLbf:      saturate(impact),
		Jets:                jets,
	}
	if req.HoleDiameterIn > 0 {
		holeArea := math.Pi / 4 * req.HoleDiameterIn * req.HoleDiameterIn
		res.HSI = saturate(hhp / holeArea)
		res.ImpactForcePerAreaLbfIn = saturate(impact / holeArea)
	}
	return settle(res)
}
