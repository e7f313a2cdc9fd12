package calc

import (
	"fmt"
	"math"
)

// MSERequest holds the drilling parameters for mechanical specific energy.
type MSERequest struct {
	TorqueFtLbf     float64   `json:"torque_ft_lbf" yaml:"torque_ft_lbf"`
	RPM             float64   `json:"rpm" yaml:"rpm"`
	WOBLbf          float64   `json:"wob_lbf" yaml:"wob_lbf"`
	BitDiameterIn   float64   `json:"bit_diameter_in" yaml:"bit_diameter_in"`
	ROPFtHr         float64   `json:"rop_ft_hr" yaml:"rop_ft_hr"`
	RecentMSEPsi    []float64 `json:"recent_mse_psi,omitempty" yaml:"recent_mse_psi,omitempty"`
	RockStrengthPsi float64   `json:"rock_strength_psi,omitempty" yaml:"rock_strength_psi,omitempty"`
}

// MSEResult is the Teale mechanical specific energy breakdown.
type MSEResult struct {
	MSEPsi              float64 `json:"mse_psi"`
	RotationalEnergyPsi float64 `json:"rotational_energy_psi"`
	ThrustEnergyPsi     float64 `json:"thrust_energy_psi"`
	BitAreaIn2          float64 `json:"bit_area_in2"`
	BaselineMSEPsi      float64 `json:"baseline_mse_psi"`
	EfficiencyPercent   float64 `json:"efficiency_percent"`
	Foundering          bool    `json:"foundering"`
}

// MSE computes mechanical specific energy.
func (e Engine) MSE(req MSERequest) (MSEResult, error) {
	var g guard
	g.nonNegative("torque_ft_lbf", req.TorqueFtLbf)
	g.nonNegative("rpm", req.RPM)
	g.nonNegative("wob_lbf", req.WOBLbf)
	g.positive("bit_diameter_in", req.BitDiameterIn)
	g.positive("rop_ft_hr", req.ROPFtHr)
	g.nonNegative("rock_strength_psi", req.RockStrengthPsi)
	for i, v := range req.RecentMSEPsi {
		g.positive(fmt.Sprintf("recent_mse_psi[%d]", i), v)
	}
	if err := g.result(); err != nil {
		return MSEResult{}, err
	}

	area := math.Pi / 4 * req.BitDiameterIn * req.BitDiameterIn
	thrust := saturate(req.WOBLbf / area)
	rotational := saturate(120 * math.Pi * req.RPM * req.TorqueFtLbf / (area * req.ROPFtHr))
	mse := saturate(thrust + rotational)

	var baseline float64
	if n := len(req.RecentMSEPsi); n > 0 {
		var sum float64
		for _, v := range req.RecentMSEPsi {
			sum += v
		}
		baseline = saturate(sum / float64(n))
	}

	reference := e.c.MechanicalEfficiency * mse
	switch {
	case req.RockStrengthPsi > 0:
		reference = req.RockStrengthPsi
	case baseline > 0:
		reference = baseline
	}
	var efficiency float64
	if mse > 0 {
		efficiency = math.Min(100, reference/mse*100)
	}

	return settle(MSEResult{
		MSEPsi:              mse,
		RotationalEnergyPsi: rotational,
		ThrustEnergyPsi:     thrust,
		BitAreaIn2:          area,
		BaselineMSEPsi:      baseline,
		EfficiencyPercent:   efficiency,
		Foundering:          baseline > 0 && mse > baseline*e.c.FounderingRatio,
	})
}
