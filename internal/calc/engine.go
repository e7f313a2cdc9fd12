// Package calc holds the stateless drilling and coiled-tubing calculators.
package calc

// Unit conversion constants used across the calculators.
const (
	// psiPerFtPerPpg converts a mud weight in ppg to a pressure gradient in psi/ft.
	psiPerFtPerPpg = 0.052
	// gpmPerBpm converts barrels per minute to gallons per minute.
	gpmPerBpm = 42.0
	// hhpDivisor converts psi*gpm to hydraulic horsepower.
	hhpDivisor = 1714.0
)

// Coefficients are the empirical constants behind the calculators. They are
// configuration rather than code so they can be calibrated against field data.
type Coefficients struct {
	// FounderingRatio flags MSE foundering when MSE exceeds the recent
	// baseline by this factor.
	FounderingRatio float64 `yaml:"foundering_ratio" json:"foundering_ratio" validate:"gt=1"`
	// MechanicalEfficiency is the assumed rock-strength/MSE ratio when no
	// reference is supplied.
	MechanicalEfficiency float64 `yaml:"mechanical_efficiency" json:"mechanical_efficiency" validate:"gt=0,lte=1"`
	// ClingingConstant is the Burkhardt mud clinging constant for swab/surge.
	ClingingConstant float64 `yaml:"clinging_constant" json:"clinging_constant" validate:"gte=0,lte=1"`
	// SwabSurgeMarginPsi is the default allowed swab/surge pressure.
	SwabSurgeMarginPsi float64 `yaml:"swab_surge_margin_psi" json:"swab_surge_margin_psi" validate:"gt=0"`
	// MaxTripSpeedFtMin bounds the safe trip speed search.
	MaxTripSpeedFtMin float64 `yaml:"max_trip_speed_ft_min" json:"max_trip_speed_ft_min" validate:"gt=0"`
	// InfluxGradientPsiFt is the default kick fluid gradient (gas).
	InfluxGradientPsiFt float64 `yaml:"influx_gradient_psi_ft" json:"influx_gradient_psi_ft" validate:"gte=0"`
	// SteelDensityPpg is used for buoyancy factors.
	SteelDensityPpg float64 `yaml:"steel_density_ppg" json:"steel_density_ppg" validate:"gt=0"`
	// YoungsModulusPsi of the tubular steel.
	YoungsModulusPsi float64 `yaml:"youngs_modulus_psi" json:"youngs_modulus_psi" validate:"gt=0"`
	// BitFrictionCoefficient relates WOB to bit torque.
	BitFrictionCoefficient float64 `yaml:"bit_friction_coefficient" json:"bit_friction_coefficient" validate:"gte=0"`
	// NozzleDischargeCoefficient is the bit nozzle discharge coefficient (Cd).
	NozzleDischargeCoefficient float64 `yaml:"nozzle_discharge_coefficient" json:"nozzle_discharge_coefficient" validate:"gt=0,lte=1"`
	// CriticalReynolds separates laminar from turbulent flow.
	CriticalReynolds float64 `yaml:"critical_reynolds" json:"critical_reynolds" validate:"gt=0"`
}

// DefaultCoefficients returns textbook values for each coefficient.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		FounderingRatio:            1.5,
		MechanicalEfficiency:       0.35,
		ClingingConstant:           0.45,
		SwabSurgeMarginPsi:         150,
		MaxTripSpeedFtMin:          1000,
		InfluxGradientPsiFt:        0.1,
		SteelDensityPpg:            65.5,
		YoungsModulusPsi:           30e6,
		BitFrictionCoefficient:     0.25,
		NozzleDischargeCoefficient: 0.95,
		CriticalReynolds:           2100,
	}
}

// Engine evaluates the calculators with a fixed set of coefficients. It holds
// no mutable state and is safe for concurrent use by value.
type Engine struct {
	c Coefficients
}

// New returns an Engine using c.
func New(c Coefficients) Engine {
	return Engine{c: c}
}

// Default returns an Engine using DefaultCoefficients.
func Default() Engine {
	return New(DefaultCoefficients())
}

// Coefficients returns the engine's coefficients.
func (e Engine) Coefficients() Coefficients {
	return e.c
}

// BuoyancyFactor returns the steel buoyancy factor for a fluid of mudWeight ppg.
func (e Engine) BuoyancyFactor(mudWeightPpg float64) float64 {
	return 1 - mudWeightPpg/e.c.SteelDensityPpg
}

// BpmToGpm converts a pump rate in barrels per minute to gallons per minute.
func BpmToGpm(bpm float64) float64 {
	return bpm * gpmPerBpm
}
