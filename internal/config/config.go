// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"ctsim/internal/calc"
)

// JobParameters describes one coiled-tubing intervention. Zero values in the
// optional fields select the configured defaults, except TreatmentDurationHr
// where only nil does so and an explicit zero means no treatment time.
type JobParameters struct {
	WellName                 string  `yaml:"well_name" json:"well_name" validate:"required"`
	TargetDepthFt            float64 `yaml:"target_depth_ft" json:"target_depth_ft" validate:"gte=0"`
	WellboreDiameterInch     float64 `yaml:"wellbore_diameter_inch" json:"wellbore_diameter_inch" validate:"gte=0"`
	MaxInclinationDeg        float64 `yaml:"max_inclination_deg" json:"max_inclination_deg" validate:"gte=0,lte=180"`
	TubingODInch             float64 `yaml:"tubing_od_inch" json:"tubing_od_inch" validate:"gte=0"`
	TubingIDInch             float64 `yaml:"tubing_id_inch" json:"tubing_id_inch" validate:"gte=0"`
	TubingLengthFt           float64 `yaml:"tubing_length_ft" json:"tubing_length_ft" validate:"gte=0"`
	FluidDensityPpg          float64 `yaml:"fluid_density_ppg" json:"fluid_density_ppg" validate:"gte=0"`
	MaxPressurePsi           float64 `yaml:"max_pressure_psi" json:"max_pressure_psi" validate:"gte=0"`
	MaxRunningSpeedFtMin     float64 `yaml:"max_running_speed_ft_min" json:"max_running_speed_ft_min" validate:"gte=0"`
	UnitMaxPressurePsi       float64 `yaml:"unit_max_pressure_psi" json:"unit_max_pressure_psi" validate:"gte=0"`
	UnitMaxTensionLbf        float64 `yaml:"unit_max_tension_lbf" json:"unit_max_tension_lbf" validate:"gte=0"`
	UnitMaxRunningSpeedFtMin float64 `yaml:"unit_max_running_speed_ft_min,omitempty" json:"unit_max_running_speed_ft_min,omitempty" validate:"gte=0"`

	PumpRateBpm              float64  `yaml:"pump_rate_bpm,omitempty" json:"pump_rate_bpm,omitempty" validate:"gte=0"`
	WellheadPressurePsi      float64  `yaml:"wellhead_pressure_psi,omitempty" json:"wellhead_pressure_psi,omitempty" validate:"gte=0"`
	TubingWeightLbfFt        float64  `yaml:"tubing_weight_lbf_ft,omitempty" json:"tubing_weight_lbf_ft,omitempty" validate:"gte=0"`
	TreatmentDurationHr      *float64 `yaml:"treatment_duration_hr,omitempty" json:"treatment_duration_hr,omitempty" validate:"omitempty,gte=0"`
	ReelCoreDiameterInch     float64  `yaml:"reel_core_diameter_inch,omitempty" json:"reel_core_diameter_inch,omitempty" validate:"gte=0"`
	GuideArchRadiusInch      float64  `yaml:"guide_arch_radius_inch,omitempty" json:"guide_arch_radius_inch,omitempty" validate:"gte=0"`
	PriorFatiguePercent      float64  `yaml:"prior_fatigue_percent,omitempty" json:"prior_fatigue_percent,omitempty" validate:"gte=0,lte=100"`
	FluidPlasticViscosityCp  float64  `yaml:"fluid_plastic_viscosity_cp,omitempty" json:"fluid_plastic_viscosity_cp,omitempty" validate:"gte=0"`
	FluidYieldPointLbf100ft2 float64  `yaml:"fluid_yield_point_lbf_100ft2,omitempty" json:"fluid_yield_point_lbf_100ft2,omitempty" validate:"gte=0"`
}

// Limits are the screening rules applied before any analysis runs.
type Limits struct {
	WarningMargin            float64 `yaml:"warning_margin" json:"warning_margin" validate:"gte=0,lt=1"`
	MaxInclinationDeg        float64 `yaml:"max_inclination_deg" json:"max_inclination_deg" validate:"gt=0,lte=180"`
	UnitMaxRunningSpeedFtMin float64 `yaml:"unit_max_running_speed_ft_min" json:"unit_max_running_speed_ft_min" validate:"gt=0"`
}

// Model controls the discretized force and hydraulics analyses.
type Model struct {
	DepthStepFt            float64 `yaml:"depth_step_ft" json:"depth_step_ft" validate:"gt=0"`
	KickoffDepthFraction   float64 `yaml:"kickoff_depth_fraction" json:"kickoff_depth_fraction" validate:"gte=0,lte=1"`
	BuildRateDegPer100Ft   float64 `yaml:"build_rate_deg_per_100ft" json:"build_rate_deg_per_100ft" validate:"gt=0"`
	FrictionFactor         float64 `yaml:"friction_factor" json:"friction_factor" validate:"gte=0,lte=1"`
	StripperFrictionLbf    float64 `yaml:"stripper_friction_lbf" json:"stripper_friction_lbf" validate:"gte=0"`
	PumpRateBpm            float64 `yaml:"pump_rate_bpm" json:"pump_rate_bpm" validate:"gte=0"`
	PlasticViscosityCp     float64 `yaml:"plastic_viscosity_cp" json:"plastic_viscosity_cp" validate:"gt=0"`
	YieldPointLbf100ft2    float64 `yaml:"yield_point_lbf_100ft2" json:"yield_point_lbf_100ft2" validate:"gte=0"`
	SteelWeightLbfFtPerIn2 float64 `yaml:"steel_weight_lbf_ft_per_in2" json:"steel_weight_lbf_ft_per_in2" validate:"gt=0"`
}

// TimePolicy holds the fixed phase durations and speed fractions.
type TimePolicy struct {
	RigUpHr              float64 `yaml:"rig_up_hr" json:"rig_up_hr" validate:"gte=0"`
	RigDownHr            float64 `yaml:"rig_down_hr" json:"rig_down_hr" validate:"gte=0"`
	TreatmentHr          float64 `yaml:"treatment_hr" json:"treatment_hr" validate:"gte=0"`
	RunInSpeedFraction   float64 `yaml:"run_in_speed_fraction" json:"run_in_speed_fraction" validate:"gt=0,lte=1"`
	PullOutSpeedFraction float64 `yaml:"pull_out_speed_fraction" json:"pull_out_speed_fraction" validate:"gt=0,lte=1"`
}

// FatiguePolicy parameterizes the bend-cycle fatigue model.
type FatiguePolicy struct {
	ReelCoreDiameterInch     float64 `yaml:"reel_core_diameter_inch" json:"reel_core_diameter_inch" validate:"gt=0"`
	ReelWidthInch            float64 `yaml:"reel_width_inch" json:"reel_width_inch" validate:"gt=0"`
	GuideArchRadiusInch      float64 `yaml:"guide_arch_radius_inch" json:"guide_arch_radius_inch" validate:"gt=0"`
	Ductility                float64 `yaml:"ductility" json:"ductility" validate:"gt=0"`
	Exponent                 float64 `yaml:"exponent" json:"exponent" validate:"lt=0"`
	ReelBendsPerTrip         float64 `yaml:"reel_bends_per_trip" json:"reel_bends_per_trip" validate:"gte=0"`
	ArchBendsPerTrip         float64 `yaml:"arch_bends_per_trip" json:"arch_bends_per_trip" validate:"gte=0"`
	PressureDeratePer1000Psi float64 `yaml:"pressure_derate_per_1000_psi" json:"pressure_derate_per_1000_psi" validate:"gte=0"`
}

// RiskPolicy maps how close a value sits to its limit onto a severity.
// Ratios are value/limit; fatigue floors are remaining-life percentages.
type RiskPolicy struct {
	LowRatio               float64 `yaml:"low_ratio" json:"low_ratio" validate:"gt=0"`
	MediumRatio            float64 `yaml:"medium_ratio" json:"medium_ratio" validate:"gtefield=LowRatio"`
	HighRatio              float64 `yaml:"high_ratio" json:"high_ratio" validate:"gtefield=MediumRatio"`
	FatigueLowFloorPct     float64 `yaml:"fatigue_low_floor_pct" json:"fatigue_low_floor_pct" validate:"gte=0,lte=100"`
	FatigueMediumFloorPct  float64 `yaml:"fatigue_medium_floor_pct" json:"fatigue_medium_floor_pct" validate:"ltefield=FatigueLowFloorPct"`
	FatigueHighFloorPct    float64 `yaml:"fatigue_high_floor_pct" json:"fatigue_high_floor_pct" validate:"ltefield=FatigueMediumFloorPct"`
	BucklingMarginFraction float64 `yaml:"buckling_margin_fraction" json:"buckling_margin_fraction" validate:"gte=0,lte=1"`
	LongJobHr              float64 `yaml:"long_job_hr" json:"long_job_hr" validate:"gt=0"`
}

// SimulationConfig is the root configuration for the calculators and the
// job simulation pipeline.
type SimulationConfig struct {
	Calc    calc.Coefficients `yaml:"calc" json:"calc"`
	Limits  Limits            `yaml:"limits" json:"limits"`
	Model   Model             `yaml:"model" json:"model"`
	Time    TimePolicy        `yaml:"time" json:"time"`
	Fatigue FatiguePolicy     `yaml:"fatigue" json:"fatigue"`
	Risk    RiskPolicy        `yaml:"risk" json:"risk"`
}

// Default returns the built-in configuration.
func Default() *SimulationConfig {
	return &SimulationConfig{
		Calc: calc.DefaultCoefficients(),
		Limits: Limits{
			WarningMargin:            0.10,
			MaxInclinationDeg:        90,
			UnitMaxRunningSpeedFtMin: 150,
		},
		Model: Model{
			DepthStepFt:            100,
			KickoffDepthFraction:   0.3,
			BuildRateDegPer100Ft:   3,
			FrictionFactor:         0.24,
			StripperFrictionLbf:    1500,
			PumpRateBpm:            1.5,
			PlasticViscosityCp:     1,
			YieldPointLbf100ft2:    0,
			SteelWeightLbfFtPerIn2: 3.4,
		},
		Time: TimePolicy{
			RigUpHr:              4,
			RigDownHr:            3,
			TreatmentHr:          2,
			RunInSpeedFraction:   0.8,
			PullOutSpeedFraction: 1,
		},
		Fatigue: FatiguePolicy{
			ReelCoreDiameterInch:     96,
			ReelWidthInch:            72,
			GuideArchRadiusInch:      72,
			Ductility:                0.6,
			Exponent:                 -0.55,
			ReelBendsPerTrip:         2,
			ArchBendsPerTrip:         4,
			PressureDeratePer1000Psi: 0.05,
		},
		Risk: RiskPolicy{
			LowRatio:               0.7,
			MediumRatio:            0.8,
			HighRatio:              0.9,
			FatigueLowFloorPct:     60,
			FatigueMediumFloorPct:  40,
			FatigueHighFloorPct:    20,
			BucklingMarginFraction: 0.1,
			LongJobHr:              24,
		},
	}
}

// Load reads a YAML simulation config, validates it against the CUE schema
// and overlays it onto Default. An empty path returns Default.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	if err := ValidateWithCue(configPath, cueSchemaPath, SimulationDefinition); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("loaded configuration", "path", configPath)
	return cfg, nil
}

// LoadJob reads and validates a YAML job definition.
func LoadJob(jobPath, cueSchemaPath string) (JobParameters, error) {
	if err := ValidateWithCue(jobPath, cueSchemaPath, JobDefinition); err != nil {
		return JobParameters{}, err
	}
	data, err := os.ReadFile(jobPath)
	if err != nil {
		return JobParameters{}, err
	}
	var job JobParameters
	if err := yaml.Unmarshal(data, &job); err != nil {
		return JobParameters{}, fmt.Errorf("parse job: %w", err)
	}
	if err := job.Validate(); err != nil {
		return JobParameters{}, err
	}
	slog.Debug("loaded job", "path", jobPath, "well", job.WellName)
	return job, nil
}
