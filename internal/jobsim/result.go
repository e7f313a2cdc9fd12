package jobsim

// Severity ranks a risk. Values sort HIGH before MEDIUM before LOW.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Risk categories, in report order.
const (
	CategoryMechanical  = "mechanical"
	CategoryBuckling    = "buckling"
	CategoryPressure    = "pressure"
	CategoryFatigue     = "fatigue"
	CategoryOperational = "operational"
)

// Feasibility limit names.
const (
	FactorPressure     = "pressure"
	FactorTension      = "tension"
	FactorRunningSpeed = "running_speed"
	FactorInclination  = "inclination"
	FactorTubingLength = "tubing_length"
	FactorClearance    = "clearance"
)

// FeasibilityCheck is the outcome of screening a job against unit limits.
// Details is parallel to LimitingFactors.
type FeasibilityCheck struct {
	IsFeasible      bool     `json:"is_feasible" yaml:"is_feasible"`
	LimitingFactors []string `json:"limiting_factors" yaml:"limiting_factors"`
	Details         []string `json:"details" yaml:"details"`
	Warnings        []string `json:"warnings" yaml:"warnings"`
}

// ForceAnalysis samples surface loads from surface to target depth.
type ForceAnalysis struct {
	DepthFt                []float64 `json:"depth_ft" yaml:"depth_ft"`
	PickupHookloadLbf      []float64 `json:"pickup_hookload_lbf" yaml:"pickup_hookload_lbf"`
	SlackOffHookloadLbf    []float64 `json:"slack_off_hookload_lbf" yaml:"slack_off_hookload_lbf"`
	BucklingMarginLbf      []float64 `json:"buckling_margin_lbf" yaml:"buckling_margin_lbf"`
	MaxHookloadLbf         float64   `json:"max_hookload_lbf" yaml:"max_hookload_lbf"`
	MinHookloadLbf         float64   `json:"min_hookload_lbf" yaml:"min_hookload_lbf"`
	MinBucklingMarginLbf   float64   `json:"min_buckling_margin_lbf" yaml:"min_buckling_margin_lbf"`
	MinBucklingMarginRatio float64   `json:"min_buckling_margin_ratio" yaml:"min_buckling_margin_ratio"`
	TubingWeightLbfFt      float64   `json:"tubing_weight_lbf_ft" yaml:"tubing_weight_lbf_ft"`
	TargetTVDFt            float64   `json:"target_tvd_ft" yaml:"target_tvd_ft"`
}

// HydraulicAnalysis samples circulating pressures over the same depths as
// ForceAnalysis.
type HydraulicAnalysis struct {
	DepthFt               []float64 `json:"depth_ft" yaml:"depth_ft"`
	PumpPressurePsi       []float64 `json:"pump_pressure_psi" yaml:"pump_pressure_psi"`
	BottomholePressurePsi []float64 `json:"bottomhole_pressure_psi" yaml:"bottomhole_pressure_psi"`
	AnnularVelocityFtMin  []float64 `json:"annular_velocity_ft_min" yaml:"annular_velocity_ft_min"`
	MaxPressurePsi        float64   `json:"max_pressure_psi" yaml:"max_pressure_psi"`
	PumpRateBpm           float64   `json:"pump_rate_bpm" yaml:"pump_rate_bpm"`
	TubingFrictionPsi     float64   `json:"tubing_friction_psi" yaml:"tubing_friction_psi"`
	TargetECDPpg          float64   `json:"target_ecd_ppg" yaml:"target_ecd_ppg"`
	TurbulentInTubing     bool      `json:"turbulent_in_tubing" yaml:"turbulent_in_tubing"`
	TurbulentInAnnulus    bool      `json:"turbulent_in_annulus" yaml:"turbulent_in_annulus"`
}

// TimeEstimation lists the phase durations of one trip in hours.
type TimeEstimation struct {
	RigUpHr      float64 `json:"rig_up_hr" yaml:"rig_up_hr"`
	RunningInHr  float64 `json:"running_in_hr" yaml:"running_in_hr"`
	TreatmentHr  float64 `json:"treatment_hr" yaml:"treatment_hr"`
	PullingOutHr float64 `json:"pulling_out_hr" yaml:"pulling_out_hr"`
	RigDownHr    float64 `json:"rig_down_hr" yaml:"rig_down_hr"`
	TotalHr      float64 `json:"total_hr" yaml:"total_hr"`
}

// FatiguePrediction is the bend-cycle life consumed by one trip.
type FatiguePrediction struct {
	LengthRunFt               float64 `json:"length_run_ft" yaml:"length_run_ft"`
	GoverningReelDiameterInch float64 `json:"governing_reel_diameter_inch" yaml:"governing_reel_diameter_inch"`
	ReelStrain                float64 `json:"reel_strain" yaml:"reel_strain"`
	ArchStrain                float64 `json:"arch_strain" yaml:"arch_strain"`
	ReelCyclesToFailure       float64 `json:"reel_cycles_to_failure" yaml:"reel_cycles_to_failure"`
	ArchCyclesToFailure       float64 `json:"arch_cycles_to_failure" yaml:"arch_cycles_to_failure"`
	PressureDerate            float64 `json:"pressure_derate" yaml:"pressure_derate"`
	EstimatedFatiguePercent   float64 `json:"estimated_fatigue_percent" yaml:"estimated_fatigue_percent"`
	PriorFatiguePercent       float64 `json:"prior_fatigue_percent" yaml:"prior_fatigue_percent"`
	RemainingLifePercent      float64 `json:"remaining_life_percent" yaml:"remaining_life_percent"`
}

// Risk is one finding from the completed analyses.
type Risk struct {
	Category    string   `json:"category" yaml:"category"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Mitigation  string   `json:"mitigation" yaml:"mitigation"`
}

// SimulationResult is the composite outcome of a job simulation. Sections
// after a failed stage are nil and Error says why.
type SimulationResult struct {
	WellName    string             `json:"well_name" yaml:"well_name"`
	Feasibility FeasibilityCheck   `json:"feasibility" yaml:"feasibility"`
	Forces      *ForceAnalysis     `json:"forces,omitempty" yaml:"forces,omitempty"`
	Hydraulics  *HydraulicAnalysis `json:"hydraulics,omitempty" yaml:"hydraulics,omitempty"`
	Time        *TimeEstimation    `json:"time,omitempty" yaml:"time,omitempty"`
	Fatigue     *FatiguePrediction `json:"fatigue,omitempty" yaml:"fatigue,omitempty"`
	Risks       []Risk             `json:"risks,omitempty" yaml:"risks,omitempty"`
	Error       string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether every stage completed.
func (r SimulationResult) OK() bool {
	return r.Error == ""
}
