package calc

// ECDRequest holds the inputs for equivalent circulating density. The
// gradients are optional; nil means unknown.
type ECDRequest struct {
	MudWeightPpg           float64  `json:"mud_weight_ppg" yaml:"mud_weight_ppg"`
	TVDFt                  float64  `json:"tvd_ft" yaml:"tvd_ft"`
	AnnularPressureLossPsi float64  `json:"annular_pressure_loss_psi" yaml:"annular_pressure_loss_psi"`
	FracGradientPpg        *float64 `json:"frac_gradient_ppg,omitempty" yaml:"frac_gradient_ppg,omitempty"`
	PoreGradientPpg        *float64 `json:"pore_gradient_ppg,omitempty" yaml:"pore_gradient_ppg,omitempty"`
}

// ECDResult reports circulating density and the pressure window flags.
type ECDResult struct {
	ECDPpg                     float64 `json:"ecd_ppg"`
	HydrostaticPressurePsi     float64 `json:"hydrostatic_pressure_psi"`
	AnnularPressureLossPsi     float64 `json:"annular_pressure_loss_psi"`
	TotalBottomholePressurePsi float64 `json:"total_bottomhole_pressure_psi"`
	ExceedsFracGradient        bool    `json:"exceeds_frac_gradient"`
	BelowPorePressure          bool    `json:"below_pore_pressure"`
	FracMarginPpg              float64 `json:"frac_margin_ppg"`
	PoreMarginPpg              float64 `json:"pore_margin_ppg"`
}

// ECD computes the equivalent circulating density at TVD.
func (e Engine) ECD(req ECDRequest) (ECDResult, error) {
	var g guard
	g.positive("mud_weight_ppg", req.MudWeightPpg)
	g.positive("tvd_ft", req.TVDFt)
	g.nonNegative("annular_pressure_loss_psi", req.AnnularPressureLossPsi)
	g.optionalPositive("frac_gradient_ppg", req.FracGradientPpg)
	g.optionalPositive("pore_gradient_ppg", req.PoreGradientPpg)
	if err := g.result(); err != nil {
		return ECDResult{}, err
	}

	hydrostatic := psiPerFtPerPpg * req.MudWeightPpg * req.TVDFt
	total := hydrostatic + req.AnnularPressureLossPsi
	ecd := total / (psiPerFtPerPpg * req.TVDFt)

	res := ECDResult{
		ECDPpg:                     saturate(ecd),
		HydrostaticPressurePsi:     saturate(hydrostatic),
		AnnularPressureLossPsi:     req.AnnularPressureLossPsi,
		TotalBottomholePressurePsi: saturate(total),
	}
	if req.FracGradientPpg != nil {
		frac := *req.FracGradientPpg
		res.ExceedsFracGradient = total > psiPerFtPerPpg*frac*req.TVDFt
		res.FracMarginPpg = frac - ecd
	}
	if req.PoreGradientPpg != nil {
		pore := *req.PoreGradientPpg
		res.BelowPorePressure = total < psiPerFtPerPpg*pore*req.TVDFt
		res.PoreMarginPpg = ecd - pore
	}
	return settle(res)
}
