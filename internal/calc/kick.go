package calc

// KickToleranceRequest describes the open-hole section below the last shoe.
type KickToleranceRequest struct {
	MudWeightPpg         float64  `json:"mud_weight_ppg" yaml:"mud_weight_ppg"`
	TVDFt                float64  `json:"tvd_ft" yaml:"tvd_ft"`
	PoreGradientPpg      float64  `json:"pore_gradient_ppg" yaml:"pore_gradient_ppg"`
	FracGradientPpg      float64  `json:"frac_gradient_ppg" yaml:"frac_gradient_ppg"`
	ShoeTVDFt            float64  `json:"shoe_tvd_ft" yaml:"shoe_tvd_ft"`
	AnnularCapacityBblFt float64  `json:"annular_capacity_bbl_ft" yaml:"annular_capacity_bbl_ft"`
	InfluxGradientPsiFt  *float64 `json:"influx_gradient_psi_ft,omitempty" yaml:"influx_gradient_psi_ft,omitempty"`
}

// KickToleranceResult is the maximum influx the shoe can tolerate. Negative
// values mean the well has no margin; they are results, not errors.
type KickToleranceResult struct {
	KickToleranceBbl    float64 `json:"kick_tolerance_bbl"`
	MaxInfluxHeightFt   float64 `json:"max_influx_height_ft"`
	SafetyMarginPsi     float64 `json:"safety_margin_psi"`
	MAASPPsi            float64 `json:"maasp_psi"`
	ShutInDrillPipePsi  float64 `json:"shut_in_drill_pipe_psi"`
	InfluxGradientPsiFt float64 `json:"influx_gradient_psi_ft"`
}

// KickTolerance computes MAASP and the tolerable influx volume.
func (e Engine) KickTolerance(req KickToleranceRequest) (KickToleranceResult, error) {
	var g guard
	g.positive("mud_weight_ppg", req.MudWeightPpg)
	g.positive("tvd_ft", req.TVDFt)
	g.positive("pore_gradient_ppg", req.PoreGradientPpg)
	g.positive("frac_gradient_ppg", req.FracGradientPpg)
	g.positive("shoe_tvd_ft", req.ShoeTVDFt)
	if g.err == nil && req.ShoeTVDFt > req.TVDFt {
		g.fail("shoe_tvd_ft", "must not be deeper than tvd_ft")
	}
	g.positive("annular_capacity_bbl_ft", req.AnnularCapacityBblFt)
	gi := e.c.InfluxGradientPsiFt
	if req.InfluxGradientPsiFt != nil {
		gi = *req.InfluxGradientPsiFt
		g.nonNegative("influx_gradient_psi_ft", gi)
	}
	if g.err == nil && psiPerFtPerPpg*req.MudWeightPpg <= gi {
		g.fail("influx_gradient_psi_ft", "must be lighter than the mud gradient")
	}
	if err := g.result(); err != nil {
		return KickToleranceResult{}, err
	}

	mudGradient := psiPerFtPerPpg * req.MudWeightPpg
	maasp := psiPerFtPerPpg * (req.FracGradientPpg - req.MudWeightPpg) * req.ShoeTVDFt
	sidpp := psiPerFtPerPpg * (req.PoreGradientPpg - req.MudWeightPpg) * req.TVDFt
	margin := maasp - sidpp
	height := margin / (mudGradient - gi)

	return settle(KickToleranceResult{
		KickToleranceBbl:    saturate(height * req.AnnularCapacityBblFt),
		MaxInfluxHeightFt:   saturate(height),
		SafetyMarginPsi:     saturate(margin),
		MAASPPsi:            saturate(maasp),
		ShutInDrillPipePsi:  saturate(sidpp),
		InfluxGradientPsiFt: gi,
	})
}
