package calc

// bisectionSteps fixes the search depth so identical inputs always take the
// same path to the same answer.
const bisectionSteps = 64

// SwabSurgeRequest describes tripping pipe through a mud-filled hole.
type SwabSurgeRequest struct {
	PipeODIn            float64 `json:"pipe_od_in" yaml:"pipe_od_in"`
	PipeIDIn            float64 `json:"pipe_id_in" yaml:"pipe_id_in"`
	HoleDiameterIn      float64 `json:"hole_diameter_in" yaml:"hole_diameter_in"`
	OpenEnded           bool    `json:"open_ended" yaml:"open_ended"`
	TripSpeedFtMin      float64 `json:"trip_speed_ft_min" yaml:"trip_speed_ft_min"`
	MudWeightPpg        float64 `json:"mud_weight_ppg" yaml:"mud_weight_ppg"`
	PlasticViscosityCp  float64 `json:"plastic_viscosity_cp" yaml:"plastic_viscosity_cp"`
	YieldPointLbf100ft2 float64 `json:"yield_point_lbf_100ft2" yaml:"yield_point_lbf_100ft2"`
	MeasuredDepthFt     float64 `json:"measured_depth_ft" yaml:"measured_depth_ft"`
	TVDFt               float64 `json:"tvd_ft" yaml:"tvd_ft"`
	PressureMarginPsi   float64 `json:"pressure_margin_psi,omitempty" yaml:"pressure_margin_psi,omitempty"`
}

// SwabSurgeResult holds the swab and surge effects at the requested speed.
type SwabSurgeResult struct {
	EffectiveAnnularVelocityFtMin float64 `json:"effective_annular_velocity_ft_min"`
	SwabPressurePsi               float64 `json:"swab_pressure_psi"`
	SurgePressurePsi              float64 `json:"surge_pressure_psi"`
	SwabECDPpg                    float64 `json:"swab_ecd_ppg"`
	SurgeECDPpg                   float64 `json:"surge_ecd_ppg"`
	PressureMarginPsi             float64 `json:"pressure_margin_psi"`
	MaxSafeTripSpeedFtMin         float64 `json:"max_safe_trip_speed_ft_min"`
}

// SwabSurge evaluates the Bingham-plastic annular model at the trip speed and
// searches for the fastest trip speed that stays inside the pressure margin.
func (e Engine) SwabSurge(req SwabSurgeRequest) (SwabSurgeResult, error) {
	var g guard
	g.positive("pipe_od_in", req.PipeODIn)
	g.nonNegative("pipe_id_in", req.PipeIDIn)
	g.below("pipe_id_in", req.PipeIDIn, req.PipeODIn, "pipe_od_in")
	g.positive("hole_diameter_in", req.HoleDiameterIn)
	if g.err == nil && req.HoleDiameterIn <= req.PipeODIn {
		g.fail("hole_diameter_in", "must be greater than pipe_od_in")
	}
	g.nonNegative("trip_speed_ft_min", req.TripSpeedFtMin)
	g.positive("mud_weight_ppg", req.MudWeightPpg)
	g.nonNegative("plastic_viscosity_cp", req.PlasticViscosityCp)
	g.nonNegative("yield_point_lbf_100ft2", req.YieldPointLbf100ft2)
	g.positive("measured_depth_ft", req.MeasuredDepthFt)
	g.positive("tvd_ft", req.TVDFt)
	g.nonNegative("pressure_margin_psi", req.PressureMarginPsi)
	if err := g.result(); err != nil {
		return SwabSurgeResult{}, err
	}

	margin := req.PressureMarginPsi
	if margin == 0 {
		margin = e.c.SwabSurgeMarginPsi
	}

	m := e.swabModel(req)
	p := m.pressure(req.TripSpeedFtMin)
	shift := p / (psiPerFtPerPpg * req.TVDFt)

	return settle(SwabSurgeResult{
		EffectiveAnnularVelocityFtMin: saturate(m.annularVelocity(req.TripSpeedFtMin)),
		SwabPressurePsi:               saturate(p),
		SurgePressurePsi:              saturate(p),
		SwabECDPpg:                    saturate(req.MudWeightPpg - shift),
		SurgeECDPpg:                   saturate(req.MudWeightPpg + shift),
		PressureMarginPsi:             margin,
		MaxSafeTripSpeedFtMin:         m.maxSafeSpeed(margin, e.c.MaxTripSpeedFtMin),
	})
}

type swabModel struct {
	ratio  float64 // effective annular velocity per unit pipe speed
	de     float64
	pv, yp float64
	length float64
}

func (e Engine) swabModel(req SwabSurgeRequest) swabModel {
	dh2 := req.HoleDiameterIn * req.HoleDiameterIn
	dp2 := req.PipeODIn * req.PipeODIn
	var ratio float64
	if req.OpenEnded {
		di2 := req.PipeIDIn * req.PipeIDIn
		ratio = e.c.ClingingConstant + (dp2-di2)/(dh2-dp2+di2)
	} else {
		ratio = e.c.ClingingConstant + dp2/(dh2-dp2)
	}
	return swabModel{
		ratio:  ratio,
		de:     req.HoleDiameterIn - req.PipeODIn,
		pv:     req.PlasticViscosityCp,
		yp:     req.YieldPointLbf100ft2,
		length: req.MeasuredDepthFt,
	}
}

func (m swabModel) annularVelocity(tripSpeedFtMin float64) float64 {
	return tripSpeedFtMin * m.ratio
}

func (m swabModel) pressure(tripSpeedFtMin float64) float64 {
	v := m.annularVelocity(tripSpeedFtMin) / 60
	return annularLaminarGradient(m.pv, m.yp, v, m.de) * m.length
}

// maxSafeSpeed bisects for the largest speed whose pressure stays within
// margin. Pressure is non-decreasing in speed.
func (m swabModel) maxSafeSpeed(margin, upper float64) float64 {
	if m.pressure(upper) <= margin {
		return upper
	}
	lo, hi := 0.0, upper
	for i := 0; i < bisectionSteps; i++ {
		mid := (lo + hi) / 2
		if m.pressure(mid) <= margin {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
