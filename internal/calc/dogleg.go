package calc

import "math"

// Station is one survey station.
type Station struct {
	MeasuredDepthFt float64 `json:"measured_depth_ft" yaml:"measured_depth_ft"`
	InclinationDeg  float64 `json:"inclination_deg" yaml:"inclination_deg"`
	AzimuthDeg      float64 `json:"azimuth_deg" yaml:"azimuth_deg"`
}

// DoglegRequest holds the two stations bounding one course.
type DoglegRequest struct {
	From Station `json:"from" yaml:"from"`
	To   Station `json:"to" yaml:"to"`
}

// DoglegResult describes the curvature of the course between two stations.
// Build, turn and the position deltas are signed in the From->To direction.
type DoglegResult struct {
	DoglegSeverityDegPer100Ft float64 `json:"dogleg_severity_deg_per_100ft"`
	DoglegAngleDeg            float64 `json:"dogleg_angle_deg"`
	CourseLengthFt            float64 `json:"course_length_ft"`
	BuildRateDegPer100Ft      float64 `json:"build_rate_deg_per_100ft"`
	TurnRateDegPer100Ft       float64 `json:"turn_rate_deg_per_100ft"`
	RatioFactor               float64 `json:"ratio_factor"`
	DeltaTVDFt                float64 `json:"delta_tvd_ft"`
	DeltaNorthFt              float64 `json:"delta_north_ft"`
	DeltaEastFt               float64 `json:"delta_east_ft"`
}

// Dogleg computes minimum-curvature dogleg severity between two stations.
func (e Engine) Dogleg(req DoglegRequest) (DoglegResult, error) {
	var g guard
	checkStation(&g, "from", req.From)
	checkStation(&g, "to", req.To)
	if g.err == nil && req.From.MeasuredDepthFt == req.To.MeasuredDepthFt {
		g.fail("to.measured_depth_ft", "must differ from from.measured_depth_ft")
	}
	if err := g.result(); err != nil {
		return DoglegResult{}, err
	}

	signed := req.To.MeasuredDepthFt - req.From.MeasuredDepthFt
	course := math.Abs(signed)
	beta, rf := minimumCurvature(req.From, req.To)

	i1, i2 := radians(req.From.InclinationDeg), radians(req.To.InclinationDeg)
	a1, a2 := radians(req.From.AzimuthDeg), radians(req.To.AzimuthDeg)
	half := signed / 2 * rf

	return settle(DoglegResult{
		DoglegSeverityDegPer100Ft: degrees(beta) * 100 / course,
		DoglegAngleDeg:            degrees(beta),
		CourseLengthFt:            course,
		BuildRateDegPer100Ft:      (req.To.InclinationDeg - req.From.InclinationDeg) * 100 / signed,
		TurnRateDegPer100Ft:       wrap180(req.To.AzimuthDeg-req.From.AzimuthDeg) * 100 / signed,
		RatioFactor:               rf,
		DeltaTVDFt:                half * (math.Cos(i1) + math.Cos(i2)),
		DeltaNorthFt:              half * (math.Sin(i1)*math.Cos(a1) + math.Sin(i2)*math.Cos(a2)),
		DeltaEastFt:               half * (math.Sin(i1)*math.Sin(a1) + math.Sin(i2)*math.Sin(a2)),
	})
}

func checkStation(g *guard, prefix string, s Station) {
	g.nonNegative(prefix+".measured_depth_ft", s.MeasuredDepthFt)
	g.between(prefix+".inclination_deg", s.InclinationDeg, 0, 180)
	g.finite(prefix+".azimuth_deg", s.AzimuthDeg)
}

// minimumCurvature returns the dogleg angle in radians and the ratio factor.
func minimumCurvature(from, to Station) (beta, rf float64) {
	i1, i2 := radians(from.InclinationDeg), radians(to.InclinationDeg)
	da := radians(to.AzimuthDeg - from.AzimuthDeg)
	c := math.Cos(i2-i1) - math.Sin(i1)*math.Sin(i2)*(1-math.Cos(da))
	beta = math.Acos(math.Max(-1, math.Min(1, c)))
	if beta < 1e-9 {
		return beta, 1
	}
	return beta, 2 / beta * math.Tan(beta/2)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// wrap180 folds an angle difference into [-180, 180).
func wrap180(deg float64) float64 {
	d := math.Mod(deg+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
