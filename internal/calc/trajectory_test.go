package calc

import (
	"math"
	"testing"
)

func TestDoglegSymmetricUnderReversal(t *testing.T) {
	a := Station{MeasuredDepthFt: 1000, InclinationDeg: 10, AzimuthDeg: 40}
	b := Station{MeasuredDepthFt: 1100, InclinationDeg: 15, AzimuthDeg: 50}
	fwd, err := Default().Dogleg(DoglegRequest{From: a, To: b})
	if err != nil {
		t.Fatalf("Dogleg: %v", err)
	}
	rev, err := Default().Dogleg(DoglegRequest{From: b, To: a})
	if err != nil {
		t.Fatalf("Dogleg: %v", err)
	}
	if !approx(fwd.DoglegSeverityDegPer100Ft, rev.DoglegSeverityDegPer100Ft, 1e-12) {
		t.Fatalf("DLS %v != %v", fwd.DoglegSeverityDegPer100Ft, rev.DoglegSeverityDegPer100Ft)
	}
	if fwd.CourseLengthFt != 100 || rev.CourseLengthFt != 100 {
		t.Fatalf("course lengths %v %v", fwd.CourseLengthFt, rev.CourseLengthFt)
	}
	if !approx(fwd.DeltaTVDFt, -rev.DeltaTVDFt, 1e-9) {
		t.Fatalf("TVD delta should flip sign: %v %v", fwd.DeltaTVDFt, rev.DeltaTVDFt)
	}
	if fwd.DoglegSeverityDegPer100Ft <= 0 || fwd.DoglegSeverityDegPer100Ft > 10 {
		t.Fatalf("implausible DLS %v", fwd.DoglegSeverityDegPer100Ft)
	}
}

func TestDoglegKnownValues(t *testing.T) {
	// Pure build of 3 degrees over 100 ft.
	res, err := Default().Dogleg(DoglegRequest{
		From: Station{MeasuredDepthFt: 2000, InclinationDeg: 0, AzimuthDeg: 0},
		To:   Station{MeasuredDepthFt: 2100, InclinationDeg: 3, AzimuthDeg: 0},
	})
	if err != nil {
		t.Fatalf("Dogleg: %v", err)
	}
	if !approx(res.DoglegSeverityDegPer100Ft, 3, 1e-9) || !approx(res.BuildRateDegPer100Ft, 3, 1e-9) {
		t.Fatalf("unexpected %+v", res)
	}
	if res.TurnRateDegPer100Ft != 0 {
		t.Fatalf("turn = %v", res.TurnRateDegPer100Ft)
	}

	// Straight hold: no curvature, ratio factor 1.
	hold, _ := Default().Dogleg(DoglegRequest{
		From: Station{MeasuredDepthFt: 0, InclinationDeg: 30, AzimuthDeg: 90},
		To:   Station{MeasuredDepthFt: 100, InclinationDeg: 30, AzimuthDeg: 90},
	})
	if hold.DoglegSeverityDegPer100Ft != 0 || hold.RatioFactor != 1 {
		t.Fatalf("hold section curved: %+v", hold)
	}
	if !approx(hold.DeltaTVDFt, 100*math.Cos(math.Pi/6), 1e-9) || !approx(hold.DeltaEastFt, 50, 1e-9) {
		t.Fatalf("hold displacement %+v", hold)
	}
}

func TestDoglegTurnAcrossNorth(t *testing.T) {
	res, _ := Default().Dogleg(DoglegRequest{
		From: Station{MeasuredDepthFt: 0, InclinationDeg: 90, AzimuthDeg: 355},
		To:   Station{MeasuredDepthFt: 100, InclinationDeg: 90, AzimuthDeg: 5},
	})
	if !approx(res.TurnRateDegPer100Ft, 10, 1e-9) || !approx(res.DoglegSeverityDegPer100Ft, 10, 1e-9) {
		t.Fatalf("turn across north %+v", res)
	}
}

func TestDoglegIdenticalDepthRejected(t *testing.T) {
	s := Station{MeasuredDepthFt: 500, InclinationDeg: 5, AzimuthDeg: 10}
	_, err := Default().Dogleg(DoglegRequest{From: s, To: s})
	requireField(t, err, "to.measured_depth_ft")

	_, err = Default().Dogleg(DoglegRequest{From: s, To: Station{MeasuredDepthFt: 600, InclinationDeg: 200}})
	requireField(t, err, "to.inclination_deg")
}

func deviatedSurvey() []SurveyPoint {
	return []SurveyPoint{
		{MeasuredDepthFt: 0, InclinationDeg: 0, AzimuthDeg: 0},
		{MeasuredDepthFt: 2000, InclinationDeg: 0, AzimuthDeg: 0},
		{MeasuredDepthFt: 3000, InclinationDeg: 30, AzimuthDeg: 45},
		{MeasuredDepthFt: 4000, InclinationDeg: 60, AzimuthDeg: 60},
		{MeasuredDepthFt: 6000, InclinationDeg: 60, AzimuthDeg: 60},
	}
}

func tdRequest(ff float64) TorqueDragRequest {
	return TorqueDragRequest{
		Survey:            deviatedSurvey(),
		StringWeightLbfFt: 19.5,
		FrictionFactor:    ff,
		MudWeightPpg:      10,
		WOBLbf:            15000,
		PipeODIn:          5,
		PipeIDIn:          4.276,
		HoleDiameterIn:    8.5,
	}
}

func TestTorqueDragNoFrictionNoAsymmetry(t *testing.T) {
	res, err := Default().TorqueDrag(tdRequest(0))
	if err != nil {
		t.Fatalf("TorqueDrag: %v", err)
	}
	if res.PickupWeightLbf != res.SlackOffWeightLbf || res.SlackOffWeightLbf != res.RotatingWeightLbf {
		t.Fatalf("pickup %v slack-off %v rotating %v", res.PickupWeightLbf, res.SlackOffWeightLbf, res.RotatingWeightLbf)
	}
	if res.MaxDragLbf != 0 {
		t.Fatalf("drag without friction = %v", res.MaxDragLbf)
	}
	if res.SurfaceTorqueFtLbf != res.BitTorqueFtLbf {
		t.Fatalf("string adds torque without friction: %v vs %v", res.SurfaceTorqueFtLbf, res.BitTorqueFtLbf)
	}
}

func TestTorqueDragFrictionOrdersLoads(t *testing.T) {
	res, err := Default().TorqueDrag(tdRequest(0.25))
	if err != nil {
		t.Fatalf("TorqueDrag: %v", err)
	}
	if !(res.PickupWeightLbf > res.RotatingWeightLbf && res.RotatingWeightLbf > res.SlackOffWeightLbf) {
		t.Fatalf("expected pickup > rotating > slack-off: %+v", res)
	}
	if res.SurfaceTorqueFtLbf <= res.BitTorqueFtLbf {
		t.Fatalf("string friction must add torque: %+v", res)
	}
	if res.MaxDragLbf <= 0 {
		t.Fatalf("max drag = %v", res.MaxDragLbf)
	}
	if res.HelicalBucklingLoadLbf <= res.CriticalBucklingLoadLbf {
		t.Fatalf("helical load %v should exceed sinusoidal %v", res.HelicalBucklingLoadLbf, res.CriticalBucklingLoadLbf)
	}
}

func TestTorqueDragVerticalMatchesBuoyedWeight(t *testing.T) {
	req := tdRequest(0.3)
	req.Survey = []SurveyPoint{{MeasuredDepthFt: 0}, {MeasuredDepthFt: 5000}, {MeasuredDepthFt: 10000}}
	res, err := Default().TorqueDrag(req)
	if err != nil {
		t.Fatalf("TorqueDrag: %v", err)
	}
	want := 19.5 * 10000 * (1 - 10/65.5)
	if !approx(res.PickupWeightLbf, want, 1e-6) || !approx(res.SlackOffWeightLbf, want, 1e-6) {
		t.Fatalf("vertical hookload %v / %v, want %v", res.PickupWeightLbf, res.SlackOffWeightLbf, want)
	}
	if res.CriticalBucklingLoadLbf <= 0 {
		t.Fatalf("vertical buckling load = %v", res.CriticalBucklingLoadLbf)
	}
}

func TestTorqueDragPerPointWeight(t *testing.T) {
	req := tdRequest(0)
	req.Survey = []SurveyPoint{{MeasuredDepthFt: 0}, {MeasuredDepthFt: 1000, WeightPerFootLbf: 40}}
	res, _ := Default().TorqueDrag(req)
	if !approx(res.RotatingWeightLbf, 40*1000*res.BuoyancyFactor, 1e-6) {
		t.Fatalf("per-point weight ignored: %v", res.RotatingWeightLbf)
	}
}

func TestTorqueDragValidation(t *testing.T) {
	req := tdRequest(0.2)
	req.Survey = req.Survey[:1]
	_, err := Default().TorqueDrag(req)
	requireField(t, err, "survey")

	req = tdRequest(0.2)
	req.Survey[2].MeasuredDepthFt = 1500
	_, err = Default().TorqueDrag(req)
	requireField(t, err, "survey[2].measured_depth_ft")

	req = tdRequest(1.5)
	_, err = Default().TorqueDrag(req)
	requireField(t, err, "friction_factor")

	req = tdRequest(0.2)
	req.HoleDiameterIn = 5
	_, err = Default().TorqueDrag(req)
	requireField(t, err, "hole_diameter_in")
}

func TestBitHydraulicsKnownValues(t *testing.T) {
	res, err := Default().BitHydraulics(BitHydraulicsRequest{
		FlowRateGpm:    400,
		MudWeightPpg:   10,
		Nozzles32nds:   []float64{12, 12, 12},
		HoleDiameterIn: 8.5,
	})
	if err != nil {
		t.Fatalf("BitHydraulics: %v", err)
	}
	if !approx(res.TotalFlowAreaIn2, 0.33134, 1e-5) {
		t.Fatalf("TFA = %v", res.TotalFlowAreaIn2)
	}
	if !approx(res.PressureDropPsi, 1342.08, 0.01) {
		t.Fatalf("pressure drop = %v", res.PressureDropPsi)
	}
	if !approx(res.NozzleVelocityFtS, 387.28, 0.01) {
		t.Fatalf("velocity = %v", res.NozzleVelocityFtS)
	}
	if len(res.Jets) != 3 {
		t.Fatalf("jets = %d", len(res.Jets))
	}
	var sum float64
	for _, j := range res.Jets {
		sum += j.ImpactForceLbf
	}
	if !approx(sum, res.ImpactForceLbf, 1e-9) {
		t.Fatalf("jet impact forces %v do not sum to %v", sum, res.ImpactForceLbf)
	}
	if res.HSI <= 0 {
		t.Fatalf("HSI = %v", res.HSI)
	}
}

func TestBitHydraulicsEmptyNozzles(t *testing.T) {
	_, err := Default().BitHydraulics(BitHydraulicsRequest{FlowRateGpm: 400, MudWeightPpg: 10})
	requireField(t, err, "nozzles_32nds")

	_, err = Default().BitHydraulics(BitHydraulicsRequest{FlowRateGpm: 400, MudWeightPpg: 10, Nozzles32nds: []float64{12, 0}})
	requireField(t, err, "nozzles_32nds[1]")
}
