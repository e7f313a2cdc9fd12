package calc

import (
	"encoding/json"
	"math"
	"testing"
)

func zigzagSurvey(n int) []SurveyPoint {
	s := make([]SurveyPoint, n)
	for i := range s {
		s[i] = SurveyPoint{MeasuredDepthFt: float64(i)}
		if i%2 == 1 {
			s[i].InclinationDeg = 180
		}
	}
	return s
}

func TestExtremeInputsStaySerializable(t *testing.T) {
	e := Default()
	const big, tiny = maxMagnitude, minMagnitude
	cases := []struct {
		name string
		run  func() (any, error)
	}{
		{"mse", func() (any, error) {
			return e.MSE(MSERequest{TorqueFtLbf: big, RPM: big, WOBLbf: big, BitDiameterIn: tiny, ROPFtHr: tiny, RecentMSEPsi: []float64{big, tiny}})
		}},
		{"ecd", func() (any, error) {
			return e.ECD(ECDRequest{MudWeightPpg: big, TVDFt: tiny, AnnularPressureLossPsi: big, FracGradientPpg: ptr(tiny), PoreGradientPpg: ptr(big)})
		}},
		{"swab_surge", func() (any, error) {
			return e.SwabSurge(SwabSurgeRequest{PipeODIn: tiny, HoleDiameterIn: big, TripSpeedFtMin: big, MudWeightPpg: big,
				PlasticViscosityCp: big, YieldPointLbf100ft2: big, MeasuredDepthFt: big, TVDFt: tiny, PressureMarginPsi: tiny})
		}},
		{"swab_surge_tight", func() (any, error) {
			return e.SwabSurge(SwabSurgeRequest{PipeODIn: big - 1, PipeIDIn: tiny, HoleDiameterIn: big, OpenEnded: true, TripSpeedFtMin: big,
				MudWeightPpg: tiny, PlasticViscosityCp: big, MeasuredDepthFt: big, TVDFt: big})
		}},
		{"kick_tolerance", func() (any, error) {
			return e.KickTolerance(KickToleranceRequest{MudWeightPpg: big, TVDFt: big, PoreGradientPpg: tiny, FracGradientPpg: big,
				ShoeTVDFt: tiny, AnnularCapacityBblFt: big, InfluxGradientPsiFt: ptr(0)})
		}},
		{"bit_hydraulics", func() (any, error) {
			return e.BitHydraulics(BitHydraulicsRequest{FlowRateGpm: big, MudWeightPpg: big, Nozzles32nds: []float64{tiny}, HoleDiameterIn: tiny})
		}},
		{"flow_friction", func() (any, error) {
			return e.FlowFriction(FlowFrictionRequest{FlowRateGpm: big, MudWeightPpg: big, PlasticViscosityCp: tiny, YieldPointLbf100ft2: big,
				PipeIDIn: tiny, PipeODIn: 2 * tiny, HoleDiameterIn: big, PipeLengthFt: big, AnnulusLengthFt: big})
		}},
		{"flow_friction_laminar", func() (any, error) {
			return e.FlowFriction(FlowFrictionRequest{FlowRateGpm: tiny, MudWeightPpg: tiny, PlasticViscosityCp: big, YieldPointLbf100ft2: big,
				PipeIDIn: big - 2, PipeODIn: big - 1, HoleDiameterIn: big, PipeLengthFt: big, AnnulusLengthFt: big})
		}},
		{"torque_drag", func() (any, error) {
			return e.TorqueDrag(TorqueDragRequest{
				Survey:            []SurveyPoint{{}, {MeasuredDepthFt: big, InclinationDeg: 180, AzimuthDeg: big}},
				StringWeightLbfFt: big, FrictionFactor: 1, MudWeightPpg: tiny, WOBLbf: big, PipeODIn: tiny, HoleDiameterIn: big,
			})
		}},
		{"torque_drag_capstan_overflow", func() (any, error) {
			return e.TorqueDrag(TorqueDragRequest{Survey: append(zigzagSurvey(2000), SurveyPoint{MeasuredDepthFt: 2000, InclinationDeg: 180}),
				StringWeightLbfFt: big, FrictionFactor: 1, MudWeightPpg: tiny, PipeODIn: 2, HoleDiameterIn: 3})
		}},
		{"dogleg", func() (any, error) {
			return e.Dogleg(DoglegRequest{From: Station{AzimuthDeg: -big}, To: Station{MeasuredDepthFt: big, InclinationDeg: 180, AzimuthDeg: big}})
		}},
		{"dogleg_subnormal_course", func() (any, error) {
			return e.Dogleg(DoglegRequest{To: Station{MeasuredDepthFt: math.SmallestNonzeroFloat64, InclinationDeg: 180, AzimuthDeg: 90}})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := tc.run()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// encoding/json refuses NaN and ±Inf.
			if _, err := json.Marshal(res); err != nil {
				t.Fatalf("result not serializable: %v", err)
			}
		})
	}
}

func TestOutOfRangeMagnitudesRejected(t *testing.T) {
	e := Default()
	_, err := e.FlowFriction(FlowFrictionRequest{FlowRateGpm: 300, MudWeightPpg: 10, PlasticViscosityCp: 20, YieldPointLbf100ft2: 10,
		PipeIDIn: 1e-200, PipeODIn: 2, HoleDiameterIn: 4, PipeLengthFt: 1000, AnnulusLengthFt: 1000})
	requireField(t, err, "pipe_id_in")

	_, err = e.ECD(ECDRequest{MudWeightPpg: 1e308, TVDFt: 1e10, FracGradientPpg: ptr(15)})
	requireField(t, err, "mud_weight_ppg")

	_, err = e.ECD(ECDRequest{MudWeightPpg: 10, TVDFt: 1e10, FracGradientPpg: ptr(15)})
	requireField(t, err, "tvd_ft")
}

func TestSettleRejectsNaN(t *testing.T) {
	_, err := settle(BitHydraulicsResult{Jets: []NozzleJet{{}, {AreaIn2: math.NaN()}}})
	requireField(t, err, "jets[1].area_in2")

	res, err := settle(ECDResult{FracMarginPpg: math.Inf(-1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FracMarginPpg != -math.MaxFloat64 {
		t.Fatalf("frac margin = %v, want saturated", res.FracMarginPpg)
	}
}
