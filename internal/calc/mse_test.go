package calc

import "testing"

func TestMSEComponentsSumToTotal(t *testing.T) {
	e := Default()
	cases := []MSERequest{
		{TorqueFtLbf: 5000, RPM: 120, WOBLbf: 20000, BitDiameterIn: 8.5, ROPFtHr: 50},
		{TorqueFtLbf: 0, RPM: 0, WOBLbf: 15000, BitDiameterIn: 6, ROPFtHr: 10},
		{TorqueFtLbf: 12000, RPM: 200, WOBLbf: 0, BitDiameterIn: 12.25, ROPFtHr: 0.5},
	}
	for _, req := range cases {
		res, err := e.MSE(req)
		if err != nil {
			t.Fatalf("MSE(%+v): %v", req, err)
		}
		if !approx(res.RotationalEnergyPsi+res.ThrustEnergyPsi, res.MSEPsi, 1e-9*res.MSEPsi+1e-9) {
			t.Fatalf("components %v + %v != %v", res.RotationalEnergyPsi, res.ThrustEnergyPsi, res.MSEPsi)
		}
	}
}

func TestMSEThrustTerm(t *testing.T) {
	res, err := Default().MSE(MSERequest{TorqueFtLbf: 5000, RPM: 120, WOBLbf: 20000, BitDiameterIn: 8.5, ROPFtHr: 50})
	if err != nil {
		t.Fatalf("MSE: %v", err)
	}
	if !approx(res.BitAreaIn2, 56.745, 1e-3) {
		t.Fatalf("bit area = %v", res.BitAreaIn2)
	}
	if !approx(res.ThrustEnergyPsi, 20000/res.BitAreaIn2, 1e-9) {
		t.Fatalf("thrust = %v", res.ThrustEnergyPsi)
	}
	if !approx(res.EfficiencyPercent, 35, 1e-9) {
		t.Fatalf("default efficiency = %v", res.EfficiencyPercent)
	}
}

func TestMSEZeroROPIsValidationError(t *testing.T) {
	_, err := Default().MSE(MSERequest{TorqueFtLbf: 5000, RPM: 120, WOBLbf: 20000, BitDiameterIn: 8.5})
	requireField(t, err, "rop_ft_hr")
}

func TestMSERejectsBadInputs(t *testing.T) {
	base := MSERequest{TorqueFtLbf: 5000, RPM: 120, WOBLbf: 20000, BitDiameterIn: 8.5, ROPFtHr: 50}
	cases := []struct {
		field string
		mut   func(*MSERequest)
	}{
		{"torque_ft_lbf", func(r *MSERequest) { r.TorqueFtLbf = -1 }},
		{"rpm", func(r *MSERequest) { r.RPM = -10 }},
		{"bit_diameter_in", func(r *MSERequest) { r.BitDiameterIn = 0 }},
		{"recent_mse_psi[1]", func(r *MSERequest) { r.RecentMSEPsi = []float64{1000, 0} }},
	}
	for _, tc := range cases {
		req := base
		tc.mut(&req)
		_, err := Default().MSE(req)
		requireField(t, err, tc.field)
	}
}

func TestMSEFoundering(t *testing.T) {
	req := MSERequest{TorqueFtLbf: 5000, RPM: 120, WOBLbf: 20000, BitDiameterIn: 8.5, ROPFtHr: 50}
	res, _ := Default().MSE(req)

	req.RecentMSEPsi = []float64{res.MSEPsi / 2, res.MSEPsi / 2}
	founder, err := Default().MSE(req)
	if err != nil {
		t.Fatalf("MSE: %v", err)
	}
	if !founder.Foundering {
		t.Fatalf("expected foundering with MSE twice the baseline")
	}
	if !approx(founder.EfficiencyPercent, 50, 1e-9) {
		t.Fatalf("efficiency vs baseline = %v", founder.EfficiencyPercent)
	}

	req.RecentMSEPsi = []float64{res.MSEPsi}
	steady, _ := Default().MSE(req)
	if steady.Foundering {
		t.Fatalf("did not expect foundering at the baseline")
	}
}

func TestMSERockStrengthEfficiencyCapped(t *testing.T) {
	req := MSERequest{TorqueFtLbf: 100, RPM: 60, WOBLbf: 1000, BitDiameterIn: 6, ROPFtHr: 100, RockStrengthPsi: 1e6}
	res, err := Default().MSE(req)
	if err != nil {
		t.Fatalf("MSE: %v", err)
	}
	if res.EfficiencyPercent != 100 {
		t.Fatalf("efficiency = %v, want capped at 100", res.EfficiencyPercent)
	}
}
