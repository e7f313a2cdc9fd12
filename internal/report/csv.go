package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"ctsim/internal/jobsim"
)

var profileHeader = []string{
	"depth_ft",
	"pickup_hookload_lbf",
	"slack_off_hookload_lbf",
	"buckling_margin_lbf",
	"pump_pressure_psi",
	"bottomhole_pressure_psi",
	"annular_velocity_ft_min",
}

// CSVGenerator writes the depth profile, one row per sample. Columns of a
// section that did not run are left empty.
type CSVGenerator struct{}

func (CSVGenerator) Generate(res jobsim.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(profileHeader); err != nil {
		return nil, err
	}

	var depths []float64
	switch {
	case res.Forces != nil:
		depths = res.Forces.DepthFt
	case res.Hydraulics != nil:
		depths = res.Hydraulics.DepthFt
	}

	row := make([]string, len(profileHeader))
	for i, d := range depths {
		for j := range row {
			row[j] = ""
		}
		row[0] = num(d)
		if f := res.Forces; f != nil {
			row[1] = num(f.PickupHookloadLbf[i])
			row[2] = num(f.SlackOffHookloadLbf[i])
			row[3] = num(f.BucklingMarginLbf[i])
		}
		if h := res.Hydraulics; h != nil {
			row[4] = num(h.PumpPressurePsi[i])
			row[5] = num(h.BottomholePressurePsi[i])
			row[6] = num(h.AnnularVelocityFtMin[i])
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (CSVGenerator) ContentType() string { return "text/csv" }

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
