package report

import (
	"encoding/json"

	"ctsim/internal/jobsim"
)

// JSONGenerator renders the result with encoding/json.
type JSONGenerator struct {
	Indent string
}

func (g JSONGenerator) Generate(res jobsim.SimulationResult) ([]byte, error) {
	if g.Indent == "" {
		return json.Marshal(res)
	}
	return json.MarshalIndent(res, "", g.Indent)
}

func (JSONGenerator) ContentType() string { return "application/json" }
