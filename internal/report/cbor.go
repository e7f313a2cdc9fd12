package report

import (
	"github.com/fxamacker/cbor/v2"

	"ctsim/internal/jobsim"
)

// encMode uses Core Deterministic Encoding so equal results always encode to
// identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("report: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("report: CBOR decoder initialization failed: " + err.Error())
	}
}

// CBORGenerator renders the result as deterministic CBOR keyed by the JSON
// field names.
type CBORGenerator struct{}

func (CBORGenerator) Generate(res jobsim.SimulationResult) ([]byte, error) {
	return encMode.Marshal(res)
}

func (CBORGenerator) ContentType() string { return "application/cbor" }

// DecodeCBOR reverses CBORGenerator.
func DecodeCBOR(data []byte) (jobsim.SimulationResult, error) {
	var res jobsim.SimulationResult
	err := decMode.Unmarshal(data, &res)
	return res, err
}
