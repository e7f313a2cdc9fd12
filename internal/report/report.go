// Package report renders simulation results in the supported export formats.
package report

import (
	"fmt"
	"strings"

	"ctsim/internal/jobsim"
)

// Format selects a Generator.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatCBOR Format = "cbor"
	FormatText Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatCSV, FormatCBOR, FormatText}

// ParseFormat maps a case-insensitive name onto a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Generator renders one simulation result.
type Generator interface {
	Generate(res jobsim.SimulationResult) ([]byte, error)
	// ContentType is the MIME type of the generated bytes.
	ContentType() string
}

// New returns the Generator for f.
func New(f Format) (Generator, error) {
	switch f {
	case FormatJSON:
		return JSONGenerator{Indent: "  "}, nil
	case FormatCSV:
		return CSVGenerator{}, nil
	case FormatCBOR:
		return CBORGenerator{}, nil
	case FormatText:
		return TextGenerator{Width: 80}, nil
	}
	return nil, fmt.Errorf("unknown report format %q", f)
}
