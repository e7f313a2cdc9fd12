// Writer implementation printing one-line run summaries
package store

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// SummaryWriter prints a colored one-line summary per run.
type SummaryWriter struct {
	out   io.Writer
	color bool
}

// NewSummaryWriter writes to os.Stdout, with ANSI colors when color is set.
func NewSummaryWriter(color bool) *SummaryWriter {
	return &SummaryWriter{out: os.Stdout, color: color}
}

func (w *SummaryWriter) paint(c, s string) string {
	if !w.color {
		return s
	}
	return c + s + colorReset
}

// Write implements ResultWriter.
func (w *SummaryWriter) Write(rec Record) error {
	res := rec.Result
	var b strings.Builder
	fmt.Fprintf(&b, "%s well=%s ", w.paint(colorGray, "["+shortID(rec.RunID)+"]"), res.WellName)
	switch {
	case !res.Feasibility.IsFeasible:
		b.WriteString(w.paint(colorRed, "infeasible="+strings.Join(res.Feasibility.LimitingFactors, ",")))
	case res.Error != "":
		b.WriteString(w.paint(colorRed, "error="+res.Error))
	default:
		b.WriteString(w.paint(colorGreen, "feasible"))
		fmt.Fprintf(&b, " max_hookload=%.0flbf max_pressure=%.0fpsi total=%.1fh fatigue=%.2f%% risks=%d",
			res.Forces.MaxHookloadLbf, res.Hydraulics.MaxPressurePsi, res.Time.TotalHr,
			res.Fatigue.EstimatedFatiguePercent, len(res.Risks))
	}
	_, err := fmt.Fprintln(w.out, b.String())
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
