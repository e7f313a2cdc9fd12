package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"ctsim/internal/jobsim"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SeverityStyle colors a risk severity.
func SeverityStyle(s jobsim.Severity) lipgloss.Style {
	switch s {
	case jobsim.SeverityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	case jobsim.SeverityMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
}

// TextGenerator renders a human readable summary wrapped at Width columns.
type TextGenerator struct {
	Width int
}

func (g TextGenerator) Generate(res jobsim.SimulationResult) ([]byte, error) {
	width := g.Width
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	para := func(s string, pad uint) {
		b.WriteString(indent.String(wordwrap.String(s, width-int(pad)), pad))
		b.WriteByte('\n')
	}

	line("%s", titleStyle.Render("Coiled tubing job simulation: "+res.WellName))
	line("")

	fc := res.Feasibility
	if fc.IsFeasible {
		line("%s %s", sectionStyle.Render("Feasibility"), okStyle.Render("FEASIBLE"))
	} else {
		line("%s %s", sectionStyle.Render("Feasibility"), errStyle.Render("INFEASIBLE"))
	}
	for _, d := range fc.Details {
		para("- "+d, 2)
	}
	for _, w := range fc.Warnings {
		para("! "+w, 2)
	}

	if f := res.Forces; f != nil {
		line("")
		line("%s", sectionStyle.Render("Forces"))
		line("  samples:              %d", len(f.DepthFt))
		line("  target TVD:           %.0f ft", f.TargetTVDFt)
		line("  tubing weight:        %.3f lbf/ft", f.TubingWeightLbfFt)
		line("  max hookload (POOH):  %.0f lbf", f.MaxHookloadLbf)
		line("  min hookload (RIH):   %.0f lbf", f.MinHookloadLbf)
		line("  min buckling margin:  %.0f lbf", f.MinBucklingMarginLbf)
	}
	if h := res.Hydraulics; h != nil {
		line("")
		line("%s", sectionStyle.Render("Hydraulics"))
		line("  pump rate:            %.2f bpm", h.PumpRateBpm)
		line("  tubing friction:      %.0f psi", h.TubingFrictionPsi)
		line("  max pump pressure:    %.0f psi", h.MaxPressurePsi)
		line("  ECD at target:        %.2f ppg", h.TargetECDPpg)
	}
	if t := res.Time; t != nil {
		line("")
		line("%s", sectionStyle.Render("Time"))
		line("  rig up:               %.2f h", t.RigUpHr)
		line("  running in:           %.2f h", t.RunningInHr)
		line("  treatment:            %.2f h", t.TreatmentHr)
		line("  pulling out:          %.2f h", t.PullingOutHr)
		line("  rig down:             %.2f h", t.RigDownHr)
		line("  total:                %.2f h", t.TotalHr)
	}
	if f := res.Fatigue; f != nil {
		line("")
		line("%s", sectionStyle.Render("Fatigue"))
		line("  length run:           %.0f ft", f.LengthRunFt)
		line("  governing reel wrap:  %.1f in", f.GoverningReelDiameterInch)
		line("  consumed this job:    %.2f %%", f.EstimatedFatiguePercent)
		line("  remaining life:       %.2f %%", f.RemainingLifePercent)
	}
	if len(res.Risks) > 0 {
		line("")
		line("%s", sectionStyle.Render("Risks"))
		for _, r := range res.Risks {
			line("  %s %s", SeverityStyle(r.Severity).Render(fmt.Sprintf("[%s]", r.Severity)), r.Category)
			para(r.Description, 4)
			para("Mitigation: "+r.Mitigation, 4)
		}
	}
	if res.Error != "" {
		line("")
		para(errStyle.Render("Error: ")+res.Error, 0)
	}
	return []byte(b.String()), nil
}

func (TextGenerator) ContentType() string { return "text/plain; charset=utf-8" }
