package jobsim

import (
	"fmt"
	"slices"

	"ctsim/internal/config"
)

// ratioSeverity grades value/limit against the configured ratios.
func (s *Simulator) ratioSeverity(ratio float64) (Severity, bool) {
	r := s.cfg.Risk
	switch {
	case ratio >= r.HighRatio:
		return SeverityHigh, true
	case ratio >= r.MediumRatio:
		return SeverityMedium, true
	case ratio >= r.LowRatio:
		return SeverityLow, true
	}
	return "", false
}

// risks derives findings from the completed stages, most severe first.
func (s *Simulator) risks(p config.JobParameters, res SimulationResult) []Risk {
	var out []Risk
	add := func(cat string, sev Severity, desc, mitigation string) {
		out = append(out, Risk{Category: cat, Severity: sev, Description: desc, Mitigation: mitigation})
	}

	if f := res.Forces; f != nil && p.UnitMaxTensionLbf > 0 {
		ratio := f.MaxHookloadLbf / p.UnitMaxTensionLbf
		if sev, ok := s.ratioSeverity(ratio); ok {
			add(CategoryMechanical, sev,
				fmt.Sprintf("Peak pulling hookload of %.0f lbf is %.0f%% of the %.0f lbf injector rating.", f.MaxHookloadLbf, ratio*100, p.UnitMaxTensionLbf),
				"Reduce pulling speed, lighten the fluid column or use a higher rated injector.")
		}
	}

	if f := res.Forces; f != nil {
		switch {
		case f.MinBucklingMarginLbf < 0:
			add(CategoryBuckling, SeverityHigh,
				fmt.Sprintf("Compression exceeds the sinusoidal buckling load by %.0f lbf while running in.", -f.MinBucklingMarginLbf),
				"Lower wellhead pressure, add weight bars or use larger tubing.")
		case f.MinBucklingMarginRatio < s.cfg.Risk.BucklingMarginFraction:
			add(CategoryBuckling, SeverityMedium,
				fmt.Sprintf("Buckling margin falls to %.0f lbf (%.0f%% of the critical load).", f.MinBucklingMarginLbf, f.MinBucklingMarginRatio*100),
				"Run in slowly through the build section and monitor weight indicator.")
		}
	}

	if h := res.Hydraulics; h != nil {
		limit := p.UnitMaxPressurePsi
		if p.MaxPressurePsi > 0 && p.MaxPressurePsi < limit {
			limit = p.MaxPressurePsi
		}
		if limit > 0 {
			ratio := h.MaxPressurePsi / limit
			if sev, ok := s.ratioSeverity(ratio); ok {
				add(CategoryPressure, sev,
					fmt.Sprintf("Circulating pump pressure of %.0f psi is %.0f%% of the %.0f psi limit.", h.MaxPressurePsi, ratio*100, limit),
					"Reduce pump rate or switch to a lower friction fluid.")
			}
		}
	}

	if f := res.Fatigue; f != nil {
		r := s.cfg.Risk
		var sev Severity
		switch {
		case f.RemainingLifePercent < r.FatigueHighFloorPct:
			sev = SeverityHigh
		case f.RemainingLifePercent < r.FatigueMediumFloorPct:
			sev = SeverityMedium
		case f.RemainingLifePercent < r.FatigueLowFloorPct:
			sev = SeverityLow
		}
		if sev != "" {
			add(CategoryFatigue, sev,
				fmt.Sprintf("Remaining tubing life after this job is %.1f%%.", f.RemainingLifePercent),
				"Schedule a string cut or replacement and avoid cycling at the same depth.")
		}
	}

	if t := res.Time; t != nil {
		long := s.cfg.Risk.LongJobHr
		var sev Severity
		switch {
		case t.TotalHr > 2*long:
			sev = SeverityMedium
		case t.TotalHr > long:
			sev = SeverityLow
		}
		if sev != "" {
			add(CategoryOperational, sev,
				fmt.Sprintf("Job duration of %.1f h spans more than one %.0f h shift cycle.", t.TotalHr, long),
				"Plan crew changes and a fatigue management schedule.")
		}
	}

	slices.SortStableFunc(out, func(a, b Risk) int {
		return b.Severity.rank() - a.Severity.rank()
	})
	return out
}
