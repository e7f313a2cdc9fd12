package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ctsim/internal/config"
	"ctsim/internal/jobsim"
	"ctsim/internal/store"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func record(t *testing.T, well string) store.Record {
	t.Helper()
	sim := jobsim.NewSimulator(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	job := config.JobParameters{
		WellName:             well,
		TargetDepthFt:        10000,
		WellboreDiameterInch: 6.0,
		MaxInclinationDeg:    20,
		TubingODInch:         2.0,
		TubingIDInch:         1.75,
		TubingLengthFt:       12000,
		FluidDensityPpg:      9.0,
		MaxPressurePsi:       8000,
		MaxRunningSpeedFtMin: 100,
		UnitMaxPressurePsi:   10000,
		UnitMaxTensionLbf:    80000,
	}
	return store.NewRecord(job, sim.Simulate(job), time.Unix(0, 0))
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	mi, cmd := m.Update(msg)
	return mi.(model), cmd
}

func TestWriterSendsRecords(t *testing.T) {
	p := &fakeProgram{}
	w := &Writer{program: p}
	if err := w.Write(record(t, "W-1")); err != nil {
		t.Fatalf("write: %v", err)
	}
	msg, ok := p.msgs[0].(recordMsg)
	if !ok {
		t.Fatalf("expected recordMsg, got %T", p.msgs[0])
	}
	if msg.rec.Result.WellName != "W-1" {
		t.Fatalf("unexpected record %+v", msg.rec)
	}
	if err := w.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestSingleRecordOpensSummary(t *testing.T) {
	m := newModel(record(t, "W-1"))
	if m.pane != paneSummary {
		t.Fatalf("expected summary pane, got %s", m.pane)
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.vp.Width != 100 {
		t.Fatalf("viewport width %d, want 100", m.vp.Width)
	}
	view := m.View()
	if !strings.Contains(view, "Coiled tubing job simulation: W-1") {
		t.Fatalf("summary missing title:\n%s", view)
	}
	if got := len(m.profile.Rows()); got != 101 {
		t.Fatalf("expected 101 profile rows, got %d", got)
	}
}

func TestTabCyclesPanes(t *testing.T) {
	m := newModel(record(t, "W-1"))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	want := []pane{paneProfile, paneRuns, paneSummary}
	for _, p := range want {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.pane != p {
			t.Fatalf("expected pane %s, got %s", p, m.pane)
		}
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.profile.Focused() || m.runs.Focused() {
		t.Fatalf("expected only the profile table focused")
	}
	if !strings.Contains(m.View(), "Depth ft") {
		t.Fatalf("profile pane missing header")
	}
}

func TestEnterOpensSelectedRun(t *testing.T) {
	m := newModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(m.vp.View(), "waiting for results") {
		t.Fatalf("expected placeholder summary")
	}
	m, _ = update(t, m, recordMsg{rec: record(t, "W-1")})
	m, _ = update(t, m, recordMsg{rec: record(t, "W-2")})
	if got := len(m.runs.Rows()); got != 2 {
		t.Fatalf("expected 2 runs, got %d", got)
	}
	if m.selected != 0 {
		t.Fatalf("first record should stay selected, got %d", m.selected)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.selected != 1 || m.pane != paneSummary {
		t.Fatalf("expected run 1 in summary pane, got %d in %s", m.selected, m.pane)
	}
	if !strings.Contains(m.View(), "W-2") {
		t.Fatalf("expected W-2 in view")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := update(t, newModel(), k)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected QuitMsg", k)
		}
	}
}
