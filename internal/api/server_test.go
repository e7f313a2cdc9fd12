package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"ctsim/internal/jobsim"
	"ctsim/internal/report"
	"ctsim/internal/store"
)

const w1Job = `{
	"well_name": "W-1",
	"target_depth_ft": 10000,
	"wellbore_diameter_inch": 6.0,
	"max_inclination_deg": 20,
	"tubing_od_inch": 2.0,
	"tubing_id_inch": 1.75,
	"tubing_length_ft": 12000,
	"fluid_density_ppg": 9.0,
	"max_pressure_psi": 8000,
	"max_running_speed_ft_min": 100,
	"unit_max_pressure_psi": 10000,
	"unit_max_tension_lbf": 80000
}`

func newTestServer(t *testing.T) (*Server, *store.BadgerStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	runs, err := store.OpenBadgerStore("", nil)
	if err != nil {
		t.Fatalf("OpenBadgerStore: %v", err)
	}
	t.Cleanup(func() { runs.Close() })
	return NewServer(jobsim.NewSimulator(nil, log), log, WithRunStore(runs)), runs
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "ok") {
		t.Fatalf("unexpected health response %d %s", w.Code, w.Body.String())
	}
}

func TestSimulateStoresRun(t *testing.T) {
	s, runs := newTestServer(t)
	w := do(s, http.MethodPost, "/v1/simulate", w1Job)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp SimulateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RunID == "" || w.Header().Get("X-Run-ID") != resp.RunID {
		t.Fatalf("missing run id: %+v", resp)
	}
	if !resp.Record.Result.Feasibility.IsFeasible {
		t.Fatalf("expected feasible result: %+v", resp.Record.Result.Feasibility)
	}
	if _, err := runs.Get(resp.RunID); err != nil {
		t.Fatalf("run not stored: %v", err)
	}

	g := do(s, http.MethodGet, "/v1/runs/"+resp.RunID, "")
	if g.Code != http.StatusOK {
		t.Fatalf("get run status %d", g.Code)
	}
	l := do(s, http.MethodGet, "/v1/runs", "")
	if !strings.Contains(l.Body.String(), resp.RunID) {
		t.Fatalf("run list missing id: %s", l.Body.String())
	}
}

func TestSimulateInfeasibleIsNotAnError(t *testing.T) {
	s, _ := newTestServer(t)
	body := strings.Replace(w1Job, `"max_pressure_psi": 8000`, `"max_pressure_psi": 12000`, 1)
	w := do(s, http.MethodPost, "/v1/simulate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"limiting_factors":["pressure"]`) {
		t.Fatalf("expected pressure factor: %s", w.Body.String())
	}
}

func TestSimulateFormats(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodPost, "/v1/simulate?format=csv", w1Job)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("csv: status %d content type %q", w.Code, w.Header().Get("Content-Type"))
	}
	if !strings.HasPrefix(w.Body.String(), "depth_ft,") {
		t.Fatalf("unexpected csv body %q", w.Body.String()[:40])
	}

	w = do(s, http.MethodPost, "/v1/simulate?format=cbor", w1Job)
	if w.Code != http.StatusOK {
		t.Fatalf("cbor: status %d", w.Code)
	}
	res, err := report.DecodeCBOR(w.Body.Bytes())
	if err != nil || res.WellName != "W-1" {
		t.Fatalf("cbor decode: %v %+v", err, res)
	}

	w = do(s, http.MethodPost, "/v1/simulate?format=pdf", w1Job)
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != "INVALID_FORMAT" {
		t.Fatalf("expected INVALID_FORMAT, got %d %s", w.Code, w.Body.String())
	}
}

func TestSimulateRejectsInvalidJob(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodPost, "/v1/simulate", `{"target_depth_ft": 100}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != "INVALID_JOB" || !strings.Contains(resp.Error, "well_name") {
		t.Fatalf("unexpected error %+v", resp)
	}

	w = do(s, http.MethodPost, "/v1/simulate", `{"well_name":`)
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != "INVALID_REQUEST" {
		t.Fatalf("expected INVALID_REQUEST, got %d %s", w.Code, w.Body.String())
	}
}

func TestCalc(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"flow_rate_gpm":400,"mud_weight_ppg":12,"nozzles_32nds":[12,12,12]}`
	w := do(s, http.MethodPost, "/v1/calc/bit-hydraulics", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tfa, _ := out["total_flow_area_in2"].(float64); tfa < 0.33 || tfa > 0.332 {
		t.Fatalf("unexpected TFA %v", out["total_flow_area_in2"])
	}
}

func TestCalcValidationNamesField(t *testing.T) {
	s, _ := newTestServer(t)
	body := `{"flow_rate_gpm":400,"mud_weight_ppg":12,"nozzles_32nds":[]}`
	w := do(s, http.MethodPost, "/v1/calc/bit-hydraulics", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != "VALIDATION_FAILED" || resp.Field != "nozzles_32nds" {
		t.Fatalf("unexpected error %+v", resp)
	}
}

func TestCalcUnknownAndMalformed(t *testing.T) {
	s, _ := newTestServer(t)
	if w := do(s, http.MethodPost, "/v1/calc/pdf", `{}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown calculator status %d", w.Code)
	}
	w := do(s, http.MethodPost, "/v1/calc/ecd", `not json`)
	if w.Code != http.StatusBadRequest || decodeError(t, w).Code != "INVALID_REQUEST" {
		t.Fatalf("expected INVALID_REQUEST, got %d %s", w.Code, w.Body.String())
	}
}

func TestGetRunNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	if w := do(s, http.MethodGet, "/v1/runs/nope", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
}

func TestRunsDisabledWithoutStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(jobsim.NewSimulator(nil, nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if w := do(s, http.MethodGet, "/v1/runs/x", ""); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", w.Code)
	}
	if w := do(s, http.MethodPost, "/v1/simulate", w1Job); w.Code != http.StatusOK {
		t.Fatalf("simulate without store: status %d", w.Code)
	}
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	do(s, http.MethodPost, "/v1/simulate", w1Job)
	do(s, http.MethodPost, "/v1/calc/ecd", `{}`)
	w := do(s, http.MethodGet, "/metrics", "")
	body := w.Body.String()
	for _, want := range []string{
		`ctsim_simulations_total{outcome="feasible"} 1`,
		`ctsim_calculations_total{calculator="ecd",outcome="invalid"} 1`,
		`ctsim_http_requests_total{method="POST",route="/v1/simulate",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestSinkReceivesRecords(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewServer(jobsim.NewSimulator(nil, log), log, WithSink(store.NewJSONWriter(&buf)))
	do(s, http.MethodPost, "/v1/simulate", w1Job)
	if !strings.Contains(buf.String(), `"well_name":"W-1"`) {
		t.Fatalf("sink did not receive record: %s", buf.String())
	}
}
