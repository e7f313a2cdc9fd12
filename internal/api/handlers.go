package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ctsim/internal/calc"
	"ctsim/internal/config"
	"ctsim/internal/report"
	"ctsim/internal/store"
)

// SimulateResponse is returned by POST /v1/simulate in JSON format.
type SimulateResponse struct {
	RunID  string       `json:"run_id"`
	Record store.Record `json:"record"`
}

// handleSimulate runs one job. ?format= selects json (default), csv, cbor or
// text.
func (s *Server) handleSimulate(c *gin.Context) {
	log := s.log.With("handler", "simulate")
	format := report.FormatJSON
	if q := c.Query("format"); q != "" {
		f, err := report.ParseFormat(q)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_FORMAT"})
			return
		}
		format = f
	}

	var job config.JobParameters
	if err := c.ShouldBindJSON(&job); err != nil {
		log.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST", Details: err.Error()})
		return
	}
	if err := job.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_JOB"})
		return
	}

	res := s.sim.Simulate(job)
	switch {
	case !res.Feasibility.IsFeasible:
		s.metrics.simulations.WithLabelValues("infeasible").Inc()
	case !res.OK():
		s.metrics.simulations.WithLabelValues("failed").Inc()
	default:
		s.metrics.simulations.WithLabelValues("feasible").Inc()
	}

	rec := store.NewRecord(job, res, s.now())
	if s.runs != nil {
		if err := s.runs.Write(rec); err != nil {
			log.Error("store run failed", "run_id", rec.RunID, "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to store run", Code: "STORE_FAILED"})
			return
		}
	}
	if s.sink != nil {
		if err := s.sink.Write(rec); err != nil {
			log.Warn("sink write failed", "run_id", rec.RunID, "error", err)
		}
	}
	log.Info("simulation complete", "run_id", rec.RunID, "well", job.WellName, "feasible", res.Feasibility.IsFeasible)

	c.Header("X-Run-ID", rec.RunID)
	if format == report.FormatJSON {
		c.JSON(http.StatusOK, SimulateResponse{RunID: rec.RunID, Record: rec})
		return
	}
	gen, err := report.New(format)
	if err == nil {
		var body []byte
		if body, err = gen.Generate(res); err == nil {
			c.Data(http.StatusOK, gen.ContentType(), body)
			return
		}
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "REPORT_FAILED"})
}

func (s *Server) handleListCalculators(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"calculators": calc.Calculators})
}

// handleCalc evaluates a single calculator. Validation failures return 400
// naming the offending field.
func (s *Server) handleCalc(c *gin.Context) {
	name := c.Param("name")
	out, err := s.sim.Engine().Run(name, func(req any) error {
		return c.ShouldBindJSON(req)
	})
	var (
		verr *calc.ValidationError
		derr *calc.DecodeError
	)
	switch {
	case err == nil:
		s.metrics.calcs.WithLabelValues(name, "ok").Inc()
		c.JSON(http.StatusOK, out)
	case errors.Is(err, calc.ErrUnknownCalculator):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "UNKNOWN_CALCULATOR"})
	case errors.As(err, &verr):
		s.metrics.calcs.WithLabelValues(name, "invalid").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Code: "VALIDATION_FAILED", Field: verr.Field, Details: verr.Reason})
	case errors.As(err, &derr):
		s.metrics.calcs.WithLabelValues(name, "invalid").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: "INVALID_REQUEST", Details: derr.Err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "CALC_FAILED"})
	}
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "run storage is disabled", Code: "NO_STORE"})
		return
	}
	ids, err := s.runs.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "STORE_FAILED"})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": ids})
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "run storage is disabled", Code: "NO_STORE"})
		return
	}
	rec, err := s.runs.Get(c.Param("id"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "STORE_FAILED"})
	default:
		c.JSON(http.StatusOK, rec)
	}
}
