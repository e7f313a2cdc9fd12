// Package batch simulates many jobs read from a JSONL stream.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"ctsim/internal/config"
	"ctsim/internal/jobsim"
	"ctsim/internal/store"
)

// Summary counts the outcomes of a batch.
type Summary struct {
	Jobs       int `json:"jobs"`
	Feasible   int `json:"feasible"`
	Infeasible int `json:"infeasible"`
	Failed     int `json:"failed"`
}

// Runner simulates jobs with a bounded number of workers.
type Runner struct {
	sim     *jobsim.Simulator
	workers int
	now     func() time.Time
	log     *slog.Logger
}

// NewRunner returns a Runner. workers <= 0 uses GOMAXPROCS.
func NewRunner(sim *jobsim.Simulator, workers int, log *slog.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{sim: sim, workers: workers, now: time.Now, log: log}
}

// ReadJobs decodes and validates one job per JSON value.
func ReadJobs(r io.Reader) ([]config.JobParameters, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var jobs []config.JobParameters
	for {
		var job config.JobParameters
		if err := dec.Decode(&job); err != nil {
			if errors.Is(err, io.EOF) {
				return jobs, nil
			}
			return nil, fmt.Errorf("job %d: %w", len(jobs)+1, err)
		}
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("job %d: %w", len(jobs)+1, err)
		}
		jobs = append(jobs, job)
	}
}

// Run simulates every job and writes the records to w in input order.
func (r *Runner) Run(ctx context.Context, jobs []config.JobParameters, w store.ResultWriter) (Summary, error) {
	recs := make([]store.Record, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs[i] = store.NewRecord(job, r.sim.Simulate(job), r.now())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Jobs: len(recs)}
	for _, rec := range recs {
		switch {
		case !rec.Result.Feasibility.IsFeasible:
			sum.Infeasible++
		case rec.Result.Error != "":
			sum.Failed++
		default:
			sum.Feasible++
		}
	}
	if err := store.WriteAll(w, recs); err != nil {
		return sum, fmt.Errorf("write results: %w", err)
	}
	r.log.Info("batch complete", "jobs", sum.Jobs, "feasible", sum.Feasible,
		"infeasible", sum.Infeasible, "failed", sum.Failed, "workers", r.workers)
	return sum, nil
}

// RunFile reads jobs from path and runs them.
func (r *Runner) RunFile(ctx context.Context, path string, w store.ResultWriter) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()
	jobs, err := ReadJobs(f)
	if err != nil {
		return Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	return r.Run(ctx, jobs, w)
}
