// Package store persists and exports simulation runs.
package store

import (
	"time"

	"github.com/google/uuid"

	"ctsim/internal/config"
	"ctsim/internal/jobsim"
)

// Record is one simulation run as written to every sink.
type Record struct {
	RunID     string                  `json:"run_id"`
	CreatedAt time.Time               `json:"created_at"`
	Job       config.JobParameters    `json:"job"`
	Result    jobsim.SimulationResult `json:"result"`
}

// NewRecord stamps a result with a fresh run ID.
func NewRecord(job config.JobParameters, res jobsim.SimulationResult, now time.Time) Record {
	return Record{
		RunID:     uuid.NewString(),
		CreatedAt: now.UTC(),
		Job:       job,
		Result:    res,
	}
}

// ResultWriter is implemented by every record sink.
type ResultWriter interface {
	Write(Record) error
}

// Writers may optionally accept several records at once.
type batchWriter interface {
	WriteBatch([]Record) error
}

// WriteAll sends recs to w, in one batch when w supports it.
func WriteAll(w ResultWriter, recs []Record) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(recs)
	}
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
