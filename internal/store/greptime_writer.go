package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// Default GreptimeDB table names.
const (
	DefaultRunTable     = "ctsim_runs"
	DefaultProfileTable = "ctsim_profile"
)

// greptimeClient is the subset of the ingester client used by the writer.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter stores a summary row per run and the depth profile as a
// time series, one row per depth sample.
type GreptimeDBWriter struct {
	client       greptimeClient
	runTable     string
	profileTable string
	log          *slog.Logger
}

// NewGreptimeDBWriter connects to GreptimeDB at host:port. Empty table names
// select the defaults.
func NewGreptimeDBWriter(host string, port int, database, runTable, profileTable string, log *slog.Logger) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if port > 0 {
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("greptime client: %w", err)
	}
	if runTable == "" {
		runTable = DefaultRunTable
	}
	if profileTable == "" {
		profileTable = DefaultProfileTable
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{client: client, runTable: runTable, profileTable: profileTable, log: log}, nil
}

// Write inserts a single run.
func (w *GreptimeDBWriter) Write(rec Record) error {
	return w.WriteBatch([]Record{rec})
}

// WriteBatch inserts several runs in one request.
func (w *GreptimeDBWriter) WriteBatch(recs []Record) error {
	if len(recs) == 0 {
		return nil
	}
	runs, err := w.runRows(recs)
	if err != nil {
		return err
	}
	profile, err := w.profileRows(recs)
	if err != nil {
		return err
	}
	if _, err := w.client.Write(context.Background(), runs, profile); err != nil {
		w.log.Error("greptime write failed", "err", err)
		return err
	}
	w.log.Debug("greptime write", "runs", len(recs))
	return nil
}

func (w *GreptimeDBWriter) runRows(recs []Record) (*table.Table, error) {
	tbl, err := table.New(w.runTable)
	if err != nil {
		return nil, err
	}
	cols := []struct {
		name string
		tag  bool
		typ  types.ColumnType
	}{
		{"run_id", true, types.STRING},
		{"well_name", true, types.STRING},
		{"feasible", false, types.BOOLEAN},
		{"limiting_factors", false, types.STRING},
		{"max_hookload_lbf", false, types.FLOAT64},
		{"max_pressure_psi", false, types.FLOAT64},
		{"total_hr", false, types.FLOAT64},
		{"fatigue_percent", false, types.FLOAT64},
		{"risk_count", false, types.INT64},
		{"error", false, types.STRING},
	}
	for _, c := range cols {
		if c.tag {
			err = tbl.AddTagColumn(c.name, c.typ)
		} else {
			err = tbl.AddFieldColumn(c.name, c.typ)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		res := rec.Result
		var hook, press, total, fatigue float64
		if res.Forces != nil {
			hook = res.Forces.MaxHookloadLbf
		}
		if res.Hydraulics != nil {
			press = res.Hydraulics.MaxPressurePsi
		}
		if res.Time != nil {
			total = res.Time.TotalHr
		}
		if res.Fatigue != nil {
			fatigue = res.Fatigue.EstimatedFatiguePercent
		}
		factors := strings.Join(res.Feasibility.LimitingFactors, ",")
		if err := tbl.AddRow(rec.RunID, res.WellName, res.Feasibility.IsFeasible, factors,
			hook, press, total, fatigue, int64(len(res.Risks)), res.Error, rec.CreatedAt); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// profileRows offsets each sample's timestamp by its index so samples of
// one run stay distinct under the time index.
func (w *GreptimeDBWriter) profileRows(recs []Record) (*table.Table, error) {
	tbl, err := table.New(w.profileTable)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("run_id", types.STRING); err != nil {
		return nil, err
	}
	if err := tbl.AddTagColumn("well_name", types.STRING); err != nil {
		return nil, err
	}
	for _, name := range []string{
		"depth_ft",
		"pickup_hookload_lbf",
		"slack_off_hookload_lbf",
		"buckling_margin_lbf",
		"pump_pressure_psi",
		"bottomhole_pressure_psi",
		"annular_velocity_ft_min",
	} {
		if err := tbl.AddFieldColumn(name, types.FLOAT64); err != nil {
			return nil, err
		}
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		f, h := rec.Result.Forces, rec.Result.Hydraulics
		if f == nil || h == nil {
			continue
		}
		for i, d := range f.DepthFt {
			ts := rec.CreatedAt.Add(time.Duration(i) * time.Millisecond)
			if err := tbl.AddRow(rec.RunID, rec.Result.WellName, d,
				f.PickupHookloadLbf[i], f.SlackOffHookloadLbf[i], f.BucklingMarginLbf[i],
				h.PumpPressurePsi[i], h.BottomholePressurePsi[i], h.AnnularVelocityFtMin[i], ts); err != nil {
				return nil, err
			}
		}
	}
	return tbl, nil
}
