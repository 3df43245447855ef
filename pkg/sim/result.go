package sim

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mfolta/backsim/pkg/fixed"
	"github.com/mfolta/backsim/pkg/report"
	"github.com/mfolta/backsim/pkg/stats"
)

// Result is the read-only outcome of one simulation run.
type Result struct {
	RunID        uuid.UUID
	Start        time.Time
	End          time.Time
	Candles      int64
	Executions   int64
	EndingEquity fixed.Point
	Summary      *stats.EquitySummary
	Trades       report.Report
}

func (r Result) Fields() []zap.Field {
	return []zap.Field{
		zap.String("run_id", r.RunID.String()),
		zap.Time("start", r.Start),
		zap.Time("end", r.End),
		zap.Int64("candles", r.Candles),
		zap.Int64("executions", r.Executions),
		zap.String("ending_equity", r.EndingEquity.String()),
	}
}
