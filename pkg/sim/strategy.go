package sim

import (
	"context"
	"time"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/series"
)

// Strategy is the user-supplied trading logic driven by a Session. OnData is
// called once per consumed bar, after the matching engine reacted to it; an
// error aborts the run.
type Strategy interface {
	InitSimulation(s *Session)
	OnTradingDayStart(s *Session, day time.Time)
	OnTradingDayEnd(s *Session, day time.Time)
	OnData(ctx context.Context, s *Session, cursor *series.Cursor, candle common.Candle) error
	PostSimulation(s *Session)
}

// BaseStrategy is a no-op implementation meant for embedding, so strategies
// override only the callbacks they care about.
type BaseStrategy struct{}

func (BaseStrategy) InitSimulation(*Session)               {}
func (BaseStrategy) OnTradingDayStart(*Session, time.Time) {}
func (BaseStrategy) OnTradingDayEnd(*Session, time.Time)   {}
func (BaseStrategy) OnData(context.Context, *Session, *series.Cursor, common.Candle) error {
	return nil
}
func (BaseStrategy) PostSimulation(*Session) {}
