package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/report"
	"github.com/mfolta/backsim/pkg/series"
	"github.com/mfolta/backsim/pkg/stats"
)

// Session owns one simulation run: the account, the matching engine, the
// statistics sinks and the strategy, glued together over a synchronous event
// router. A Session must not be shared across runs; concurrent runs each own
// their full object graph.
type Session struct {
	Router  *bus.Router
	Account *Account
	Engine  *MatchingEngine
	Summary *stats.EquitySummary
	Trades  *report.Tracker

	strategy Strategy
	runID    uuid.UUID

	currentTime time.Time
	startTime   time.Time
	candleCount int64
}

func NewSession(router *bus.Router, account *Account, engine *MatchingEngine, strategy Strategy) *Session {
	s := &Session{
		Router:   router,
		Account:  account,
		Engine:   engine,
		Summary:  stats.NewEquitySummary(),
		Trades:   report.NewTracker(),
		strategy: strategy,
		runID:    uuid.New(),
	}

	router.EquityHandler = mergedEquity(router.EquityHandler, func(_ context.Context, eq common.Equity) {
		s.Summary.Add(eq.Value.Float64(), eq.Time)
	})
	router.PositionClosedHandler = mergedTransaction(router.PositionClosedHandler, s.Trades.OnPositionClosed)

	return s
}

func (s *Session) RunID() uuid.UUID { return s.runID }

// CurrentTime is the timestamp of the bar being processed.
func (s *Session) CurrentTime() time.Time { return s.currentTime }

// SubmitOrder stamps the order with the session clock and hands it to the
// matching engine.
func (s *Session) SubmitOrder(ctx context.Context, order *common.Order) {
	s.Engine.SubmitOrder(ctx, order, s.currentTime)
}

// Run replays all cursors through the scheduler, finishes every stream and
// reports the result.
func (s *Session) Run(ctx context.Context, cursors []*series.Cursor) (Result, error) {
	s.strategy.InitSimulation(s)

	if err := NewRunner().Run(ctx, cursors, s); err != nil {
		return Result{}, err
	}

	for _, cursor := range cursors {
		last := cursor.Current()
		if last.Time.IsZero() {
			continue
		}
		if err := s.Engine.AfterLast(ctx, cursor.Symbol(), last); err != nil {
			return Result{}, err
		}
	}
	if !s.currentTime.IsZero() {
		s.Account.MarkEquity(ctx, s.currentTime)
	}

	s.strategy.PostSimulation(s)

	return Result{
		RunID:        s.runID,
		Start:        s.startTime,
		End:          s.currentTime,
		Candles:      s.candleCount,
		Executions:   s.Engine.Executions(),
		EndingEquity: s.Account.Equity(),
		Summary:      s.Summary,
		Trades:       s.Trades.Generate(),
	}, nil
}

// OnTradingDayStart implements Driver.
func (s *Session) OnTradingDayStart(_ context.Context, day time.Time) {
	s.strategy.OnTradingDayStart(s, day)
}

// OnTradingDayEnd implements Driver.
func (s *Session) OnTradingDayEnd(_ context.Context, day time.Time) {
	s.strategy.OnTradingDayEnd(s, day)
}

// OnPeek implements Driver: equity is marked the moment a new timestamp is
// known, before the bar itself is consumed, so the curve reflects the state
// at the previous mark.
func (s *Session) OnPeek(ctx context.Context, _ *series.Cursor, candle common.Candle, newTimestamp bool) error {
	if newTimestamp {
		s.Account.MarkEquity(ctx, candle.Time)
	}
	return nil
}

// OnData implements Driver: the matching engine reacts to the bar first, then
// the strategy sees it.
func (s *Session) OnData(ctx context.Context, cursor *series.Cursor, candle common.Candle) error {
	if s.startTime.IsZero() {
		s.startTime = candle.Time
	}
	s.currentTime = candle.Time
	s.candleCount++

	if err := s.Router.Post(ctx, bus.CandleEvent, candle); err != nil {
		slog.Warn("unable to post candle event", "error", err)
	}
	if err := s.Engine.OnData(ctx, candle); err != nil {
		return err
	}
	return s.strategy.OnData(ctx, s, cursor, candle)
}

func mergedEquity(existing bus.EquityEventHandler, next bus.EquityEventHandler) bus.EquityEventHandler {
	if existing == nil {
		return next
	}
	return bus.MergeHandlers[common.Equity](existing, next)
}

func mergedTransaction(existing bus.PositionClosedEventHandler, next bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	if existing == nil {
		return next
	}
	return bus.MergeHandlers[common.TransactionData](existing, next)
}
