package middleware

import (
	"context"

	"go.uber.org/zap"

	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
)

// Telemetry counts events flowing through the wrapped handlers.
type Telemetry struct {
	logger *zap.Logger

	candleEventCounter         int64
	executionEventCounter      int64
	orderStatusEventCounter    int64
	equityEventCounter         int64
	balanceEventCounter        int64
	positionOpenedEventCounter int64
	positionClosedEventCounter int64
}

func NewTelemetry(logger *zap.Logger) *Telemetry {
	return &Telemetry{
		logger: logger,
	}
}

func (t *Telemetry) WithCandle(handler bus.CandleEventHandler) bus.CandleEventHandler {
	return func(ctx context.Context, candle common.Candle) {
		t.candleEventCounter++
		handler(ctx, candle)
	}
}

func (t *Telemetry) WithExecution(handler bus.ExecutionEventHandler) bus.ExecutionEventHandler {
	return func(ctx context.Context, execution common.Execution) {
		t.executionEventCounter++
		handler(ctx, execution)
	}
}

func (t *Telemetry) WithOrderStatus(handler bus.OrderStatusEventHandler) bus.OrderStatusEventHandler {
	return func(ctx context.Context, change common.OrderStatusChange) {
		t.orderStatusEventCounter++
		handler(ctx, change)
	}
}

func (t *Telemetry) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, equity common.Equity) {
		t.equityEventCounter++
		handler(ctx, equity)
	}
}

func (t *Telemetry) WithBalance(handler bus.BalanceEventHandler) bus.BalanceEventHandler {
	return func(ctx context.Context, balance common.Balance) {
		t.balanceEventCounter++
		handler(ctx, balance)
	}
}

func (t *Telemetry) WithPositionOpened(handler bus.PositionOpenedEventHandler) bus.PositionOpenedEventHandler {
	return func(ctx context.Context, position common.Position) {
		t.positionOpenedEventCounter++
		handler(ctx, position)
	}
}

func (t *Telemetry) WithPositionClosed(handler bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	return func(ctx context.Context, transaction common.TransactionData) {
		t.positionClosedEventCounter++
		handler(ctx, transaction)
	}
}

func (t *Telemetry) Print() {
	t.logger.Info("telemetry",
		zap.Int64("candle_events", t.candleEventCounter),
		zap.Int64("execution_events", t.executionEventCounter),
		zap.Int64("order_status_events", t.orderStatusEventCounter),
		zap.Int64("equity_events", t.equityEventCounter),
		zap.Int64("balance_events", t.balanceEventCounter),
		zap.Int64("position_opened_events", t.positionOpenedEventCounter),
		zap.Int64("position_closed_events", t.positionClosedEventCounter),
	)
}
