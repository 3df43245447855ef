package middleware

import (
	"context"
	"log/slog"

	"github.com/mfolta/backsim/pkg/bus"
	"github.com/mfolta/backsim/pkg/common"
)

type MonitorFlags uint16

//goland:noinspection GoUnusedConst
const (
	MonitorNone MonitorFlags = 1 << iota
	MonitorAll
	MonitorCandles
	MonitorExecutions
	MonitorOrderStatus
	MonitorEquity
	MonitorBalance
	MonitorPositionsOpened
	MonitorPositionsClosed
)

// Monitor echoes selected events to the structured log before passing them on.
type Monitor struct {
	flags MonitorFlags
}

func NewMonitor(flags MonitorFlags) *Monitor {
	return &Monitor{
		flags: flags,
	}
}

func (m *Monitor) enabled(flag MonitorFlags) bool {
	return m.flags&flag != 0 || m.flags&MonitorAll != 0
}

func (m *Monitor) WithCandle(handler bus.CandleEventHandler) bus.CandleEventHandler {
	return func(ctx context.Context, candle common.Candle) {
		if m.enabled(MonitorCandles) {
			slog.Info("event", "candle", candle)
		}
		handler(ctx, candle)
	}
}

func (m *Monitor) WithExecution(handler bus.ExecutionEventHandler) bus.ExecutionEventHandler {
	return func(ctx context.Context, execution common.Execution) {
		if m.enabled(MonitorExecutions) {
			slog.Info("event", "execution", execution)
		}
		handler(ctx, execution)
	}
}

func (m *Monitor) WithOrderStatus(handler bus.OrderStatusEventHandler) bus.OrderStatusEventHandler {
	return func(ctx context.Context, change common.OrderStatusChange) {
		if m.enabled(MonitorOrderStatus) {
			slog.Info("event", "order_status", change)
		}
		handler(ctx, change)
	}
}

func (m *Monitor) WithEquity(handler bus.EquityEventHandler) bus.EquityEventHandler {
	return func(ctx context.Context, equity common.Equity) {
		if m.enabled(MonitorEquity) {
			slog.Info("event", "equity", equity)
		}
		handler(ctx, equity)
	}
}

func (m *Monitor) WithBalance(handler bus.BalanceEventHandler) bus.BalanceEventHandler {
	return func(ctx context.Context, balance common.Balance) {
		if m.enabled(MonitorBalance) {
			slog.Info("event", "balance", balance)
		}
		handler(ctx, balance)
	}
}

func (m *Monitor) WithPositionOpened(handler bus.PositionOpenedEventHandler) bus.PositionOpenedEventHandler {
	return func(ctx context.Context, position common.Position) {
		if m.enabled(MonitorPositionsOpened) {
			slog.Info("event", "position_opened", position)
		}
		handler(ctx, position)
	}
}

func (m *Monitor) WithPositionClosed(handler bus.PositionClosedEventHandler) bus.PositionClosedEventHandler {
	return func(ctx context.Context, transaction common.TransactionData) {
		if m.enabled(MonitorPositionsClosed) {
			slog.Info("event", "position_closed", transaction)
		}
		handler(ctx, transaction)
	}
}
