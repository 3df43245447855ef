package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mfolta/backsim/pkg/common"
)

// Router fans simulation events out to the registered handlers. Dispatch is
// synchronous and in-order: Post returns only after every handler ran, which
// the matching engine's bookkeeping relies on.
type Router struct {
	CandleHandler         CandleEventHandler
	ExecutionHandler      ExecutionEventHandler
	OrderStatusHandler    OrderStatusEventHandler
	PositionOpenedHandler PositionOpenedEventHandler
	PositionClosedHandler PositionClosedEventHandler
	EquityHandler         EquityEventHandler
	BalanceHandler        BalanceEventHandler

	startTime     time.Time
	postCount     uint64
	dispatchFails uint64
}

func NewRouter() *Router {
	return &Router{startTime: time.Now()}
}

func (r *Router) Post(ctx context.Context, id EventId, data interface{}) error {
	r.postCount++
	if err := r.dispatch(ctx, id, data); err != nil {
		r.dispatchFails++
		return err
	}
	return nil
}

func (r *Router) Statistics() Statistics {
	runTime := time.Since(r.startTime)
	return Statistics{
		RunTime:       runTime,
		PostCount:     r.postCount,
		DispatchFails: r.dispatchFails,
		Throughput:    float64(r.postCount) / runTime.Seconds(),
	}
}

func (r *Router) dispatch(ctx context.Context, id EventId, data interface{}) error {
	switch id {
	case CandleEvent:
		candle, ok := data.(common.Candle)
		if !ok {
			return errors.New("invalid type assertion for candle event")
		}
		if r.CandleHandler != nil {
			r.CandleHandler(ctx, candle)
		} else {
			slog.Debug("candle handler is nil")
		}
	case ExecutionEvent:
		execution, ok := data.(common.Execution)
		if !ok {
			return errors.New("invalid type assertion for execution event")
		}
		if r.ExecutionHandler != nil {
			r.ExecutionHandler(ctx, execution)
		} else {
			slog.Debug("execution handler is nil")
		}
	case OrderStatusEvent:
		change, ok := data.(common.OrderStatusChange)
		if !ok {
			return errors.New("invalid type assertion for order status event")
		}
		if r.OrderStatusHandler != nil {
			r.OrderStatusHandler(ctx, change)
		} else {
			slog.Debug("order status handler is nil")
		}
	case PositionOpenedEvent:
		position, ok := data.(common.Position)
		if !ok {
			return errors.New("invalid type assertion for position opened event")
		}
		if r.PositionOpenedHandler != nil {
			r.PositionOpenedHandler(ctx, position)
		} else {
			slog.Debug("position opened handler is nil")
		}
	case PositionClosedEvent:
		transaction, ok := data.(common.TransactionData)
		if !ok {
			return errors.New("invalid type assertion for position closed event")
		}
		if r.PositionClosedHandler != nil {
			r.PositionClosedHandler(ctx, transaction)
		} else {
			slog.Debug("position closed handler is nil")
		}
	case EquityEvent:
		equity, ok := data.(common.Equity)
		if !ok {
			return errors.New("invalid type assertion for equity event")
		}
		if r.EquityHandler != nil {
			r.EquityHandler(ctx, equity)
		} else {
			slog.Debug("equity handler is nil")
		}
	case BalanceEvent:
		balance, ok := data.(common.Balance)
		if !ok {
			return errors.New("invalid type assertion for balance event")
		}
		if r.BalanceHandler != nil {
			r.BalanceHandler(ctx, balance)
		} else {
			slog.Debug("balance handler is nil")
		}
	default:
		return fmt.Errorf("unsupported event id: %v", id)
	}
	return nil
}
