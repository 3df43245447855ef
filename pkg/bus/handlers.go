package bus

import (
	"context"

	"github.com/mfolta/backsim/pkg/common"
)

type EventHandler[T any] = func(context.Context, T)

type CandleEventHandler EventHandler[common.Candle]
type ExecutionEventHandler EventHandler[common.Execution]
type OrderStatusEventHandler EventHandler[common.OrderStatusChange]
type PositionOpenedEventHandler EventHandler[common.Position]
type PositionClosedEventHandler EventHandler[common.TransactionData]
type EquityEventHandler EventHandler[common.Equity]
type BalanceEventHandler EventHandler[common.Balance]

func MergeHandlers[T any](handlers ...EventHandler[T]) EventHandler[T] {
	return func(ctx context.Context, event T) {
		for _, handler := range handlers {
			handler(ctx, event)
		}
	}
}
