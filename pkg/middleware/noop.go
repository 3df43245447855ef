package middleware

import (
	"context"

	"github.com/mfolta/backsim/pkg/common"
)

//goland:noinspection ALL
var (
	NoopCandleHdl      = func(context.Context, common.Candle) {}
	NoopExecutionHdl   = func(context.Context, common.Execution) {}
	NoopOrderStatusHdl = func(context.Context, common.OrderStatusChange) {}
	NoopEquityHdl      = func(context.Context, common.Equity) {}
	NoopBalanceHdl     = func(context.Context, common.Balance) {}
	NoopPosOpnHdl      = func(context.Context, common.Position) {}
	NoopPosClsHdl      = func(context.Context, common.TransactionData) {}
)
