package common

import (
	"time"

	"go.uber.org/zap"

	"github.com/mfolta/backsim/pkg/fixed"
)

// Execution is the immutable record of one fill. The engine populates it
// during construction and never touches it afterwards.
type Execution struct {
	ID    int64
	Order *Order

	Symbol string
	Time   time.Time
	Price  fixed.Point
	Size   fixed.Point
	Side   OrderSide

	OpeningCommission fixed.Point
	ClosingCommission fixed.Point

	ScaleIn         bool
	ScaleOut        bool
	StopLossHit     bool
	ProfitTargetHit bool
	Liquidation     bool
}

func (e Execution) Fields() []zap.Field {
	return []zap.Field{
		zap.Int64("id", e.ID),
		zap.String("symbol", e.Symbol),
		zap.Time("ts", e.Time),
		zap.String("side", e.Side.String()),
		zap.String("price", e.Price.String()),
		zap.String("size", e.Size.String()),
	}
}

// TransactionData summarizes one realized position change for listeners.
type TransactionData struct {
	Symbol         string
	Time           time.Time
	Price          fixed.Point
	Quantity       fixed.Point
	RealizedProfit fixed.Point
	Commission     fixed.Point
	Duration       time.Duration
}

// OrderStatusChange notifies listeners about one lifecycle transition.
type OrderStatusChange struct {
	Order  *Order
	Status OrderStatus
	Time   time.Time
	Reason string
}
