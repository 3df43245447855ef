package common

import (
	"time"

	"go.uber.org/zap"

	"github.com/mfolta/backsim/pkg/fixed"
)

type PositionDirection int

const (
	PositionLong PositionDirection = iota
	PositionShort
)

// Position is the signed exposure held per instrument. Quantity is always
// positive, the sign lives in Direction. Mutated in place by the matching
// engine and marked to market every bar.
type Position struct {
	Symbol            string
	Direction         PositionDirection
	Quantity          fixed.Point
	EntryPrice        fixed.Point
	EntryTime         time.Time
	EntryOrder        *Order
	ExitStop          fixed.Point
	ExitLimit         fixed.Point
	OpeningCommission fixed.Point

	// Profit is the running unrealized P&L at the last marked price.
	Profit     fixed.Point
	MarkedTime time.Time
}

// UpdateProfit marks the unrealized P&L to the given price.
func (p *Position) UpdateProfit(price fixed.Point, now time.Time) {
	diff := price.Sub(p.EntryPrice)
	if p.Direction == PositionShort {
		diff = p.EntryPrice.Sub(price)
	}
	p.Profit = diff.Mul(p.Quantity)
	p.MarkedTime = now
}

// SignedQuantity is positive for long exposure, negative for short.
func (p *Position) SignedQuantity() fixed.Point {
	if p.Direction == PositionShort {
		return p.Quantity.Neg()
	}
	return p.Quantity
}

func (d PositionDirection) String() string {
	if d == PositionShort {
		return "short"
	}
	return "long"
}

func (p *Position) Fields() []zap.Field {
	return []zap.Field{
		zap.String("symbol", p.Symbol),
		zap.String("direction", p.Direction.String()),
		zap.String("quantity", p.Quantity.String()),
		zap.String("entry_price", p.EntryPrice.String()),
		zap.String("profit", p.Profit.String()),
	}
}
