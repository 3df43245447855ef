package common

import (
	"time"

	"go.uber.org/zap"

	"github.com/mfolta/backsim/pkg/fixed"
)

// Candle is one OHLCV record. Time is the bar's opening timestamp and is
// non-decreasing within one symbol's stream.
type Candle struct {
	Symbol string        `json:"symbol,omitempty"`
	Time   time.Time     `json:"ts"`
	Period time.Duration `json:"period,omitempty"`
	Open   fixed.Point   `json:"open"`
	High   fixed.Point   `json:"high"`
	Low    fixed.Point   `json:"low"`
	Close  fixed.Point   `json:"close"`
	Volume fixed.Point   `json:"volume"`
}

// Contains reports whether price lies within the bar's [low, high] range.
func (c Candle) Contains(price fixed.Point) bool {
	return price.Gte(c.Low) && price.Lte(c.High)
}

func (c Candle) Fields() []zap.Field {
	return []zap.Field{
		zap.String("symbol", c.Symbol),
		zap.Time("ts", c.Time),
		zap.String("open", c.Open.String()),
		zap.String("high", c.High.String()),
		zap.String("low", c.Low.String()),
		zap.String("close", c.Close.String()),
		zap.String("volume", c.Volume.String()),
	}
}
