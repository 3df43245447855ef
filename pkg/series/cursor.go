// Package series provides chronological candle streams for replay.
package series

import (
	"time"

	"github.com/mfolta/backsim/pkg/common"
)

// Iterator walks one symbol's candles in time order. Current is the last
// consumed candle, Peek exposes the next one without consuming it, which the
// runner needs for its pre-advance delivery.
type Iterator interface {
	Current() common.Candle
	Peek() (common.Candle, bool)
	Next() (common.Candle, bool)
	HasNext() bool
}

// Cursor is a slice-backed Iterator. Candles must be sorted by non-decreasing
// time, enforced by the loaders, not here.
type Cursor struct {
	symbol  string
	candles []common.Candle
	idx     int
}

func NewCursor(symbol string, candles []common.Candle) *Cursor {
	return &Cursor{symbol: symbol, candles: candles, idx: -1}
}

func (c *Cursor) Symbol() string { return c.symbol }
func (c *Cursor) Len() int       { return len(c.candles) }

// Current returns the last consumed candle, the zero value before the first
// Next call.
func (c *Cursor) Current() common.Candle {
	if c.idx < 0 || c.idx >= len(c.candles) {
		return common.Candle{}
	}
	return c.candles[c.idx]
}

func (c *Cursor) Peek() (common.Candle, bool) {
	if c.idx+1 >= len(c.candles) {
		return common.Candle{}, false
	}
	return c.candles[c.idx+1], true
}

// PeekTime is the timestamp of the next unconsumed candle.
func (c *Cursor) PeekTime() (time.Time, bool) {
	candle, ok := c.Peek()
	return candle.Time, ok
}

func (c *Cursor) Next() (common.Candle, bool) {
	if !c.HasNext() {
		return common.Candle{}, false
	}
	c.idx++
	return c.candles[c.idx], true
}

func (c *Cursor) HasNext() bool {
	return c.idx+1 < len(c.candles)
}
