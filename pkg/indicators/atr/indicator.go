// Package atr implements Wilder's average true range over candle streams.
package atr

import (
	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

type Indicator struct {
	windowSize int

	lastClose  fixed.Point
	lastAtr    fixed.Point
	currentAtr fixed.Point
	currentTr  fixed.Point
}

func NewIndicator(windowSize int) *Indicator {
	return &Indicator{
		windowSize: windowSize,
	}
}

// OnCandle folds one bar into the smoothed range. The first bar only seeds
// the previous close.
func (i *Indicator) OnCandle(candle common.Candle) {
	defer func() {
		i.lastClose = candle.Close
	}()

	if i.lastClose.IsZero() {
		return
	}

	a := candle.High.Sub(candle.Low).Abs()
	b := candle.High.Sub(i.lastClose).Abs()
	c := candle.Low.Sub(i.lastClose).Abs()

	i.currentTr = a.Max(b).Max(c)

	if i.lastAtr.IsZero() {
		i.currentAtr = i.currentTr
	} else {
		// Wilder smoothing: previous ATR weighted by window-1.
		i.currentAtr = i.lastAtr.MulInt(i.windowSize - 1).Add(i.currentTr).DivInt(i.windowSize)
	}

	i.lastAtr = i.currentAtr
}

func (i *Indicator) AverageTrueRange() fixed.Point {
	return i.currentAtr
}

func (i *Indicator) TrueRange() fixed.Point {
	return i.currentTr
}

func (i *Indicator) Ready() bool {
	return !i.lastAtr.IsZero()
}

func (i *Indicator) Reset() {
	i.lastClose = fixed.Zero
	i.lastAtr = fixed.Zero
	i.currentAtr = fixed.Zero
	i.currentTr = fixed.Zero
}
