package sim

import (
	"errors"
	"fmt"

	"github.com/mfolta/backsim/pkg/common"
	"github.com/mfolta/backsim/pkg/fixed"
)

// ErrPriceOutOfBar marks a fill whose price fell outside the triggering bar's
// range, a data or logic inconsistency that aborts the run.
var ErrPriceOutOfBar = errors.New("fill price outside bar range")

// PriceBoundError carries the offending fill for diagnostics. It wraps
// ErrPriceOutOfBar so callers can match with errors.Is.
type PriceBoundError struct {
	Symbol string
	Price  fixed.Point
	Bar    common.Candle
}

func (e *PriceBoundError) Error() string {
	return fmt.Sprintf("%s: price %s outside bar [%s, %s] at %s",
		e.Symbol, e.Price, e.Bar.Low, e.Bar.High, e.Bar.Time)
}

func (e *PriceBoundError) Unwrap() error { return ErrPriceOutOfBar }
