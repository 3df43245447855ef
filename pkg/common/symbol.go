package common

import (
	"github.com/mfolta/backsim/pkg/fixed"
)

// SymbolInfo describes a tradeable instrument. Spread is the one-sided
// transaction cost added to buy fills.
type SymbolInfo struct {
	Name         string
	Digits       int
	Spread       fixed.Point
	ContractSize fixed.Point
}
